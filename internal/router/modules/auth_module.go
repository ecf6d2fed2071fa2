package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/internal/container"
	handlers "github.com/classtalk/classtalk-api/internal/interface/http"
	"github.com/classtalk/classtalk-api/internal/interface/middleware"
	"github.com/classtalk/classtalk-api/pkg/helpers"
)

// AuthModule wires credential, session and OTP routes.
// Public: register, login, logout, reset OTP issue/redeem.
// Protected: is-auth, profile, verify OTP issue/redeem, user search.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits. OTP issue routes get the
	// tightest budget since each request sends an email.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.POST("/auth/send-reset-otp", resetInitLimiter, m.Handler.SendResetOTP)
	rg.POST("/auth/reset-password", resetConfirmLimiter, m.Handler.ResetPassword)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.JWTAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("/auth/is-auth", m.Handler.IsAuth)
		auth.GET("/profile", m.Handler.Profile)
		auth.POST("/auth/send-verify-otp",
			middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.SendVerifyOTP)
		auth.POST("/auth/verify-account",
			middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.VerifyAccount)
		auth.GET("/users/search", m.Handler.Search)
	}
}
