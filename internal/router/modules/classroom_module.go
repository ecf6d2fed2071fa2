package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/internal/container"
	handlers "github.com/classtalk/classtalk-api/internal/interface/http"
	"github.com/classtalk/classtalk-api/internal/interface/middleware"
	"github.com/classtalk/classtalk-api/pkg/helpers"
)

// ClassroomModule wires classroom creation, enrollment and membership routes.
// Everything requires a session.
type ClassroomModule struct {
	Handler *handlers.ClassroomHandler
	JWT     *helpers.JWTManager
}

func NewClassroomModule(h *handlers.ClassroomHandler, jwt *helpers.JWTManager) *ClassroomModule {
	return &ClassroomModule{Handler: h, JWT: jwt}
}

func (m *ClassroomModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/classrooms")
	auth.Use(middleware.JWTAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		// Join gets its own tighter budget to slow invite-code guessing.
		auth.POST("/join",
			middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.Join)
		auth.GET("/mine", m.Handler.Mine)
		auth.GET("/:classroomId", m.Handler.Details)
		auth.DELETE("/:classroomId", m.Handler.Delete)
	}
}
