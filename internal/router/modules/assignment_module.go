package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/internal/container"
	handlers "github.com/classtalk/classtalk-api/internal/interface/http"
	"github.com/classtalk/classtalk-api/internal/interface/middleware"
	"github.com/classtalk/classtalk-api/pkg/helpers"
)

type AssignmentModule struct {
	Handler *handlers.AssignmentHandler
	JWT     *helpers.JWTManager
}

func NewAssignmentModule(h *handlers.AssignmentHandler, jwt *helpers.JWTManager) *AssignmentModule {
	return &AssignmentModule{Handler: h, JWT: jwt}
}

func (m *AssignmentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/assignments")
	auth.Use(middleware.JWTAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		// Uploads are slow; keep the create budget separate from reads.
		auth.POST("",
			middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.Create)
		auth.GET("/classroom/:classroomId", m.Handler.List)
	}
}
