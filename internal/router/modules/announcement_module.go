package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/internal/container"
	handlers "github.com/classtalk/classtalk-api/internal/interface/http"
	"github.com/classtalk/classtalk-api/internal/interface/middleware"
	"github.com/classtalk/classtalk-api/pkg/helpers"
)

type AnnouncementModule struct {
	Handler *handlers.AnnouncementHandler
	JWT     *helpers.JWTManager
}

func NewAnnouncementModule(h *handlers.AnnouncementHandler, jwt *helpers.JWTManager) *AnnouncementModule {
	return &AnnouncementModule{Handler: h, JWT: jwt}
}

func (m *AnnouncementModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/announcements")
	auth.Use(middleware.JWTAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Post)
		auth.GET("/classroom/:classroomId", m.Handler.List)
		auth.DELETE("/:announcementId", m.Handler.Delete)
	}
}
