package router

import (
	"github.com/classtalk/classtalk-api/internal/application"
	"github.com/classtalk/classtalk-api/internal/container"
	pginfra "github.com/classtalk/classtalk-api/internal/infrastructure/postgres"
	handlers "github.com/classtalk/classtalk-api/internal/interface/http"
	"github.com/classtalk/classtalk-api/internal/router/modules"
)

// InitModules constructs every feature module from the container singletons
// and registers it with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	classroomRepo := pginfra.NewClassroomRepository(pool)
	announcementRepo := pginfra.NewAnnouncementRepository(pool)
	assignmentRepo := pginfra.NewAssignmentRepository(pool)
	auditRepo := pginfra.NewAuditRepository(pool)

	authSvc := application.NewAuthService(
		userRepo,
		auditRepo,
		container.GetJWT(),
		container.GetRabbitPub(),
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
		cfg,
	)
	classroomSvc := application.NewClassroomService(classroomRepo, logger)
	announcementSvc := application.NewAnnouncementService(announcementRepo, classroomSvc)
	assignmentSvc := application.NewAssignmentService(assignmentRepo, classroomSvc, container.GetGCS(), cfg.GCSBucket, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	classroomHandler := handlers.NewClassroomHandler(classroomSvc)
	announcementHandler := handlers.NewAnnouncementHandler(announcementSvc)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentSvc)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewClassroomModule(classroomHandler, container.GetJWT()))
	r.Add(modules.NewAnnouncementModule(announcementHandler, container.GetJWT()))
	r.Add(modules.NewAssignmentModule(assignmentHandler, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
