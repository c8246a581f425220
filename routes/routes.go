package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/gwsanta/secret-santa-backend/config"
	"github.com/gwsanta/secret-santa-backend/internal/admin"
	"github.com/gwsanta/secret-santa-backend/internal/assignment"
	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/auth"
	"github.com/gwsanta/secret-santa-backend/internal/broadcast"
	"github.com/gwsanta/secret-santa-backend/internal/event"
	"github.com/gwsanta/secret-santa-backend/internal/letter"
	"github.com/gwsanta/secret-santa-backend/internal/profile"
	"github.com/gwsanta/secret-santa-backend/internal/registration"
	"github.com/gwsanta/secret-santa-backend/internal/reports"
	"github.com/gwsanta/secret-santa-backend/internal/telegram"
	"github.com/gwsanta/secret-santa-backend/middleware"
	"github.com/gwsanta/secret-santa-backend/utils"
)

// Services holds the pieces main needs after route registration:
// background consumers and workers run outside the request path.
type Services struct {
	Audit     auditlog.Service
	Broadcast *broadcast.Service
}

func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB) *Services {
	if err := os.MkdirAll(config.UploadPath, 0755); err != nil {
		panic("could not create upload directory: " + err.Error())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Stored files (letter attachments, receipt images)
	r.GET("/files/*filepath", func(c *gin.Context) {
		full, err := utils.ResolveUploadPath(c.Param("filepath"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.File(full)
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc, auditSvc, cfg)

	authGroup := api.Group("/auth")
	{
		authGroup.GET("/gwars", authHandler.GWarsLogin)
		authGroup.POST("/login", authHandler.LocalLogin)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	// ========== Admin surfaces (awards, titles, FAQ, settings) ==========
	adminRepo := admin.NewRepository(db)
	adminSvc := admin.NewService(adminRepo, authRepo, auditSvc)
	adminHandler := admin.NewHandler(adminSvc)

	// public reads
	api.GET("/faq", adminHandler.ListFAQ)
	api.GET("/awards", adminHandler.ListAwards)
	api.GET("/titles", adminHandler.ListTitles)
	api.GET("/settings/:key", adminHandler.GetSetting)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Profile ==========
	telegramRepo := telegram.NewRepository(db)
	profileSvc := profile.NewService(authRepo, adminRepo, telegramRepo, auditSvc)
	profileHandler := profile.NewHandler(profileSvc)

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile/email", profileHandler.UpdateEmail)
	protected.GET("/users/:id/awards", adminHandler.ListUserAwards)

	// ========== Events ==========
	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, auditSvc, cfg.EventClockOffsetHours)
	eventHandler := event.NewHandler(eventSvc)

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.GET("", eventHandler.ListEvents)
		eventRoutes.GET("/:id", eventHandler.GetEventByID)
		eventRoutes.GET("/:id/status", eventHandler.GetEventStatus)

		adminEvents := eventRoutes.Group("")
		adminEvents.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin, middleware.RoleOrganizer))
		{
			adminEvents.POST("", eventHandler.CreateEvent)
			adminEvents.PUT("/:id", eventHandler.UpdateEvent)
			adminEvents.PUT("/:id/stages", eventHandler.SaveStage)
			adminEvents.DELETE("/:id", eventHandler.DeleteEvent)
		}
	}

	// ========== Registrations ==========
	regRepo := registration.NewRepository(db)
	regSvc := registration.NewService(regRepo, eventSvc, auditSvc)
	regHandler := registration.NewHandler(regSvc)

	regRoutes := protected.Group("/events/:id/registrations")
	{
		regRoutes.POST("", regHandler.Register)
		regRoutes.GET("/mine", regHandler.GetOwn)
		regRoutes.DELETE("/mine", regHandler.Withdraw)

		adminRegs := regRoutes.Group("")
		adminRegs.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin, middleware.RoleOrganizer))
		{
			adminRegs.GET("", regHandler.ListByEvent)
			adminRegs.POST("/approve", regHandler.Approve)
		}
	}

	// ========== Assignments ==========
	assignmentRepo := assignment.NewRepository(db)
	assignmentSvc := assignment.NewService(assignmentRepo, eventSvc, regSvc, auditSvc)
	assignmentHandler := assignment.NewHandler(assignmentSvc)

	assignmentRoutes := protected.Group("/events/:id/assignments")
	{
		assignmentRoutes.GET("/mine", assignmentHandler.GetOwnAsSanta)
		assignmentRoutes.GET("/incoming", assignmentHandler.GetOwnAsRecipient)
		assignmentRoutes.POST("/sent", assignmentHandler.MarkSent)
		assignmentRoutes.POST("/received", assignmentHandler.MarkReceived)
		assignmentRoutes.POST("/thanks", assignmentHandler.SetThanks)
		assignmentRoutes.POST("/receipt", assignmentHandler.UploadReceipt)

		adminAssignments := assignmentRoutes.Group("")
		adminAssignments.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin, middleware.RoleOrganizer))
		{
			adminAssignments.POST("/run", assignmentHandler.RunAssignment)
			adminAssignments.GET("", assignmentHandler.ListByEvent)
		}
	}

	assignmentAdmin := protected.Group("/assignments")
	assignmentAdmin.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin, middleware.RoleOrganizer))
	{
		assignmentAdmin.PUT("/:id/locks", assignmentHandler.SetLocks)
		assignmentAdmin.POST("/:id/reset-sent", assignmentHandler.ResetSent)
		assignmentAdmin.POST("/:id/swap/:other_id", assignmentHandler.SwapRecipients)
	}

	// ========== Letters ==========
	letterRepo := letter.NewRepository(db)
	letterSvc := letter.NewService(letterRepo, assignmentRepo, eventSvc, auditSvc)
	letterHandler := letter.NewHandler(letterSvc)

	letterRoutes := protected.Group("/events/:id/letters")
	{
		letterRoutes.POST("/to-grandchild", letterHandler.PostToGrandchild)
		letterRoutes.POST("/to-santa", letterHandler.PostToSanta)
		letterRoutes.GET("/with-grandchild", letterHandler.ThreadWithGrandchild)
		letterRoutes.GET("/with-santa", letterHandler.ThreadWithSanta)
	}

	// ========== Telegram linking ==========
	telegramSvc := telegram.NewService(telegramRepo, auditSvc)
	telegramHandler := telegram.NewHandler(telegramSvc)

	telegramRoutes := protected.Group("/telegram")
	{
		telegramRoutes.POST("/link-code", telegramHandler.RequestLinkCode)
		telegramRoutes.GET("/link", telegramHandler.GetOwnLink)
		telegramRoutes.DELETE("/link", telegramHandler.Unlink)
		telegramRoutes.PUT("/notifications", telegramHandler.SetNotifications)
	}
	// bot bridge callback, authenticated by the code itself
	api.POST("/telegram/verify", telegramHandler.VerifyLinkCode)

	// ========== Broadcasts + inbox ==========
	broadcastRepo := broadcast.NewRepository(db)
	broadcastSvc := broadcast.NewService(broadcastRepo, authRepo, eventSvc, regSvc, telegramRepo, auditSvc)
	broadcastHandler := broadcast.NewHandler(broadcastSvc)

	broadcastRoutes := protected.Group("/broadcasts")
	broadcastRoutes.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin, middleware.RoleOrganizer))
	{
		broadcastRoutes.POST("", broadcastHandler.CreateBroadcast)
		broadcastRoutes.GET("", broadcastHandler.ListBroadcasts)
		broadcastRoutes.GET("/:id/deliveries", broadcastHandler.ListDeliveries)
	}

	inboxRoutes := protected.Group("/inbox")
	{
		inboxRoutes.GET("", broadcastHandler.GetInbox)
		inboxRoutes.PUT("/:id/read", broadcastHandler.MarkRead)
		inboxRoutes.PUT("/read-all", broadcastHandler.MarkAllRead)
	}

	// ========== Admin CRUD ==========
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin, middleware.RoleOrganizer))
	{
		adminRoutes.POST("/awards", adminHandler.CreateAward)
		adminRoutes.PUT("/awards/:id", adminHandler.UpdateAward)
		adminRoutes.DELETE("/awards/:id", adminHandler.DeleteAward)
		adminRoutes.POST("/awards/:id/grant", adminHandler.GrantAward)

		adminRoutes.POST("/titles", adminHandler.CreateTitle)
		adminRoutes.DELETE("/titles/:id", adminHandler.DeleteTitle)
		adminRoutes.POST("/titles/assign", adminHandler.AssignTitle)

		// authenticated read includes unpublished entries
		adminRoutes.GET("/faq", adminHandler.ListFAQ)
		adminRoutes.POST("/faq", adminHandler.CreateFAQ)
		adminRoutes.PUT("/faq/:id", adminHandler.UpdateFAQ)
		adminRoutes.DELETE("/faq/:id", adminHandler.DeleteFAQ)

		adminRoutes.GET("/settings", adminHandler.ListSettings)
		adminRoutes.PUT("/settings/:key", adminHandler.SetSetting)
	}

	// ========== Reports ==========
	reportRepo := reports.NewReportRepository(db)
	reportSvc := reports.NewReportService(reportRepo, reports.NewReportExporter(), auditSvc)
	reportHandler := reports.NewHandler(reportSvc)

	reportRoutes := protected.Group("")
	reportRoutes.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin, middleware.RoleOrganizer))
	{
		reportRoutes.GET("/events/:id/reports/assignments", reportHandler.ExportAssignments)
		reportRoutes.GET("/events/:id/reports/registrations", reportHandler.ExportRegistrations)
	}
	protected.GET("/reports/activity-logs",
		middleware.RBACMiddleware(middleware.RoleSuperAdmin), reportHandler.ExportActivityLogs)

	// ========== Activity Logs (SuperAdmin Only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin))
	{
		auditRoutes.GET("", auditHandler.GetActivityLogs)
		auditRoutes.GET("/:id", auditHandler.GetActivityLogByID)
	}

	return &Services{
		Audit:     auditSvc,
		Broadcast: broadcastSvc,
	}
}
