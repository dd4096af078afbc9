package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gigstage/gigstage-backend/config"
	"github.com/gigstage/gigstage-backend/database"
	"github.com/gigstage/gigstage-backend/internal/auditlog"
	"github.com/gigstage/gigstage-backend/internal/auth"
	"github.com/gigstage/gigstage-backend/internal/availability"
	"github.com/gigstage/gigstage-backend/internal/calendar"
	"github.com/gigstage/gigstage-backend/internal/event"
	"github.com/gigstage/gigstage-backend/internal/messaging"
	"github.com/gigstage/gigstage-backend/internal/notification"
	"github.com/gigstage/gigstage-backend/internal/profile"
	"github.com/gigstage/gigstage-backend/internal/reports"
	"github.com/gigstage/gigstage-backend/middleware"
)

func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware()) // captures client IP for audit trails

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)

	// ========== Profiles ==========
	profileRepo := profile.NewRepository(database.DB)
	profileSvc := profile.NewService(profileRepo, cfg.DefaultRole)
	profileHandler := profile.NewHandler(profileSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo)
	notifHandler := notification.NewHandler(notifSvc)

	// ========== Events & Applications ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, notifSvc, auditSvc)
	eventHandler := event.NewHandler(eventSvc)

	// ========== Availability ==========
	availRepo := availability.NewRepository(database.DB)
	availSvc := availability.NewService(availRepo)
	availHandler := availability.NewHandler(availSvc)

	// ========== Calendar ==========
	calRepo := calendar.NewRepository(database.DB)
	calSvc := calendar.NewService(calRepo)
	calHandler := calendar.NewHandler(calSvc)

	// ========== Messaging ==========
	msgRepo := messaging.NewRepository(database.DB)
	msgSvc := messaging.NewService(msgRepo, notifSvc)
	msgHandler := messaging.NewHandler(msgSvc)

	// ========== Reports / Exports ==========
	reportsRepo := reports.NewRepository(database.DB)
	reportsSvc := reports.NewService(reportsRepo, calSvc, reports.NewExporter())
	reportsHandler := reports.NewHandler(reportsSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		// Logout requires Auth Middleware
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc, profileSvc), authHandler.Logout)
	}

	// Public discovery endpoints: published events and lookup tables.
	api.GET("/events", eventHandler.ListPublished)
	api.GET("/events/:id", eventHandler.GetEvent)
	api.GET("/categories", eventHandler.ListCategories)
	api.GET("/venues", eventHandler.ListVenues)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc, profileSvc))

	// ========== Account & Profile ==========
	protected.PUT("/account", authHandler.UpdateAccount)

	profileRoutes := protected.Group("/profile")
	{
		profileRoutes.GET("/me", profileHandler.GetMyProfile)
		profileRoutes.PUT("/bio", profileHandler.UpdateBio)
		profileRoutes.PUT("/settings", profileHandler.UpdateSettings)
	}
	protected.GET("/performers", profileHandler.Directory)

	// ========== Event management (organizer-only writes) ==========
	eventRoutes := protected.Group("/events")
	{
		organizerRoutes := eventRoutes.Group("")
		organizerRoutes.Use(middleware.RequireRole(profile.RoleOrganizer))
		{
			organizerRoutes.POST("", eventHandler.CreateEvent)
			organizerRoutes.PUT("/:id", eventHandler.UpdateEvent)
			organizerRoutes.DELETE("/:id", eventHandler.DeleteEvent)
			organizerRoutes.GET("/:id/applications", eventHandler.ListEventApplications)
			organizerRoutes.GET("/:id/roster/export", reportsHandler.RosterExport)
		}

		performerRoutes := eventRoutes.Group("")
		performerRoutes.Use(middleware.RequireRole(profile.RolePerformer))
		{
			performerRoutes.POST("/:id/apply", eventHandler.Apply)
			performerRoutes.POST("/:id/withdraw", eventHandler.Withdraw)
		}
	}
	protected.POST("/applications/:id/decide", middleware.RequireRole(profile.RoleOrganizer), eventHandler.Decide)
	protected.GET("/my-events", middleware.RequireRole(profile.RoleOrganizer), eventHandler.ListMyEvents)
	protected.GET("/my-applications", middleware.RequireRole(profile.RolePerformer), eventHandler.ListMyApplications)

	// ========== Availability ==========
	availRoutes := protected.Group("/availability")
	{
		availRoutes.GET("", availHandler.List)
		availRoutes.POST("", availHandler.Create)
		availRoutes.PUT("", availHandler.Replace)
		availRoutes.DELETE("/:id", availHandler.Delete)
	}
	protected.GET("/availability_json", availHandler.AvailabilityJSON)

	// ========== Calendar ==========
	calRoutes := protected.Group("/calendar")
	{
		calRoutes.GET("/feed", calHandler.Feed)
		calRoutes.POST("/entries", calHandler.AddEntry)
		calRoutes.DELETE("/entries/:id", calHandler.DeleteEntry)
		calRoutes.GET("/export", reportsHandler.CalendarExport)
	}
	protected.GET("/events_json", calHandler.EventsJSON)

	// ========== Messaging ==========
	msgRoutes := protected.Group("/messages")
	{
		msgRoutes.GET("", msgHandler.ListConversations)
		msgRoutes.POST("/start", msgHandler.StartConversation)
		msgRoutes.GET("/:id", msgHandler.OpenConversation)
		msgRoutes.POST("/:id", msgHandler.SendMessage)
	}

	// ========== Notifications ==========
	notifRoutes := protected.Group("/notifications")
	{
		notifRoutes.GET("", notifHandler.List)
		notifRoutes.GET("/unread-count", notifHandler.UnreadCount)
		notifRoutes.POST("/:id/read", notifHandler.MarkRead)
		notifRoutes.POST("/read-all", notifHandler.MarkAllRead)
	}
}
