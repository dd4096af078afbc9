package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
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
	"github.com/gigstage/gigstage-backend/routes"
	"github.com/gigstage/gigstage-backend/utils"
)

func main() {
	cfg := config.Load()

	database.Connect(cfg)

	if err := utils.InitRedis(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	log.Println("✅ Redis connected")

	// Run migrations for all registered models
	err := database.DB.AutoMigrate(
		&auth.User{},
		&profile.Profile{},
		&event.Category{},
		&event.Venue{},
		&event.Event{},
		&event.EventTalent{},
		&event.EventApplication{},
		&availability.Availability{},
		&calendar.CalendarEvent{},
		&messaging.Conversation{},
		&messaging.Message{},
		&notification.Notification{},
		&auditlog.AuditLog{},
	)
	if err != nil {
		panic("❌ Failed to migrate database: " + err.Error())
	}
	log.Println("✅ Database migrated")

	// Kafka-backed notification ingestion (no-op when brokers are unset)
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo)
	notification.StartKafkaConsumer(context.Background(), cfg, notifSvc)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Request logging middleware
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("🔄 %s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:5173",
			"http://localhost:4173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("✅ Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
