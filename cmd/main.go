package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gwsanta/secret-santa-backend/config"
	"github.com/gwsanta/secret-santa-backend/database"
	"github.com/gwsanta/secret-santa-backend/internal/admin"
	"github.com/gwsanta/secret-santa-backend/internal/assignment"
	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/internal/auth"
	"github.com/gwsanta/secret-santa-backend/internal/broadcast"
	"github.com/gwsanta/secret-santa-backend/internal/event"
	"github.com/gwsanta/secret-santa-backend/internal/letter"
	"github.com/gwsanta/secret-santa-backend/internal/metrics"
	"github.com/gwsanta/secret-santa-backend/internal/registration"
	"github.com/gwsanta/secret-santa-backend/internal/telegram"
	"github.com/gwsanta/secret-santa-backend/routes"
	"github.com/gwsanta/secret-santa-backend/utils"
	"github.com/gwsanta/secret-santa-backend/workers"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka
	utils.InitializeKafka()

	// Prometheus counters
	metrics.Register()

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&auditlog.ActivityLog{},
		&event.Event{},
		&event.Stage{},
		&registration.Registration{},
		&registration.RegistrationDetails{},
		&registration.Approval{},
		&assignment.Assignment{},
		&letter.LetterMessage{},
		&telegram.TelegramLink{},
		&broadcast.Broadcast{},
		&broadcast.BroadcastDelivery{},
		&broadcast.InboxMessage{},
		&admin.Award{},
		&admin.AwardGrant{},
		&admin.Title{},
		&admin.FAQEntry{},
		&admin.Setting{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}

	// Apply additive column changes for databases created before the
	// columns existed
	if err := database.RunColumnMigrations(db); err != nil {
		log.Printf("⚠️ Column migration issue: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Seed roles & super admin
	if err := auth.SeedUserRoles(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}
	if err := auth.SeedSuperAdminUser(db, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed Super Admin: %v", err))
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	svcs := routes.Setup(router, cfg, db)

	// Background workers: broadcast consumer + housekeeping
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go svcs.Broadcast.StartConsumer(ctx)
	go workers.StartCleanup(ctx, db, svcs.Audit)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
