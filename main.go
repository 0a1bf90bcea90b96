package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/waatech/merch-backend/config"
	"github.com/waatech/merch-backend/database"
	"github.com/waatech/merch-backend/logger"
	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/repository"
	"github.com/waatech/merch-backend/routes"
	"github.com/waatech/merch-backend/sender"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()
	log := logger.Log

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}

	// Email is optional in development: without SMTP credentials orders
	// still succeed, observable in the logs only.
	var emailSender sender.EmailSender
	smtpSender, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	if err != nil {
		log.Warn("smtp not configured, order emails disabled", zap.Error(err))
		emailSender = sender.NoopSender{}
	} else {
		emailSender = smtpSender
	}

	var notificationRepo repository.NotificationRepository
	if cfg.DatabaseDSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("postgres connection failed", zap.Error(err))
		}
		if err := db.AutoMigrate(&models.NotificationLog{}); err != nil {
			log.Fatal("notification log migration failed", zap.Error(err))
		}
		notificationRepo = repository.NewGormNotificationRepository(db)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.RegisterRoutes(router, redisClient, emailSender, notificationRepo, cfg, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("merch backend running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", zap.Error(err))
	}
	log.Info("server shutdown complete")
}
