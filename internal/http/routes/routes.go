package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/admin"
	"github.com/codearc/codearc-server/internal/features/auth"
	"github.com/codearc/codearc-server/internal/features/certificate"
	"github.com/codearc/codearc-server/internal/features/chapter"
	"github.com/codearc/codearc-server/internal/features/chat"
	"github.com/codearc/codearc-server/internal/features/course"
	"github.com/codearc/codearc-server/internal/features/enrollment"
	"github.com/codearc/codearc-server/internal/features/notification"
	"github.com/codearc/codearc-server/internal/features/progress"
	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/cache"
	"github.com/codearc/codearc-server/pkg/config"
	"github.com/codearc/codearc-server/pkg/email"
	"github.com/codearc/codearc-server/pkg/health"
)

// Register wires all feature routes onto the engine.
func Register(engine *gin.Engine, cfg *config.Config, db *gorm.DB, logger *slog.Logger, cacheClient cache.Client, emailClient *email.Client, renderer certificate.Renderer) {
	// Health check endpoints (no /api prefix for Kubernetes probes)
	healthHandler := health.NewHandler(db)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.VersionInfo)

	// Metrics endpoint for Prometheus
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")

	// Initialize global middleware instance before any feature registers
	middleware.Initialize(db, cfg.JWTSecret, logger)

	authHandler := auth.NewHandler(db, logger, emailClient, cfg.JWTSecret, cfg.JWTRefreshSecret)
	auth.RegisterRoutes(api, authHandler)

	userHandler := user.NewHandler(db, logger)
	user.RegisterRoutes(api, userHandler)

	courseHandler := course.NewHandler(db, logger)
	course.RegisterRoutes(api, courseHandler)

	chapterHandler := chapter.NewHandler(db, logger)
	chapter.RegisterRoutes(api, chapterHandler)

	enrollmentHandler := enrollment.NewHandler(db, logger)
	enrollment.RegisterRoutes(api, enrollmentHandler)

	progressHandler := progress.NewHandler(db, logger)
	progress.RegisterRoutes(api, progressHandler)

	notificationHandler := notification.NewHandler(db, logger)
	notification.RegisterRoutes(api, notificationHandler)

	chatHandler := chat.NewHandler(db, logger)
	chat.RegisterRoutes(api, chatHandler)

	certificateHandler := certificate.NewHandler(db, logger, renderer)
	certificate.RegisterRoutes(api, certificateHandler)

	adminHandler := admin.NewHandler(db, logger, cacheClient, emailClient)
	admin.RegisterRoutes(api, adminHandler)
}
