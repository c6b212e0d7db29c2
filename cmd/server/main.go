package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorlink/internal/config"
	"tutorlink/internal/handlers"
	"tutorlink/internal/middleware"
	"tutorlink/internal/repositories/mongodb"
	"tutorlink/internal/services"
	"tutorlink/internal/utils"
	"tutorlink/pkg/cache"
	"tutorlink/pkg/database"
	"tutorlink/pkg/logger"
	"tutorlink/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}
	defer redisCache.Close()

	migrator := database.NewMigrator(db.Database)
	if err := migrator.Up(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Repositories
	batchRepo := mongodb.NewBatchRepository(db.Database, redisCache)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	couponRepo := mongodb.NewCouponRepository(db.Database, redisCache)
	teacherRepo := mongodb.NewTeacherRepository(db.Database, redisCache)
	studentRepo := mongodb.NewStudentRepository(db.Database)
	parentRepo := mongodb.NewParentRepository(db.Database)
	reviewRepo := mongodb.NewReviewRepository(db.Database)

	// Services
	bookingService := services.NewBookingService(bookingRepo, batchRepo, teacherRepo, studentRepo, parentRepo, db, log)
	couponService := services.NewCouponService(couponRepo, db, log)
	batchService := services.NewBatchService(batchRepo, teacherRepo, log)
	reviewService := services.NewReviewService(reviewRepo, teacherRepo)

	// Handlers
	bookingHandler := handlers.NewBookingHandler(bookingService)
	couponHandler := handlers.NewCouponHandler(couponService)
	batchHandler := handlers.NewBatchHandler(batchService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			log.WithError(err).Fatal("failed to set trusted proxies")
		}
	}

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": utils.AppVersion,
		}
		if err := db.Ping(); err != nil {
			status["status"] = "degraded"
			status["mongodb"] = err.Error()
		}
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
		}
		c.JSON(http.StatusOK, status)
	})

	api := router.Group("/api/v1")
	routes.SetupBookingRoutes(api, bookingHandler, cfg.Security.JWTSecret)
	routes.SetupCouponRoutes(api, couponHandler, cfg.Security.JWTSecret)
	routes.SetupBatchRoutes(api, batchHandler, cfg.Security.JWTSecret)
	routes.SetupReviewRoutes(api, reviewHandler, cfg.Security.JWTSecret)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}

	log.Info("server stopped")
}
