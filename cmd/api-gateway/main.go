package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutoring-api/api/swagger"
	"github.com/noah-isme/tutoring-api/internal/handler"
	internalmiddleware "github.com/noah-isme/tutoring-api/internal/middleware"
	"github.com/noah-isme/tutoring-api/internal/repository"
	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/pkg/cache"
	"github.com/noah-isme/tutoring-api/pkg/config"
	"github.com/noah-isme/tutoring-api/pkg/database"
	"github.com/noah-isme/tutoring-api/pkg/events"
	"github.com/noah-isme/tutoring-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutoring-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutoring-api/pkg/middleware/requestid"
)

// @title Tutoring API
// @version 1.0.0
// @description Tutor registration and class availability search
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	metricsSvc := service.NewMetricsService()
	readiness := map[string]handler.Pinger{"database": db}

	classOpts := []service.ClassServiceOption{service.WithClassMetrics(metricsSvc)}
	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events)
		if err != nil {
			logr.Warn("event publishing disabled", zap.String("exchange", cfg.Events.Exchange), zap.Error(err))
		} else {
			defer publisher.Close() //nolint:errcheck
			classOpts = append(classOpts, service.WithEventPublisher(publisher))
		}
	}

	var limiter *service.RateLimitService
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("rate limiting disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			counter := cache.NewCounter(redisClient)
			limiter = service.NewRateLimitService(counter, "register_class", cfg.RateLimit.RegisterPerMinute, logr)
			readiness["redis"] = counter
		}
	}

	classSvc := service.NewClassService(
		db,
		repository.NewTutorRepository(db),
		repository.NewClassOfferingRepository(db),
		repository.NewAvailabilityRepository(db),
		validator.New(),
		logr,
		classOpts...,
	)
	exportSvc := service.NewExportService(classSvc, logr)

	classHandler := handler.NewClassHandler(classSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	r.GET("/classes", classHandler.Search)
	r.POST("/classes", internalmiddleware.RateLimit(limiter, metricsSvc), classHandler.Register)
	r.GET("/classes/export", classHandler.Export)
	r.GET("/classes/:id/schedule", classHandler.Schedule)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("shutdown error", zap.Error(err))
	}
}
