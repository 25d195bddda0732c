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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/api/swagger"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/app"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/middleware"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/config"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/logger"
	corsmiddleware "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/middleware/requestid"
)

// @title Campus Scheduling API
// @version 1.0.0
// @description Conflict-aware booking of rooms, faculty time and student-group time.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	application, err := app.New(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to wire application", zap.Error(err))
	}
	defer application.Close()

	application.NotifyQueue.Start(ctx)
	application.SweepQueue.Start(ctx)
	defer application.NotifyQueue.Stop()
	defer application.SweepQueue.Stop()
	go application.Sweeper.Schedule(ctx, application.SweepQueue, cfg.Conflicts.SweepInterval)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	routes := application.Routes()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(application.Metrics))
	r.Use(middleware.ResponseMeta())

	r.GET("/health", routes.Metrics.Health)
	r.GET("/ready", routes.Metrics.Ready)
	r.GET("/metrics", routes.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.Register(r.Group(cfg.APIPrefix))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}
