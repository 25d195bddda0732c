// Package app assembles the scheduling engine from configuration. The API
// server and the operator CLI share it.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/handler"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/middleware"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/repository"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/service"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/cache"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/config"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/database"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/export"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/jobs"
)

// App holds the wired services and the resources that must be closed.
type App struct {
	Config     *config.Config
	Scheduling service.SchedulingConfig
	Logger     *zap.Logger
	DB         *sqlx.DB
	Redis      *redis.Client

	Metrics      *service.MetricsService
	Availability *service.AvailabilityService
	Bookings     *service.BookingCoordinatorService
	Reschedule   *service.RescheduleService
	Detector     *service.ConflictDetectorService
	Sweeper      *service.ConflictSweeper
	Cache        *service.CacheService
	Exports      *service.ExportService
	Tokens       *service.TokenVerifier

	NotifyQueue *jobs.Queue
	SweepQueue  *jobs.Queue
}

// New connects to the stores and wires every service. Queues are built but
// not started.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scheduling, err := service.NewSchedulingConfig(
		cfg.Scheduler.GridStart,
		cfg.Scheduler.GridEnd,
		cfg.Scheduler.SlotMinutes,
		cfg.Scheduler.Days,
		cfg.Scheduler.TopN,
		cfg.Scheduler.HorizonDays,
		cfg.Scheduler.MaxRoomAlternatives,
	)
	if err != nil {
		return nil, fmt.Errorf("scheduler config: %w", err)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, conflict reports will not be cached", zap.Error(err))
		rdb = nil
	}

	a := &App{Config: cfg, Scheduling: scheduling, Logger: logger, DB: db, Redis: rdb}
	a.wire()
	return a, nil
}

func (a *App) wire() {
	logger := a.Logger
	clock := service.NewSystemClock(a.Config.Location())
	validate := validator.New()

	bookingRepo := repository.NewBookingRepository(a.DB, logger)
	classRepo := repository.NewClassScheduleRepository(a.DB, logger)
	eventRepo := repository.NewEventRepository(a.DB, logger)
	roomRepo := repository.NewRoomRepository(a.DB)
	notificationRepo := repository.NewNotificationRepository(a.DB)
	busyRepo := repository.NewBusyRepository(bookingRepo, classRepo, eventRepo)

	a.Metrics = service.NewMetricsService()
	a.Cache = service.NewCacheService(repository.NewCacheRepository(a.Redis, logger), a.Metrics, a.Config.Conflicts.CacheTTL, logger, a.Redis != nil)
	a.Availability = service.NewAvailabilityService(busyRepo, logger)
	a.Detector = service.NewConflictDetectorService(bookingRepo, roomRepo, clock, logger)
	a.Sweeper = service.NewConflictSweeper(a.Detector, a.Cache, a.Metrics, logger)
	a.Exports = service.NewExportService(export.NewCSVExporter(), export.NewPDFExporter(), logger)
	a.Tokens = service.NewTokenVerifier(a.Config.JWT.Secret, a.Config.JWT.Issuer)

	worker := service.NewNotificationWorker(notificationRepo, a.Metrics, logger)
	a.NotifyQueue = jobs.NewQueue("notifications", worker.Handle, jobs.QueueConfig{
		Workers:    a.Config.Notify.Workers,
		MaxRetries: a.Config.Notify.Retries,
		RetryDelay: time.Second,
		Logger:     logger,
		OnGiveUp:   worker.GiveUp,
	})
	a.SweepQueue = jobs.NewQueue("conflict-sweeps", a.Sweeper.Handle, jobs.QueueConfig{
		Workers:    1,
		BufferSize: 1,
		Logger:     logger,
	})
	notifier := service.NewNotificationService(a.NotifyQueue, logger)

	a.Bookings = service.NewBookingCoordinatorService(a.Availability, bookingRepo, roomRepo, notifier, a.Metrics, clock, a.Scheduling, validate, logger)
	a.Reschedule = service.NewRescheduleService(bookingRepo, a.Availability, roomRepo, a.Metrics, clock, a.Scheduling, validate, logger)
}

// Routes builds the HTTP handlers on top of the wired services.
func (a *App) Routes() handler.Routes {
	var limiter *middleware.RateLimiter
	if a.Config.RateLimit.BookingsPerMinute > 0 {
		limiter = middleware.NewRateLimiter(a.Config.RateLimit.BookingsPerMinute, a.Config.RateLimit.Burst)
	}
	return handler.Routes{
		Bookings:     handler.NewBookingHandler(a.Bookings, a.Reschedule, a.Cache),
		Conflicts:    handler.NewConflictHandler(a.Sweeper, a.Exports),
		Availability: handler.NewAvailabilityHandler(a.Availability, a.Scheduling),
		Metrics:      handler.NewMetricsHandler(a.Metrics, a.DB),
		Auth:         a.Tokens,
		BookingRate:  limiter,
	}
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("closing redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn("closing database", zap.Error(err))
		}
	}
}
