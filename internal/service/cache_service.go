package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

const latestReportKey = "latest"

// CacheRepository abstracts persistence for cached conflict reports.
type CacheRepository interface {
	GetReport(ctx context.Context, name string) (*models.ConflictReport, error)
	SetReport(ctx context.Context, name string, report *models.ConflictReport, ttl time.Duration) error
	DeleteReports(ctx context.Context) error
}

// CacheService keeps the latest conflict report and records cache metrics.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// LatestReport returns the cached report and whether the cache was hit.
func (s *CacheService) LatestReport(ctx context.Context) (*models.ConflictReport, bool, error) {
	if !s.Enabled() {
		return nil, false, nil
	}
	start := time.Now()
	report, err := s.repo.GetReport(ctx, latestReportKey)
	hit := err == nil && report != nil
	s.metrics.RecordCacheOperation(hit, time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", latestReportKey), zap.Error(err))
		return nil, false, err
	}
	return report, hit, nil
}

// StoreReport caches report as the latest sweep.
func (s *CacheService) StoreReport(ctx context.Context, report *models.ConflictReport) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.SetReport(ctx, latestReportKey, report, s.defaultTTL); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", latestReportKey), zap.Error(err))
		return err
	}
	return nil
}

// Invalidate drops cached reports, for example after a booking changes.
func (s *CacheService) Invalidate(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteReports(ctx); err != nil {
		s.logger.Warn("cache invalidate failed", zap.Error(err))
		return err
	}
	return nil
}
