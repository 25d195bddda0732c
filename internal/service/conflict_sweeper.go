package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/jobs"
)

// JobTypeConflictSweep tags periodic sweep jobs on the queue.
const JobTypeConflictSweep = "conflict_sweep"

type conflictSweepRunner interface {
	Sweep(ctx context.Context) (*models.ConflictReport, error)
}

type conflictReportStore interface {
	LatestReport(ctx context.Context) (*models.ConflictReport, bool, error)
	StoreReport(ctx context.Context, report *models.ConflictReport) error
}

type sweepEnqueuer interface {
	TryEnqueue(job jobs.Job) error
}

// ConflictSweeper runs conflict sweeps on demand or on a timer and keeps the
// latest report cached.
type ConflictSweeper struct {
	detector conflictSweepRunner
	cache    conflictReportStore
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewConflictSweeper wires the sweeper. cache and metrics may be nil.
func NewConflictSweeper(detector conflictSweepRunner, cache conflictReportStore, metrics *MetricsService, logger *zap.Logger) *ConflictSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictSweeper{detector: detector, cache: cache, metrics: metrics, logger: logger}
}

// RunOnce performs one synchronous sweep and caches the result. A cache
// failure does not fail the sweep.
func (s *ConflictSweeper) RunOnce(ctx context.Context) (*models.ConflictReport, error) {
	start := time.Now()
	report, err := s.detector.Sweep(ctx)
	if err != nil {
		s.logger.Error("conflict sweep failed", zap.Error(err))
		return nil, err
	}
	s.metrics.ObserveSweep(report, time.Since(start))
	if s.cache != nil {
		if err := s.cache.StoreReport(ctx, report); err != nil {
			s.logger.Warn("conflict report not cached", zap.Error(err))
		}
	}
	if high := report.CountBySeverity()[models.SeverityHigh]; high > 0 {
		s.logger.Warn("high severity conflicts detected", zap.Int("count", high))
	}
	return report, nil
}

// Report returns the cached report when preferCached is set and one exists,
// otherwise it sweeps. The boolean reports whether the cache served it.
func (s *ConflictSweeper) Report(ctx context.Context, preferCached bool) (*models.ConflictReport, bool, error) {
	if preferCached && s.cache != nil {
		report, hit, err := s.cache.LatestReport(ctx)
		if err == nil && hit {
			return report, true, nil
		}
	}
	report, err := s.RunOnce(ctx)
	if err != nil {
		return nil, false, err
	}
	return report, false, nil
}

// Handle is the queue handler for sweep jobs.
func (s *ConflictSweeper) Handle(ctx context.Context, job jobs.Job) error {
	s.logger.Debug("running queued conflict sweep", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
	_, err := s.RunOnce(ctx)
	return err
}

// Schedule enqueues a sweep every interval until ctx is done. Ticks that find
// the queue busy are skipped.
func (s *ConflictSweeper) Schedule(ctx context.Context, queue sweepEnqueuer, interval time.Duration) {
	if interval <= 0 || queue == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := queue.TryEnqueue(jobs.Job{Type: JobTypeConflictSweep}); err != nil {
				s.logger.Warn("conflict sweep skipped", zap.Error(err))
			}
		}
	}
}
