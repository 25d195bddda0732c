package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

const conflictKeyPrefix = "campus:conflicts:"

// CacheRepository stores conflict sweep reports in Redis. Busy sets are never
// cached; only finished reports are.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository. A nil client turns every
// read into a miss and every write into a no-op.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, logger: logger}
}

// GetReport loads the report stored under name.
func (r *CacheRepository) GetReport(ctx context.Context, name string) (*models.ConflictReport, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}
	key := conflictKeyPrefix + name
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var report models.ConflictReport
	if err := json.Unmarshal(raw, &report); err != nil {
		r.logger.Warn("dropping undecodable cached report", zap.String("key", key), zap.Error(err))
		_ = r.client.Del(ctx, key).Err()
		return nil, appErrors.ErrCacheMiss
	}
	return &report, nil
}

// SetReport stores report under name for ttl.
func (r *CacheRepository) SetReport(ctx context.Context, name string, report *models.ConflictReport, ttl time.Duration) error {
	if r.client == nil || report == nil {
		return nil
	}
	key := conflictKeyPrefix + name
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeleteReports removes every cached report.
func (r *CacheRepository) DeleteReports(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	pattern := conflictKeyPrefix + "*"
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", key, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan pattern %s: %w", pattern, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
