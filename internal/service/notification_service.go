package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/jobs"
)

// JobTypeNotification tags notification jobs on the queue.
const JobTypeNotification = "notification"

type notificationEnqueuer interface {
	TryEnqueue(job jobs.Job) error
}

type notificationStore interface {
	Create(ctx context.Context, userID int64, title, message string) error
}

type notificationPayload struct {
	UserID  int64
	Title   string
	Message string
}

// NotificationService is the fire-and-forget notifier used by the booking
// coordinator. Enqueue failures are logged and dropped.
type NotificationService struct {
	queue  notificationEnqueuer
	logger *zap.Logger
}

// NewNotificationService wires the notifier to a job queue.
func NewNotificationService(queue notificationEnqueuer, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{queue: queue, logger: logger}
}

// Notify queues a notification for userID. It never blocks on delivery.
func (s *NotificationService) Notify(_ context.Context, userID int64, title, message string) {
	if s.queue == nil {
		s.logger.Warn("notification dropped, no queue configured", zap.Int64("user_id", userID), zap.String("title", title))
		return
	}
	job := jobs.Job{
		Type:    JobTypeNotification,
		Payload: notificationPayload{UserID: userID, Title: title, Message: message},
	}
	if err := s.queue.TryEnqueue(job); err != nil {
		s.logger.Warn("notification enqueue failed", zap.Int64("user_id", userID), zap.String("title", title), zap.Error(err))
	}
}

// NotificationWorker persists queued notifications.
type NotificationWorker struct {
	store   notificationStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewNotificationWorker constructs a worker.
func NewNotificationWorker(store notificationStore, metrics *MetricsService, logger *zap.Logger) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{store: store, metrics: metrics, logger: logger}
}

// Handle processes a queue job.
func (w *NotificationWorker) Handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(notificationPayload)
	if !ok {
		w.logger.Error("discarding notification job with unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	if err := w.store.Create(ctx, payload.UserID, payload.Title, payload.Message); err != nil {
		return fmt.Errorf("deliver notification %s: %w", job.ID, err)
	}
	w.metrics.RecordNotification(true)
	w.logger.Debug("notification delivered", zap.String("job_id", job.ID), zap.Int64("user_id", payload.UserID))
	return nil
}

// GiveUp records a notification that could not be delivered.
func (w *NotificationWorker) GiveUp(job jobs.Job, err error) {
	w.metrics.RecordNotification(false)
	w.logger.Warn("notification abandoned", zap.String("job_id", job.ID), zap.Error(err))
}
