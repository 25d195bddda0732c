package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/jobs"
)

type notificationStoreStub struct {
	err   error
	saved []notificationPayload
}

func (s *notificationStoreStub) Create(ctx context.Context, userID int64, title, message string) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, notificationPayload{UserID: userID, Title: title, Message: message})
	return nil
}

func TestNotificationServiceEnqueues(t *testing.T) {
	queue := &enqueueRecorder{}
	svc := NewNotificationService(queue, nil)

	svc.Notify(context.Background(), 5, "Booking confirmed", "Room 1 at 10:00")

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobTypeNotification, queue.jobs[0].Type)
	payload, ok := queue.jobs[0].Payload.(notificationPayload)
	require.True(t, ok)
	assert.Equal(t, int64(5), payload.UserID)
}

func TestNotificationServiceSwallowsQueueErrors(t *testing.T) {
	queue := &enqueueRecorder{err: jobs.ErrQueueFull}
	svc := NewNotificationService(queue, nil)

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), 5, "Booking confirmed", "")
	})
	assert.NotPanics(t, func() {
		NewNotificationService(nil, nil).Notify(context.Background(), 5, "Booking confirmed", "")
	})
}

func TestNotificationWorkerHandle(t *testing.T) {
	store := &notificationStoreStub{}
	metrics := NewMetricsService()
	worker := NewNotificationWorker(store, metrics, nil)

	err := worker.Handle(context.Background(), jobs.Job{ID: "n-1", Payload: notificationPayload{UserID: 3, Title: "t", Message: "m"}})
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Equal(t, int64(3), store.saved[0].UserID)

	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: "n-2", Payload: "garbage"}))
	assert.Len(t, store.saved, 1)

	store.err = errors.New("insert failed")
	err = worker.Handle(context.Background(), jobs.Job{ID: "n-3", Payload: notificationPayload{UserID: 3}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n-3")
	worker.GiveUp(jobs.Job{ID: "n-3"}, err)
}
