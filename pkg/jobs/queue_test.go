package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	var seen []Job
	done := make(chan struct{}, 2)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		mu.Lock()
		seen = append(seen, job)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "a"}))
	require.NoError(t, q.TryEnqueue(Job{ID: "fixed", Type: "b"}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("job not processed")
		}
	}
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	for _, job := range seen {
		assert.NotEmpty(t, job.ID)
		assert.False(t, job.Enqueued.IsZero())
	}
}

func TestQueueRetriesThenGivesUp(t *testing.T) {
	var attempts int32
	gaveUp := make(chan Job, 1)
	q := NewQueue("retry", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("boom")
	}, QueueConfig{
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		OnGiveUp:   func(job Job, err error) { gaveUp <- job },
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "flaky"}))

	select {
	case job := <-gaveUp:
		assert.Equal(t, 3, job.Attempt)
	case <-time.After(2 * time.Second):
		t.Fatal("job never gave up")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestQueueTryEnqueueFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	q := NewQueue("full", func(ctx context.Context, job Job) error {
		started <- struct{}{}
		<-release
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()
	defer close(release)

	require.NoError(t, q.TryEnqueue(Job{}))
	<-started
	require.NoError(t, q.TryEnqueue(Job{}))

	err := q.TryEnqueue(Job{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueueFull))
}

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.TryEnqueue(Job{}))
}
