package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/dto"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

// memoryBookingStore backs the coordinator and the detector with one booking
// table. The first gateAt availability reads all return the state before any
// insert, so concurrent requests see the same free slot.
type memoryBookingStore struct {
	mu       sync.Mutex
	bookings []models.Booking
	nextID   int64
	guard    bool
	reads    int
	gateAt   int
	gate     chan struct{}
}

func newMemoryBookingStore(gateAt int, guard bool) *memoryBookingStore {
	return &memoryBookingStore{gateAt: gateAt, guard: guard, gate: make(chan struct{})}
}

func (s *memoryBookingStore) ListBusy(ctx context.Context, ref models.ResourceRef, on time.Time) ([]models.BusyEntry, error) {
	s.mu.Lock()
	var entries []models.BusyEntry
	for _, b := range s.bookings {
		if b.Resource == ref && b.Date.Equal(models.DateOnly(on)) && b.Status.Blocking() {
			entries = append(entries, models.BusyEntry{Interval: b.Interval(), Source: models.BusySourceBooking, SourceID: b.ID, Status: b.Status})
		}
	}
	if s.reads >= s.gateAt {
		s.mu.Unlock()
		return entries, nil
	}
	s.reads++
	if s.reads == s.gateAt {
		close(s.gate)
	}
	gate := s.gate
	s.mu.Unlock()

	select {
	case <-gate:
		return entries, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *memoryBookingStore) InsertBooking(ctx context.Context, b *models.Booking) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.guard {
		for _, existing := range s.bookings {
			if existing.Resource == b.Resource && existing.Date.Equal(b.Date) && existing.Status.Blocking() && existing.Interval().Overlaps(b.Interval()) {
				return 0, appErrors.Clone(appErrors.ErrConflict, "slot was booked concurrently")
			}
		}
	}
	s.nextID++
	stored := *b
	stored.ID = s.nextID
	s.bookings = append(s.bookings, stored)
	return stored.ID, nil
}

func (s *memoryBookingStore) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	statuses := make(map[models.BookingStatus]bool, len(filter.Statuses))
	for _, status := range filter.Statuses {
		statuses[status] = true
	}
	var out []models.Booking
	for _, b := range s.bookings {
		if filter.ResourceType != "" && b.Resource.Type != filter.ResourceType {
			continue
		}
		if !filter.From.IsZero() && b.Date.Before(models.DateOnly(filter.From)) {
			continue
		}
		if len(statuses) > 0 && !statuses[b.Status] {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func bookConcurrently(t *testing.T, store *memoryBookingStore, requests ...models.BookingRequest) []*dto.BookingResult {
	t.Helper()
	rooms := &roomDirectoryStub{
		rooms:      []models.Room{{ID: 5, Capacity: 30, Active: true}, {ID: 6, Capacity: 40, Active: true}},
		capacities: map[int64]int{5: 30, 6: 40},
	}
	svc := NewBookingCoordinatorService(NewAvailabilityService(store, nil), store, rooms, nil, nil, newFixedClock(), DefaultSchedulingConfig(), nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results := make([]*dto.BookingResult, len(requests))
	errs := make([]error, len(requests))
	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.BookResource(ctx, requests[i])
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	return results
}

func TestConcurrentBookingsCaughtBySweep(t *testing.T) {
	store := newMemoryBookingStore(2, false)
	first := roomRequest(5, "10:00", "11:00")
	second := roomRequest(5, "10:30", "11:30")
	second.UserID = 12

	results := bookConcurrently(t, store, first, second)
	for _, result := range results {
		assert.True(t, result.Success)
		assert.Equal(t, dto.BookingConfirmed, result.Outcome)
	}

	detector := NewConflictDetectorService(store, nil, newFixedClock(), nil)
	conflicts, err := detector.DetectConflicts(context.Background())
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	record := conflicts[0]
	assert.Equal(t, models.ConflictRoomDoubleBooking, record.Kind)
	assert.Equal(t, models.SeverityHigh, record.Severity)
	assert.Equal(t, models.RoomRef(5), record.Resource)
	require.NotNil(t, record.BookingB)
	assert.ElementsMatch(t, []int64{1, 2}, []int64{record.BookingA.ID, record.BookingB.ID})
}

func TestConcurrentBookingsGuardedInsert(t *testing.T) {
	store := newMemoryBookingStore(2, true)
	first := roomRequest(5, "10:00", "11:00")
	second := roomRequest(5, "10:00", "11:00")
	second.UserID = 12

	results := bookConcurrently(t, store, first, second)
	confirmed := 0
	for _, result := range results {
		if result.Success {
			confirmed++
			continue
		}
		assert.Equal(t, dto.BookingRejected, result.Outcome)
		assert.NotEmpty(t, result.Alternatives)
		assert.Len(t, result.Conflicts, 1)
	}
	assert.Equal(t, 1, confirmed)

	detector := NewConflictDetectorService(store, nil, newFixedClock(), nil)
	conflicts, err := detector.DetectConflicts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}
