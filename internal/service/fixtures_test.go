package service

import (
	"context"
	"sync"
	"time"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

// fixedClock pins "now" to Monday 2025-03-03 07:00 UTC unless overridden.
type fixedClock struct {
	now time.Time
}

func newFixedClock() fixedClock {
	return fixedClock{now: time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)}
}

func (c fixedClock) Now() time.Time   { return c.now }
func (c fixedClock) Today() time.Time { return models.DateOnly(c.now) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tod(hour, minute int) models.TimeOfDay {
	return models.MustTimeOfDay(hour, minute)
}

func busyEntry(on time.Time, startHour, endHour int, source models.BusySource, id int64) models.BusyEntry {
	return models.BusyEntry{
		Interval: models.Interval{Day: models.WeekdayOf(on), Start: tod(startHour, 0), End: tod(endHour, 0)},
		Source:   source,
		SourceID: id,
		Status:   models.BookingStatusConfirmed,
	}
}

type busyKeyStub struct {
	ref  models.ResourceRef
	date time.Time
}

type busyRepoStub struct {
	mu      sync.Mutex
	entries map[busyKeyStub][]models.BusyEntry
	err     error
	calls   int
}

func newBusyRepoStub() *busyRepoStub {
	return &busyRepoStub{entries: make(map[busyKeyStub][]models.BusyEntry)}
}

func (s *busyRepoStub) add(ref models.ResourceRef, on time.Time, entries ...models.BusyEntry) {
	key := busyKeyStub{ref: ref, date: models.DateOnly(on)}
	s.entries[key] = append(s.entries[key], entries...)
}

func (s *busyRepoStub) ListBusy(ctx context.Context, ref models.ResourceRef, on time.Time) ([]models.BusyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.entries[busyKeyStub{ref: ref, date: models.DateOnly(on)}], nil
}

type roomDirectoryStub struct {
	rooms      []models.Room
	capacities map[int64]int
	err        error
}

func (s *roomDirectoryStub) ListActiveRooms(ctx context.Context, minCapacity int) ([]models.Room, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Room
	for _, room := range s.rooms {
		if room.Active && room.Capacity >= minCapacity {
			out = append(out, room)
		}
	}
	return out, nil
}

func (s *roomDirectoryStub) ResourceCapacity(ctx context.Context, ref models.ResourceRef) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if ref.Type != models.ResourceRoom {
		return 0, nil
	}
	return s.capacities[ref.ID], nil
}

type metricsRecorder struct {
	outcomes     []string
	alternatives map[string]int
}

func newMetricsRecorder() *metricsRecorder {
	return &metricsRecorder{alternatives: make(map[string]int)}
}

func (m *metricsRecorder) RecordBookingOutcome(resourceType, outcome string) {
	m.outcomes = append(m.outcomes, resourceType+":"+outcome)
}

func (m *metricsRecorder) ObserveAlternatives(operation string, count int) {
	m.alternatives[operation] = count
}
