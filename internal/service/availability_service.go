package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

type busyEntryReader interface {
	ListBusy(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.BusyEntry, error)
}

// AvailabilityService answers "is this resource free" from fresh repository
// reads. Nothing is cached between calls.
type AvailabilityService struct {
	repo   busyEntryReader
	logger *zap.Logger
}

// NewAvailabilityService wires the busy-interval source.
func NewAvailabilityService(repo busyEntryReader, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, logger: logger}
}

// Entries returns the blocking busy entries of ref on date.
func (s *AvailabilityService) Entries(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.BusyEntry, error) {
	if s.repo == nil {
		return nil, appErrors.Clone(appErrors.ErrRepositoryUnavailable, "availability repository not configured")
	}
	raw, err := s.repo.ListBusy(ctx, ref, models.DateOnly(date))
	if err != nil {
		s.logger.Warn("busy interval lookup failed", zap.String("resource", ref.String()), zap.Time("date", date), zap.Error(err))
		return nil, repositoryError(err, "failed to load busy intervals")
	}
	day := models.WeekdayOf(date)
	entries := make([]models.BusyEntry, 0, len(raw))
	for _, entry := range raw {
		if entry.Interval.Day != day {
			continue
		}
		if entry.Status != "" && !entry.Status.Blocking() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// BusyIntervals returns the distinct occupied intervals of ref on date,
// ordered by start time.
func (s *AvailabilityService) BusyIntervals(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.Interval, error) {
	entries, err := s.Entries(ctx, ref, date)
	if err != nil {
		return nil, err
	}
	return distinctIntervals(entries), nil
}

// IsFree reports whether [start, end) on date overlaps nothing busy for ref.
// Errors never mean "free".
func (s *AvailabilityService) IsFree(ctx context.Context, ref models.ResourceRef, date time.Time, start, end models.TimeOfDay) (bool, error) {
	interval, err := models.NewInterval(models.WeekdayOf(date), start, end)
	if err != nil {
		return false, err
	}
	occupants, err := s.Occupants(ctx, ref, date, interval)
	if err != nil {
		return false, err
	}
	return len(occupants) == 0, nil
}

// Occupants returns the busy entries of ref on date overlapping interval.
func (s *AvailabilityService) Occupants(ctx context.Context, ref models.ResourceRef, date time.Time, interval models.Interval) ([]models.BusyEntry, error) {
	entries, err := s.Entries(ctx, ref, date)
	if err != nil {
		return nil, err
	}
	return overlapping(entries, interval, nil), nil
}

// Snapshot loads a per-request BusySet for every ref on every date.
func (s *AvailabilityService) Snapshot(ctx context.Context, refs []models.ResourceRef, dates []time.Time) (*BusySet, error) {
	set := newBusySet()
	for _, ref := range refs {
		for _, date := range dates {
			key := busyKey{ref: ref, date: models.DateOnly(date)}
			if _, loaded := set.entries[key]; loaded {
				continue
			}
			entries, err := s.Entries(ctx, ref, date)
			if err != nil {
				return nil, err
			}
			set.entries[key] = entries
		}
	}
	return set, nil
}

// BusySet is a read-only snapshot of busy entries keyed by resource and date.
type BusySet struct {
	entries map[busyKey][]models.BusyEntry
	exclude map[excludeKey]bool
}

type busyKey struct {
	ref  models.ResourceRef
	date time.Time
}

type excludeKey struct {
	source models.BusySource
	id     int64
}

func newBusySet() *BusySet {
	return &BusySet{
		entries: make(map[busyKey][]models.BusyEntry),
		exclude: make(map[excludeKey]bool),
	}
}

// Ignore hides one origin (for example the booking being rescheduled) from
// subsequent Free and Occupants calls.
func (b *BusySet) Ignore(source models.BusySource, id int64) {
	b.exclude[excludeKey{source: source, id: id}] = true
}

// Free reports whether interval on date is unoccupied for ref. A ref/date
// pair that was never loaded is reported busy.
func (b *BusySet) Free(ref models.ResourceRef, date time.Time, interval models.Interval) bool {
	entries, loaded := b.entries[busyKey{ref: ref, date: models.DateOnly(date)}]
	if !loaded {
		return false
	}
	return len(overlapping(entries, interval, b.exclude)) == 0
}

// Occupants returns the entries of ref on date overlapping interval.
func (b *BusySet) Occupants(ref models.ResourceRef, date time.Time, interval models.Interval) []models.BusyEntry {
	return overlapping(b.entries[busyKey{ref: ref, date: models.DateOnly(date)}], interval, b.exclude)
}

func overlapping(entries []models.BusyEntry, interval models.Interval, exclude map[excludeKey]bool) []models.BusyEntry {
	var hits []models.BusyEntry
	for _, entry := range entries {
		if exclude[excludeKey{source: entry.Source, id: entry.SourceID}] {
			continue
		}
		if entry.Interval.Overlaps(interval) {
			hits = append(hits, entry)
		}
	}
	return hits
}

func distinctIntervals(entries []models.BusyEntry) []models.Interval {
	seen := make(map[models.Interval]bool, len(entries))
	result := make([]models.Interval, 0, len(entries))
	for _, entry := range entries {
		if seen[entry.Interval] {
			continue
		}
		seen[entry.Interval] = true
		result = append(result, entry.Interval)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start == result[j].Start {
			return result[i].End < result[j].End
		}
		return result[i].Start < result[j].Start
	})
	return result
}

// repositoryError keeps typed errors intact and marks everything else as a
// retryable repository failure.
func repositoryError(err error, message string) error {
	var typed *appErrors.Error
	if errors.As(err, &typed) {
		return err
	}
	return appErrors.Unavailable(err, message)
}
