package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

type bookingSweepReader interface {
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
}

type capacityReader interface {
	ResourceCapacity(ctx context.Context, ref models.ResourceRef) (int, error)
}

// ConflictDetectorService sweeps persisted bookings for double bookings and
// capacity overruns. It never mutates data.
type ConflictDetectorService struct {
	bookings   bookingSweepReader
	capacities capacityReader
	clock      Clock
	logger     *zap.Logger
}

// NewConflictDetectorService wires the sweep dependencies. capacities may be
// nil, which disables capacity checks.
func NewConflictDetectorService(bookings bookingSweepReader, capacities capacityReader, clock Clock, logger *zap.Logger) *ConflictDetectorService {
	if clock == nil {
		clock = NewSystemClock(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictDetectorService{bookings: bookings, capacities: capacities, clock: clock, logger: logger}
}

// DetectConflicts runs one synchronous sweep over upcoming bookings.
func (s *ConflictDetectorService) DetectConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	report, err := s.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	return report.Conflicts, nil
}

// Sweep runs the detector and returns the full report. Rooms are swept first.
func (s *ConflictDetectorService) Sweep(ctx context.Context) (*models.ConflictReport, error) {
	today := s.clock.Today()
	report := &models.ConflictReport{GeneratedAt: s.clock.Now(), Conflicts: []models.ConflictRecord{}}
	for _, resourceType := range models.ResourceTypes {
		bookings, err := s.bookings.ListBookings(ctx, models.BookingFilter{
			ResourceType: resourceType,
			From:         today,
			Statuses:     models.BlockingStatuses,
		})
		if err != nil {
			return nil, repositoryError(err, fmt.Sprintf("failed to load %s bookings", resourceType))
		}
		bookings = upcomingBlocking(bookings, resourceType, today)
		report.Scanned += len(bookings)
		report.Conflicts = append(report.Conflicts, DetectOverlaps(bookings)...)

		if resourceType == models.ResourceRoom {
			overruns, err := s.capacityOverruns(ctx, bookings)
			if err != nil {
				return nil, err
			}
			report.Conflicts = append(report.Conflicts, overruns...)
		}
	}
	s.logger.Info("conflict sweep finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("conflicts", len(report.Conflicts)),
	)
	return report, nil
}

func (s *ConflictDetectorService) capacityOverruns(ctx context.Context, bookings []models.Booking) ([]models.ConflictRecord, error) {
	if s.capacities == nil {
		return nil, nil
	}
	capacity := make(map[int64]int)
	var records []models.ConflictRecord
	for _, b := range sortedBookings(bookings) {
		if b.Attendees <= 0 {
			continue
		}
		limit, ok := capacity[b.Resource.ID]
		if !ok {
			var err error
			limit, err = s.capacities.ResourceCapacity(ctx, b.Resource)
			if err != nil {
				return nil, repositoryError(err, "failed to load room capacity")
			}
			capacity[b.Resource.ID] = limit
		}
		if limit <= 0 || b.Attendees <= limit {
			continue
		}
		records = append(records, models.ConflictRecord{
			Kind:     models.ConflictCapacityExceeded,
			Severity: models.SeverityMedium,
			Resource: b.Resource,
			Date:     b.Date,
			BookingA: b.Ref(),
			Suggestions: []string{
				fmt.Sprintf("Move booking #%d to a room seating at least %d", b.ID, b.Attendees),
				fmt.Sprintf("Reduce attendees of booking #%d to %d or fewer", b.ID, limit),
			},
		})
	}
	return records, nil
}

type bucketKey struct {
	ref  models.ResourceRef
	date time.Time
}

// DetectOverlaps buckets bookings by (resource, date) and reports every
// overlapping pair inside a bucket. Bookings on different resources or dates
// are never compared.
func DetectOverlaps(bookings []models.Booking) []models.ConflictRecord {
	buckets := make(map[bucketKey][]models.Booking)
	for _, b := range bookings {
		key := bucketKey{ref: b.Resource, date: models.DateOnly(b.Date)}
		buckets[key] = append(buckets[key], b)
	}
	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ref.ID != keys[j].ref.ID {
			return keys[i].ref.ID < keys[j].ref.ID
		}
		return keys[i].date.Before(keys[j].date)
	})

	var records []models.ConflictRecord
	for _, key := range keys {
		bucket := sortedBookings(buckets[key])
		for i := 0; i < len(bucket); i++ {
			a := bucket[i]
			for j := i + 1; j < len(bucket); j++ {
				b := bucket[j]
				if b.Start >= a.End {
					break
				}
				if !a.Interval().Overlaps(b.Interval()) {
					continue
				}
				records = append(records, overlapRecord(key, a, b))
			}
		}
	}
	return records
}

func overlapRecord(key bucketKey, a, b models.Booking) models.ConflictRecord {
	kind, severity := models.ConflictScheduleOverlap, models.SeverityMedium
	if key.ref.Type == models.ResourceRoom {
		kind, severity = models.ConflictRoomDoubleBooking, models.SeverityHigh
	}
	refB := b.Ref()
	return models.ConflictRecord{
		Kind:        kind,
		Severity:    severity,
		Resource:    key.ref,
		Date:        key.date,
		BookingA:    a.Ref(),
		BookingB:    &refB,
		Suggestions: resolutionHints(key.ref, a, b),
	}
}

func resolutionHints(ref models.ResourceRef, a, b models.Booking) []string {
	var hints []string
	length := int(b.End - b.Start)
	if a.End.Add(length) <= models.MustTimeOfDay(23, 59) {
		hints = append(hints, fmt.Sprintf("Move booking #%d to start at %s after booking #%d ends", b.ID, a.End, a.ID))
	}
	switch ref.Type {
	case models.ResourceRoom:
		hints = append(hints, fmt.Sprintf("Reassign booking #%d to another available room", b.ID))
	case models.ResourceFaculty:
		hints = append(hints, fmt.Sprintf("Ask faculty %d to delegate one of bookings #%d and #%d", ref.ID, a.ID, b.ID))
	default:
		hints = append(hints, fmt.Sprintf("Split student group %d between bookings #%d and #%d", ref.ID, a.ID, b.ID))
	}
	if a.UserID != b.UserID {
		hints = append(hints, fmt.Sprintf("Contact user %d and user %d to agree on the slot", a.UserID, b.UserID))
	}
	return hints
}

func upcomingBlocking(bookings []models.Booking, resourceType models.ResourceType, today time.Time) []models.Booking {
	result := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Resource.Type != resourceType || !b.Status.Blocking() {
			continue
		}
		if models.DateOnly(b.Date).Before(today) {
			continue
		}
		result = append(result, b)
	}
	return result
}

func sortedBookings(bookings []models.Booking) []models.Booking {
	sorted := make([]models.Booking, len(bookings))
	copy(sorted, bookings)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
