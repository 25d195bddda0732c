package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/dto"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

type bookingFinder interface {
	FindBooking(ctx context.Context, id int64) (*models.Booking, error)
}

// RescheduleService proposes ranked new slots for an existing booking.
type RescheduleService struct {
	bookings     bookingFinder
	availability availabilitySnapshotter
	rooms        roomDirectory
	metrics      bookingMetrics
	ranker       *SuggestionRanker
	clock        Clock
	cfg          SchedulingConfig
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewRescheduleService wires reschedule dependencies.
func NewRescheduleService(
	bookings bookingFinder,
	availability availabilitySnapshotter,
	rooms roomDirectory,
	metrics bookingMetrics,
	clock Clock,
	cfg SchedulingConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *RescheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = NewSystemClock(nil)
	}
	cfg = cfg.withDefaults()
	return &RescheduleService{
		bookings:     bookings,
		availability: availability,
		rooms:        rooms,
		metrics:      metrics,
		ranker:       NewSuggestionRanker(cfg.TopN),
		clock:        clock,
		cfg:          cfg,
		validator:    validate,
		logger:       logger,
	}
}

// SuggestReschedule ranks slots where the booking could move. The booking
// itself is ignored when checking availability, and its own slot is never
// proposed. An empty result is reported through NoAvailableSlot.
func (s *RescheduleService) SuggestReschedule(ctx context.Context, bookingID int64, filter dto.RescheduleFilter) (*dto.RescheduleSuggestion, error) {
	if bookingID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "booking id must be positive")
	}
	if err := s.validator.Struct(filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule filter")
	}
	booking, err := s.bookings.FindBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, repositoryError(err, "failed to load booking")
	}
	original, err := models.NewInterval(models.WeekdayOf(booking.Date), booking.Start, booking.End)
	if err != nil {
		return nil, err
	}
	originalDate := models.DateOnly(booking.Date)

	required := constraintRefs(booking, filter)
	holders, err := s.roomHolders(ctx, booking, filter)
	if err != nil {
		return nil, err
	}

	from := originalDate
	if today := s.clock.Today(); from.Before(today) {
		from = today
	}
	search := alternativeSearch{
		grid:     s.cfg.Grid,
		days:     s.cfg.Days,
		minutes:  int(original.End - original.Start),
		dates:    HorizonDates(from, s.cfg.HorizonDays, s.cfg.Days),
		required: required,
		holders:  holders,
		now:      s.clock.Now(),
		skip: func(holder models.ResourceRef, d time.Time, iv models.Interval) bool {
			return holder == booking.Resource && d.Equal(originalDate) && iv.Start == original.Start
		},
	}
	set, err := s.availability.Snapshot(ctx, search.refs(), withDate(search.dates, originalDate))
	if err != nil {
		return nil, err
	}
	set.Ignore(models.BusySourceBooking, booking.ID)

	conflicts := make([]models.BusyEntry, 0)
	for _, ref := range search.refs() {
		conflicts = append(conflicts, set.Occupants(ref, originalDate, original)...)
	}

	orig := OriginalSlot{Day: original.Day, Date: originalDate, Start: original.Start}
	ranked, total := s.ranker.Rank(orig, search.collect(set))
	if s.metrics != nil {
		s.metrics.ObserveAlternatives("reschedule", total)
	}
	s.logger.Info("reschedule suggestions computed",
		zap.Int64("booking_id", booking.ID),
		zap.String("original", original.String()),
		zap.Int("conflicts", len(conflicts)),
		zap.Int("alternatives", total),
	)
	return &dto.RescheduleSuggestion{
		BookingID:         booking.ID,
		Original:          original,
		OriginalDate:      originalDate,
		Conflicts:         conflicts,
		Alternatives:      ranked,
		TotalAlternatives: total,
		NoAvailableSlot:   total == 0,
	}, nil
}

func constraintRefs(booking *models.Booking, filter dto.RescheduleFilter) []models.ResourceRef {
	var refs []models.ResourceRef
	// a faculty or group booking moved into a room keeps its own calendar as a constraint
	if booking.Resource.Type != models.ResourceRoom && len(filter.RoomIDs) > 0 {
		refs = append(refs, booking.Resource)
	}
	if filter.FacultyID != nil {
		refs = append(refs, models.FacultyRef(*filter.FacultyID))
	}
	if filter.GroupID != nil {
		refs = append(refs, models.GroupRef(*filter.GroupID))
	}
	return uniqueRefs(refs)
}

// roomHolders picks the resources a moved booking could be held in. Non-room
// bookings stay on their own calendar unless rooms are requested explicitly.
func (s *RescheduleService) roomHolders(ctx context.Context, booking *models.Booking, filter dto.RescheduleFilter) ([]models.ResourceRef, error) {
	if len(filter.RoomIDs) > 0 {
		refs := make([]models.ResourceRef, 0, len(filter.RoomIDs))
		for _, id := range filter.RoomIDs {
			refs = append(refs, models.RoomRef(id))
		}
		return uniqueRefs(refs), nil
	}
	if booking.Resource.Type != models.ResourceRoom {
		return []models.ResourceRef{booking.Resource}, nil
	}
	minCapacity := filter.MinCapacity
	if booking.Attendees > minCapacity {
		minCapacity = booking.Attendees
	}
	similar, err := similarRooms(ctx, s.rooms, booking.Resource.ID, minCapacity, s.cfg.MaxRoomAlternatives)
	if err != nil {
		return nil, err
	}
	return uniqueRefs(append([]models.ResourceRef{booking.Resource}, similar...)), nil
}
