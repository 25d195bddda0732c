package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/dto"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

type availabilitySnapshotter interface {
	Snapshot(ctx context.Context, refs []models.ResourceRef, dates []time.Time) (*BusySet, error)
}

type bookingWriter interface {
	InsertBooking(ctx context.Context, booking *models.Booking) (int64, error)
}

// Notifier delivers user notifications. Delivery failures never surface to
// the caller.
type Notifier interface {
	Notify(ctx context.Context, userID int64, title, message string)
}

type bookingMetrics interface {
	RecordBookingOutcome(resourceType, outcome string)
	ObserveAlternatives(operation string, count int)
}

// BookingCoordinatorService turns booking requests into confirmed bookings or
// rejections carrying ranked alternatives. It never commits an alternative on
// the caller's behalf.
type BookingCoordinatorService struct {
	availability availabilitySnapshotter
	bookings     bookingWriter
	rooms        roomDirectory
	notifier     Notifier
	metrics      bookingMetrics
	ranker       *SuggestionRanker
	clock        Clock
	cfg          SchedulingConfig
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewBookingCoordinatorService wires the coordinator. notifier and metrics may be nil.
func NewBookingCoordinatorService(
	availability availabilitySnapshotter,
	bookings bookingWriter,
	rooms roomDirectory,
	notifier Notifier,
	metrics bookingMetrics,
	clock Clock,
	cfg SchedulingConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *BookingCoordinatorService {
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
	return &BookingCoordinatorService{
		availability: availability,
		bookings:     bookings,
		rooms:        rooms,
		notifier:     notifier,
		metrics:      metrics,
		ranker:       NewSuggestionRanker(cfg.TopN),
		clock:        clock,
		cfg:          cfg,
		validator:    validate,
		logger:       logger,
	}
}

// BookResource checks the requested slot and either commits it or returns the
// occupants plus ranked alternatives.
func (s *BookingCoordinatorService) BookResource(ctx context.Context, req models.BookingRequest) (*dto.BookingResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking request")
	}
	resourceType, err := models.ParseResourceType(string(req.ResourceType))
	if err != nil {
		return nil, err
	}
	start, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := models.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, err
	}
	date := models.DateOnly(req.Date)
	interval, err := models.NewInterval(models.WeekdayOf(date), start, end)
	if err != nil {
		return nil, err
	}
	if date.Before(s.clock.Today()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot book a date in the past")
	}
	ref := models.ResourceRef{Type: resourceType, ID: req.ResourceID}
	if err := s.checkCapacity(ctx, ref, req.Attendees); err != nil {
		return nil, err
	}

	set, err := s.availability.Snapshot(ctx, []models.ResourceRef{ref}, []time.Time{date})
	if err != nil {
		return nil, err
	}
	if set.Free(ref, date, interval) {
		booking := &models.Booking{
			UserID:    req.UserID,
			Resource:  ref,
			Date:      date,
			Start:     start,
			End:       end,
			Purpose:   req.Purpose,
			Attendees: req.Attendees,
			Status:    models.BookingStatusConfirmed,
		}
		id, err := s.bookings.InsertBooking(ctx, booking)
		switch {
		case err == nil:
			return s.confirm(ctx, booking, id), nil
		case errors.Is(err, appErrors.ErrConflict):
			s.logger.Info("booking lost race for slot", zap.String("resource", ref.String()), zap.Time("date", date), zap.String("interval", interval.String()))
		default:
			return nil, repositoryError(err, "failed to store booking")
		}
	}

	return s.reject(ctx, ref, date, interval, req.Attendees)
}

func (s *BookingCoordinatorService) confirm(ctx context.Context, booking *models.Booking, id int64) *dto.BookingResult {
	booking.ID = id
	s.logger.Info("booking confirmed",
		zap.Int64("booking_id", id),
		zap.String("resource", booking.Resource.String()),
		zap.Time("date", booking.Date),
		zap.String("start", booking.Start.String()),
		zap.String("end", booking.End.String()),
	)
	if s.notifier != nil {
		s.notifier.Notify(ctx, booking.UserID, "Booking confirmed",
			fmt.Sprintf("Your booking of %s on %s from %s to %s is confirmed.",
				booking.Resource, booking.Date.Format("2006-01-02"), booking.Start, booking.End))
	}
	s.record(booking.Resource.Type, dto.BookingConfirmed, 0)
	return &dto.BookingResult{
		Success:   true,
		Outcome:   dto.BookingConfirmed,
		BookingID: &id,
		Message:   "booking confirmed",
	}
}

func (s *BookingCoordinatorService) reject(ctx context.Context, ref models.ResourceRef, date time.Time, interval models.Interval, attendees int) (*dto.BookingResult, error) {
	holders := []models.ResourceRef{ref}
	if ref.Type == models.ResourceRoom {
		rooms, err := similarRooms(ctx, s.rooms, ref.ID, attendees, s.cfg.MaxRoomAlternatives)
		if err != nil {
			return nil, err
		}
		holders = append(holders, rooms...)
	}
	minutes := int(interval.End - interval.Start)
	search := alternativeSearch{
		grid:    s.cfg.Grid,
		days:    s.cfg.Days,
		minutes: minutes,
		dates:   HorizonDates(date, s.cfg.HorizonDays, s.cfg.Days),
		holders: holders,
		now:     s.clock.Now(),
	}
	set, err := s.availability.Snapshot(ctx, search.refs(), withDate(search.dates, date))
	if err != nil {
		return nil, err
	}
	conflicts := set.Occupants(ref, date, interval)

	ranked, total := s.ranker.Rank(OriginalSlot{Day: interval.Day, Date: date, Start: interval.Start}, search.collect(set))
	result := &dto.BookingResult{
		Success:           false,
		Outcome:           dto.BookingRejected,
		Conflicts:         conflicts,
		Alternatives:      ranked,
		TotalAlternatives: total,
		Message:           fmt.Sprintf("%s is occupied on %s %s-%s", ref, date.Format("2006-01-02"), interval.Start, interval.End),
	}
	if total == 0 {
		result.Outcome = dto.BookingNoAvailableSlot
		result.Message = appErrors.ErrNoAvailableSlot.Message
	}
	s.logger.Info("booking rejected",
		zap.String("resource", ref.String()),
		zap.Time("date", date),
		zap.String("interval", interval.String()),
		zap.Int("conflicts", len(conflicts)),
		zap.Int("alternatives", total),
	)
	s.record(ref.Type, result.Outcome, total)
	return result, nil
}

func (s *BookingCoordinatorService) checkCapacity(ctx context.Context, ref models.ResourceRef, attendees int) error {
	if ref.Type != models.ResourceRoom || attendees <= 0 || s.rooms == nil {
		return nil
	}
	capacity, err := s.rooms.ResourceCapacity(ctx, ref)
	if err != nil {
		return repositoryError(err, "failed to load room capacity")
	}
	if capacity > 0 && attendees > capacity {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%d attendees exceed the capacity of %s (%d)", attendees, ref, capacity))
	}
	return nil
}

func (s *BookingCoordinatorService) record(resourceType models.ResourceType, outcome dto.BookingOutcome, alternatives int) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordBookingOutcome(string(resourceType), string(outcome))
	if outcome != dto.BookingConfirmed {
		s.metrics.ObserveAlternatives("book", alternatives)
	}
}
