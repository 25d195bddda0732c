package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

type eventRow struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	RoomID      int64     `db:"room_id"`
	OrganizerID int64     `db:"organizer_id"`
	EventDate   time.Time `db:"event_date"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	Status      string    `db:"status"`
}

func (r eventRow) toModel() (models.Event, error) {
	start, err := clockTime(r.StartTime)
	if err != nil {
		return models.Event{}, err
	}
	end, err := clockTime(r.EndTime)
	if err != nil {
		return models.Event{}, err
	}
	return models.Event{
		ID:          r.ID,
		Title:       r.Title,
		RoomID:      r.RoomID,
		OrganizerID: r.OrganizerID,
		Date:        models.DateOnly(r.EventDate),
		Start:       start,
		End:         end,
		Status:      models.BookingStatus(strings.ToLower(r.Status)),
	}, nil
}

// EventRepository reads one-off campus events held in rooms.
type EventRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewEventRepository creates an event repository.
func NewEventRepository(db *sqlx.DB, logger *zap.Logger) *EventRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventRepository{db: db, logger: logger}
}

// ListByRoomDate returns blocking events in a room on date.
func (r *EventRepository) ListByRoomDate(ctx context.Context, roomID int64, date time.Time) ([]models.Event, error) {
	const query = `SELECT id, title, room_id, organizer_id, event_date, start_time, end_time, status FROM events WHERE room_id = $1 AND event_date = $2 AND status = ANY($3) ORDER BY start_time ASC`
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, roomID, models.DateOnly(date), pq.Array(statusStrings(models.BlockingStatuses))); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		event, err := row.toModel()
		if err != nil {
			r.logger.Warn("skipping malformed event row", zap.Int64("event_id", row.ID), zap.Error(err))
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// ListBusy returns events occupying a room on date. Only rooms host events.
func (r *EventRepository) ListBusy(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.BusyEntry, error) {
	if ref.Type != models.ResourceRoom {
		return nil, nil
	}
	events, err := r.ListByRoomDate(ctx, ref.ID, date)
	if err != nil {
		return nil, err
	}
	entries := make([]models.BusyEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, models.BusyEntry{
			Interval: models.Interval{Day: models.WeekdayOf(e.Date), Start: e.Start, End: e.End},
			Source:   models.BusySourceEvent,
			SourceID: e.ID,
			Status:   e.Status,
			Label:    e.Title,
		})
	}
	return entries, nil
}
