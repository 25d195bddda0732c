package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

const pqSerializationFailure = "40001"

// ErrSlotTaken is returned when an overlapping blocking booking was committed
// between the availability check and the insert.
var ErrSlotTaken = appErrors.Clone(appErrors.ErrConflict, "slot was booked concurrently")

const bookingColumns = "id, user_id, resource_type, resource_id, booking_date, start_time, end_time, purpose, attendees, status, created_at"

type bookingRow struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	ResourceType string    `db:"resource_type"`
	ResourceID   int64     `db:"resource_id"`
	BookingDate  time.Time `db:"booking_date"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	Purpose      string    `db:"purpose"`
	Attendees    int       `db:"attendees"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r bookingRow) toModel() (models.Booking, error) {
	start, err := clockTime(r.StartTime)
	if err != nil {
		return models.Booking{}, err
	}
	end, err := clockTime(r.EndTime)
	if err != nil {
		return models.Booking{}, err
	}
	resourceType, err := models.ParseResourceType(r.ResourceType)
	if err != nil {
		return models.Booking{}, err
	}
	return models.Booking{
		ID:        r.ID,
		UserID:    r.UserID,
		Resource:  models.ResourceRef{Type: resourceType, ID: r.ResourceID},
		Date:      models.DateOnly(r.BookingDate),
		Start:     start,
		End:       end,
		Purpose:   r.Purpose,
		Attendees: r.Attendees,
		Status:    models.BookingStatus(strings.ToLower(r.Status)),
		CreatedAt: r.CreatedAt,
	}, nil
}

// BookingRepository persists resource bookings.
type BookingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBookingRepository creates a booking repository.
func NewBookingRepository(db *sqlx.DB, logger *zap.Logger) *BookingRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingRepository{db: db, logger: logger}
}

// ListBookings returns bookings matching the filter ordered by date and start.
func (r *BookingRepository) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	var conditions []string
	var args []interface{}

	if filter.ResourceType != "" {
		conditions = append(conditions, fmt.Sprintf("resource_type = $%d", len(args)+1))
		args = append(args, string(filter.ResourceType))
	}
	if filter.ResourceID > 0 {
		conditions = append(conditions, fmt.Sprintf("resource_id = $%d", len(args)+1))
		args = append(args, filter.ResourceID)
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("booking_date >= $%d", len(args)+1))
		args = append(args, models.DateOnly(filter.From))
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("booking_date <= $%d", len(args)+1))
		args = append(args, models.DateOnly(filter.To))
	}
	if len(filter.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(statusStrings(filter.Statuses)))
	}

	query := "SELECT " + bookingColumns + " FROM bookings"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY booking_date ASC, start_time ASC, id ASC"

	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	bookings := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		booking, err := row.toModel()
		if err != nil {
			r.logger.Warn("skipping malformed booking row", zap.Int64("booking_id", row.ID), zap.Error(err))
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// FindBooking loads one booking. A missing row surfaces as sql.ErrNoRows.
func (r *BookingRepository) FindBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE id = $1"
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	booking, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBusy returns blocking bookings of ref on date as busy entries.
func (r *BookingRepository) ListBusy(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.BusyEntry, error) {
	bookings, err := r.ListBookings(ctx, models.BookingFilter{
		ResourceType: ref.Type,
		ResourceID:   ref.ID,
		From:         date,
		To:           date,
		Statuses:     models.BlockingStatuses,
	})
	if err != nil {
		return nil, err
	}
	entries := make([]models.BusyEntry, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, models.BusyEntry{
			Interval: b.Interval(),
			Source:   models.BusySourceBooking,
			SourceID: b.ID,
			Status:   b.Status,
			Label:    b.Purpose,
		})
	}
	return entries, nil
}

// InsertBooking stores a booking inside a serializable transaction. The
// insert only happens when no blocking booking on the same resource and date
// overlaps it; otherwise ErrSlotTaken is returned.
func (r *BookingRepository) InsertBooking(ctx context.Context, booking *models.Booking) (id int64, err error) {
	if booking == nil {
		return 0, fmt.Errorf("nil booking provided")
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, fmt.Errorf("begin insert booking: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO bookings (user_id, resource_type, resource_id, booking_date, start_time, end_time, purpose, attendees, status, created_at)
SELECT $1, $2, $3, $4::date, $5::time, $6::time, $7, $8, $9, $10
WHERE NOT EXISTS (
	SELECT 1 FROM bookings
	WHERE resource_type = $2 AND resource_id = $3 AND booking_date = $4::date
	AND status = ANY($11) AND start_time < $6::time AND $5::time < end_time
)
RETURNING id`
	err = tx.QueryRowxContext(ctx, query,
		booking.UserID,
		string(booking.Resource.Type),
		booking.Resource.ID,
		models.DateOnly(booking.Date),
		booking.Start.String(),
		booking.End.String(),
		booking.Purpose,
		booking.Attendees,
		string(booking.Status),
		booking.CreatedAt,
		pq.Array(statusStrings(models.BlockingStatuses)),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrSlotTaken
			return 0, err
		}
		return 0, classifyTxError("insert booking", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, classifyTxError("commit insert booking", err)
	}
	booking.ID = id
	return id, nil
}

func classifyTxError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqSerializationFailure {
		return appErrors.Unavailable(err, "concurrent booking in progress, retry")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// clockTime converts a Postgres time column, which lib/pq decodes as a
// time.Time on 0000-01-01, into a TimeOfDay. Seconds are dropped.
func clockTime(t time.Time) (models.TimeOfDay, error) {
	return models.NewTimeOfDay(t.Hour(), t.Minute())
}

func statusStrings(statuses []models.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
