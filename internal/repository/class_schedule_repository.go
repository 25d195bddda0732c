package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

type classScheduleRow struct {
	ID        int64         `db:"id"`
	Subject   string        `db:"subject"`
	FacultyID int64         `db:"faculty_id"`
	GroupID   int64         `db:"group_id"`
	RoomID    sql.NullInt64 `db:"room_id"`
	DayOfWeek int           `db:"day_of_week"`
	StartTime time.Time     `db:"start_time"`
	EndTime   time.Time     `db:"end_time"`
	IsActive  bool          `db:"is_active"`
}

func (r classScheduleRow) toModel() (models.ClassSchedule, error) {
	start, err := clockTime(r.StartTime)
	if err != nil {
		return models.ClassSchedule{}, err
	}
	end, err := clockTime(r.EndTime)
	if err != nil {
		return models.ClassSchedule{}, err
	}
	day := models.Weekday(r.DayOfWeek)
	if _, err := models.NewInterval(day, start, end); err != nil {
		return models.ClassSchedule{}, err
	}
	cs := models.ClassSchedule{
		ID:        r.ID,
		Subject:   r.Subject,
		FacultyID: r.FacultyID,
		GroupID:   r.GroupID,
		Day:       day,
		Start:     start,
		End:       end,
		Active:    r.IsActive,
	}
	if r.RoomID.Valid {
		roomID := r.RoomID.Int64
		cs.RoomID = &roomID
	}
	return cs, nil
}

// ClassScheduleRepository reads the recurring weekly timetable.
type ClassScheduleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewClassScheduleRepository creates a class schedule repository.
func NewClassScheduleRepository(db *sqlx.DB, logger *zap.Logger) *ClassScheduleRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassScheduleRepository{db: db, logger: logger}
}

// ListByResourceDay returns active classes occupying ref on the given weekday.
func (r *ClassScheduleRepository) ListByResourceDay(ctx context.Context, ref models.ResourceRef, day models.Weekday) ([]models.ClassSchedule, error) {
	var column string
	switch ref.Type {
	case models.ResourceFaculty:
		column = "faculty_id"
	case models.ResourceStudentGroup:
		column = "group_id"
	case models.ResourceRoom:
		column = "room_id"
	default:
		return nil, fmt.Errorf("list class schedules: unsupported resource type %q", ref.Type)
	}
	query := fmt.Sprintf(`SELECT id, subject, faculty_id, group_id, room_id, day_of_week, start_time, end_time, is_active FROM class_schedules WHERE %s = $1 AND day_of_week = $2 AND is_active = TRUE ORDER BY start_time ASC`, column)

	var rows []classScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, ref.ID, int(day)); err != nil {
		return nil, fmt.Errorf("list class schedules: %w", err)
	}
	schedules := make([]models.ClassSchedule, 0, len(rows))
	for _, row := range rows {
		cs, err := row.toModel()
		if err != nil {
			r.logger.Warn("skipping malformed class schedule row", zap.Int64("class_schedule_id", row.ID), zap.Error(err))
			continue
		}
		schedules = append(schedules, cs)
	}
	return schedules, nil
}

// ListBusy returns the weekly classes of ref falling on date's weekday.
func (r *ClassScheduleRepository) ListBusy(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.BusyEntry, error) {
	day := models.WeekdayOf(date)
	schedules, err := r.ListByResourceDay(ctx, ref, day)
	if err != nil {
		return nil, err
	}
	entries := make([]models.BusyEntry, 0, len(schedules))
	for _, cs := range schedules {
		entries = append(entries, models.BusyEntry{
			Interval: models.Interval{Day: cs.Day, Start: cs.Start, End: cs.End},
			Source:   models.BusySourceClass,
			SourceID: cs.ID,
			Label:    cs.Subject,
		})
	}
	return entries, nil
}
