package dto

import (
	"time"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

// BookingOutcome is the terminal state of a booking request.
type BookingOutcome string

const (
	BookingConfirmed       BookingOutcome = "CONFIRMED"
	BookingRejected        BookingOutcome = "REJECTED"
	BookingNoAvailableSlot BookingOutcome = "NO_AVAILABLE_SLOT"
)

// CreateBookingRequest is the HTTP payload for POST /bookings. The user is
// taken from the authenticated token, never from the body.
type CreateBookingRequest struct {
	ResourceType string `json:"resource_type" validate:"required,oneof=room faculty student_group group"`
	ResourceID   int64  `json:"resource_id" validate:"required,min=1"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	Purpose      string `json:"purpose" validate:"max=500"`
	Attendees    int    `json:"attendees" validate:"min=0"`
}

// BookingResult is returned by the booking coordinator.
type BookingResult struct {
	Success           bool               `json:"success"`
	Outcome           BookingOutcome     `json:"outcome"`
	BookingID         *int64             `json:"booking_id,omitempty"`
	Conflicts         []models.BusyEntry `json:"conflicts,omitempty"`
	Alternatives      []models.Candidate `json:"alternatives,omitempty"`
	TotalAlternatives int                `json:"total_alternatives"`
	Message           string             `json:"message,omitempty"`
}

// RescheduleFilter narrows where a reschedule may move to.
type RescheduleFilter struct {
	RoomIDs     []int64 `json:"room_ids" form:"room_id" validate:"omitempty,dive,min=1"`
	FacultyID   *int64  `json:"faculty_id,omitempty" form:"faculty_id" validate:"omitempty,min=1"`
	GroupID     *int64  `json:"group_id,omitempty" form:"group_id" validate:"omitempty,min=1"`
	MinCapacity int     `json:"min_capacity" form:"min_capacity" validate:"min=0"`
}

// RescheduleSuggestion lists ranked alternatives for an existing booking.
type RescheduleSuggestion struct {
	BookingID         int64              `json:"booking_id"`
	Original          models.Interval    `json:"original"`
	OriginalDate      time.Time          `json:"original_date"`
	Conflicts         []models.BusyEntry `json:"conflicts"`
	Alternatives      []models.Candidate `json:"alternatives"`
	TotalAlternatives int                `json:"total_alternatives"`
	NoAvailableSlot   bool               `json:"no_available_slot"`
}

// SlotPreviewQuery previews the candidate grid for a duration.
type SlotPreviewQuery struct {
	Minutes int    `form:"minutes" validate:"required,min=1,max=1440"`
	Days    string `form:"days"`
}

// SlotPreviewResponse lists generated candidate intervals.
type SlotPreviewResponse struct {
	Minutes int               `json:"minutes"`
	Slots   []models.Interval `json:"slots"`
}

// AvailabilityQuery probes one resource on one date. Start and end are
// optional; when both are present the response carries is_free.
type AvailabilityQuery struct {
	Date  string `form:"date" validate:"required,datetime=2006-01-02"`
	Start string `form:"start"`
	End   string `form:"end"`
}

// AvailabilityResponse lists the busy entries of a resource on a date.
type AvailabilityResponse struct {
	Resource models.ResourceRef `json:"resource"`
	Date     time.Time          `json:"date"`
	Busy     []models.BusyEntry `json:"busy"`
	IsFree   *bool              `json:"is_free,omitempty"`
}

// ConflictReportQuery selects between a cached and a fresh sweep.
type ConflictReportQuery struct {
	Cached   bool   `form:"cached"`
	Severity string `form:"severity" validate:"omitempty,oneof=low medium high"`
}

// ConflictReportResponse wraps a sweep with summary counts.
type ConflictReportResponse struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Scanned     int                     `json:"scanned"`
	Total       int                     `json:"total"`
	BySeverity  map[string]int          `json:"by_severity"`
	Conflicts   []models.ConflictRecord `json:"conflicts"`
	Cached      bool                    `json:"cached"`
}
