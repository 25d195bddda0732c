package models

import "time"

// BookingStatus tracks the lifecycle of a reservation.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// BlockingStatuses are the statuses that keep a resource occupied.
var BlockingStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusPending}

// Blocking reports whether a reservation in this status occupies its resource.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusConfirmed || s == BookingStatusPending
}

// Booking is a reservation of a resource for a time range on a date.
type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	Resource  ResourceRef   `json:"resource"`
	Date      time.Time     `json:"date"`
	Start     TimeOfDay     `json:"start_time"`
	End       TimeOfDay     `json:"end_time"`
	Purpose   string        `json:"purpose"`
	Attendees int           `json:"attendees"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Interval returns the booking's time range on its weekday.
func (b Booking) Interval() Interval {
	return Interval{Day: WeekdayOf(b.Date), Start: b.Start, End: b.End}
}

// Ref returns the lightweight reference used in conflict reports.
func (b Booking) Ref() BookingRef {
	return BookingRef{ID: b.ID, UserID: b.UserID, Start: b.Start, End: b.End, Status: b.Status, Purpose: b.Purpose}
}

// BookingRef identifies one side of a conflict.
type BookingRef struct {
	ID      int64         `json:"id"`
	UserID  int64         `json:"user_id"`
	Start   TimeOfDay     `json:"start_time"`
	End     TimeOfDay     `json:"end_time"`
	Status  BookingStatus `json:"status"`
	Purpose string        `json:"purpose,omitempty"`
}

// BookingRequest is the input to the booking coordinator. It is not retained
// once the request completes.
type BookingRequest struct {
	UserID       int64        `json:"user_id" validate:"required,min=1"`
	ResourceType ResourceType `json:"resource_type" validate:"required,oneof=room faculty student_group"`
	ResourceID   int64        `json:"resource_id" validate:"required,min=1"`
	Date         time.Time    `json:"date" validate:"required"`
	StartTime    string       `json:"start_time" validate:"required"`
	EndTime      string       `json:"end_time" validate:"required"`
	Purpose      string       `json:"purpose" validate:"max=500"`
	Attendees    int          `json:"attendees" validate:"min=0"`
}

// BusySource names where an occupied interval came from.
type BusySource string

const (
	BusySourceBooking BusySource = "booking"
	BusySourceClass   BusySource = "class_schedule"
	BusySourceEvent   BusySource = "event"
)

// BusyEntry is one occupied interval of a resource, with its origin.
type BusyEntry struct {
	Interval Interval      `json:"interval"`
	Source   BusySource    `json:"source"`
	SourceID int64         `json:"source_id"`
	Status   BookingStatus `json:"status"`
	Label    string        `json:"label,omitempty"`
}

// ClassSchedule is a recurring weekly class occupying a faculty member, a
// student group and optionally a room.
type ClassSchedule struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	FacultyID int64     `json:"faculty_id"`
	GroupID   int64     `json:"group_id"`
	RoomID    *int64    `json:"room_id,omitempty"`
	Day       Weekday   `json:"day"`
	Start     TimeOfDay `json:"start_time"`
	End       TimeOfDay `json:"end_time"`
	Active    bool      `json:"active"`
}

// Event is a one-off campus event held in a room.
type Event struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	RoomID      int64         `json:"room_id"`
	OrganizerID int64         `json:"organizer_id"`
	Date        time.Time     `json:"date"`
	Start       TimeOfDay     `json:"start_time"`
	End         TimeOfDay     `json:"end_time"`
	Status      BookingStatus `json:"status"`
}

// BookingFilter narrows booking listings. Zero values mean "any".
type BookingFilter struct {
	ResourceType ResourceType
	ResourceID   int64
	From         time.Time
	To           time.Time
	Statuses     []BookingStatus
}
