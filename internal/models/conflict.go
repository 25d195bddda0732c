package models

import "time"

// ConflictKind classifies a detected conflict.
type ConflictKind string

const (
	ConflictRoomDoubleBooking ConflictKind = "ROOM_DOUBLE_BOOKING"
	ConflictScheduleOverlap   ConflictKind = "SCHEDULE_OVERLAP"
	ConflictCapacityExceeded  ConflictKind = "CAPACITY_EXCEEDED"
)

// ConflictSeverity ranks how urgently a conflict needs attention.
type ConflictSeverity string

const (
	SeverityLow    ConflictSeverity = "low"
	SeverityMedium ConflictSeverity = "medium"
	SeverityHigh   ConflictSeverity = "high"
)

// ConflictRecord is one finding of a conflict sweep. BookingB is nil for
// single-booking findings such as capacity overruns.
type ConflictRecord struct {
	Kind        ConflictKind     `json:"kind"`
	Severity    ConflictSeverity `json:"severity"`
	Resource    ResourceRef      `json:"resource"`
	Date        time.Time        `json:"date"`
	BookingA    BookingRef       `json:"booking_a"`
	BookingB    *BookingRef      `json:"booking_b,omitempty"`
	Suggestions []string         `json:"suggestions"`
}

// ConflictReport is a completed sweep.
type ConflictReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Conflicts   []ConflictRecord `json:"conflicts"`
	Scanned     int              `json:"scanned"`
}

// CountBySeverity tallies the report's conflicts.
func (r ConflictReport) CountBySeverity() map[ConflictSeverity]int {
	counts := make(map[ConflictSeverity]int, 3)
	for _, c := range r.Conflicts {
		counts[c.Severity]++
	}
	return counts
}

// Candidate is a proposed, uncommitted slot. It is never persisted.
type Candidate struct {
	Day    Weekday     `json:"day"`
	Date   time.Time   `json:"date"`
	Start  TimeOfDay   `json:"start_time"`
	End    TimeOfDay   `json:"end_time"`
	Room   ResourceRef `json:"room"`
	Score  float64     `json:"score"`
	Reason string      `json:"reason"`
}

// Interval returns the candidate's time range.
func (c Candidate) Interval() Interval {
	return Interval{Day: c.Day, Start: c.Start, End: c.End}
}
