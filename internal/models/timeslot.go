package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

// Weekday indexes days the way timetables do: 1 = Monday ... 7 = Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[Weekday]string{
	Monday:    "MONDAY",
	Tuesday:   "TUESDAY",
	Wednesday: "WEDNESDAY",
	Thursday:  "THURSDAY",
	Friday:    "FRIDAY",
	Saturday:  "SATURDAY",
	Sunday:    "SUNDAY",
}

var weekdayIndex = map[string]Weekday{
	"MONDAY": Monday, "MON": Monday,
	"TUESDAY": Tuesday, "TUE": Tuesday,
	"WEDNESDAY": Wednesday, "WED": Wednesday,
	"THURSDAY": Thursday, "THU": Thursday,
	"FRIDAY": Friday, "FRI": Friday,
	"SATURDAY": Saturday, "SAT": Saturday,
	"SUNDAY": Sunday, "SUN": Sunday,
}

// Valid reports whether the day lies within Monday..Sunday.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// ParseWeekday accepts full or three-letter English day names, case-insensitive.
func ParseWeekday(raw string) (Weekday, error) {
	day, ok := weekdayIndex[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown weekday %q", raw))
	}
	return day, nil
}

// WeekdayOf maps a calendar date onto the Monday-first index.
func WeekdayOf(t time.Time) Weekday {
	wd := t.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// TimeOfDay is minutes since midnight in the canonical 24-hour clock.
type TimeOfDay int

const minutesPerDay = 24 * 60

// NewTimeOfDay builds a time from hour and minute, rejecting out-of-range parts.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, appErrors.Clone(appErrors.ErrMalformedTimeInput, fmt.Sprintf("time %02d:%02d is outside 00:00-23:59", hour, minute))
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay is NewTimeOfDay for compile-time constants; it panics on bad input.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS". AM/PM suffixes and anything
// outside 00:00-23:59 are rejected rather than reinterpreted.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	value := strings.TrimSpace(raw)
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, appErrors.Clone(appErrors.ErrMalformedTimeInput, fmt.Sprintf("malformed time %q", raw))
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		if len(part) != 2 {
			return 0, appErrors.Clone(appErrors.ErrMalformedTimeInput, fmt.Sprintf("malformed time %q", raw))
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrMalformedTimeInput.Code, appErrors.ErrMalformedTimeInput.Status, fmt.Sprintf("malformed time %q", raw))
		}
		nums[i] = n
	}
	if len(nums) == 3 && (nums[2] < 0 || nums[2] > 59) {
		return 0, appErrors.Clone(appErrors.ErrMalformedTimeInput, fmt.Sprintf("malformed time %q", raw))
	}
	return NewTimeOfDay(nums[0], nums[1])
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Add shifts the time by the given minutes. Results past midnight are not wrapped.
func (t TimeOfDay) Add(minutes int) TimeOfDay { return t + TimeOfDay(minutes) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON renders the time as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts "HH:MM" or "HH:MM:SS".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return appErrors.Wrap(err, appErrors.ErrMalformedTimeInput.Code, appErrors.ErrMalformedTimeInput.Status, "time must be a string")
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Interval is a half-open [Start, End) range on a single day. Overnight
// ranges are not representable.
type Interval struct {
	Day   Weekday   `json:"day"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// NewInterval validates start < end and that both ends sit inside one day.
func NewInterval(day Weekday, start, end TimeOfDay) (Interval, error) {
	if !day.Valid() {
		return Interval{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid weekday %d", int(day)))
	}
	if start < 0 || end > minutesPerDay {
		return Interval{}, appErrors.Clone(appErrors.ErrMalformedTimeInput, "interval must stay within one day")
	}
	if start >= end {
		return Interval{}, appErrors.Clone(appErrors.ErrInvalidInterval, fmt.Sprintf("interval %s-%s: start must be before end", start, end))
	}
	return Interval{Day: day, Start: start, End: end}, nil
}

// Overlaps reports strict half-open overlap; touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Day == other.Day && i.Start < other.End && other.Start < i.End
}

// DurationMinutes returns End-Start, failing for empty or inverted intervals.
func (i Interval) DurationMinutes() (int, error) {
	if i.End <= i.Start {
		return 0, appErrors.Clone(appErrors.ErrInvalidInterval, fmt.Sprintf("interval %s-%s has no duration", i.Start, i.End))
	}
	return int(i.End - i.Start), nil
}

func (i Interval) String() string {
	return fmt.Sprintf("%s %s-%s", i.Day, i.Start, i.End)
}

// DateOnly keeps the calendar date of t (in t's own location) as UTC
// midnight, so dates from different sources compare with Equal.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
