package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string]TimeOfDay{
		"00:00":    0,
		"09:30":    MustTimeOfDay(9, 30),
		"23:59":    MustTimeOfDay(23, 59),
		"14:00:00": MustTimeOfDay(14, 0),
		" 08:15 ":  MustTimeOfDay(8, 15),
	}
	for raw, want := range valid {
		got, err := ParseTimeOfDay(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "9:00", "7pm", "07:00 PM", "24:00", "12:60", "12:00:61", "ab:cd", "1:2:3:4"} {
		_, err := ParseTimeOfDay(raw)
		assert.True(t, errors.Is(err, appErrors.ErrMalformedTimeInput), raw)
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	payload, err := json.Marshal(MustTimeOfDay(9, 5))
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(payload))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"17:45"`), &parsed))
	assert.Equal(t, MustTimeOfDay(17, 45), parsed)
	assert.Error(t, json.Unmarshal([]byte(`945`), &parsed))
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval(Monday, MustTimeOfDay(10, 0), MustTimeOfDay(11, 0))
	require.NoError(t, err)
	minutes, err := iv.DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 60, minutes)
	assert.Equal(t, "MONDAY 10:00-11:00", iv.String())

	_, err = NewInterval(Monday, MustTimeOfDay(11, 0), MustTimeOfDay(10, 0))
	assert.True(t, errors.Is(err, appErrors.ErrInvalidInterval))
	_, err = NewInterval(Monday, MustTimeOfDay(10, 0), MustTimeOfDay(10, 0))
	assert.True(t, errors.Is(err, appErrors.ErrInvalidInterval))
	_, err = NewInterval(Weekday(9), MustTimeOfDay(10, 0), MustTimeOfDay(11, 0))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Day: Monday, Start: MustTimeOfDay(10, 0), End: MustTimeOfDay(11, 0)}
	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"partial", Interval{Day: Monday, Start: MustTimeOfDay(10, 30), End: MustTimeOfDay(11, 30)}, true},
		{"contained", Interval{Day: Monday, Start: MustTimeOfDay(10, 15), End: MustTimeOfDay(10, 45)}, true},
		{"touching end", Interval{Day: Monday, Start: MustTimeOfDay(11, 0), End: MustTimeOfDay(12, 0)}, false},
		{"touching start", Interval{Day: Monday, Start: MustTimeOfDay(9, 0), End: MustTimeOfDay(10, 0)}, false},
		{"other day", Interval{Day: Tuesday, Start: MustTimeOfDay(10, 0), End: MustTimeOfDay(11, 0)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestWeekdays(t *testing.T) {
	day, err := ParseWeekday("wed")
	require.NoError(t, err)
	assert.Equal(t, Wednesday, day)
	day, err = ParseWeekday(" Sunday ")
	require.NoError(t, err)
	assert.Equal(t, Sunday, day)
	_, err = ParseWeekday("someday")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	assert.Equal(t, Monday, WeekdayOf(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)))

	jakarta := time.FixedZone("WIB", 7*3600)
	local := time.Date(2025, 3, 4, 1, 0, 0, 0, jakarta)
	assert.True(t, DateOnly(local).Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)))
}

func TestResourceHelpers(t *testing.T) {
	kind, err := ParseResourceType("GROUP")
	require.NoError(t, err)
	assert.Equal(t, ResourceStudentGroup, kind)
	_, err = ParseResourceType("lab")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	report := ConflictReport{Conflicts: []ConflictRecord{{Severity: SeverityHigh}, {Severity: SeverityHigh}, {Severity: SeverityLow}}}
	counts := report.CountBySeverity()
	assert.Equal(t, 2, counts[SeverityHigh])
	assert.Equal(t, 1, counts[SeverityLow])
	assert.Zero(t, counts[SeverityMedium])

	assert.True(t, BookingStatusPending.Blocking())
	assert.False(t, BookingStatusCancelled.Blocking())
}
