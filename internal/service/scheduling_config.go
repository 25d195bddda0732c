package service

import (
	"fmt"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

// SchedulingConfig governs slot search for bookings and reschedules.
type SchedulingConfig struct {
	Grid        []GridSlot
	Days        []models.Weekday
	TopN        int
	HorizonDays int
	// MaxRoomAlternatives caps how many other rooms are probed when a room
	// request or reschedule looks for alternatives.
	MaxRoomAlternatives int
}

// DefaultSchedulingConfig is the hourly 09:00-17:00 Monday-Saturday grid.
func DefaultSchedulingConfig() SchedulingConfig {
	return SchedulingConfig{
		Grid:                DefaultGrid(),
		Days:                append([]models.Weekday(nil), DefaultWorkdays...),
		TopN:                defaultTopN,
		HorizonDays:         6,
		MaxRoomAlternatives: 5,
	}
}

// NewSchedulingConfig builds a config from raw settings. Empty or zero values
// fall back to the defaults; malformed values are rejected.
func NewSchedulingConfig(gridStart, gridEnd string, slotMinutes int, days []string, topN, horizonDays, maxRooms int) (SchedulingConfig, error) {
	cfg := DefaultSchedulingConfig()
	if gridStart != "" || gridEnd != "" || slotMinutes > 0 {
		start, end := models.MustTimeOfDay(9, 0), models.MustTimeOfDay(17, 0)
		var err error
		if gridStart != "" {
			if start, err = models.ParseTimeOfDay(gridStart); err != nil {
				return SchedulingConfig{}, err
			}
		}
		if gridEnd != "" {
			if end, err = models.ParseTimeOfDay(gridEnd); err != nil {
				return SchedulingConfig{}, err
			}
		}
		if slotMinutes <= 0 {
			slotMinutes = 60
		}
		grid := HourlyGrid(start, end, slotMinutes)
		if len(grid) == 0 {
			return SchedulingConfig{}, appErrors.Clone(appErrors.ErrInvalidInterval, fmt.Sprintf("grid %s-%s holds no %d minute slot", start, end, slotMinutes))
		}
		cfg.Grid = grid
	}
	if len(days) > 0 {
		parsed := make([]models.Weekday, 0, len(days))
		for _, raw := range days {
			day, err := models.ParseWeekday(raw)
			if err != nil {
				return SchedulingConfig{}, err
			}
			parsed = append(parsed, day)
		}
		cfg.Days = normalizeWeekdays(parsed)
	}
	if topN > 0 {
		cfg.TopN = topN
	}
	if horizonDays > 0 {
		cfg.HorizonDays = horizonDays
	}
	if maxRooms >= 0 {
		cfg.MaxRoomAlternatives = maxRooms
	}
	return cfg, nil
}

func (c SchedulingConfig) withDefaults() SchedulingConfig {
	def := DefaultSchedulingConfig()
	if len(c.Grid) == 0 {
		c.Grid = def.Grid
	}
	if len(c.Days) == 0 {
		c.Days = def.Days
	}
	if c.TopN <= 0 {
		c.TopN = def.TopN
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = def.HorizonDays
	}
	if c.MaxRoomAlternatives < 0 {
		c.MaxRoomAlternatives = 0
	}
	return c
}

// PreviewSlots lists the grid candidates of the given length. Empty days
// means the configured days.
func (c SchedulingConfig) PreviewSlots(minutes int, days []models.Weekday) []models.Interval {
	c = c.withDefaults()
	if len(days) == 0 {
		days = c.Days
	}
	return CandidateSlots(c.Grid, days, minutes)
}
