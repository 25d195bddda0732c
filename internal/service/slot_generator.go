package service

import (
	"sort"
	"time"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

// GridSlot is one bucket of the daily timetable grid. Grid slots carry no
// day; the generator stamps them onto each horizon day.
type GridSlot struct {
	Start models.TimeOfDay `json:"start"`
	End   models.TimeOfDay `json:"end"`
}

// DefaultWorkdays is Monday through Saturday.
var DefaultWorkdays = []models.Weekday{
	models.Monday, models.Tuesday, models.Wednesday,
	models.Thursday, models.Friday, models.Saturday,
}

// HourlyGrid splits [from, to) into consecutive buckets of step minutes.
// A trailing remainder shorter than step is dropped.
func HourlyGrid(from, to models.TimeOfDay, step int) []GridSlot {
	if step <= 0 || from >= to {
		return nil
	}
	var grid []GridSlot
	for start := from; start.Add(step) <= to; start = start.Add(step) {
		grid = append(grid, GridSlot{Start: start, End: start.Add(step)})
	}
	return grid
}

// DefaultGrid is the hourly 09:00-17:00 grid.
func DefaultGrid() []GridSlot {
	return HourlyGrid(models.MustTimeOfDay(9, 0), models.MustTimeOfDay(17, 0), 60)
}

// CandidateSlots emits, for every day and every grid slot at least
// requiredMinutes long, an interval of exactly requiredMinutes starting at the
// slot's start. Output is day-major then time-ascending; identical inputs give
// identical output.
func CandidateSlots(grid []GridSlot, days []models.Weekday, requiredMinutes int) []models.Interval {
	if requiredMinutes <= 0 {
		return nil
	}
	ordered := orderedGrid(grid)
	var result []models.Interval
	for _, day := range normalizeWeekdays(days) {
		for _, slot := range ordered {
			if int(slot.End-slot.Start) < requiredMinutes {
				continue
			}
			result = append(result, models.Interval{Day: day, Start: slot.Start, End: slot.Start.Add(requiredMinutes)})
		}
	}
	return result
}

// HorizonDates returns the dates from `from` (inclusive) within span days
// whose weekday is one of days.
func HorizonDates(from time.Time, span int, days []models.Weekday) []time.Time {
	if span <= 0 {
		span = 1
	}
	allowed := make(map[models.Weekday]bool, len(days))
	for _, day := range days {
		allowed[day] = true
	}
	start := models.DateOnly(from)
	var dates []time.Time
	for i := 0; i < span; i++ {
		date := start.AddDate(0, 0, i)
		if allowed[models.WeekdayOf(date)] {
			dates = append(dates, date)
		}
	}
	return dates
}

func orderedGrid(grid []GridSlot) []GridSlot {
	ordered := make([]GridSlot, 0, len(grid))
	seen := make(map[GridSlot]bool, len(grid))
	for _, slot := range grid {
		if slot.End <= slot.Start || seen[slot] {
			continue
		}
		seen[slot] = true
		ordered = append(ordered, slot)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start == ordered[j].Start {
			return ordered[i].End < ordered[j].End
		}
		return ordered[i].Start < ordered[j].Start
	})
	return ordered
}

func normalizeWeekdays(days []models.Weekday) []models.Weekday {
	unique := make(map[models.Weekday]struct{}, len(days))
	for _, day := range days {
		if !day.Valid() {
			continue
		}
		unique[day] = struct{}{}
	}
	result := make([]models.Weekday, 0, len(unique))
	for day := range unique {
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
