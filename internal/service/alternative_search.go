package service

import (
	"context"
	"sort"
	"time"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

type roomDirectory interface {
	ListActiveRooms(ctx context.Context, minCapacity int) ([]models.Room, error)
	ResourceCapacity(ctx context.Context, ref models.ResourceRef) (int, error)
}

// alternativeSearch enumerates free candidates from a BusySet. Every ref in
// required must be free; each free ref in holders yields one candidate. skip
// hides single holder/date/slot combinations such as a booking's own slot.
type alternativeSearch struct {
	grid     []GridSlot
	days     []models.Weekday
	minutes  int
	dates    []time.Time
	required []models.ResourceRef
	holders  []models.ResourceRef
	now      time.Time
	skip     func(holder models.ResourceRef, date time.Time, interval models.Interval) bool
}

func (a alternativeSearch) collect(set *BusySet) []models.Candidate {
	slots := CandidateSlots(a.grid, a.days, a.minutes)
	if len(slots) == 0 || len(a.holders) == 0 {
		return nil
	}
	today := models.DateOnly(a.now)
	nowMinute := models.TimeOfDay(a.now.Hour()*60 + a.now.Minute())

	var candidates []models.Candidate
	for _, date := range a.dates {
		date = models.DateOnly(date)
		if !a.now.IsZero() && date.Before(today) {
			continue
		}
		day := models.WeekdayOf(date)
		for _, slot := range slots {
			if slot.Day != day {
				continue
			}
			if !a.now.IsZero() && date.Equal(today) && slot.Start <= nowMinute {
				continue
			}
			if !a.allFree(set, date, slot) {
				continue
			}
			for _, holder := range a.holders {
				if a.skip != nil && a.skip(holder, date, slot) {
					continue
				}
				if !set.Free(holder, date, slot) {
					continue
				}
				candidates = append(candidates, models.Candidate{
					Day:   day,
					Date:  date,
					Start: slot.Start,
					End:   slot.End,
					Room:  holder,
				})
			}
		}
	}
	return candidates
}

func (a alternativeSearch) allFree(set *BusySet, date time.Time, slot models.Interval) bool {
	for _, ref := range a.required {
		if !set.Free(ref, date, slot) {
			return false
		}
	}
	return true
}

func (a alternativeSearch) refs() []models.ResourceRef {
	return uniqueRefs(append(append([]models.ResourceRef(nil), a.required...), a.holders...))
}

// similarRooms returns active rooms other than exclude seating at least
// minCapacity, smallest first, capped at limit.
func similarRooms(ctx context.Context, rooms roomDirectory, exclude int64, minCapacity, limit int) ([]models.ResourceRef, error) {
	if rooms == nil || limit <= 0 {
		return nil, nil
	}
	active, err := rooms.ListActiveRooms(ctx, minCapacity)
	if err != nil {
		return nil, repositoryError(err, "failed to list rooms")
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Capacity != active[j].Capacity {
			return active[i].Capacity < active[j].Capacity
		}
		return active[i].ID < active[j].ID
	})
	refs := make([]models.ResourceRef, 0, limit)
	for _, room := range active {
		if room.ID == exclude || !room.Active || room.Capacity < minCapacity {
			continue
		}
		refs = append(refs, room.Ref())
		if len(refs) == limit {
			break
		}
	}
	return refs, nil
}

func uniqueRefs(refs []models.ResourceRef) []models.ResourceRef {
	seen := make(map[models.ResourceRef]bool, len(refs))
	result := make([]models.ResourceRef, 0, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		result = append(result, ref)
	}
	return result
}

func withDate(dates []time.Time, date time.Time) []time.Time {
	date = models.DateOnly(date)
	for _, d := range dates {
		if d.Equal(date) {
			return dates
		}
	}
	return append([]time.Time{date}, dates...)
}
