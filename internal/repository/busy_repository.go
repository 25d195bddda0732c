package repository

import (
	"context"
	"time"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

// BusySource is any table that can occupy a resource.
type BusySource interface {
	ListBusy(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.BusyEntry, error)
}

// BusyRepository merges bookings, class schedules and events into one busy
// listing. Any source failing fails the whole lookup.
type BusyRepository struct {
	sources []BusySource
}

// NewBusyRepository combines the given sources.
func NewBusyRepository(sources ...BusySource) *BusyRepository {
	return &BusyRepository{sources: sources}
}

// ListBusy concatenates the entries of every source.
func (r *BusyRepository) ListBusy(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.BusyEntry, error) {
	var entries []models.BusyEntry
	for _, source := range r.sources {
		found, err := source.ListBusy(ctx, ref, date)
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)
	}
	return entries, nil
}
