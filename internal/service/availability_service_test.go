package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

func TestAvailabilityServiceEmptyDayIsFree(t *testing.T) {
	svc := NewAvailabilityService(newBusyRepoStub(), nil)
	monday := date(2025, 3, 10)

	intervals, err := svc.BusyIntervals(context.Background(), models.RoomRef(1), monday)
	require.NoError(t, err)
	assert.Empty(t, intervals)

	for hour := 9; hour < 17; hour++ {
		free, err := svc.IsFree(context.Background(), models.RoomRef(1), monday, tod(hour, 0), tod(hour+1, 0))
		require.NoError(t, err)
		assert.True(t, free)
	}
}

func TestAvailabilityServiceOverlapIsBusy(t *testing.T) {
	repo := newBusyRepoStub()
	monday := date(2025, 3, 10)
	room := models.RoomRef(5)
	repo.add(room, monday, models.BusyEntry{
		Interval: models.Interval{Day: models.Monday, Start: tod(10, 30), End: tod(11, 30)},
		Source:   models.BusySourceBooking,
		SourceID: 9,
		Status:   models.BookingStatusConfirmed,
	})
	svc := NewAvailabilityService(repo, nil)

	free, err := svc.IsFree(context.Background(), room, monday, tod(10, 0), tod(11, 0))
	require.NoError(t, err)
	assert.False(t, free)

	free, err = svc.IsFree(context.Background(), room, monday, tod(11, 30), tod(12, 30))
	require.NoError(t, err)
	assert.True(t, free, "touching endpoints do not overlap")
}

func TestAvailabilityServiceSkipsNonBlockingAndOtherDays(t *testing.T) {
	repo := newBusyRepoStub()
	monday := date(2025, 3, 10)
	room := models.RoomRef(2)
	cancelled := busyEntry(monday, 9, 10, models.BusySourceBooking, 1)
	cancelled.Status = models.BookingStatusCancelled
	tuesdayClass := models.BusyEntry{
		Interval: models.Interval{Day: models.Tuesday, Start: tod(9, 0), End: tod(10, 0)},
		Source:   models.BusySourceClass,
		SourceID: 2,
	}
	classEntry := busyEntry(monday, 13, 14, models.BusySourceClass, 3)
	classEntry.Status = ""
	repo.add(room, monday, cancelled, tuesdayClass, classEntry, classEntry)
	svc := NewAvailabilityService(repo, nil)

	intervals, err := svc.BusyIntervals(context.Background(), room, monday)
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, tod(13, 0), intervals[0].Start)
}

func TestAvailabilityServiceRepositoryFailureIsNotFree(t *testing.T) {
	repo := newBusyRepoStub()
	repo.err = errors.New("connection refused")
	svc := NewAvailabilityService(repo, nil)

	free, err := svc.IsFree(context.Background(), models.RoomRef(1), date(2025, 3, 10), tod(9, 0), tod(10, 0))
	require.Error(t, err)
	assert.False(t, free)
	assert.True(t, errors.Is(err, appErrors.ErrRepositoryUnavailable))
}

func TestAvailabilityServiceRejectsInvertedInterval(t *testing.T) {
	svc := NewAvailabilityService(newBusyRepoStub(), nil)
	_, err := svc.IsFree(context.Background(), models.RoomRef(1), date(2025, 3, 10), tod(11, 0), tod(10, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidInterval))
}

func TestBusySetIgnoreAndUnloaded(t *testing.T) {
	repo := newBusyRepoStub()
	monday := date(2025, 3, 10)
	room := models.RoomRef(1)
	repo.add(room, monday, busyEntry(monday, 10, 11, models.BusySourceBooking, 7))
	svc := NewAvailabilityService(repo, nil)

	set, err := svc.Snapshot(context.Background(), []models.ResourceRef{room, room}, []time.Time{monday, monday})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	slot := models.Interval{Day: models.Monday, Start: tod(10, 0), End: tod(11, 0)}
	assert.False(t, set.Free(room, monday, slot))
	assert.Len(t, set.Occupants(room, monday, slot), 1)

	set.Ignore(models.BusySourceBooking, 7)
	assert.True(t, set.Free(room, monday, slot))
	assert.False(t, set.Free(models.RoomRef(2), monday, slot), "unloaded refs are never free")
}
