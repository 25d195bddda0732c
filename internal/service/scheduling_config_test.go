package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

func TestNewSchedulingConfigDefaults(t *testing.T) {
	cfg, err := NewSchedulingConfig("", "", 0, nil, 0, 0, 5)
	require.NoError(t, err)
	assert.Len(t, cfg.Grid, 8)
	assert.Equal(t, DefaultWorkdays, cfg.Days)
	assert.Equal(t, defaultTopN, cfg.TopN)
	assert.Equal(t, 6, cfg.HorizonDays)
}

func TestNewSchedulingConfigCustomGrid(t *testing.T) {
	cfg, err := NewSchedulingConfig("08:00", "12:00", 90, []string{"friday", "mon"}, 3, 10, 2)
	require.NoError(t, err)
	require.Len(t, cfg.Grid, 2)
	assert.Equal(t, tod(8, 0), cfg.Grid[0].Start)
	assert.Equal(t, tod(11, 0), cfg.Grid[1].End)
	assert.Equal(t, []models.Weekday{models.Monday, models.Friday}, cfg.Days)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, 2, cfg.MaxRoomAlternatives)
}

func TestNewSchedulingConfigRejectsBadInput(t *testing.T) {
	_, err := NewSchedulingConfig("9am", "", 0, nil, 0, 0, 0)
	assert.True(t, errors.Is(err, appErrors.ErrMalformedTimeInput))

	_, err = NewSchedulingConfig("09:00", "09:30", 60, nil, 0, 0, 0)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidInterval))

	_, err = NewSchedulingConfig("", "", 0, []string{"funday"}, 0, 0, 0)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestPreviewSlots(t *testing.T) {
	cfg := DefaultSchedulingConfig()
	slots := cfg.PreviewSlots(45, []models.Weekday{models.Wednesday})
	require.Len(t, slots, 8)
	assert.Equal(t, models.Interval{Day: models.Wednesday, Start: tod(9, 0), End: tod(9, 45)}, slots[0])

	assert.Len(t, cfg.PreviewSlots(60, nil), 48)
	assert.Empty(t, cfg.PreviewSlots(90, nil))
}
