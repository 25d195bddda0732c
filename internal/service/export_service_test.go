package service

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/export"
)

func newExportService() *ExportService {
	return NewExportService(export.NewCSVExporter(), export.NewPDFExporter(), nil)
}

func TestExportServiceCSV(t *testing.T) {
	file, err := newExportService().RenderConflicts(sampleReport(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "conflicts-20250303-070000.csv", file.Filename)

	records, err := csv.NewReader(strings.NewReader(string(file.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Kind", "Severity", "Resource", "Date", "Booking A", "Booking B", "Suggestions"}, records[0])
	assert.Equal(t, "ROOM_DOUBLE_BOOKING", records[1][0])
	assert.Equal(t, "room#7", records[1][2])
	assert.Equal(t, "#1 09:00-10:00", records[1][4])
	assert.Equal(t, "#2 09:30-10:30", records[1][5])
}

func TestExportServicePDF(t *testing.T) {
	file, err := newExportService().RenderConflicts(sampleReport(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Content), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	_, err := newExportService().RenderConflicts(sampleReport(), "xlsx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = newExportService().RenderConflicts(nil, "csv")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestConflictTableCapacityRowHasNoSecondBooking(t *testing.T) {
	report := &models.ConflictReport{Conflicts: []models.ConflictRecord{{
		Kind:        models.ConflictCapacityExceeded,
		Severity:    models.SeverityMedium,
		Resource:    models.RoomRef(2),
		BookingA:    models.BookingRef{ID: 4, Start: tod(9, 0), End: tod(10, 0)},
		Suggestions: []string{"a", "b"},
	}}}
	table := ConflictTable(report)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0][5])
	assert.Equal(t, "a; b", table.Rows[0][6])
}
