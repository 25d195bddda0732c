package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/config"
)

type mockSweeper struct {
	report *models.ConflictReport
	err    error
	runs   int
}

func (m *mockSweeper) RunOnce(_ context.Context) (*models.ConflictReport, error) {
	m.runs++
	return m.report, m.err
}

func setupCLITest(sweeper *mockSweeper) (*bool, func()) {
	oldLoad, oldOpen := loadConfig, openSweeper
	closed := false
	loadConfig = func() (*config.Config, error) { return &config.Config{}, nil }
	openSweeper = func(context.Context, *config.Config) (conflictSweep, func(), error) {
		return sweeper, func() { closed = true }, nil
	}
	return &closed, func() {
		loadConfig, openSweeper = oldLoad, oldOpen
		sweepFormat = "table"
		slotMinutes = 60
		slotDays = nil
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func sweepReport() *models.ConflictReport {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return &models.ConflictReport{
		GeneratedAt: day,
		Scanned:     6,
		Conflicts: []models.ConflictRecord{{
			Kind:     models.ConflictRoomDoubleBooking,
			Severity: models.SeverityHigh,
			Resource: models.RoomRef(7),
			Date:     day,
			BookingA: models.BookingRef{ID: 1},
			BookingB: &models.BookingRef{ID: 2},
		}},
	}
}

func TestSweepCmd_Metadata(t *testing.T) {
	assert.Equal(t, "sweep", sweepCmd.Use)
	assert.Contains(t, sweepCmd.Long, "double bookings")
}

func TestSweepCmd_Table(t *testing.T) {
	sweeper := &mockSweeper{report: sweepReport()}
	closed, cleanup := setupCLITest(sweeper)
	defer cleanup()

	out, err := runCLI(t, "sweep", "--format", "table")
	require.NoError(t, err)
	assert.Equal(t, 1, sweeper.runs)
	assert.True(t, *closed)
	assert.Contains(t, out, "Scanned 6 bookings, found 1 conflicts (high 1, medium 0, low 0)")
	assert.Contains(t, out, "ROOM_DOUBLE_BOOKING")
	assert.Contains(t, out, "room#7")
	assert.Contains(t, out, "#1, #2")
}

func TestSweepCmd_JSON(t *testing.T) {
	sweeper := &mockSweeper{report: sweepReport()}
	_, cleanup := setupCLITest(sweeper)
	defer cleanup()

	out, err := runCLI(t, "sweep", "--format", "json")
	require.NoError(t, err)
	var decoded models.ConflictReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 6, decoded.Scanned)
	require.Len(t, decoded.Conflicts, 1)
}

func TestSweepCmd_Errors(t *testing.T) {
	sweeper := &mockSweeper{err: errors.New("db down")}
	_, cleanup := setupCLITest(sweeper)
	defer cleanup()

	_, err := runCLI(t, "sweep", "--format", "xml")
	require.Error(t, err)
	assert.Zero(t, sweeper.runs)

	_, err = runCLI(t, "sweep", "--format", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestSlotsCmd(t *testing.T) {
	_, cleanup := setupCLITest(&mockSweeper{})
	defer cleanup()

	out, err := runCLI(t, "slots", "--minutes", "60", "--days", "mon")
	require.NoError(t, err)
	assert.Contains(t, out, "MONDAY 09:00-10:00")
	assert.Contains(t, out, "MONDAY 16:00-17:00")
	assert.Contains(t, out, "8 slots")

	out, err = runCLI(t, "slots", "--minutes", "120", "--days", "mon")
	require.NoError(t, err)
	assert.Contains(t, out, "No 120-minute slots fit the grid.")

	_, err = runCLI(t, "slots", "--minutes", "60", "--days", "someday")
	assert.Error(t, err)
}
