package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/fleetassign/core/model"
	"github.com/transitops/fleetassign/core/monitoring"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "fleet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUnitRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := model.Unit{
		ID: "U001", Name: "Bus Alpha-01", Capacity: 45, FuelEfficiency: 4.5,
		CostPerKm: 2500, Status: model.StatusAvailable,
		HomeLocation: "Terminal A", AllowedRoutes: []string{"R001", "R002"},
	}
	require.NoError(t, s.PutUnit(ctx, u))

	got, err := s.Units(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, u, got[0])

	// upsert replaces in place
	u.Status = model.StatusMaintenance
	require.NoError(t, s.PutUnit(ctx, u))
	got, err = s.Units(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusMaintenance, got[0].Status)
}

func TestPutUnitRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	err := s.PutUnit(context.Background(), model.Unit{ID: "U001", Capacity: 0})
	assert.Error(t, err)
}

func TestScheduleRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sc := model.Schedule{
		ID: "S001", RouteID: "R001", Departure: model.MustClock("06:00"),
		OperatingDays: []string{"Mon", "Tue"}, Priority: 1,
	}
	require.NoError(t, s.PutSchedule(ctx, sc))
	got, err := s.Schedules(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sc, got[0])
}

func TestReplaceAssignments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := []model.Assignment{{
		ScheduleID: "S001", RouteID: "R001", UnitID: "U001",
		Departure: model.MustClock("06:00"), Return: model.MustClock("08:00"),
		TotalScore: 0.9, FuelCost: 100, Reason: "highest score (0.90)", Status: model.StatusAssigned,
	}}
	require.NoError(t, s.ReplaceAssignments(ctx, date, first))

	second := []model.Assignment{
		{ScheduleID: "S002", RouteID: "R001", UnitID: "U002",
			Departure: model.MustClock("08:00"), Return: model.MustClock("10:00"),
			TotalScore: 0.8, Status: model.StatusAssigned},
		{ScheduleID: "S003", RouteID: "R002", UnitID: "U001",
			Departure: model.MustClock("06:30"), Return: model.MustClock("08:10"),
			TotalScore: 0.7, Status: model.StatusAssigned},
	}
	require.NoError(t, s.ReplaceAssignments(ctx, date, second))

	got, err := s.Assignments(ctx, date)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// ordered by departure time
	assert.Equal(t, "S003", got[0].ScheduleID)
	assert.Equal(t, "S002", got[1].ScheduleID)

	// other dates untouched
	other, err := s.Assignments(ctx, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRunHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"run-1", "run-2", "run-3"} {
		r := Run{
			ID:         id,
			TargetDate: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			PlannedAt:  time.Date(2024, 1, 1, 5, i, 0, 0, time.UTC),
			Duration:   25 * time.Millisecond,
			Metrics:    model.RunMetrics{TotalSchedules: 10, AssignedCount: 8, CoverageRate: 80},
			ParamsJSON: `{"turnaround_min":30}`,
		}
		require.NoError(t, s.SaveRun(ctx, r))
	}

	runs, err := s.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
	assert.Equal(t, 80.0, runs[0].Metrics.CoverageRate)
	assert.Equal(t, 25*time.Millisecond, runs[0].Duration)

	all, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSaveAlerts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alerts := []monitoring.Alert{{
		Type:     monitoring.AlertLowCoverage,
		Severity: monitoring.SeverityWarning,
		Message:  "coverage rate (70.0%) below minimum (80.0%)",
		Time:     time.Now(),
	}}
	require.NoError(t, s.SaveAlerts(ctx, "run-1", alerts))
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, s))

	units, err := s.Units(ctx)
	require.NoError(t, err)
	assert.Len(t, units, 8)

	routes, err := s.Routes(ctx)
	require.NoError(t, err)
	assert.Len(t, routes, 5)

	schedules, err := s.Schedules(ctx)
	require.NoError(t, err)
	assert.Len(t, schedules, 14)

	// idempotent
	require.NoError(t, Seed(ctx, s))
	units, err = s.Units(ctx)
	require.NoError(t, err)
	assert.Len(t, units, 8)
}
