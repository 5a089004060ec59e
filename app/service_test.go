package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/fleetassign/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Store.Path = filepath.Join(t.TempDir(), "fleet.db")

	svc, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestPlanDatePersistsRun(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	// a Monday: weekday schedules are active
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	run, err := svc.PlanDate(ctx, monday)
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	// Mon: everything except the weekend-only R005 departures
	assert.Equal(t, 11, run.Metrics.TotalSchedules)
	assert.Greater(t, run.Metrics.AssignedCount, 0)
	assert.NotEmpty(t, run.ParamsJSON)

	stored, err := svc.store.Assignments(ctx, monday)
	require.NoError(t, err)
	assert.Len(t, stored, run.Metrics.AssignedCount)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, run.ID, history[0].ID)
}

func TestPlanDateReplacesPreviousPlan(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.PlanDate(ctx, monday)
	require.NoError(t, err)
	second, err := svc.PlanDate(ctx, monday)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stored, err := svc.store.Assignments(ctx, monday)
	require.NoError(t, err)
	assert.Len(t, stored, second.Metrics.AssignedCount)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestPlanDateWeekend(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	saturday := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	run, err := svc.PlanDate(ctx, saturday)
	require.NoError(t, err)
	// Sat: S003, S005, S006, S008, S012, S013, S014
	assert.Equal(t, 7, run.Metrics.TotalSchedules)
}
