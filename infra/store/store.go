// Package store persists the fleet inventory, planning results and run
// history. The SQLite implementation is the only backend; the Store
// interface keeps the service decoupled from it.
package store

import (
	"context"
	"time"

	"github.com/transitops/fleetassign/core/model"
	"github.com/transitops/fleetassign/core/monitoring"
)

// Run is a persisted planning run summary.
type Run struct {
	ID         string
	TargetDate time.Time
	PlannedAt  time.Time
	Duration   time.Duration
	Metrics    model.RunMetrics
	ParamsJSON string
}

// Store provides access to the fleet inventory and planning history.
type Store interface {
	Units(ctx context.Context) ([]model.Unit, error)
	PutUnit(ctx context.Context, u model.Unit) error
	Routes(ctx context.Context) ([]model.Route, error)
	PutRoute(ctx context.Context, r model.Route) error
	Schedules(ctx context.Context) ([]model.Schedule, error)
	PutSchedule(ctx context.Context, s model.Schedule) error

	// ReplaceAssignments deletes all assignments stored for the target
	// date and inserts the new set in a single transaction.
	ReplaceAssignments(ctx context.Context, date time.Time, as []model.Assignment) error
	Assignments(ctx context.Context, date time.Time) ([]model.Assignment, error)

	SaveRun(ctx context.Context, r Run) error
	Runs(ctx context.Context, limit int) ([]Run, error)

	SaveAlerts(ctx context.Context, runID string, alerts []monitoring.Alert) error

	Close() error
}
