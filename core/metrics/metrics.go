package metrics

import (
	"time"

	"github.com/transitops/fleetassign/core/model"
	"github.com/transitops/fleetassign/core/monitoring"
)

// RunRecord captures the outcome of one planning run to be recorded.
type RunRecord struct {
	RunID       string
	TargetDate  time.Time
	PlannedAt   time.Time
	Duration    time.Duration
	Metrics     model.RunMetrics
	Assignments []model.Assignment
	Unassigned  []model.UnassignedSchedule
}

// MetricsSink records planning run outcomes for observability purposes.
type MetricsSink interface {
	RecordRun(rec RunRecord) error
}

// AlertRecorder is implemented by sinks able to record threshold alerts.
type AlertRecorder interface {
	RecordAlerts(alerts []monitoring.Alert) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord) error { return nil }

// Ensure NopSink implements AlertRecorder.
func (NopSink) RecordAlerts([]monitoring.Alert) error { return nil }
