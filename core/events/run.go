package events

import (
	"time"

	"github.com/transitops/fleetassign/core/model"
)

// RunCompletedEvent is published after each planning run.
type RunCompletedEvent struct {
	RunID       string
	TargetDate  time.Time
	Duration    time.Duration
	Metrics     model.RunMetrics
	Assignments []model.Assignment
	Unassigned  []model.UnassignedSchedule
}
