// Package notify publishes planning outcomes to external consumers.
package notify

import (
	"github.com/transitops/fleetassign/core/model"
	"github.com/transitops/fleetassign/core/monitoring"
)

// RunSummary is the payload published after each planning run.
type RunSummary struct {
	RunID      string             `json:"run_id"`
	TargetDate string             `json:"target_date"`
	Metrics    model.RunMetrics   `json:"metrics"`
	Assigned   []model.Assignment `json:"assigned"`
}

// Notifier publishes planning outcomes.
type Notifier interface {
	NotifyRun(sum RunSummary) error
	NotifyUnassigned(runID string, us []model.UnassignedSchedule) error
	NotifyAlerts(runID string, alerts []monitoring.Alert) error
	Close()
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) NotifyRun(RunSummary) error                                { return nil }
func (Nop) NotifyUnassigned(string, []model.UnassignedSchedule) error { return nil }
func (Nop) NotifyAlerts(string, []monitoring.Alert) error             { return nil }
func (Nop) Close()                                                    {}
