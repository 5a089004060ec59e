package events

import "github.com/transitops/fleetassign/core/monitoring"

// AlertEvent is published when a planning run breaches one or more
// operational thresholds.
type AlertEvent struct {
	RunID  string
	Alerts []monitoring.Alert
}
