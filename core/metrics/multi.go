package metrics

import "github.com/transitops/fleetassign/core/monitoring"

// MultiSink fans run records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(rec RunRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordAlerts forwards alerts to sinks that implement AlertRecorder.
func (m *MultiSink) RecordAlerts(alerts []monitoring.Alert) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(AlertRecorder); ok {
			if err := rec.RecordAlerts(alerts); err != nil {
				return err
			}
		}
	}
	return nil
}
