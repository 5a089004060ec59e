package metrics

import (
	"testing"

	"github.com/transitops/fleetassign/core/monitoring"
)

// TestMultiSink ensures records are forwarded to all sinks.

type recordSink struct {
	count int
}

func (r *recordSink) RecordRun(RunRecord) error {
	r.count++
	return nil
}

func (r *recordSink) RecordAlerts([]monitoring.Alert) error {
	r.count++
	return nil
}

// runOnlySink does not implement AlertRecorder.
type runOnlySink struct {
	count int
}

func (r *runOnlySink) RecordRun(RunRecord) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordRun(RunRecord{}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordAlerts(nil); err != nil {
		t.Fatalf("record alerts: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("records not forwarded")
	}
}

func TestMultiSinkSkipsNonAlertRecorders(t *testing.T) {
	s := &runOnlySink{}
	m := NewMultiSink(s)
	if err := m.RecordAlerts(nil); err != nil {
		t.Fatalf("record alerts: %v", err)
	}
	if s.count != 0 {
		t.Fatalf("alerts must not reach sinks without AlertRecorder")
	}
}
