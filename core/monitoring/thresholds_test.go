package monitoring

import (
	"testing"
	"time"

	"github.com/transitops/fleetassign/core/model"
)

func TestThresholdsDefaults(t *testing.T) {
	var th Thresholds
	th.SetDefaults()
	if th.MinCoverageRate != 80 || th.MinUtilizationRate != 60 || th.MinAverageScore != 0.6 {
		t.Errorf("unexpected defaults: %+v", th)
	}
	if err := th.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestThresholdsValidate(t *testing.T) {
	th := Thresholds{MinCoverageRate: 120, MinUtilizationRate: 60, MinAverageScore: 0.6}
	if err := th.Validate(); err == nil {
		t.Error("coverage above 100 must fail")
	}
	th = Thresholds{MinCoverageRate: 80, MinUtilizationRate: 60, MinAverageScore: 1.5}
	if err := th.Validate(); err == nil {
		t.Error("score above 1 must fail")
	}
}

func TestCheckRaisesAlerts(t *testing.T) {
	var th Thresholds
	th.SetDefaults()
	now := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

	m := model.RunMetrics{
		TotalSchedules:  10,
		AssignedCount:   7,
		CoverageRate:    70,
		UtilizationRate: 50,
		AverageScore:    0.5,
	}
	alerts := th.Check(m, now)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].Type != AlertLowCoverage || alerts[0].Severity != SeverityWarning {
		t.Errorf("alert 0: %+v", alerts[0])
	}
	if alerts[1].Type != AlertLowUtilization || alerts[1].Severity != SeverityInfo {
		t.Errorf("alert 1: %+v", alerts[1])
	}
	if alerts[2].Type != AlertLowScore || alerts[2].Severity != SeverityWarning {
		t.Errorf("alert 2: %+v", alerts[2])
	}
	if alerts[0].Message != "coverage rate (70.0%) below minimum (80.0%)" {
		t.Errorf("message: %s", alerts[0].Message)
	}
	for _, a := range alerts {
		if !a.Time.Equal(now) {
			t.Errorf("alert time not stamped: %+v", a)
		}
	}
}

func TestCheckHealthyRun(t *testing.T) {
	var th Thresholds
	th.SetDefaults()
	m := model.RunMetrics{
		TotalSchedules:  10,
		AssignedCount:   9,
		CoverageRate:    90,
		UtilizationRate: 75,
		AverageScore:    0.82,
	}
	if alerts := th.Check(m, time.Now()); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", alerts)
	}
}

func TestCheckSkipsScoreWhenNothingAssigned(t *testing.T) {
	var th Thresholds
	th.SetDefaults()
	m := model.RunMetrics{TotalSchedules: 5, AssignedCount: 0, CoverageRate: 0, UtilizationRate: 0}
	alerts := th.Check(m, time.Now())
	for _, a := range alerts {
		if a.Type == AlertLowScore {
			t.Error("score alert raised with zero assignments")
		}
	}
	if len(alerts) != 2 {
		t.Errorf("expected coverage and utilization alerts, got %+v", alerts)
	}
}
