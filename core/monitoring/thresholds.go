package monitoring

import (
	"fmt"
	"time"

	"github.com/transitops/fleetassign/core/model"
)

// Alert types raised by threshold checks.
const (
	AlertLowCoverage    = "LOW_COVERAGE"
	AlertLowUtilization = "LOW_UTILIZATION"
	AlertLowScore       = "LOW_SCORE"
)

// Alert severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Alert describes a planning run whose metrics fell below an
// operational threshold.
type Alert struct {
	Type     string    `json:"type"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// Thresholds holds the minimum acceptable values for run metrics.
// Zero values are replaced by defaults through SetDefaults.
type Thresholds struct {
	MinCoverageRate    float64 `json:"min_coverage_rate"`
	MinUtilizationRate float64 `json:"min_utilization_rate"`
	MinAverageScore    float64 `json:"min_average_score"`
}

func (t *Thresholds) SetDefaults() {
	if t.MinCoverageRate == 0 {
		t.MinCoverageRate = 80
	}
	if t.MinUtilizationRate == 0 {
		t.MinUtilizationRate = 60
	}
	if t.MinAverageScore == 0 {
		t.MinAverageScore = 0.6
	}
}

func (t *Thresholds) Validate() error {
	if t.MinCoverageRate < 0 || t.MinCoverageRate > 100 {
		return fmt.Errorf("min_coverage_rate must be within [0,100], got %.1f", t.MinCoverageRate)
	}
	if t.MinUtilizationRate < 0 || t.MinUtilizationRate > 100 {
		return fmt.Errorf("min_utilization_rate must be within [0,100], got %.1f", t.MinUtilizationRate)
	}
	if t.MinAverageScore < 0 || t.MinAverageScore > 1 {
		return fmt.Errorf("min_average_score must be within [0,1], got %.2f", t.MinAverageScore)
	}
	return nil
}

// Check compares run metrics against the thresholds and returns one
// alert per breached threshold. The average score check is skipped
// when no schedule was assigned.
func (t *Thresholds) Check(m model.RunMetrics, at time.Time) []Alert {
	var alerts []Alert
	if m.CoverageRate < t.MinCoverageRate {
		alerts = append(alerts, Alert{
			Type:     AlertLowCoverage,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("coverage rate (%.1f%%) below minimum (%.1f%%)", m.CoverageRate, t.MinCoverageRate),
			Time:     at,
		})
	}
	if m.UtilizationRate < t.MinUtilizationRate {
		alerts = append(alerts, Alert{
			Type:     AlertLowUtilization,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("fleet utilization (%.1f%%) below minimum (%.1f%%)", m.UtilizationRate, t.MinUtilizationRate),
			Time:     at,
		})
	}
	if m.AssignedCount > 0 && m.AverageScore < t.MinAverageScore {
		alerts = append(alerts, Alert{
			Type:     AlertLowScore,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("average assignment score (%.2f) below minimum (%.2f)", m.AverageScore, t.MinAverageScore),
			Time:     at,
		})
	}
	return alerts
}
