package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	coremetrics "github.com/transitops/fleetassign/core/metrics"
	"github.com/transitops/fleetassign/core/monitoring"
)

// PromSink records planning run outcomes in Prometheus metrics.
type PromSink struct {
	coverage    prometheus.Gauge
	utilization prometheus.Gauge
	avgScore    prometheus.Gauge
	fuelCost    prometheus.Gauge
	distance    prometheus.Gauge
	assignments *prometheus.CounterVec
	alerts      *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewPromSink registers planning metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		coverage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetassign_coverage_rate_percent",
			Help: "Share of schedules assigned in the last planning run",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetassign_utilization_rate_percent",
			Help: "Share of available units used in the last planning run",
		}),
		avgScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetassign_average_score",
			Help: "Average assignment score of the last planning run",
		}),
		fuelCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetassign_fuel_cost_total",
			Help: "Estimated fuel cost of the last planning run",
		}),
		distance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetassign_distance_km_total",
			Help: "Total planned distance of the last planning run",
		}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetassign_schedules_total",
			Help: "Total number of schedules processed by planning runs",
		}, []string{"outcome"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetassign_alerts_total",
			Help: "Total number of threshold alerts raised",
		}, []string{"type", "severity"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fleetassign_run_duration_seconds",
			Help:    "Time spent computing a planning run",
			Buckets: prometheus.DefBuckets,
		}),
	}

	if err := registerGauge(reg, &s.coverage); err != nil {
		return nil, err
	}
	if err := registerGauge(reg, &s.utilization); err != nil {
		return nil, err
	}
	if err := registerGauge(reg, &s.avgScore); err != nil {
		return nil, err
	}
	if err := registerGauge(reg, &s.fuelCost); err != nil {
		return nil, err
	}
	if err := registerGauge(reg, &s.distance); err != nil {
		return nil, err
	}
	if err := reg.Register(s.assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(s.alerts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.alerts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(s.duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	return s, nil
}

func registerGauge(reg prometheus.Registerer, g *prometheus.Gauge) error {
	if err := reg.Register(*g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*g = are.ExistingCollector.(prometheus.Gauge)
			return nil
		}
		return err
	}
	return nil
}

// RecordRun updates gauges with the latest run metrics and counts outcomes.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	m := rec.Metrics
	s.coverage.Set(m.CoverageRate)
	s.utilization.Set(m.UtilizationRate)
	s.avgScore.Set(m.AverageScore)
	s.fuelCost.Set(m.TotalFuelCost)
	s.distance.Set(m.TotalDistanceKm)
	s.assignments.WithLabelValues("assigned").Add(float64(len(rec.Assignments)))
	s.assignments.WithLabelValues("unassigned").Add(float64(len(rec.Unassigned)))
	s.duration.Observe(rec.Duration.Seconds())
	return nil
}

// RecordAlerts increments the alert counter per alert type.
func (s *PromSink) RecordAlerts(alerts []monitoring.Alert) error {
	for _, a := range alerts {
		s.alerts.WithLabelValues(a.Type, a.Severity).Inc()
	}
	return nil
}
