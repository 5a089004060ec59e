package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/transitops/fleetassign/core/metrics"
	"github.com/transitops/fleetassign/core/monitoring"
	"github.com/transitops/fleetassign/infra/logger"
)

// InfluxSink writes planning run outcomes to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the run summary and one point per assignment.
func (s *InfluxSink) RecordRun(rec coremetrics.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("planning_run").
		AddTag("run_id", rec.RunID).
		AddTag("target_date", rec.TargetDate.Format("2006-01-02")).
		AddField("coverage_rate", round3(rec.Metrics.CoverageRate)).
		AddField("utilization_rate", round3(rec.Metrics.UtilizationRate)).
		AddField("average_score", round3(rec.Metrics.AverageScore)).
		AddField("fuel_cost", round3(rec.Metrics.TotalFuelCost)).
		AddField("distance_km", round3(rec.Metrics.TotalDistanceKm)).
		AddField("assigned", rec.Metrics.AssignedCount).
		AddField("unassigned", len(rec.Unassigned)).
		AddField("duration_ms", rec.Duration.Milliseconds()).
		SetTime(rec.PlannedAt)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return err
	}
	for _, a := range rec.Assignments {
		p := write.NewPointWithMeasurement("assignment").
			AddTag("run_id", rec.RunID).
			AddTag("schedule_id", a.ScheduleID).
			AddTag("route_id", a.RouteID).
			AddTag("unit_id", a.UnitID).
			AddField("score", round3(a.TotalScore)).
			AddField("fuel_cost", round3(a.FuelCost)).
			AddField("departure_min", a.Departure.Minutes()).
			SetTime(rec.PlannedAt)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordAlerts writes one point per raised alert.
func (s *InfluxSink) RecordAlerts(alerts []monitoring.Alert) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, a := range alerts {
		p := write.NewPointWithMeasurement("planning_alert").
			AddTag("type", a.Type).
			AddTag("severity", a.Severity).
			AddField("message", a.Message).
			SetTime(a.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying InfluxDB client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
