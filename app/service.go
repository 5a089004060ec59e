// Package app wires the store, the assignment engine and the
// observability sinks into a runnable service.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/transitops/fleetassign/config"
	"github.com/transitops/fleetassign/core/assign"
	"github.com/transitops/fleetassign/core/events"
	coremetrics "github.com/transitops/fleetassign/core/metrics"
	"github.com/transitops/fleetassign/core/monitoring"
	"github.com/transitops/fleetassign/infra/logger"
	"github.com/transitops/fleetassign/infra/metrics"
	"github.com/transitops/fleetassign/infra/notify"
	"github.com/transitops/fleetassign/infra/store"
	"github.com/transitops/fleetassign/internal/eventbus"
)

// Service orchestrates planning runs against the fleet store.
type Service struct {
	cfg      *config.Config
	store    store.Store
	engine   *assign.Engine
	sink     coremetrics.MetricsSink
	notifier notify.Notifier
	runBus   *eventbus.Bus[events.RunCompletedEvent]
	alertBus *eventbus.Bus[events.AlertEvent]
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notifier.Enabled {
		n, err := notify.NewMQTTNotifier(cfg.Notifier.MQTT)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		notifier = n
	}

	engine := assign.New(cfg.Params.ToModel(),
		assign.WithWeights(cfg.Weights),
		assign.WithLogger(logger.New("engine")),
	)

	svc := &Service{
		cfg:      cfg,
		store:    st,
		engine:   engine,
		sink:     sink,
		notifier: notifier,
		runBus:   eventbus.New[events.RunCompletedEvent](),
		alertBus: eventbus.New[events.AlertEvent](),
		log:      log,
	}
	svc.startObservers()
	return svc, nil
}

// startObservers forwards bus events to the notifier. Metrics sinks and
// the store are written synchronously in PlanDate; notification is fire
// and forget.
func (s *Service) startObservers() {
	runs := s.runBus.Subscribe()
	alerts := s.alertBus.Subscribe()
	go func() {
		for ev := range runs {
			sum := notify.RunSummary{
				RunID:      ev.RunID,
				TargetDate: ev.TargetDate.Format("2006-01-02"),
				Metrics:    ev.Metrics,
				Assigned:   ev.Assignments,
			}
			if err := s.notifier.NotifyRun(sum); err != nil {
				s.log.Errorf("notify run: %v", err)
			}
			if err := s.notifier.NotifyUnassigned(ev.RunID, ev.Unassigned); err != nil {
				s.log.Errorf("notify unassigned: %v", err)
			}
		}
	}()
	go func() {
		for ev := range alerts {
			if err := s.notifier.NotifyAlerts(ev.RunID, ev.Alerts); err != nil {
				s.log.Errorf("notify alerts: %v", err)
			}
		}
	}()
}

// PlanDate executes one full planning run for the target date: snapshot,
// assignment, persistence, metrics and alerting.
func (s *Service) PlanDate(ctx context.Context, date time.Time) (store.Run, error) {
	start := time.Now()
	runID := uuid.NewString()

	units, err := s.store.Units(ctx)
	if err != nil {
		return store.Run{}, fmt.Errorf("load units: %w", err)
	}
	routes, err := s.store.Routes(ctx)
	if err != nil {
		return store.Run{}, fmt.Errorf("load routes: %w", err)
	}
	schedules, err := s.store.Schedules(ctx)
	if err != nil {
		return store.Run{}, fmt.Errorf("load schedules: %w", err)
	}

	res, err := s.engine.Assign(units, routes, schedules, date)
	if err != nil {
		return store.Run{}, fmt.Errorf("assign: %w", err)
	}
	m, err := s.engine.Metrics(res, units, routes, schedules, date)
	if err != nil {
		return store.Run{}, fmt.Errorf("metrics: %w", err)
	}
	duration := time.Since(start)

	if err := s.store.ReplaceAssignments(ctx, date, res.Assignments); err != nil {
		return store.Run{}, fmt.Errorf("persist assignments: %w", err)
	}
	params, err := json.Marshal(s.cfg.Params)
	if err != nil {
		return store.Run{}, err
	}
	run := store.Run{
		ID:         runID,
		TargetDate: date,
		PlannedAt:  start.UTC(),
		Duration:   duration,
		Metrics:    m,
		ParamsJSON: string(params),
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		return store.Run{}, fmt.Errorf("persist run: %w", err)
	}

	rec := coremetrics.RunRecord{
		RunID:       runID,
		TargetDate:  date,
		PlannedAt:   run.PlannedAt,
		Duration:    duration,
		Metrics:     m,
		Assignments: res.Assignments,
		Unassigned:  res.Unassigned,
	}
	if err := s.sink.RecordRun(rec); err != nil {
		s.log.Errorf("record run: %v", err)
	}

	alerts := s.cfg.Thresholds.Check(m, start)
	if len(alerts) > 0 {
		if err := s.store.SaveAlerts(ctx, runID, alerts); err != nil {
			s.log.Errorf("persist alerts: %v", err)
		}
		s.recordAlerts(alerts)
		s.alertBus.Publish(events.AlertEvent{RunID: runID, Alerts: alerts})
	}

	s.runBus.Publish(events.RunCompletedEvent{
		RunID:       runID,
		TargetDate:  date,
		Duration:    duration,
		Metrics:     m,
		Assignments: res.Assignments,
		Unassigned:  res.Unassigned,
	})

	s.log.Infof("planned %s: %d/%d schedules assigned, coverage %.1f%%, run %s",
		date.Format("2006-01-02"), m.AssignedCount, m.TotalSchedules, m.CoverageRate, runID)
	return run, nil
}

func (s *Service) recordAlerts(alerts []monitoring.Alert) {
	if rec, ok := s.sink.(coremetrics.AlertRecorder); ok {
		if err := rec.RecordAlerts(alerts); err != nil {
			s.log.Errorf("record alerts: %v", err)
		}
	}
}

// Seed populates the store with the sample fleet.
func (s *Service) Seed(ctx context.Context) error {
	return store.Seed(ctx, s.store)
}

// History returns the most recent planning runs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]store.Run, error) {
	return s.store.Runs(ctx, limit)
}

// Run starts the long-running mode: the next day is planned immediately
// and then on every interval tick, with Prometheus metrics exposed
// meanwhile. It blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go func() {
		if err := metrics.StartPromServer(ctx, s.cfg.Planner.PrometheusAddr); err != nil {
			s.log.Errorf("prom server: %v", err)
		}
	}()

	interval := time.Duration(s.cfg.Planner.IntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	plan := func() {
		date := time.Now().AddDate(0, 0, 1)
		if _, err := s.PlanDate(ctx, date); err != nil {
			s.log.Errorf("planning run: %v", err)
		}
	}
	plan()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			plan()
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.runBus.Close()
	s.alertBus.Close()
	s.notifier.Close()
	return s.store.Close()
}
