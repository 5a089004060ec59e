package assign

import (
	"errors"
	"testing"

	"github.com/transitops/fleetassign/core/model"
)

func TestMetricsFullCoverage(t *testing.T) {
	units, routes, schedules, params := scenarioA()
	e := New(params)
	res, err := e.Assign(units, routes, schedules, monday)
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.Metrics(res, units, routes, schedules, monday)
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalSchedules != 1 || m.AssignedCount != 1 {
		t.Errorf("counts = %d/%d", m.AssignedCount, m.TotalSchedules)
	}
	if m.CoverageRate != 100 {
		t.Errorf("coverage = %v", m.CoverageRate)
	}
	if m.UtilizationRate != 100 {
		t.Errorf("utilization = %v", m.UtilizationRate)
	}
	if m.TotalDistanceKm != 51 { // 25.5 both ways
		t.Errorf("distance = %v", m.TotalDistanceKm)
	}
	if m.AverageScore != res.Assignments[0].TotalScore {
		t.Errorf("average score = %v", m.AverageScore)
	}
	if m.UnitsUsed != 1 || m.UnitsAvailable != 1 {
		t.Errorf("units = %d/%d", m.UnitsUsed, m.UnitsAvailable)
	}
}

func TestMetricsIdleTimeLaw(t *testing.T) {
	units, routes, schedules, params := scenarioA()
	e := New(params)
	res, err := e.Assign(units, routes, schedules, monday)
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.Metrics(res, units, routes, schedules, monday)
	if err != nil {
		t.Fatal(err)
	}
	cap := params.MaxWorkingHoursPerDay * 60
	for id, working := range m.WorkingMin {
		idle := m.IdleMin[id]
		if working <= cap && working+idle != cap {
			t.Errorf("unit %s: working %d + idle %d != %d", id, working, idle, cap)
		}
		if idle < 0 {
			t.Errorf("unit %s: negative idle %d", id, idle)
		}
	}
	// The single 120 min duty leaves 600 idle minutes of the 12 h cap.
	if m.WorkingMin["U001"] != 120 || m.IdleMin["U001"] != 600 {
		t.Errorf("U001 working/idle = %d/%d", m.WorkingMin["U001"], m.IdleMin["U001"])
	}
	if m.AverageIdleMin != 600 {
		t.Errorf("average idle = %v", m.AverageIdleMin)
	}
}

func TestMetricsCoverageBounds(t *testing.T) {
	units, routes, schedules, params := scenarioA()
	units[0].Capacity = 30 // nothing assignable
	e := New(params)
	res, err := e.Assign(units, routes, schedules, monday)
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.Metrics(res, units, routes, schedules, monday)
	if err != nil {
		t.Fatal(err)
	}
	if m.CoverageRate != 0 || m.AverageScore != 0 || m.UtilizationRate != 0 {
		t.Errorf("empty run metrics = %+v", m)
	}
}

func TestMetricsEmptyInputs(t *testing.T) {
	_, _, _, params := scenarioA()
	e := New(params)
	m, err := e.Metrics(Result{}, nil, nil, nil, monday)
	if err != nil {
		t.Fatal(err)
	}
	if m.CoverageRate != 0 || m.UtilizationRate != 0 || m.AverageIdleMin != 0 {
		t.Errorf("degenerate metrics = %+v", m)
	}
}

func TestMetricsDanglingRoute(t *testing.T) {
	units, routes, schedules, params := scenarioA()
	e := New(params)
	res := Result{Assignments: []model.Assignment{{ScheduleID: "S001", RouteID: "R999", UnitID: "U001"}}}
	_, err := e.Metrics(res, units, routes, schedules, monday)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMetricsUtilizationCountsDistinctUnits(t *testing.T) {
	units, routes, schedules, params := scenarioA()
	spare := units[0]
	spare.ID = "U002"
	units = append(units, spare)
	schedules = append(schedules, model.Schedule{
		ID: "S002", RouteID: "R001", Departure: model.MustClock("16:00"),
		OperatingDays: []string{"Mon"}, Priority: 1,
	})
	e := New(params)
	res, err := e.Assign(units, routes, schedules, monday)
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.Metrics(res, units, routes, schedules, monday)
	if err != nil {
		t.Fatal(err)
	}
	// U001 is rested well before 16:00 and still at the origin, so it
	// serves both departures; the spare stays unused.
	if m.UnitsUsed != 1 || m.UtilizationRate != 50 {
		t.Errorf("used = %d, utilization = %v", m.UnitsUsed, m.UtilizationRate)
	}
}
