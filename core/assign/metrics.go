package assign

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/transitops/fleetassign/core/model"
)

// Metrics derives the run summary from a finished result against the same
// inputs that produced it. A dangling route reference in an assignment is
// a hard error, not a silent skip.
func (e *Engine) Metrics(res Result, units []model.Unit, routes []model.Route, schedules []model.Schedule, targetDate time.Time) (model.RunMetrics, error) {
	routeIdx := make(map[string]model.Route, len(routes))
	for _, r := range routes {
		routeIdx[r.ID] = r
	}

	m := model.RunMetrics{
		AssignedCount: len(res.Assignments),
		WorkingMin:    make(map[string]int, len(units)),
		IdleMin:       make(map[string]int, len(units)),
	}

	m.TotalSchedules = len(activeSchedules(schedules, targetDate))
	if m.TotalSchedules > 0 {
		m.CoverageRate = float64(m.AssignedCount) / float64(m.TotalSchedules) * 100
	}

	used := make(map[string]bool)
	scores := make([]float64, 0, len(res.Assignments))
	for _, a := range res.Assignments {
		r, ok := routeIdx[a.RouteID]
		if !ok {
			return model.RunMetrics{}, fmt.Errorf("assignment %s references route %s: %w", a.ScheduleID, a.RouteID, model.ErrNotFound)
		}
		used[a.UnitID] = true
		m.TotalFuelCost += a.FuelCost
		m.TotalDistanceKm += r.RoundTripKm()
		scores = append(scores, a.TotalScore)
	}
	m.UnitsUsed = len(used)
	if len(scores) > 0 {
		m.AverageScore = stat.Mean(scores, nil)
	}

	for _, u := range units {
		if u.Status == model.StatusAvailable {
			m.UnitsAvailable++
		}
	}
	if m.UnitsAvailable > 0 {
		m.UtilizationRate = float64(m.UnitsUsed) / float64(m.UnitsAvailable) * 100
	}

	maxWorkingMin := e.params.MaxWorkingHoursPerDay * 60
	for _, u := range units {
		working := 0
		for _, a := range res.Assignments {
			if a.UnitID != u.ID {
				continue
			}
			if cycle := int(a.Return - a.Departure); cycle > 0 {
				working += cycle
			}
		}
		m.WorkingMin[u.ID] = working
		idle := maxWorkingMin - working
		if idle < 0 {
			idle = 0
		}
		m.IdleMin[u.ID] = idle
		m.TotalIdleMin += idle
	}
	if m.UnitsAvailable > 0 {
		m.AverageIdleMin = float64(m.TotalIdleMin) / float64(m.UnitsAvailable)
	}
	return m, nil
}
