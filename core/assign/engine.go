package assign

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/transitops/fleetassign/core/logger"
	"github.com/transitops/fleetassign/core/model"
)

// maxUnassignedReasons caps the violation reasons reported for one
// unassignable schedule.
const maxUnassignedReasons = 3

// Engine turns a fleet snapshot and a day's timetable into committed
// assignments. The pass is sequential greedy by design: schedules are
// served in priority order and every committed decision immediately
// constrains the feasibility of the next one, so the loop must never be
// parallelised within a run.
type Engine struct {
	params  model.OperationalParameters
	weights Weights
	log     logger.Logger
}

// Option customises an Engine.
type Option func(*Engine)

// WithWeights overrides the default scoring weights.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithLogger attaches a logger for per-decision debug output.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an Engine with the given operational parameters.
func New(params model.OperationalParameters, opts ...Option) *Engine {
	e := &Engine{params: params, weights: DefaultWeights(), log: logger.Nop{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one optimization run. Assignments are ordered
// by decision time; Unassigned lists the departures no unit could serve.
type Result struct {
	Assignments []model.Assignment
	Unassigned  []model.UnassignedSchedule
}

// Assign plans the target day. Units are considered in their input order
// and ties on score keep the first maximum, so identical inputs always
// produce identical output.
func (e *Engine) Assign(units []model.Unit, routes []model.Route, schedules []model.Schedule, targetDate time.Time) (Result, error) {
	routeIdx := make(map[string]model.Route, len(routes))
	for _, r := range routes {
		routeIdx[r.ID] = r
	}
	unitIdx := make(map[string]model.Unit, len(units))
	for _, u := range units {
		unitIdx[u.ID] = u
	}
	for _, s := range schedules {
		if _, ok := routeIdx[s.RouteID]; !ok {
			return Result{}, fmt.Errorf("schedule %s references route %s: %w", s.ID, s.RouteID, model.ErrNotFound)
		}
	}

	avg := costBaseline(units, routes, e.params)
	active := activeSchedules(schedules, targetDate)

	tracker := NewTracker(e.params, units, routes)
	checker := NewChecker(e.params, tracker)
	scorer := NewLocationAwareScorer(e.weights, e.params, checker, tracker)

	var res Result
	for _, sch := range active {
		route := routeIdx[sch.RouteID]

		// Partition base-feasible units by whether they already sit at
		// the route origin. Units at the origin always win over units
		// elsewhere, regardless of score, so deadhead moves only happen
		// when nothing local can serve the departure.
		var atOrigin, elsewhere []model.Unit
		for _, u := range units {
			if ok, _ := checker.Check(u, route, sch, targetDate, res.Assignments); !ok {
				continue
			}
			if tracker.LastLocation(u.ID, res.Assignments) == route.Origin {
				atOrigin = append(atOrigin, u)
			} else {
				elsewhere = append(elsewhere, u)
			}
		}

		best, found := e.pickBest(atOrigin, route, sch, targetDate, avg, res.Assignments, tracker, scorer)
		if !found {
			best, found = e.pickBest(elsewhere, route, sch, targetDate, avg, res.Assignments, tracker, scorer)
		}
		if !found {
			unassigned := diagnose(units, route, sch, targetDate, avg, res.Assignments, scorer)
			res.Unassigned = append(res.Unassigned, unassigned)
			e.log.Warnf("schedule %s unassigned: %s", sch.ID, strings.Join(unassigned.Reasons, "; "))
			continue
		}

		unit := unitIdx[best.UnitID]
		ret := sch.Departure + model.Clock(e.params.CycleMin(route.TravelTimeMin))
		res.Assignments = append(res.Assignments, model.Assignment{
			ScheduleID: sch.ID,
			RouteID:    sch.RouteID,
			UnitID:     best.UnitID,
			Departure:  sch.Departure,
			Return:     ret,
			TotalScore: best.TotalScore,
			FuelCost:   fuelCost(e.params, route.DistanceKm, unit.FuelEfficiency),
			Reason:     buildReason(best),
			Status:     model.StatusAssigned,
		})
		e.log.Debugw("schedule assigned", map[string]any{
			"schedule": sch.ID,
			"unit":     best.UnitID,
			"score":    best.TotalScore,
			"return":   ret.String(),
		})
	}
	return res, nil
}

// pickBest returns the best feasible candidate of the group, or false when
// none qualifies. The scan is a stable linear pass over the caller's unit
// order: the first unit reaching the maximum score wins.
func (e *Engine) pickBest(group []model.Unit, route model.Route, sch model.Schedule, targetDate time.Time, avg CostBaseline, prior []model.Assignment, tracker *Tracker, scorer Scorer) (model.AssignmentScore, bool) {
	var best model.AssignmentScore
	found := false
	for _, u := range group {
		if tracker.AvailableFrom(u.ID, route.Origin, prior) > sch.Departure {
			continue
		}
		score := scorer.Score(u, route, sch, targetDate, avg, prior)
		if !score.Feasible {
			continue
		}
		if !found || score.TotalScore > best.TotalScore {
			best = score
			found = true
		}
	}
	return best, found
}

// diagnose scores every unit against the schedule purely for reporting,
// collecting the distinct violations in first-seen order.
func diagnose(units []model.Unit, route model.Route, sch model.Schedule, targetDate time.Time, avg CostBaseline, prior []model.Assignment, scorer Scorer) model.UnassignedSchedule {
	seen := make(map[string]bool)
	var reasons []string
	for _, u := range units {
		score := scorer.Score(u, route, sch, targetDate, avg, prior)
		for _, v := range score.Violations {
			if seen[v] {
				continue
			}
			seen[v] = true
			reasons = append(reasons, v)
		}
	}
	if len(reasons) > maxUnassignedReasons {
		reasons = reasons[:maxUnassignedReasons]
	}
	return model.UnassignedSchedule{
		ScheduleID: sch.ID,
		RouteID:    sch.RouteID,
		Departure:  sch.Departure,
		Reasons:    reasons,
	}
}

// activeSchedules filters the timetable to the target weekday and orders
// it by (priority, departure). The sort is stable so equal schedules keep
// their input order.
func activeSchedules(schedules []model.Schedule, targetDate time.Time) []model.Schedule {
	day := model.DayCode(targetDate)
	var active []model.Schedule
	for _, s := range schedules {
		if s.OperatesOn(day) {
			active = append(active, s)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		return active[i].Departure < active[j].Departure
	})
	return active
}

// costBaseline computes the fleet-average round-trip operational and fuel
// cost used to normalise cost scores. Empty inputs yield zero baselines,
// which the cost score treats as neutral.
func costBaseline(units []model.Unit, routes []model.Route, params model.OperationalParameters) CostBaseline {
	if len(units) == 0 || len(routes) == 0 {
		return CostBaseline{}
	}
	var costPerKm, efficiency, distance float64
	for _, u := range units {
		costPerKm += u.CostPerKm
		efficiency += u.FuelEfficiency
	}
	for _, r := range routes {
		distance += r.DistanceKm
	}
	costPerKm /= float64(len(units))
	efficiency /= float64(len(units))
	distance /= float64(len(routes))

	baseline := CostBaseline{Operational: costPerKm * distance * 2}
	if efficiency > 0 {
		baseline.Fuel = distance * 2 / efficiency * params.FuelPricePerLiter
	}
	return baseline
}

// buildReason summarises why the winning unit stood out.
func buildReason(s model.AssignmentScore) string {
	var parts []string
	if s.CapacityScore >= 0.9 {
		parts = append(parts, "tight capacity fit")
	}
	if s.DistanceScore >= 0.9 {
		parts = append(parts, "unit at origin")
	}
	if s.CostScore >= 0.8 {
		parts = append(parts, "cost efficient")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("highest score: %.2f", s.TotalScore)
	}
	return fmt.Sprintf("highest score (%.2f): %s", s.TotalScore, strings.Join(parts, ", "))
}
