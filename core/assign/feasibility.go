package assign

import (
	"fmt"
	"time"

	"github.com/transitops/fleetassign/core/model"
)

// Checker evaluates the hard constraints of a (unit, schedule) pair.
// Constraints are checked independently and every applicable violation is
// collected, so callers can report complete reasons instead of only the
// first failure.
type Checker struct {
	params  model.OperationalParameters
	tracker *Tracker
}

// NewChecker builds a checker sharing the run's tracker.
func NewChecker(params model.OperationalParameters, tracker *Tracker) *Checker {
	return &Checker{params: params, tracker: tracker}
}

// Check evaluates the location-agnostic constraints: route certification,
// capacity, unit status, operating day, and pairwise time overlap against
// the unit's already committed assignments. Overlap intervals are padded
// with the minimum rest time on both sides.
func (c *Checker) Check(u model.Unit, r model.Route, s model.Schedule, targetDate time.Time, prior []model.Assignment) (bool, []string) {
	var violations []string

	if !u.MayServe(r.ID) {
		violations = append(violations, fmt.Sprintf("unit %s not certified for route %s", u.ID, r.ID))
	}
	if u.Capacity < r.RequiredCapacity {
		violations = append(violations, fmt.Sprintf("unit %s capacity (%d) below route requirement (%d)", u.ID, u.Capacity, r.RequiredCapacity))
	}
	if u.Status != model.StatusAvailable {
		violations = append(violations, fmt.Sprintf("unit %s is in status %s", u.ID, u.Status))
	}
	day := model.DayCode(targetDate)
	if !s.OperatesOn(day) {
		violations = append(violations, fmt.Sprintf("schedule %s does not operate on %s", s.ID, day))
	}

	dep := s.Departure
	ret := dep + model.Clock(c.params.CycleMin(r.TravelTimeMin))
	buffer := model.Clock(c.params.MinimumRestMin)
	for _, a := range prior {
		if a.UnitID != u.ID {
			continue
		}
		if ret+buffer <= a.Departure || a.Return+buffer <= dep {
			continue
		}
		violations = append(violations, fmt.Sprintf("time conflict with assignment %s", a.ScheduleID))
	}

	return len(violations) == 0, violations
}

// CheckWithLocation runs Check and additionally rejects units that cannot
// reach the route origin (rest plus any deadhead leg) before departure.
func (c *Checker) CheckWithLocation(u model.Unit, r model.Route, s model.Schedule, targetDate time.Time, prior []model.Assignment) (bool, []string) {
	ok, violations := c.Check(u, r, s, targetDate, prior)
	ready := c.tracker.AvailableFrom(u.ID, r.Origin, prior)
	if ready > s.Departure {
		ok = false
		violations = append(violations, fmt.Sprintf("unit %s not ready in time: available at %s, departure at %s", u.ID, ready, s.Departure))
	}
	return ok, violations
}
