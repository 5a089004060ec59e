package assign

import "github.com/transitops/fleetassign/core/model"

// Tracker derives a unit's current location and earliest availability from
// the assignments committed earlier in the same run. Location is tracked
// only within a run: every unit starts the day at its home location and
// "moves" to the destination of whichever route it was last sent on.
type Tracker struct {
	params model.OperationalParameters
	units  map[string]model.Unit
	routes map[string]model.Route
}

// NewTracker builds a tracker over the run's fleet and route snapshot.
func NewTracker(params model.OperationalParameters, units []model.Unit, routes []model.Route) *Tracker {
	t := &Tracker{
		params: params,
		units:  make(map[string]model.Unit, len(units)),
		routes: make(map[string]model.Route, len(routes)),
	}
	for _, u := range units {
		t.units[u.ID] = u
	}
	for _, r := range routes {
		t.routes[r.ID] = r
	}
	return t
}

// LastLocation returns where the unit currently sits: the destination of
// its latest-departing committed assignment, or its home location when it
// has not been sent anywhere yet this run.
func (t *Tracker) LastLocation(unitID string, prior []model.Assignment) string {
	var last *model.Assignment
	for i := range prior {
		a := &prior[i]
		if a.UnitID != unitID {
			continue
		}
		if last == nil || a.Departure > last.Departure {
			last = a
		}
	}
	if last != nil {
		if r, ok := t.routes[last.RouteID]; ok {
			return r.Destination
		}
	}
	return t.units[unitID].HomeLocation
}

// AvailableFrom computes the earliest minute the unit can begin a duty
// departing from origin. A unit with no prior duty is ready at minute 0;
// otherwise it is ready at its latest return plus the minimum rest. Either
// way, a deadhead leg is added when the unit is not already at the origin.
func (t *Tracker) AvailableFrom(unitID, origin string, prior []model.Assignment) model.Clock {
	var ready model.Clock
	var lastReturn model.Clock
	has := false
	for _, a := range prior {
		if a.UnitID != unitID {
			continue
		}
		if !has || a.Return > lastReturn {
			lastReturn = a.Return
			has = true
		}
	}
	if has {
		ready = lastReturn + model.Clock(t.params.MinimumRestMin)
	}
	if loc := t.LastLocation(unitID, prior); loc != origin {
		ready += model.Clock(t.params.DeadheadMin(loc, origin))
	}
	return ready
}
