package assign

import (
	"time"

	"github.com/transitops/fleetassign/core/model"
)

// CostBaseline carries the run-wide average operational and fuel cost a
// candidate's total cost is compared against.
type CostBaseline struct {
	Operational float64
	Fuel        float64
}

// Scorer evaluates one unit against one schedule. Two strategies exist:
// HomeBaseScorer judges distance fit from the unit's home location only,
// LocationAwareScorer from its current in-run location including deadhead
// and availability. The engine's main loop uses the location-aware one.
type Scorer interface {
	Score(u model.Unit, r model.Route, s model.Schedule, targetDate time.Time, avg CostBaseline, prior []model.Assignment) model.AssignmentScore
}

// capacityScore rewards a tight capacity fit and penalises oversized
// units. Units below the requirement score zero.
func capacityScore(unitCap, required int) float64 {
	if unitCap < required {
		return 0
	}
	if required == 0 {
		return 1
	}
	excess := float64(unitCap-required) / float64(required)
	switch {
	case excess <= 0.2:
		return 1.0
	case excess <= 0.5:
		return 0.8
	default:
		return max(0.5, 1.0-excess*0.5)
	}
}

// homeDistanceScore is the simple location fit: full score when the unit
// is stationed at the route origin.
func homeDistanceScore(home, origin string) float64 {
	if home == origin {
		return 1.0
	}
	return 0.7
}

// deadheadDistanceScore grades the repositioning effort needed before the
// unit can depart.
func deadheadDistanceScore(deadheadMin int) float64 {
	switch {
	case deadheadMin == 0:
		return 1.0
	case deadheadMin <= 30:
		return 0.8
	case deadheadMin <= 60:
		return 0.6
	case deadheadMin <= 120:
		return 0.4
	default:
		return 0.2
	}
}

func availabilityScore(status model.UnitStatus, routeAllowed bool) float64 {
	if status != model.StatusAvailable || !routeAllowed {
		return 0
	}
	return 1.0
}

// costScore compares the candidate's round-trip cost against the run
// average. A zero average (degenerate input) yields the neutral 0.5.
func costScore(totalCost, avgTotal float64) float64 {
	if avgTotal == 0 {
		return 0.5
	}
	ratio := totalCost / avgTotal
	switch {
	case ratio <= 0.8:
		return 1.0
	case ratio <= 1.0:
		return 0.9
	case ratio <= 1.2:
		return 0.7
	default:
		return max(0.3, 1.0-(ratio-1.0)*0.5)
	}
}

// fuelCost prices the fuel for one round trip on the route.
func fuelCost(p model.OperationalParameters, oneWayKm, efficiency float64) float64 {
	if efficiency <= 0 {
		return 0
	}
	litres := oneWayKm * 2 / efficiency
	return litres * p.FuelPricePerLiter
}

func operationalCost(u model.Unit, r model.Route) float64 {
	return u.CostPerKm * r.RoundTripKm()
}

// HomeBaseScorer is the legacy strategy kept for cross-checking and
// simplified configurations.
type HomeBaseScorer struct {
	weights Weights
	params  model.OperationalParameters
	checker *Checker
}

// NewHomeBaseScorer builds the simple strategy on top of the shared checker.
func NewHomeBaseScorer(w Weights, params model.OperationalParameters, checker *Checker) *HomeBaseScorer {
	return &HomeBaseScorer{weights: w, params: params, checker: checker}
}

func (sc *HomeBaseScorer) Score(u model.Unit, r model.Route, s model.Schedule, targetDate time.Time, avg CostBaseline, prior []model.Assignment) model.AssignmentScore {
	feasible, violations := sc.checker.Check(u, r, s, targetDate, prior)

	capScore := capacityScore(u.Capacity, r.RequiredCapacity)
	distScore := homeDistanceScore(u.HomeLocation, r.Origin)
	availScore := availabilityScore(u.Status, u.MayServe(r.ID))
	cost := costScore(operationalCost(u, r)+fuelCost(sc.params, r.DistanceKm, u.FuelEfficiency), avg.Operational+avg.Fuel)

	w := sc.weights
	total := w.Capacity*capScore + w.Distance*distScore + w.Availability*availScore + w.Cost*cost

	return model.AssignmentScore{
		UnitID:            u.ID,
		ScheduleID:        s.ID,
		RouteID:           r.ID,
		CapacityScore:     capScore,
		DistanceScore:     distScore,
		AvailabilityScore: availScore,
		CostScore:         cost,
		TotalScore:        total,
		Feasible:          feasible,
		Violations:        violations,
	}
}

// LocationAwareScorer scores against the unit's current in-run location.
// On top of the four weighted components it damps capacity, distance and
// cost by 0.9 and blends in two small extra terms: a location-fit bonus
// for units already at the origin and a rest-slack fit.
type LocationAwareScorer struct {
	weights Weights
	params  model.OperationalParameters
	checker *Checker
	tracker *Tracker
}

// NewLocationAwareScorer builds the engine's main scoring strategy.
func NewLocationAwareScorer(w Weights, params model.OperationalParameters, checker *Checker, tracker *Tracker) *LocationAwareScorer {
	return &LocationAwareScorer{weights: w, params: params, checker: checker, tracker: tracker}
}

func (sc *LocationAwareScorer) Score(u model.Unit, r model.Route, s model.Schedule, targetDate time.Time, avg CostBaseline, prior []model.Assignment) model.AssignmentScore {
	feasible, violations := sc.checker.CheckWithLocation(u, r, s, targetDate, prior)

	loc := sc.tracker.LastLocation(u.ID, prior)
	capScore := capacityScore(u.Capacity, r.RequiredCapacity)
	distScore := deadheadDistanceScore(sc.params.DeadheadMin(loc, r.Origin))
	availScore := availabilityScore(u.Status, u.MayServe(r.ID))
	cost := costScore(operationalCost(u, r)+fuelCost(sc.params, r.DistanceKm, u.FuelEfficiency), avg.Operational+avg.Fuel)

	locationFit := 0.3
	if loc == r.Origin {
		locationFit = 1.0
	}

	slack := int(s.Departure - sc.tracker.AvailableFrom(u.ID, r.Origin, prior))
	restFit := 0.0
	switch {
	case slack >= sc.params.MinimumRestMin:
		restFit = 1.0
	case slack > 0:
		restFit = 0.5
	}

	w := sc.weights
	total := w.Capacity*capScore*0.9 +
		w.Distance*distScore*0.9 +
		w.Availability*availScore +
		w.Cost*cost*0.9 +
		0.1*locationFit +
		0.1*restFit

	return model.AssignmentScore{
		UnitID:            u.ID,
		ScheduleID:        s.ID,
		RouteID:           r.ID,
		CapacityScore:     capScore,
		DistanceScore:     distScore,
		AvailabilityScore: availScore,
		CostScore:         cost,
		TotalScore:        total,
		Feasible:          feasible,
		Violations:        violations,
	}
}
