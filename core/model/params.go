package model

// DefaultDeadheadMin is charged for a repositioning move between two
// locations that have no entry in the travel-time table. The high value
// discourages unmodeled moves.
const DefaultDeadheadMin = 120

// TravelPair is an ordered pair of location names keying the deadhead table.
type TravelPair struct {
	From string
	To   string
}

// TravelTimeTable maps location pairs to deadhead travel minutes. Lookups
// are symmetric: (a,b) and (b,a) resolve to the same value.
type TravelTimeTable map[TravelPair]int

// OperationalParameters are the run-wide tuning knobs of the planner.
// They are supplied once per optimization run and never mutated during it.
type OperationalParameters struct {
	TurnaroundMin         int             // terminal preparation time added to each cycle
	MinimumRestMin        int             // required rest between two duties of one unit
	FuelPricePerLiter     float64
	MaxWorkingHoursPerDay int
	TravelTimes           TravelTimeTable
}

// DefaultParameters returns the operating defaults used when the
// configuration does not override them.
func DefaultParameters() OperationalParameters {
	return OperationalParameters{
		TurnaroundMin:         30,
		MinimumRestMin:        60,
		FuelPricePerLiter:     12500,
		MaxWorkingHoursPerDay: 12,
		TravelTimes:           TravelTimeTable{},
	}
}

// DeadheadMin returns the repositioning time between two locations. Same
// location costs nothing; pairs are looked up in both directions; unknown
// pairs fall back to DefaultDeadheadMin.
func (p OperationalParameters) DeadheadMin(from, to string) int {
	if from == to {
		return 0
	}
	if m, ok := p.TravelTimes[TravelPair{From: from, To: to}]; ok {
		return m
	}
	if m, ok := p.TravelTimes[TravelPair{From: to, To: from}]; ok {
		return m
	}
	return DefaultDeadheadMin
}

// CycleMin is the total time a unit is committed to one schedule: the
// round trip (both legs of the route) plus the terminal turnaround.
func (p OperationalParameters) CycleMin(routeTimeMin int) int {
	return routeTimeMin*2 + p.TurnaroundMin
}
