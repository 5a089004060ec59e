package model

// RunMetrics summarises one finished optimization run. Idle and working
// minutes are keyed by unit id and cover every unit in the input fleet,
// assigned or not.
type RunMetrics struct {
	TotalSchedules  int     // schedules active on the target day
	AssignedCount   int
	CoverageRate    float64 // percent of active schedules assigned
	UtilizationRate float64 // percent of available units used
	TotalFuelCost   float64
	TotalDistanceKm float64 // sum of round-trip distances of assigned routes
	AverageScore    float64
	UnitsUsed       int
	UnitsAvailable  int

	WorkingMin map[string]int
	IdleMin    map[string]int

	TotalIdleMin   int
	AverageIdleMin float64
}
