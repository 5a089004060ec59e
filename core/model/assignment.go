package model

import "errors"

// ErrNotFound reports a dangling reference between collections, e.g. a
// schedule naming a route id that is absent from the route set.
var ErrNotFound = errors.New("not found")

// StatusAssigned is the default status tag of a committed assignment.
const StatusAssigned = "Assigned"

// AssignmentScore is the transient evaluation of one (unit, schedule)
// pair. It exists only while candidates are compared and is never
// persisted.
type AssignmentScore struct {
	UnitID     string
	ScheduleID string
	RouteID    string

	CapacityScore     float64
	DistanceScore     float64
	AvailabilityScore float64
	CostScore         float64
	TotalScore        float64

	Feasible   bool
	Violations []string
}

// Assignment is one committed decision of the engine. The ordered list of
// assignments produced so far in a run is load-bearing state: later
// feasibility checks read it for time conflicts and unit locations.
type Assignment struct {
	ScheduleID string
	RouteID    string
	UnitID     string
	Departure  Clock
	Return     Clock // estimated, departure + cycle time
	TotalScore float64
	FuelCost   float64
	Reason     string // human-readable justification
	Status     string
}

// UnassignedSchedule records a departure no unit could serve, with up to
// three distinct violation reasons collected across all candidates.
type UnassignedSchedule struct {
	ScheduleID string
	RouteID    string
	Departure  Clock
	Reasons    []string
}
