package model

import "fmt"

// UnitStatus describes whether a transport unit can be put into service.
type UnitStatus string

const (
	StatusAvailable   UnitStatus = "Available"
	StatusMaintenance UnitStatus = "Maintenance"
)

// Unit represents one transport unit of the fleet. Units are read-only
// during an optimization run; the fleet registry owns their lifecycle.
type Unit struct {
	ID             string
	Name           string
	Capacity       int     // passenger capacity
	FuelEfficiency float64 // km travelled per litre of fuel
	CostPerKm      float64 // operational cost per km
	Status         UnitStatus
	HomeLocation   string
	AllowedRoutes  []string // route IDs the unit is certified to serve
}

// MayServe reports whether the unit is certified for the given route.
func (u Unit) MayServe(routeID string) bool {
	for _, id := range u.AllowedRoutes {
		if id == routeID {
			return true
		}
	}
	return false
}

// Validate checks that the unit configuration is sound.
func (u Unit) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("unit id must not be empty")
	}
	if u.Capacity <= 0 {
		return fmt.Errorf("unit %s: capacity must be positive", u.ID)
	}
	if u.FuelEfficiency <= 0 {
		return fmt.Errorf("unit %s: fuel efficiency must be positive", u.ID)
	}
	return nil
}
