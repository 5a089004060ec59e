package model

// Route is a fixed transport line between two locations. A unit serving a
// schedule on a route always drives the full round trip.
type Route struct {
	ID               string
	Name             string
	Origin           string
	Destination      string
	DistanceKm       float64 // one-way distance
	TravelTimeMin    int     // scheduled one-way travel time
	Type             string  // free-form tag, e.g. "Express", "Regular"
	RequiredCapacity int     // minimum passenger capacity to serve the route
}

// RoundTripKm returns the total distance of one service cycle.
func (r Route) RoundTripKm() float64 { return r.DistanceKm * 2 }
