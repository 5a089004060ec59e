package assign

import "fmt"

// Weights controls the relative importance of the four scoring
// components. Weights need not sum to 1 and are never normalised, so a
// caller tuning one component does not silently rescale the others.
type Weights struct {
	Capacity     float64 `json:"capacity"`
	Distance     float64 `json:"distance"`
	Availability float64 `json:"availability"`
	Cost         float64 `json:"cost"`
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Capacity:     0.25,
		Distance:     0.20,
		Availability: 0.30,
		Cost:         0.25,
	}
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	if w.Capacity < 0 || w.Distance < 0 || w.Availability < 0 || w.Cost < 0 {
		return fmt.Errorf("scoring weights must not be negative")
	}
	return nil
}
