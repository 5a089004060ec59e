package config

import (
	"fmt"

	"github.com/transitops/fleetassign/core/model"
)

// TravelTimeConfig is one deadhead entry of the travel time table.
type TravelTimeConfig struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Minutes int    `json:"minutes"`
}

// ParamsConfig mirrors model.OperationalParameters in a file-friendly shape.
type ParamsConfig struct {
	TurnaroundMin         int                `json:"turnaround_min"`
	MinimumRestMin        int                `json:"minimum_rest_min"`
	FuelPricePerLiter     float64            `json:"fuel_price_per_liter"`
	MaxWorkingHoursPerDay int                `json:"max_working_hours_per_day"`
	TravelTimes           []TravelTimeConfig `json:"travel_times"`
}

// SetDefaults fills unset fields from the operating defaults.
func (c *ParamsConfig) SetDefaults() {
	def := model.DefaultParameters()
	if c.TurnaroundMin == 0 {
		c.TurnaroundMin = def.TurnaroundMin
	}
	if c.MinimumRestMin == 0 {
		c.MinimumRestMin = def.MinimumRestMin
	}
	if c.FuelPricePerLiter == 0 {
		c.FuelPricePerLiter = def.FuelPricePerLiter
	}
	if c.MaxWorkingHoursPerDay == 0 {
		c.MaxWorkingHoursPerDay = def.MaxWorkingHoursPerDay
	}
}

func (c ParamsConfig) Validate() error {
	if c.TurnaroundMin < 0 || c.MinimumRestMin < 0 {
		return fmt.Errorf("turnaround and rest minutes must not be negative")
	}
	if c.FuelPricePerLiter <= 0 {
		return fmt.Errorf("fuel_price_per_liter must be positive")
	}
	if c.MaxWorkingHoursPerDay <= 0 || c.MaxWorkingHoursPerDay > 24 {
		return fmt.Errorf("max_working_hours_per_day must be within (0,24]")
	}
	for _, tt := range c.TravelTimes {
		if tt.From == "" || tt.To == "" || tt.Minutes < 0 {
			return fmt.Errorf("travel time %q -> %q: locations required, minutes must not be negative", tt.From, tt.To)
		}
	}
	return nil
}

// ToModel converts the section into engine parameters.
func (c ParamsConfig) ToModel() model.OperationalParameters {
	p := model.OperationalParameters{
		TurnaroundMin:         c.TurnaroundMin,
		MinimumRestMin:        c.MinimumRestMin,
		FuelPricePerLiter:     c.FuelPricePerLiter,
		MaxWorkingHoursPerDay: c.MaxWorkingHoursPerDay,
		TravelTimes:           model.TravelTimeTable{},
	}
	for _, tt := range c.TravelTimes {
		p.TravelTimes[model.TravelPair{From: tt.From, To: tt.To}] = tt.Minutes
	}
	return p
}
