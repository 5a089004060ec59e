package model

// Schedule is one timetabled departure on a route. Lower Priority numbers
// are served first when assigning units.
type Schedule struct {
	ID            string
	RouteID       string
	Departure     Clock
	OperatingDays []string // weekday codes, see DayCode
	Priority      int      // 1 = highest
}

// OperatesOn reports whether the schedule runs on the given weekday code.
func (s Schedule) OperatesOn(day string) bool {
	for _, d := range s.OperatingDays {
		if d == day {
			return true
		}
	}
	return false
}
