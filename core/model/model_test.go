package model

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
		ok   bool
	}{
		{"00:00", 0, true},
		{"07:00", 420, true},
		{"23:59", 1439, true},
		{"7:5", 425, true},
		{"24:30", 1470, true}, // past-midnight returns are representable
		{"07", 0, false},
		{"07:60", 0, false},
		{"ab:cd", 0, false},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.ok != (err == nil) {
			t.Fatalf("ParseClock(%q) err = %v", c.in, err)
		}
		if err == nil && got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestClockString(t *testing.T) {
	if s := Clock(540).String(); s != "09:00" {
		t.Errorf("got %s", s)
	}
	if s := Clock(1470).String(); s != "24:30" {
		t.Errorf("got %s", s)
	}
}

func TestDayCode(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if d := DayCode(monday); d != "Mon" {
		t.Errorf("got %s", d)
	}
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	if d := DayCode(sunday); d != "Sun" {
		t.Errorf("got %s", d)
	}
}

func TestDeadheadMin(t *testing.T) {
	p := DefaultParameters()
	p.TravelTimes = TravelTimeTable{{From: "Terminal A", To: "Terminal B"}: 45}

	if m := p.DeadheadMin("Terminal A", "Terminal A"); m != 0 {
		t.Errorf("same location: got %d", m)
	}
	if m := p.DeadheadMin("Terminal A", "Terminal B"); m != 45 {
		t.Errorf("forward: got %d", m)
	}
	if m := p.DeadheadMin("Terminal B", "Terminal A"); m != 45 {
		t.Errorf("reverse: got %d", m)
	}
	if m := p.DeadheadMin("Terminal A", "Nowhere"); m != DefaultDeadheadMin {
		t.Errorf("unknown pair: got %d", m)
	}
}

func TestCycleMin(t *testing.T) {
	p := DefaultParameters() // turnaround 30
	if c := p.CycleMin(45); c != 120 {
		t.Errorf("cycle = %d, want 120", c)
	}
}

func TestUnitMayServe(t *testing.T) {
	u := Unit{ID: "U001", Capacity: 40, FuelEfficiency: 4, AllowedRoutes: []string{"R001", "R002"}}
	if !u.MayServe("R001") || u.MayServe("R009") {
		t.Errorf("MayServe mismatch")
	}
	if err := u.Validate(); err != nil {
		t.Errorf("valid unit rejected: %v", err)
	}
	if err := (Unit{ID: "U002"}).Validate(); err == nil {
		t.Errorf("expected validation error for zero capacity")
	}
}

func TestScheduleOperatesOn(t *testing.T) {
	s := Schedule{ID: "S001", OperatingDays: []string{"Mon", "Tue"}}
	if !s.OperatesOn("Mon") || s.OperatesOn("Sun") {
		t.Errorf("OperatesOn mismatch")
	}
}
