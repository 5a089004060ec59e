package store

import (
	"context"

	"github.com/transitops/fleetassign/core/model"
)

// SampleUnits returns the demonstration fleet.
func SampleUnits() []model.Unit {
	return []model.Unit{
		{ID: "U001", Name: "Bus Alpha-01", Capacity: 45, FuelEfficiency: 4.5, CostPerKm: 2500,
			Status: model.StatusAvailable, HomeLocation: "Terminal A", AllowedRoutes: []string{"R001", "R002", "R003"}},
		{ID: "U002", Name: "Bus Alpha-02", Capacity: 45, FuelEfficiency: 4.2, CostPerKm: 2600,
			Status: model.StatusAvailable, HomeLocation: "Terminal A", AllowedRoutes: []string{"R001", "R002", "R004"}},
		{ID: "U003", Name: "Bus Beta-01", Capacity: 55, FuelEfficiency: 3.8, CostPerKm: 3000,
			Status: model.StatusAvailable, HomeLocation: "Terminal B", AllowedRoutes: []string{"R002", "R003", "R004", "R005"}},
		{ID: "U004", Name: "Bus Beta-02", Capacity: 55, FuelEfficiency: 3.9, CostPerKm: 2900,
			Status: model.StatusAvailable, HomeLocation: "Terminal B", AllowedRoutes: []string{"R001", "R003", "R005"}},
		{ID: "U005", Name: "Bus Gamma-01", Capacity: 35, FuelEfficiency: 5.2, CostPerKm: 2200,
			Status: model.StatusAvailable, HomeLocation: "Terminal C", AllowedRoutes: []string{"R003", "R004", "R005"}},
		{ID: "U006", Name: "Bus Gamma-02", Capacity: 35, FuelEfficiency: 5.0, CostPerKm: 2300,
			Status: model.StatusMaintenance, HomeLocation: "Terminal C", AllowedRoutes: []string{"R001", "R002", "R005"}},
		{ID: "U007", Name: "Bus Delta-01", Capacity: 50, FuelEfficiency: 4.0, CostPerKm: 2700,
			Status: model.StatusAvailable, HomeLocation: "Terminal A", AllowedRoutes: []string{"R001", "R002", "R003", "R004"}},
		{ID: "U008", Name: "Bus Delta-02", Capacity: 50, FuelEfficiency: 4.1, CostPerKm: 2650,
			Status: model.StatusAvailable, HomeLocation: "Terminal B", AllowedRoutes: []string{"R002", "R003", "R004", "R005"}},
	}
}

// SampleRoutes returns the demonstration route network.
func SampleRoutes() []model.Route {
	return []model.Route{
		{ID: "R001", Name: "Terminal A - Bandara", Origin: "Terminal A", Destination: "Bandara",
			DistanceKm: 25.5, TravelTimeMin: 45, Type: "Express", RequiredCapacity: 40},
		{ID: "R002", Name: "Terminal A - Pusat Kota", Origin: "Terminal A", Destination: "Pusat Kota",
			DistanceKm: 15.0, TravelTimeMin: 35, Type: "Regular", RequiredCapacity: 30},
		{ID: "R003", Name: "Terminal B - Terminal C", Origin: "Terminal B", Destination: "Terminal C",
			DistanceKm: 30.0, TravelTimeMin: 50, Type: "Inter-Terminal", RequiredCapacity: 45},
		{ID: "R004", Name: "Terminal B - Industri", Origin: "Terminal B", Destination: "Kawasan Industri",
			DistanceKm: 20.0, TravelTimeMin: 40, Type: "Regular", RequiredCapacity: 50},
		{ID: "R005", Name: "Terminal C - Wisata", Origin: "Terminal C", Destination: "Area Wisata",
			DistanceKm: 35.0, TravelTimeMin: 60, Type: "Tourism", RequiredCapacity: 35},
	}
}

// SampleSchedules returns the demonstration timetable.
func SampleSchedules() []model.Schedule {
	weekdays := []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	withSat := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	daily := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	weekend := []string{"Sat", "Sun"}
	return []model.Schedule{
		{ID: "S001", RouteID: "R001", Departure: model.MustClock("06:00"), OperatingDays: weekdays, Priority: 1},
		{ID: "S002", RouteID: "R001", Departure: model.MustClock("08:00"), OperatingDays: weekdays, Priority: 1},
		{ID: "S003", RouteID: "R001", Departure: model.MustClock("10:00"), OperatingDays: withSat, Priority: 2},
		{ID: "S004", RouteID: "R002", Departure: model.MustClock("06:30"), OperatingDays: weekdays, Priority: 1},
		{ID: "S005", RouteID: "R002", Departure: model.MustClock("09:00"), OperatingDays: withSat, Priority: 2},
		{ID: "S006", RouteID: "R002", Departure: model.MustClock("12:00"), OperatingDays: daily, Priority: 2},
		{ID: "S007", RouteID: "R003", Departure: model.MustClock("07:00"), OperatingDays: weekdays, Priority: 1},
		{ID: "S008", RouteID: "R003", Departure: model.MustClock("14:00"), OperatingDays: withSat, Priority: 2},
		{ID: "S009", RouteID: "R004", Departure: model.MustClock("05:30"), OperatingDays: weekdays, Priority: 1},
		{ID: "S010", RouteID: "R004", Departure: model.MustClock("07:30"), OperatingDays: weekdays, Priority: 1},
		{ID: "S011", RouteID: "R004", Departure: model.MustClock("17:00"), OperatingDays: weekdays, Priority: 1},
		{ID: "S012", RouteID: "R005", Departure: model.MustClock("08:00"), OperatingDays: weekend, Priority: 2},
		{ID: "S013", RouteID: "R005", Departure: model.MustClock("10:00"), OperatingDays: weekend, Priority: 2},
		{ID: "S014", RouteID: "R005", Departure: model.MustClock("14:00"), OperatingDays: weekend, Priority: 3},
	}
}

// Seed writes the sample fleet, routes and schedules into the store.
// Existing rows with the same ids are overwritten.
func Seed(ctx context.Context, s Store) error {
	for _, u := range SampleUnits() {
		if err := s.PutUnit(ctx, u); err != nil {
			return err
		}
	}
	for _, r := range SampleRoutes() {
		if err := s.PutRoute(ctx, r); err != nil {
			return err
		}
	}
	for _, sc := range SampleSchedules() {
		if err := s.PutSchedule(ctx, sc); err != nil {
			return err
		}
	}
	return nil
}
