package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/transitops/fleetassign/core/model"
	"github.com/transitops/fleetassign/core/monitoring"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists the fleet and planning history in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS units (
    unit_id TEXT PRIMARY KEY,
    name TEXT,
    capacity INTEGER,
    fuel_efficiency REAL,
    cost_per_km REAL,
    status TEXT,
    home_location TEXT,
    allowed_routes TEXT
);
CREATE TABLE IF NOT EXISTS routes (
    route_id TEXT PRIMARY KEY,
    name TEXT,
    origin TEXT,
    destination TEXT,
    distance_km REAL,
    travel_time_min INTEGER,
    route_type TEXT,
    required_capacity INTEGER
);
CREATE TABLE IF NOT EXISTS schedules (
    schedule_id TEXT PRIMARY KEY,
    route_id TEXT,
    departure_time TEXT,
    operating_days TEXT,
    priority INTEGER
);
CREATE TABLE IF NOT EXISTS assignments (
    target_date TEXT,
    schedule_id TEXT,
    route_id TEXT,
    unit_id TEXT,
    departure_time TEXT,
    return_time TEXT,
    total_score REAL,
    fuel_cost REAL,
    reason TEXT,
    status TEXT,
    PRIMARY KEY(target_date, schedule_id)
);
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    target_date TEXT,
    planned_at INTEGER,
    duration_ms INTEGER,
    metrics TEXT,
    params TEXT
);
CREATE TABLE IF NOT EXISTS alerts (
    run_id TEXT,
    alert_type TEXT,
    severity TEXT,
    message TEXT,
    raised_at INTEGER
);`

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

const dateLayout = "2006-01-02"

func (s *SQLiteStore) Units(ctx context.Context) ([]model.Unit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT unit_id, name, capacity, fuel_efficiency,
        cost_per_km, status, home_location, allowed_routes FROM units ORDER BY unit_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.Unit
	for rows.Next() {
		var u model.Unit
		var status, allowed string
		if err := rows.Scan(&u.ID, &u.Name, &u.Capacity, &u.FuelEfficiency,
			&u.CostPerKm, &status, &u.HomeLocation, &allowed); err != nil {
			return nil, err
		}
		u.Status = model.UnitStatus(status)
		if err := json.Unmarshal([]byte(allowed), &u.AllowedRoutes); err != nil {
			return nil, fmt.Errorf("unit %s: decode allowed routes: %w", u.ID, err)
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (s *SQLiteStore) PutUnit(ctx context.Context, u model.Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}
	allowed, err := json.Marshal(u.AllowedRoutes)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO units (unit_id, name, capacity, fuel_efficiency,
        cost_per_km, status, home_location, allowed_routes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(unit_id) DO UPDATE SET
            name = excluded.name,
            capacity = excluded.capacity,
            fuel_efficiency = excluded.fuel_efficiency,
            cost_per_km = excluded.cost_per_km,
            status = excluded.status,
            home_location = excluded.home_location,
            allowed_routes = excluded.allowed_routes`,
		u.ID, u.Name, u.Capacity, u.FuelEfficiency, u.CostPerKm, string(u.Status), u.HomeLocation, string(allowed))
	return err
}

func (s *SQLiteStore) Routes(ctx context.Context) ([]model.Route, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT route_id, name, origin, destination,
        distance_km, travel_time_min, route_type, required_capacity FROM routes ORDER BY route_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.Route
	for rows.Next() {
		var r model.Route
		if err := rows.Scan(&r.ID, &r.Name, &r.Origin, &r.Destination,
			&r.DistanceKm, &r.TravelTimeMin, &r.Type, &r.RequiredCapacity); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

func (s *SQLiteStore) PutRoute(ctx context.Context, r model.Route) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO routes (route_id, name, origin, destination,
        distance_km, travel_time_min, route_type, required_capacity)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(route_id) DO UPDATE SET
            name = excluded.name,
            origin = excluded.origin,
            destination = excluded.destination,
            distance_km = excluded.distance_km,
            travel_time_min = excluded.travel_time_min,
            route_type = excluded.route_type,
            required_capacity = excluded.required_capacity`,
		r.ID, r.Name, r.Origin, r.Destination, r.DistanceKm, r.TravelTimeMin, r.Type, r.RequiredCapacity)
	return err
}

func (s *SQLiteStore) Schedules(ctx context.Context) ([]model.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT schedule_id, route_id, departure_time,
        operating_days, priority FROM schedules ORDER BY schedule_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.Schedule
	for rows.Next() {
		var sc model.Schedule
		var dep, days string
		if err := rows.Scan(&sc.ID, &sc.RouteID, &dep, &days, &sc.Priority); err != nil {
			return nil, err
		}
		c, err := model.ParseClock(dep)
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", sc.ID, err)
		}
		sc.Departure = c
		if err := json.Unmarshal([]byte(days), &sc.OperatingDays); err != nil {
			return nil, fmt.Errorf("schedule %s: decode operating days: %w", sc.ID, err)
		}
		res = append(res, sc)
	}
	return res, rows.Err()
}

func (s *SQLiteStore) PutSchedule(ctx context.Context, sc model.Schedule) error {
	days, err := json.Marshal(sc.OperatingDays)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO schedules (schedule_id, route_id, departure_time,
        operating_days, priority)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(schedule_id) DO UPDATE SET
            route_id = excluded.route_id,
            departure_time = excluded.departure_time,
            operating_days = excluded.operating_days,
            priority = excluded.priority`,
		sc.ID, sc.RouteID, sc.Departure.String(), string(days), sc.Priority)
	return err
}

// ReplaceAssignments swaps the stored plan for the target date in one transaction.
func (s *SQLiteStore) ReplaceAssignments(ctx context.Context, date time.Time, as []model.Assignment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	day := date.Format(dateLayout)
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE target_date = ?`, day); err != nil {
		return err
	}
	for _, a := range as {
		if _, err := tx.ExecContext(ctx, `INSERT INTO assignments (target_date, schedule_id,
            route_id, unit_id, departure_time, return_time, total_score, fuel_cost, reason, status)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			day, a.ScheduleID, a.RouteID, a.UnitID, a.Departure.String(), a.Return.String(),
			a.TotalScore, a.FuelCost, a.Reason, a.Status); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Assignments(ctx context.Context, date time.Time) ([]model.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT schedule_id, route_id, unit_id, departure_time,
        return_time, total_score, fuel_cost, reason, status
        FROM assignments WHERE target_date = ? ORDER BY departure_time, schedule_id`,
		date.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var dep, ret string
		if err := rows.Scan(&a.ScheduleID, &a.RouteID, &a.UnitID, &dep, &ret,
			&a.TotalScore, &a.FuelCost, &a.Reason, &a.Status); err != nil {
			return nil, err
		}
		if a.Departure, err = model.ParseClock(dep); err != nil {
			return nil, fmt.Errorf("assignment %s: %w", a.ScheduleID, err)
		}
		if a.Return, err = model.ParseClock(ret); err != nil {
			return nil, fmt.Errorf("assignment %s: %w", a.ScheduleID, err)
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, r Run) error {
	metrics, err := json.Marshal(r.Metrics)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs (run_id, target_date, planned_at, duration_ms, metrics, params)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.TargetDate.Format(dateLayout), r.PlannedAt.Unix(), r.Duration.Milliseconds(),
		string(metrics), r.ParamsJSON)
	return err
}

// Runs returns the most recent runs, newest first. A non-positive limit
// returns all of them.
func (s *SQLiteStore) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, target_date, planned_at, duration_ms, metrics, params
        FROM runs ORDER BY planned_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []Run
	for rows.Next() {
		var r Run
		var day, metrics string
		var plannedAt, durationMS int64
		if err := rows.Scan(&r.ID, &day, &plannedAt, &durationMS, &metrics, &r.ParamsJSON); err != nil {
			return nil, err
		}
		if r.TargetDate, err = time.Parse(dateLayout, day); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		r.PlannedAt = time.Unix(plannedAt, 0).UTC()
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(metrics), &r.Metrics); err != nil {
			return nil, fmt.Errorf("run %s: decode metrics: %w", r.ID, err)
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

func (s *SQLiteStore) SaveAlerts(ctx context.Context, runID string, alerts []monitoring.Alert) error {
	for _, a := range alerts {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO alerts (run_id, alert_type, severity, message, raised_at)
            VALUES (?, ?, ?, ?, ?)`,
			runID, a.Type, a.Severity, a.Message, a.Time.Unix()); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
