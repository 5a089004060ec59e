// Package assign implements the fleet assignment engine: a deterministic
// sequential greedy planner that matches transport units to timetabled
// departures for one target day.
//
// Schedules are served in (priority, departure) order. For each one the
// engine partitions the base-feasible units by whether they already sit at
// the route origin, gates both groups on their computed availability time
// (last return, rest, deadhead), scores them with the location-aware
// strategy, and commits the first maximum-scoring local candidate before
// even considering units elsewhere. Committed assignments feed back into
// the feasibility of every later decision, which is why a run is strictly
// single-threaded.
//
// The engine is pure over in-memory collections: persistence, alerting and
// reporting are collaborators wired in the app package.
package assign
