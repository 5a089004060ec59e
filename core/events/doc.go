// Package events defines the planning related events emitted on the event bus.
//
// Available event types:
//   - RunCompletedEvent: a planning run finished and its metrics are final
//   - AlertEvent: run metrics breached an operational threshold
package events
