// Package metrics defines interfaces and implementations for collecting
// planning run metrics. Sinks like PromSink and InfluxSink record run
// outcomes and threshold alerts and can be combined with NewMultiSink.
// The factory helpers return a MultiSink automatically when multiple
// sinks are configured.
package metrics
