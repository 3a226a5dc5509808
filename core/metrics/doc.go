// Package metrics defines the sinks observing handled commands and pilot
// status changes. PromSink and InfluxSink live in infra/metrics; several
// configured sinks are combined into a MultiSink by NewMetricsSink.
package metrics
