// Package infra contains technical adapters: data store backends, metrics
// sinks, the MQTT notifier and the zerolog logger. These packages depend
// only on the interfaces defined in the core packages.
package infra
