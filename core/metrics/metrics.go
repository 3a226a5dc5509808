package metrics

import (
	"errors"
	"time"
)

// CommandEvent describes one handled utterance.
type CommandEvent struct {
	ID        string
	Intent    string
	Kind      string
	ErrorKind string
	Latency   time.Duration
	Time      time.Time
}

// MetricsSink records handled commands for observability purposes.
type MetricsSink interface {
	RecordCommand(ev CommandEvent) error
}

// StatusChangeEvent is a pilot status written to the roster.
type StatusChangeEvent struct {
	Pilot  string
	Status string
	Time   time.Time
}

// StatusChangeRecorder records pilot status changes.
type StatusChangeRecorder interface {
	RecordStatusChange(ev StatusChangeEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordCommand(CommandEvent) error           { return nil }
func (NopSink) RecordStatusChange(StatusChangeEvent) error { return nil }

// MultiSink forwards events to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink combines sinks into one.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCommand forwards ev to every sink and joins their errors.
func (m *MultiSink) RecordCommand(ev CommandEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordCommand(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordStatusChange forwards ev to the sinks able to record it.
func (m *MultiSink) RecordStatusChange(ev StatusChangeEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(StatusChangeRecorder); ok {
			if err := r.RecordStatusChange(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
