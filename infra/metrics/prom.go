package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/skylark/core/metrics"
)

// PromSink records handled commands in Prometheus metrics.
type PromSink struct {
	commands *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	status   *prometheus.CounterVec
}

// NewPromSink registers command metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skylark_commands_total",
		Help: "Total number of handled operator commands",
	}, []string{"intent", "kind", "error"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skylark_command_latency_seconds",
		Help:    "Time spent answering an operator command",
		Buckets: prometheus.DefBuckets,
	}, []string{"intent"})
	status := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skylark_pilot_status_changes_total",
		Help: "Number of pilot status updates written to the roster",
	}, []string{"status"})

	var err error
	if commands, err = register(reg, commands); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if status, err = register(reg, status); err != nil {
		return nil, err
	}
	return &PromSink{commands: commands, latency: latency, status: status}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordCommand counts the command and observes its latency.
func (s *PromSink) RecordCommand(ev coremetrics.CommandEvent) error {
	s.commands.WithLabelValues(ev.Intent, ev.Kind, ev.ErrorKind).Inc()
	s.latency.WithLabelValues(ev.Intent).Observe(ev.Latency.Seconds())
	return nil
}

// RecordStatusChange counts a roster status write.
func (s *PromSink) RecordStatusChange(ev coremetrics.StatusChangeEvent) error {
	s.status.WithLabelValues(ev.Status).Inc()
	return nil
}
