package metrics

import (
	"context"

	"github.com/kilianp07/skylark/core/events"
	coremetrics "github.com/kilianp07/skylark/core/metrics"
	"github.com/kilianp07/skylark/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records status
// changes on sinks able to store them. It stops when the context is
// canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	rec, ok := sink.(coremetrics.StatusChangeRecorder)
	if !ok {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if e, ok := ev.(events.StatusChangedEvent); ok {
					_ = rec.RecordStatusChange(coremetrics.StatusChangeEvent{Pilot: e.Pilot, Status: e.Status, Time: e.Time})
				}
			}
		}
	}()
}
