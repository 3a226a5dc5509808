package mqtt

import (
	"context"

	"github.com/kilianp07/skylark/core/events"
)

// StatusPublisher announces pilot status changes to field devices and
// dashboards listening on the broker.
type StatusPublisher interface {
	// PublishStatus sends ev on the pilot specific status topic.
	PublishStatus(ctx context.Context, ev events.StatusChangedEvent) error
}
