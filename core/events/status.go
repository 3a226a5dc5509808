package events

import "time"

// StatusChangedEvent is published after a pilot status update succeeds.
type StatusChangedEvent struct {
	Pilot  string
	Status string
	Time   time.Time
}
