// Package events defines the events emitted on the event bus.
//
// Available event types:
//   - StatusChangedEvent: a pilot status was written to the roster
package events
