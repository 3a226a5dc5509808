// Package eventbus fans events out to in-process subscribers. Delivery
// never blocks the publisher: a subscriber whose buffer is full misses the
// event and the bus counts the drop.
package eventbus

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the untyped EventBus used between the coordinator, the intent
// router and their observers.
type Bus = TypedBus[Event]

// DefaultBuffer is the per subscriber buffer used by New.
const DefaultBuffer = 8

// New creates a new Bus.
func New() *Bus { return NewTyped[Event](DefaultBuffer) }
