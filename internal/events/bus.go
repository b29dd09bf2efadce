package events

import (
	"github.com/kelindar/event"
)

// Bus broadcasts events in-process on top of a kelindar/event dispatcher.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers of its concrete type.
// A nil bus drops the event.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case ServiceSelectedEvent:
		event.Publish(b.dispatcher, e)
	case ProfileChangedEvent:
		event.Publish(b.dispatcher, e)
	case EgressCreatedEvent:
		event.Publish(b.dispatcher, e)
	case SkillsReloadedEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers a handler; its parameter type selects the events it
// receives. It returns the unsubscribe function, a no-op for handlers of
// unknown types.
//
//	unsub := bus.Subscribe(func(e EgressCreatedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ServiceSelectedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ProfileChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(EgressCreatedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SkillsReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEntryEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
