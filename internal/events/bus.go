package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher. Handlers run asynchronously.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers of its type.
// A nil bus drops the event.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case SessionOpenedEvent:
		event.Publish(b.dispatcher, e)
	case SessionClosedEvent:
		event.Publish(b.dispatcher, e)
	case CapsLoadedEvent:
		event.Publish(b.dispatcher, e)
	case AttributeQueriedEvent:
		event.Publish(b.dispatcher, e)
	case ResolutionCheckedEvent:
		event.Publish(b.dispatcher, e)
	case DumpWrittenEvent:
		event.Publish(b.dispatcher, e)
	case ConfigReloadedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers a handler; its parameter type selects the events it
// receives. Unknown handler types are ignored. Returns an unsubscribe function.
//
//	unsub := bus.Subscribe(func(e CapsLoadedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(SessionOpenedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SessionClosedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(CapsLoadedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(AttributeQueriedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ResolutionCheckedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DumpWrittenEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ConfigReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// SubscribeToChannel forwards events of type T into ch, dropping them when
// ch is full. Used by the SSE endpoint.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
