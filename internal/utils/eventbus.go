package utils

import (
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Handler func(event Event)

type subscription struct {
	id      uint64
	handler Handler
}

// EventBus delivers events synchronously, in subscription order, on the
// publishing goroutine. A panicking handler is logged and does not stop
// delivery to the others.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]subscription
	nextID      uint64
	logger      *zap.SugaredLogger
}

func NewEventBus(logger *zap.Logger) *EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventBus{
		subscribers: make(map[string][]subscription),
		logger:      logger.Sugar(),
	}
}

func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	subs := append([]subscription(nil), eb.subscribers[event]...)
	eb.mu.RUnlock()

	e := Event{Event: event, Data: data}
	for _, sub := range subs {
		eb.deliver(sub, e)
	}
}

func (eb *EventBus) deliver(sub subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Errorw("EventBus: handler panicked", "event", e.Event, "subscription", sub.id, "panic", r)
		}
	}()
	sub.handler(e)
}

// Subscribe registers handler for event and returns a func that removes it.
func (eb *EventBus) Subscribe(event string, handler Handler) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	eb.subscribers[event] = append(eb.subscribers[event], subscription{id: id, handler: handler})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		subs := eb.subscribers[event]
		for i, sub := range subs {
			if sub.id == id {
				eb.subscribers[event] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(eb.subscribers[event]) == 0 {
			delete(eb.subscribers, event)
		}
	}
}
