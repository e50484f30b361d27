package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// handler is a function subscription, optionally scoped to a single game.
type handler struct {
	id     string
	gameID string
	fn     EventHandler
}

// EventBus delivers events synchronously, in subscription order, on the
// publisher's goroutine. A tournament and the interactive game it was
// started from share one bus, so handlers can be scoped to a game id.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	order       []string
	handlers    map[string][]handler
	nextID      int
	logger      zerolog.Logger
}

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string]Subscriber),
		handlers:    make(map[string][]handler),
		logger:      log.With().Str("component", "EventBus").Logger(),
	}
}

// Subscribe adds a subscriber. Subscribing the same id twice replaces the
// first subscriber but keeps its place in the delivery order.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if _, exists := eb.subscribers[subscriber.ID()]; !exists {
		eb.order = append(eb.order, subscriber.ID())
	}
	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().Str("subscriber_id", subscriber.ID()).Msg("Subscriber added")
}

// Unsubscribe removes a subscriber or a function handler by id.
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if _, ok := eb.subscribers[id]; ok {
		delete(eb.subscribers, id)
		for i, sid := range eb.order {
			if sid == id {
				eb.order = append(eb.order[:i], eb.order[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, hs := range eb.handlers {
		for i, h := range hs {
			if h.id == id {
				eb.handlers[eventType] = append(hs[:i:i], hs[i+1:]...)
				return
			}
		}
	}
}

// SubscribeFunc registers fn for every event of eventType and returns an id
// usable with Unsubscribe.
func (eb *EventBus) SubscribeFunc(eventType string, fn EventHandler) string {
	return eb.SubscribeGame("", eventType, fn)
}

// SubscribeGame is SubscribeFunc restricted to events of one game. An empty
// gameID matches every game.
func (eb *EventBus) SubscribeGame(gameID, eventType string, fn EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := fmt.Sprintf("%s#%d", eventType, eb.nextID)
	eb.handlers[eventType] = append(eb.handlers[eventType], handler{id: id, gameID: gameID, fn: fn})
	eb.logger.Debug().Str("event_type", eventType).Str("handler_id", id).Str("game_id", gameID).Msg("Handler added")
	return id
}

// Publish hands event to every interested subscriber, then to the function
// handlers registered for its type. A panicking receiver is logged and
// skipped.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	subs := make([]Subscriber, 0, len(eb.order))
	for _, id := range eb.order {
		subs = append(subs, eb.subscribers[id])
	}
	hs := append([]handler(nil), eb.handlers[event.Type()]...)
	eb.mu.RUnlock()

	eventType := event.Type()
	for _, s := range subs {
		if s.InterestedIn(eventType) {
			eb.deliver(s.ID(), event, s.HandleEvent)
		}
	}
	for _, h := range hs {
		if h.gameID == "" || h.gameID == event.GameID() {
			eb.deliver(h.id, event, h.fn)
		}
	}
}

func (eb *EventBus) deliver(receiver string, event Event, fn EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", event.Type()).
				Str("game_id", event.GameID()).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	fn(event)
}

// SubscriberCount returns the number of object subscribers.
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// HandlerCount returns the number of function handlers for eventType.
func (eb *EventBus) HandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}
