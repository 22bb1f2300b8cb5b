// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/tidecore/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed, which stops delivery to later
// handlers of the same type.
type Handler func(e Event) bool

// SubscriptionID identifies one Subscribe call, for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and dispatching. It is safe for
// concurrent use; handlers run synchronously on the dispatching goroutine.
type Manager struct {
	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers map[Type][]subscription // Map event types to a list of handlers
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: m.nextID, handler: handler})
	logger.Debugf("Event Manager: Handler %d subscribed to type %v", m.nextID, eventType)
	return m.nextID
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for t, subs := range m.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			// Copy so a dispatch already holding the old slice is unaffected.
			kept := make([]subscription, 0, len(subs)-1)
			kept = append(kept, subs[:i]...)
			kept = append(kept, subs[i+1:]...)
			m.handlers[t] = kept
			logger.Debugf("Event Manager: Handler %d unsubscribed from type %v", id, t)
			return
		}
	}
}

// Dispatch sends an event to all registered handlers for its type.
// A nil manager drops the event, so components work without one.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	if m == nil {
		return
	}
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock() // Use read lock while reading handlers
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.DebugTagf("event", "Event Manager: Dispatching %v to %d handler(s)", eventType, len(handlers))

	for _, s := range handlers {
		if s.handler(event) {
			break
		}
	}
}
