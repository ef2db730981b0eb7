// Package events provides the event bus that carries host signals (address
// fragment changes, viewport resizes, configuration reloads) to containers.
// Regular subscribers use ring-buffer delivery, so a slow consumer loses the
// oldest samples instead of blocking the publisher.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// Event is the base interface for all events.
type Event interface {
	EventType() string
	Timestamp() time.Time
	ContainerID() string
}

// BaseEvent provides common fields for all events. An empty Container means
// the event concerns the whole host page.
type BaseEvent struct {
	Type      string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Container string    `json:"container_id,omitempty"`
}

func (e BaseEvent) EventType() string    { return e.Type }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) ContainerID() string  { return e.Container }

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType, containerID string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Time:      time.Now(),
		Container: containerID,
	}
}

// Subscriber represents an event subscription.
type Subscriber struct {
	ch        chan Event
	types     map[string]bool // Empty means all types
	container string          // Empty means every container
	priority  bool
}

func (s *Subscriber) matches(event Event) bool {
	if len(s.types) > 0 && !s.types[event.EventType()] {
		return false
	}
	if s.container == "" {
		return true
	}
	// Page-wide events reach every container.
	return event.ContainerID() == "" || event.ContainerID() == s.container
}

// EventBus provides pub/sub with backpressure control.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  []*Subscriber
	prioritySubs []*Subscriber
	bufferSize   int
	droppedCount int64
	closed       bool
}

// New creates a new EventBus with the specified buffer size.
func New(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &EventBus{
		subscribers:  make([]*Subscriber, 0),
		prioritySubs: make([]*Subscriber, 0),
		bufferSize:   bufferSize,
	}
}

// Subscribe creates a subscription for specific event types.
// If no types are specified, subscribes to all events.
func (eb *EventBus) Subscribe(types ...string) <-chan Event {
	return eb.SubscribeForContainer("", types...)
}

// SubscribeForContainer subscribes to events addressed to containerID plus
// page-wide events.
func (eb *EventBus) SubscribeForContainer(containerID string, types ...string) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	sub := &Subscriber{
		ch:        make(chan Event, eb.bufferSize),
		types:     make(map[string]bool),
		container: containerID,
	}
	for _, t := range types {
		sub.types[t] = true
	}
	if eb.closed {
		close(sub.ch)
		return sub.ch
	}
	eb.subscribers = append(eb.subscribers, sub)
	return sub.ch
}

// SubscribePriority creates a priority subscription that never drops events.
// Use for events that must not be lost, such as configuration reloads.
func (eb *EventBus) SubscribePriority(types ...string) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	sub := &Subscriber{
		ch:       make(chan Event, 50), // Smaller buffer, blocking send
		types:    make(map[string]bool),
		priority: true,
	}
	for _, t := range types {
		sub.types[t] = true
	}
	if eb.closed {
		close(sub.ch)
		return sub.ch
	}
	eb.prioritySubs = append(eb.prioritySubs, sub)
	return sub.ch
}

// Unsubscribe removes a subscription and closes its channel.
func (eb *EventBus) Unsubscribe(ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers = removeSubscriber(eb.subscribers, ch)
	eb.prioritySubs = removeSubscriber(eb.prioritySubs, ch)
}

func removeSubscriber(subs []*Subscriber, ch <-chan Event) []*Subscriber {
	result := make([]*Subscriber, 0, len(subs))
	for _, sub := range subs {
		if sub.ch != ch {
			result = append(result, sub)
		} else {
			close(sub.ch)
		}
	}
	return result
}

// Publish sends an event to all matching subscribers.
// Non-priority subscribers may drop events if their buffer is full (ring buffer behavior).
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}
	eb.publish(event)
}

// PublishPriority sends an event to priority subscribers with blocking behavior.
// Regular subscribers receive it with ring-buffer semantics.
func (eb *EventBus) PublishPriority(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	eb.publish(event)

	for _, sub := range eb.prioritySubs {
		if sub.matches(event) {
			sub.ch <- event
		}
	}
}

// publish is the internal version that doesn't acquire the lock.
func (eb *EventBus) publish(event Event) {
	for _, sub := range eb.subscribers {
		if !sub.matches(event) {
			continue
		}
		select {
		case sub.ch <- event:
			// Sent successfully
		default:
			// Buffer full, drop oldest and try again (ring buffer)
			select {
			case <-sub.ch: // Drop oldest
				atomic.AddInt64(&eb.droppedCount, 1)
			default:
			}
			select {
			case sub.ch <- event:
			default:
				atomic.AddInt64(&eb.droppedCount, 1)
			}
		}
	}
}

// DroppedCount returns the total number of dropped events.
func (eb *EventBus) DroppedCount() int64 {
	return atomic.LoadInt64(&eb.droppedCount)
}

// Close closes the event bus and all subscriber channels.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}
	eb.closed = true

	for _, sub := range eb.subscribers {
		close(sub.ch)
	}
	for _, sub := range eb.prioritySubs {
		close(sub.ch)
	}
	eb.subscribers = nil
	eb.prioritySubs = nil
}
