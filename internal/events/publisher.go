// Package events provides in-process event publishing and subscription
// for Caseline. The rendering layer subscribes to hear about new items
// and per-item state changes without polling the view.
package events

import (
	"errors"
	"sync"
	"time"
)

// Publisher errors.
var (
	ErrInvalidSubscriptionID = errors.New("subscription id must not be empty")
	ErrNilHandler            = errors.New("handler must not be nil")
	ErrSubscriptionExists    = errors.New("subscription already exists")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
)

// Type categorizes timeline events.
type Type string

const (
	// TypeNewItems fires when the poller sees items newer than the last
	// fetch reference.
	TypeNewItems Type = "timeline.new_items"

	// TypeRefreshed fires after a batch has been processed into the view.
	TypeRefreshed Type = "timeline.refreshed"

	// TypeItemToggled fires when an item's expand or history flag flips.
	TypeItemToggled Type = "item.toggled"
)

// Event is a timeline notification.
type Event struct {
	// Type categorizes the event.
	Type Type `json:"type"`

	// ItemID is set for per-item events, empty for timeline-wide ones.
	ItemID string `json:"item_id,omitempty"`

	// Timestamp is when the event was published.
	Timestamp time.Time `json:"timestamp"`
}

// Handler is a callback invoked when an event matches a subscription.
type Handler func(event Event)

// Filter defines criteria for matching events.
type Filter struct {
	// Types filters by event type (nil = all types).
	Types []Type

	// ItemID filters to a specific item (empty = all).
	ItemID string
}

// Matches returns true if the event matches the filter criteria.
func (f *Filter) Matches(event Event) bool {
	if len(f.Types) > 0 {
		matched := false
		for _, t := range f.Types {
			if event.Type == t {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.ItemID != "" && event.ItemID != f.ItemID {
		return false
	}

	return true
}

// subscription represents an active event subscription.
type subscription struct {
	id      string
	filter  Filter
	handler Handler
}

// Publisher distributes timeline events to subscribers in-process.
type Publisher struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
}

// NewPublisher creates a new Publisher.
func NewPublisher() *Publisher {
	return &Publisher{
		subscriptions: make(map[string]*subscription),
	}
}

// Publish sends an event to all matching subscribers. Handlers run
// synchronously, outside the lock, in unspecified order.
func (p *Publisher) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	p.mu.RLock()
	var handlers []Handler
	for _, sub := range p.subscriptions {
		if sub.filter.Matches(event) {
			handlers = append(handlers, sub.handler)
		}
	}
	p.mu.RUnlock()

	// Invoke handlers outside the lock to avoid deadlocks
	for _, handler := range handlers {
		handler(event)
	}
}

// Subscribe registers a handler to receive events matching the filter.
func (p *Publisher) Subscribe(id string, filter Filter, handler Handler) error {
	if id == "" {
		return ErrInvalidSubscriptionID
	}
	if handler == nil {
		return ErrNilHandler
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.subscriptions[id]; exists {
		return ErrSubscriptionExists
	}

	p.subscriptions[id] = &subscription{
		id:      id,
		filter:  filter,
		handler: handler,
	}

	return nil
}

// Unsubscribe removes a subscription by ID.
func (p *Publisher) Unsubscribe(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.subscriptions[id]; !exists {
		return ErrSubscriptionNotFound
	}

	delete(p.subscriptions, id)
	return nil
}

// SubscriberCount returns the number of active subscribers.
func (p *Publisher) SubscriberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscriptions)
}
