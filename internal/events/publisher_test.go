package events

import (
	"testing"
	"time"
)

func TestPublishDeliversToMatchingSubscribers(t *testing.T) {
	p := NewPublisher()

	var got []Event
	err := p.Subscribe("sub1", Filter{Types: []Type{TypeNewItems}}, func(e Event) {
		got = append(got, e)
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	p.Publish(Event{Type: TypeNewItems})
	p.Publish(Event{Type: TypeRefreshed})

	if len(got) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(got))
	}
	if got[0].Type != TypeNewItems {
		t.Errorf("expected %s, got %s", TypeNewItems, got[0].Type)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected publish to stamp the event")
	}
}

func TestPublishKeepsCallerTimestamp(t *testing.T) {
	p := NewPublisher()

	stamp := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var got Event
	if err := p.Subscribe("sub1", Filter{}, func(e Event) { got = e }); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	p.Publish(Event{Type: TypeRefreshed, Timestamp: stamp})
	if !got.Timestamp.Equal(stamp) {
		t.Errorf("expected timestamp %v, got %v", stamp, got.Timestamp)
	}
}

func TestSubscribeValidation(t *testing.T) {
	p := NewPublisher()

	if err := p.Subscribe("", Filter{}, func(Event) {}); err != ErrInvalidSubscriptionID {
		t.Errorf("expected ErrInvalidSubscriptionID, got %v", err)
	}
	if err := p.Subscribe("sub1", Filter{}, nil); err != ErrNilHandler {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}

	if err := p.Subscribe("sub1", Filter{}, func(Event) {}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := p.Subscribe("sub1", Filter{}, func(Event) {}); err != ErrSubscriptionExists {
		t.Errorf("expected ErrSubscriptionExists, got %v", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	p := NewPublisher()

	if err := p.Unsubscribe("missing"); err != ErrSubscriptionNotFound {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}

	called := false
	if err := p.Subscribe("sub1", Filter{}, func(Event) { called = true }); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if got := p.SubscriberCount(); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}

	if err := p.Unsubscribe("sub1"); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	if got := p.SubscriberCount(); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}

	p.Publish(Event{Type: TypeNewItems})
	if called {
		t.Error("unsubscribed handler must not run")
	}
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		event  Event
		want   bool
	}{
		{"empty filter matches all", Filter{}, Event{Type: TypeNewItems}, true},
		{"type match", Filter{Types: []Type{TypeItemToggled}}, Event{Type: TypeItemToggled}, true},
		{"type mismatch", Filter{Types: []Type{TypeItemToggled}}, Event{Type: TypeNewItems}, false},
		{"item match", Filter{ItemID: "a"}, Event{Type: TypeItemToggled, ItemID: "a"}, true},
		{"item mismatch", Filter{ItemID: "a"}, Event{Type: TypeItemToggled, ItemID: "b"}, false},
		{"type and item", Filter{Types: []Type{TypeItemToggled}, ItemID: "a"}, Event{Type: TypeItemToggled, ItemID: "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.event); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
