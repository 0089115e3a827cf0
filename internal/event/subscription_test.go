package event

import (
	"context"
	"testing"
)

func TestSubscription_Accessors(t *testing.T) {
	bus := NewBus()

	sub, err := bus.SubscribeFunc(TopicScroll, func(context.Context, any) error { return nil },
		WithOnce(), WithName("resolver"))
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}

	if sub.ID() == "" {
		t.Error("subscription ID is empty")
	}
	if sub.Topic() != TopicScroll {
		t.Errorf("Topic() = %q, want %q", sub.Topic(), TopicScroll)
	}
	if sub.Name() != "resolver" {
		t.Errorf("Name() = %q, want %q", sub.Name(), "resolver")
	}
	if !sub.Once() {
		t.Error("Once() = false, want true")
	}
	if !sub.IsActive() {
		t.Error("IsActive() = false for registered subscription")
	}

	bus.Unsubscribe(sub)
	if sub.IsActive() {
		t.Error("IsActive() = true after unsubscribe")
	}
}

func TestSubscription_UniqueIDs(t *testing.T) {
	bus := NewBus()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sub, _ := bus.SubscribeFunc(TopicScroll, func(context.Context, any) error { return nil })
		if seen[sub.ID()] {
			t.Fatalf("duplicate subscription ID %s", sub.ID())
		}
		seen[sub.ID()] = true
	}
}
