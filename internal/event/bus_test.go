package event

import (
	"context"
	"errors"
	"testing"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
}

func TestBus_SubscribePublish(t *testing.T) {
	bus := NewBus()

	var got any
	calls := 0
	_, err := bus.SubscribeFunc(TopicScroll, func(_ context.Context, payload any) error {
		got = payload
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}

	want := map[string]int{"scrollTop": 120}
	if err := bus.Publish(context.Background(), TopicScroll, want); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
	m, ok := got.(map[string]int)
	if !ok || m["scrollTop"] != 120 {
		t.Errorf("handler received %v, want %v", got, want)
	}
}

func TestBus_SubscribeValidation(t *testing.T) {
	bus := NewBus()

	if _, err := bus.Subscribe(TopicScroll, nil); err != ErrNilHandler {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if _, err := bus.SubscribeFunc("", func(context.Context, any) error { return nil }); err != ErrInvalidTopic {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
	if err := bus.Publish(context.Background(), "", nil); err != ErrInvalidTopic {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	sub, _ := bus.SubscribeFunc(TopicResize, func(context.Context, any) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), TopicResize, nil)
	if err := bus.Unsubscribe(sub); err != nil {
		t.Fatalf("Unsubscribe() failed: %v", err)
	}
	bus.Publish(context.Background(), TopicResize, nil)
	bus.Publish(context.Background(), TopicResize, nil)

	if calls != 1 {
		t.Errorf("handler called %d times after unsubscribe, want 1", calls)
	}
	if err := bus.Unsubscribe(sub); err != ErrSubscriptionNotFound {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
	if err := bus.Unsubscribe(nil); err != ErrInvalidSubscription {
		t.Errorf("expected ErrInvalidSubscription, got %v", err)
	}
}

func TestBus_UnsubscribePrunesTopic(t *testing.T) {
	bus := NewBus()

	sub, _ := bus.SubscribeFunc(TopicLoad, func(context.Context, any) error { return nil })
	if got := bus.SubscriberCount(TopicLoad); got != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", got)
	}

	bus.Unsubscribe(sub)
	if got := bus.SubscriberCount(TopicLoad); got != 0 {
		t.Errorf("SubscriberCount = %d after unsubscribe, want 0", got)
	}
	for _, topic := range bus.Topics() {
		if topic == TopicLoad {
			t.Error("topic entry not pruned after last unsubscribe")
		}
	}
}

func TestBus_OnceFiresExactlyOnce(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.SubscribeFunc(TopicLoad, func(context.Context, any) error {
		calls++
		return nil
	}, WithOnce())

	for i := 0; i < 5; i++ {
		bus.Publish(context.Background(), TopicLoad, i)
	}

	if calls != 1 {
		t.Errorf("once-subscription fired %d times across 5 publishes, want 1", calls)
	}
	if got := bus.SubscriberCount(TopicLoad); got != 0 {
		t.Errorf("once-subscription still registered, count = %d", got)
	}
}

func TestBus_OnceRetainedAfterError(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.SubscribeFunc(TopicLoad, func(context.Context, any) error {
		calls++
		if calls == 1 {
			return errors.New("first attempt fails")
		}
		return nil
	}, WithOnce())

	bus.Publish(context.Background(), TopicLoad, nil)
	bus.Publish(context.Background(), TopicLoad, nil)
	bus.Publish(context.Background(), TopicLoad, nil)

	// The failed dispatch does not spend the once-subscription.
	if calls != 2 {
		t.Errorf("handler called %d times, want 2 (one failure, one success)", calls)
	}
}

func TestBus_RegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
			order = append(order, i)
			return nil
		})
	}

	bus.Publish(context.Background(), TopicScroll, nil)

	for i, v := range order {
		if v != i {
			t.Fatalf("dispatch order %v, want registration order", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("dispatched to %d handlers, want 5", len(order))
	}
}

func TestBus_ErrorIsolation(t *testing.T) {
	var reported []error
	bus := NewBus(WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))

	var order []string
	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
		order = append(order, "fails")
		return errors.New("boom")
	}, WithName("failing"))
	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
		order = append(order, "panics")
		panic("kaboom")
	})
	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
		order = append(order, "survives")
		return nil
	})

	if err := bus.Publish(context.Background(), TopicScroll, nil); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	if len(order) != 3 || order[2] != "survives" {
		t.Fatalf("dispatch order %v; failing handlers must not stop fan-out", order)
	}
	if len(reported) != 2 {
		t.Fatalf("reported %d errors, want 2", len(reported))
	}

	var le *ListenerError
	if !errors.As(reported[0], &le) {
		t.Errorf("first report %T, want *ListenerError", reported[0])
	} else if le.Name != "failing" {
		t.Errorf("ListenerError.Name = %q, want %q", le.Name, "failing")
	}
	if !errors.Is(reported[1], ErrListenerPanic) {
		t.Errorf("second report %v, want ErrListenerPanic match", reported[1])
	}

	stats := bus.Stats()
	if stats.HandlerErrors != 1 || stats.HandlerPanics != 1 {
		t.Errorf("stats errors=%d panics=%d, want 1 and 1", stats.HandlerErrors, stats.HandlerPanics)
	}
}

func TestBus_SnapshotDispatch(t *testing.T) {
	bus := NewBus()

	lateCalls := 0
	firstCalls := 0
	var removed *Subscription

	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
		firstCalls++
		// Mutations during dispatch must not affect the current publish.
		bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
			lateCalls++
			return nil
		})
		bus.Unsubscribe(removed)
		return nil
	})
	removedCalls := 0
	removed, _ = bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
		removedCalls++
		return nil
	})

	bus.Publish(context.Background(), TopicScroll, nil)

	if lateCalls != 0 {
		t.Error("subscription added during dispatch ran in the same publish")
	}
	if removedCalls != 1 {
		t.Errorf("subscription removed during dispatch ran %d times in that publish, want 1", removedCalls)
	}
}

func TestBus_CrossTopicIndependence(t *testing.T) {
	bus := NewBus()

	scrolls, resizes := 0, 0
	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error { scrolls++; return nil })
	bus.SubscribeFunc(TopicResize, func(context.Context, any) error { resizes++; return nil })

	bus.Publish(context.Background(), TopicScroll, nil)
	bus.Publish(context.Background(), TopicScroll, nil)
	bus.Publish(context.Background(), TopicResize, nil)

	if scrolls != 2 || resizes != 1 {
		t.Errorf("scrolls=%d resizes=%d, want 2 and 1", scrolls, resizes)
	}
}

func TestBus_Stats(t *testing.T) {
	bus := NewBus()

	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error { return nil })
	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error { return nil })
	bus.Publish(context.Background(), TopicScroll, nil)

	stats := bus.Stats()
	if stats.EventsPublished != 1 {
		t.Errorf("EventsPublished = %d, want 1", stats.EventsPublished)
	}
	if stats.EventsDelivered != 2 {
		t.Errorf("EventsDelivered = %d, want 2", stats.EventsDelivered)
	}
	if stats.ActiveSubscriptions != 2 {
		t.Errorf("ActiveSubscriptions = %d, want 2", stats.ActiveSubscriptions)
	}
}

func TestBus_ErrorHandlerPanicIsContained(t *testing.T) {
	bus := NewBus(WithErrorHandler(func(error) {
		panic("error handler misbehaves")
	}))

	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
		return errors.New("boom")
	})
	survived := false
	bus.SubscribeFunc(TopicScroll, func(context.Context, any) error {
		survived = true
		return nil
	})

	bus.Publish(context.Background(), TopicScroll, nil)
	if !survived {
		t.Error("panicking error handler stopped the fan-out")
	}
}
