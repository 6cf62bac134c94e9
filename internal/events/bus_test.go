package events

import "testing"

func TestBusSubscribeAndPublish(t *testing.T) {
	bus := New()

	var got []int
	bus.Subscribe("test", func(payload any) {
		got = append(got, payload.(int))
	})

	bus.Publish("test", 1)
	bus.Publish("test", 2)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Expected payloads [1 2], got %v", got)
	}
}

func TestBusRegistrationOrder(t *testing.T) {
	bus := New()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		bus.Subscribe("test", func(any) {
			order = append(order, name)
		})
	}

	bus.Publish("test", nil)

	if len(order) != 3 {
		t.Fatalf("Expected 3 invocations, got %d", len(order))
	}
	if order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("Handlers ran out of registration order: %v", order)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := New()

	calls := 0
	sub := bus.Subscribe("test", func(any) { calls++ })

	bus.Publish("test", nil)
	bus.Unsubscribe(sub)
	bus.Publish("test", nil)

	if calls != 1 {
		t.Errorf("Expected 1 call after unsubscribe, got %d", calls)
	}

	// Unsubscribing again must be a no-op
	bus.Unsubscribe(sub)

	// Unsubscribing a zero-value token must be a no-op
	bus.Unsubscribe(Subscription{})
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := New()
	bus.Publish("nobody-listens", 42) // Must not panic
}

func TestBusPanicIsolation(t *testing.T) {
	bus := New()

	var panicEvent string
	bus.SetPanicHandler(func(event string, _ any) {
		panicEvent = event
	})

	secondRan := false
	bus.Subscribe("test", func(any) { panic("boom") })
	bus.Subscribe("test", func(any) { secondRan = true })

	bus.Publish("test", nil)

	if !secondRan {
		t.Error("Handler after a panicking handler did not run")
	}
	if panicEvent != "test" {
		t.Errorf("Panic hook got event %q, want %q", panicEvent, "test")
	}
}

func TestBusSelfUnsubscribeDuringPublish(t *testing.T) {
	bus := New()

	var order []string
	var selfSub Subscription

	bus.Subscribe("test", func(any) { order = append(order, "a") })
	selfSub = bus.Subscribe("test", func(any) {
		order = append(order, "b")
		bus.Unsubscribe(selfSub)
	})
	bus.Subscribe("test", func(any) { order = append(order, "c") })

	// First publish: all three run, "b" removes itself mid-dispatch.
	bus.Publish("test", nil)
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("First publish order wrong: %v", order)
	}

	// Second publish: "b" is gone.
	order = nil
	bus.Publish("test", nil)
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("Second publish order wrong: %v", order)
	}
}

func TestBusUnsubscribeLaterHandlerDuringPublish(t *testing.T) {
	bus := New()

	var order []string
	var lastSub Subscription

	bus.Subscribe("test", func(any) {
		order = append(order, "a")
		bus.Unsubscribe(lastSub)
	})
	bus.Subscribe("test", func(any) { order = append(order, "b") })
	lastSub = bus.Subscribe("test", func(any) { order = append(order, "c") })

	bus.Publish("test", nil)

	// "c" was removed by "a" before its turn, so it must not run.
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("Expected [a b], got %v", order)
	}
}

func TestBusSubscribeDuringPublish(t *testing.T) {
	bus := New()

	lateRan := 0
	bus.Subscribe("test", func(any) {
		bus.Subscribe("test", func(any) { lateRan++ })
	})

	bus.Publish("test", nil)
	if lateRan != 0 {
		t.Error("Handler subscribed during publish ran in the same publish")
	}

	bus.Publish("test", nil)
	if lateRan != 1 {
		t.Errorf("Late handler should run once on next publish, ran %d times", lateRan)
	}
}

func TestBusReentrantPublish(t *testing.T) {
	bus := New()

	var order []string
	bus.Subscribe("outer", func(any) {
		order = append(order, "outer")
		bus.Publish("inner", nil)
	})
	bus.Subscribe("inner", func(any) { order = append(order, "inner") })

	bus.Publish("outer", nil)

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("Re-entrant publish order wrong: %v", order)
	}
}

func TestBusClear(t *testing.T) {
	bus := New()

	calls := 0
	bus.Subscribe("a", func(any) { calls++ })
	bus.Subscribe("b", func(any) { calls++ })

	bus.Clear()
	bus.Publish("a", nil)
	bus.Publish("b", nil)

	if calls != 0 {
		t.Errorf("Expected 0 calls after Clear, got %d", calls)
	}

	// Clear on an empty bus must be safe
	bus.Clear()
}

func TestBusSubscriberCount(t *testing.T) {
	bus := New()

	if n := bus.SubscriberCount("test"); n != 0 {
		t.Errorf("Expected 0 subscribers, got %d", n)
	}

	sub := bus.Subscribe("test", func(any) {})
	bus.Subscribe("test", func(any) {})

	if n := bus.SubscriberCount("test"); n != 2 {
		t.Errorf("Expected 2 subscribers, got %d", n)
	}

	bus.Unsubscribe(sub)
	if n := bus.SubscriberCount("test"); n != 1 {
		t.Errorf("Expected 1 subscriber after unsubscribe, got %d", n)
	}
}

func TestBusNilHandler(t *testing.T) {
	bus := New()
	bus.Subscribe("test", nil)
	bus.Publish("test", nil) // Must not panic
}
