package events

import (
	"sync"
	"testing"
	"time"
)

func TestEventBus_Subscribe(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	ch := bus.Subscribe()

	bus.Publish(NewHashChangedEvent("tab=b"))

	select {
	case received := <-ch:
		if received.EventType() != TypeHashChanged {
			t.Errorf("expected %s, got %s", TypeHashChanged, received.EventType())
		}
		hc, ok := received.(HashChangedEvent)
		if !ok || hc.Fragment != "tab=b" {
			t.Errorf("unexpected event payload: %#v", received)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestEventBus_SubscribeByType(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	hashCh := bus.Subscribe(TypeHashChanged)
	allCh := bus.Subscribe()

	bus.Publish(NewViewportResizedEvent(120, 40))
	bus.Publish(NewHashChangedEvent("tab=a"))

	for i := 0; i < 2; i++ {
		select {
		case <-allCh:
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("allCh should receive event %d", i)
		}
	}

	select {
	case received := <-hashCh:
		if received.EventType() != TypeHashChanged {
			t.Errorf("expected hash_changed, got %s", received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("hashCh should receive hash event")
	}

	select {
	case e := <-hashCh:
		t.Errorf("hashCh should not receive %s", e.EventType())
	default:
	}
}

func TestEventBus_SubscribeForContainer(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	chA := bus.SubscribeForContainer("outer")
	chB := bus.SubscribeForContainer("other")

	bus.Publish(NewPanelActivatedEvent("outer", "p1", 0))
	bus.Publish(NewHashChangedEvent("tab=p1"))

	for _, want := range []string{TypePanelActivated, TypeHashChanged} {
		select {
		case e := <-chA:
			if e.EventType() != want {
				t.Errorf("chA got %s, want %s", e.EventType(), want)
			}
		default:
			t.Errorf("chA should have received %s", want)
		}
	}

	select {
	case e := <-chB:
		if e.EventType() != TypeHashChanged {
			t.Errorf("chB should only see page-wide events, got %s", e.EventType())
		}
	default:
		t.Error("chB should have received the page-wide event")
	}
	select {
	case e := <-chB:
		t.Errorf("chB got unexpected %s", e.EventType())
	default:
	}
}

func TestEventBus_PriorityNeverDrops(t *testing.T) {
	bus := New(5)
	defer bus.Close()

	priorityCh := bus.SubscribePriority(TypeConfigReloaded)

	for i := 0; i < 100; i++ {
		bus.Publish(NewViewportResizedEvent(i, 10))
	}

	bus.PublishPriority(NewConfigReloadedEvent("panels.yaml"))

	select {
	case received := <-priorityCh:
		if received.EventType() != TypeConfigReloaded {
			t.Errorf("expected config_reloaded, got %s", received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("priority event was dropped")
	}
}

func TestEventBus_RingBufferDropsOldest(t *testing.T) {
	bus := New(5)
	defer bus.Close()

	ch := bus.Subscribe()

	for i := 0; i < 10; i++ {
		bus.Publish(NewViewportResizedEvent(i, 10))
	}

	if bus.DroppedCount() == 0 {
		t.Error("expected some events to be dropped")
	}

	var last ViewportResizedEvent
	received := 0
drain:
	for {
		select {
		case e := <-ch:
			last = e.(ViewportResizedEvent)
			received++
		default:
			break drain
		}
	}

	if received != 5 {
		t.Errorf("expected buffer of 5 events, got %d", received)
	}
	if last.Width != 9 {
		t.Errorf("newest sample should survive, got width %d", last.Width)
	}
}

func TestEventBus_ConcurrentPublish(t *testing.T) {
	bus := New(100)
	defer bus.Close()

	ch := bus.Subscribe()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(NewViewportResizedEvent(id, j))
			}
		}(i)
	}
	wg.Wait()

	received := 0
drainLoop:
	for {
		select {
		case <-ch:
			received++
		default:
			break drainLoop
		}
	}

	if received == 0 {
		t.Error("should have received some events")
	}
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	ch := bus.Subscribe()
	bus.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestEventBus_CloseIsIdempotent(t *testing.T) {
	bus := New(10)
	ch := bus.Subscribe()
	bus.Close()
	bus.Close()
	bus.Publish(NewHashChangedEvent("tab=a"))

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Close")
	}

	late := bus.Subscribe()
	if _, ok := <-late; ok {
		t.Error("subscribing to a closed bus should return a closed channel")
	}
}
