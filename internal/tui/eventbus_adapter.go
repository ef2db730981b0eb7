package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
)

// EventBusAdapter bridges host-level bus events to bubbletea messages.
// Container-scoped events (resize, address) are consumed by the containers
// themselves and never pass through here.
type EventBusAdapter struct {
	bus        *events.EventBus
	eventCh    <-chan events.Event
	priorityCh <-chan events.Event
	msgCh      chan tea.Msg
	closeCh    chan struct{}
	done       chan struct{}
	mu         sync.Mutex
	closed     bool
}

// NewEventBusAdapter creates a new adapter.
func NewEventBusAdapter(bus *events.EventBus) *EventBusAdapter {
	a := &EventBusAdapter{
		bus:        bus,
		eventCh:    bus.Subscribe(events.TypePanelActivated),
		priorityCh: bus.SubscribePriority(events.TypeConfigReloaded),
		msgCh:      make(chan tea.Msg, 100),
		closeCh:    make(chan struct{}),
		done:       make(chan struct{}),
	}

	go a.run()
	return a
}

// MsgChannel returns the channel for bubbletea to read from.
func (a *EventBusAdapter) MsgChannel() <-chan tea.Msg {
	return a.msgCh
}

// Close shuts down the adapter and releases its subscriptions.
func (a *EventBusAdapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.closeCh)
	a.mu.Unlock()

	<-a.done
	a.bus.Unsubscribe(a.eventCh)
	a.bus.Unsubscribe(a.priorityCh)
}

func (a *EventBusAdapter) run() {
	defer close(a.done)
	defer close(a.msgCh)

	for {
		select {
		case <-a.closeCh:
			return

		// Reloads are never dropped
		case event, ok := <-a.priorityCh:
			if !ok {
				return
			}
			a.forward(event)

		case event, ok := <-a.eventCh:
			if !ok {
				return
			}
			a.forward(event)
		}
	}
}

func (a *EventBusAdapter) forward(event events.Event) {
	msg := eventToMsg(event)
	if msg == nil {
		return
	}
	if _, reload := msg.(ReloadMsg); reload {
		select {
		case a.msgCh <- msg:
		case <-a.closeCh:
		}
		return
	}
	select {
	case a.msgCh <- msg:
	default:
		// Activation notices are informational; drop when the UI lags
	}
}

func eventToMsg(event events.Event) tea.Msg {
	switch e := event.(type) {
	case events.PanelActivatedEvent:
		return ActivatedMsg{Container: e.ContainerID(), PanelID: e.PanelID, Depth: e.Depth}
	case events.ConfigReloadedEvent:
		return ReloadMsg{Path: e.Path}
	default:
		return nil
	}
}
