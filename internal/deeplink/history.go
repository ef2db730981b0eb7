package deeplink

import (
	"sync"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
)

// History is an in-process address bar with back/forward navigation. User
// navigations push silently; back, forward and Navigate are external
// changes and are published as hash_changed events.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
	bus     *events.EventBus
}

// NewHistory starts a history at the given fragment.
func NewHistory(initial string, bus *events.EventBus) *History {
	return &History{
		entries: []string{initial},
		bus:     bus,
	}
}

// Fragment returns the current fragment.
func (h *History) Fragment() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// SetFragment pushes a new entry, discarding forward history.
func (h *History) SetFragment(fragment string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.entries[h.index] == fragment {
		return
	}
	h.entries = append(h.entries[:h.index+1], fragment)
	h.index = len(h.entries) - 1
}

// Navigate pushes an entry as if typed into the address bar and announces it.
func (h *History) Navigate(fragment string) {
	h.SetFragment(fragment)
	h.publish(fragment)
}

// Back moves one entry back. It reports false at the oldest entry.
func (h *History) Back() bool {
	h.mu.Lock()
	if h.index == 0 {
		h.mu.Unlock()
		return false
	}
	h.index--
	fragment := h.entries[h.index]
	h.mu.Unlock()

	h.publish(fragment)
	return true
}

// Forward moves one entry forward. It reports false at the newest entry.
func (h *History) Forward() bool {
	h.mu.Lock()
	if h.index >= len(h.entries)-1 {
		h.mu.Unlock()
		return false
	}
	h.index++
	fragment := h.entries[h.index]
	h.mu.Unlock()

	h.publish(fragment)
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) publish(fragment string) {
	if h.bus != nil {
		h.bus.Publish(events.NewHashChangedEvent(fragment))
	}
}
