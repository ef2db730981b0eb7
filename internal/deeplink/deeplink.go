// Package deeplink keeps a container's active panel in sync with the host
// address fragment, using the "tab=<panelId>" convention.
package deeplink

import (
	"net/url"
	"strings"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
)

// Location is the host page address as seen by a container.
type Location interface {
	// Fragment returns the current fragment without the leading '#'.
	Fragment() string
	// SetFragment records a user-driven navigation. It must not be reported
	// back as an external change.
	SetFragment(fragment string)
}

// ParseFragment extracts the panel id from a fragment. Fragments that do not
// follow the "tab=" convention yield "".
func ParseFragment(fragment string) string {
	fragment = strings.TrimPrefix(fragment, "#")
	if !strings.HasPrefix(fragment, core.HashPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(fragment, core.HashPrefix))
}

// Fragment builds the fragment for panelID.
func Fragment(panelID string) string {
	return core.HashPrefix + panelID
}

// Link returns base with its fragment pointing at panelID.
func Link(base, panelID string) string {
	u, err := url.Parse(base)
	if err != nil {
		return "#" + Fragment(panelID)
	}
	u.Fragment = Fragment(panelID)
	return u.String()
}

// Synchronizer derives the deep-linked panel id from a Location and writes
// user navigations back to it. A disabled synchronizer never reads or writes
// the address; nested containers always use a disabled one.
type Synchronizer struct {
	loc     Location
	bus     *events.EventBus
	enabled bool

	activeHashPanelID string
	sub               <-chan events.Event
}

// NewSynchronizer creates a synchronizer and reads the initial fragment.
func NewSynchronizer(loc Location, bus *events.EventBus, enabled bool) *Synchronizer {
	s := &Synchronizer{
		loc:     loc,
		bus:     bus,
		enabled: enabled && loc != nil,
	}
	if s.enabled {
		s.activeHashPanelID = ParseFragment(loc.Fragment())
	}
	return s
}

// Disabled returns a synchronizer that ignores the address entirely.
func Disabled() *Synchronizer {
	return &Synchronizer{}
}

// Enabled reports whether this synchronizer touches the address.
func (s *Synchronizer) Enabled() bool {
	return s.enabled
}

// ActivePanelID returns the panel id named by the fragment, or "".
func (s *Synchronizer) ActivePanelID() string {
	return s.activeHashPanelID
}

// Start subscribes to external fragment changes. It returns the channel to
// wait on, or nil when there is nothing to listen to.
func (s *Synchronizer) Start() <-chan events.Event {
	if !s.enabled || s.bus == nil {
		return nil
	}
	if s.sub == nil {
		s.sub = s.bus.Subscribe(events.TypeHashChanged)
	}
	return s.sub
}

// Events returns the subscription channel opened by Start.
func (s *Synchronizer) Events() <-chan events.Event {
	return s.sub
}

// Apply re-derives the deep-linked id from an event. It reports whether the
// derived id changed.
func (s *Synchronizer) Apply(ev events.Event) bool {
	if !s.enabled {
		return false
	}
	hc, ok := ev.(events.HashChangedEvent)
	if !ok {
		return false
	}
	next := ParseFragment(hc.Fragment)
	if next == s.activeHashPanelID {
		return false
	}
	s.activeHashPanelID = next
	return true
}

// UpdateHash records a user navigation to panelID in the address.
func (s *Synchronizer) UpdateHash(panelID string) {
	if !s.enabled || panelID == "" {
		return
	}
	s.activeHashPanelID = panelID
	s.loc.SetFragment(Fragment(panelID))
}

// Close drops the subscription.
func (s *Synchronizer) Close() {
	if s.sub != nil && s.bus != nil {
		s.bus.Unsubscribe(s.sub)
	}
	s.sub = nil
}
