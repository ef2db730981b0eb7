package deeplink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
)

func TestParseFragment(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"tab=a":        "a",
		"#tab=panel-1": "panel-1",
		"tab=":         "",
		"":             "",
		"section=a":    "",
		"#top":         "",
		"xtab=a":       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseFragment(in), "fragment %q", in)
	}
}

func TestLink(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://intranet.example/news#tab=b", Link("https://intranet.example/news#old", "b"))
	assert.Equal(t, "#tab=b", Link("://bad", "b"))
}

func TestSynchronizer_ReadsInitialFragment(t *testing.T) {
	t.Parallel()

	h := NewHistory("tab=b", nil)
	assert.Equal(t, "b", NewSynchronizer(h, nil, true).ActivePanelID())
	assert.Empty(t, NewSynchronizer(h, nil, false).ActivePanelID())
}

func TestSynchronizer_UpdateHashOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	h := NewHistory("", nil)
	disabled := NewSynchronizer(h, nil, false)
	disabled.UpdateHash("a")
	assert.Empty(t, h.Fragment())

	enabled := NewSynchronizer(h, nil, true)
	enabled.UpdateHash("a")
	assert.Equal(t, "tab=a", h.Fragment())
	assert.Equal(t, "a", enabled.ActivePanelID())
}

func TestSynchronizer_DisabledHelper(t *testing.T) {
	t.Parallel()

	s := Disabled()
	assert.False(t, s.Enabled())
	assert.Nil(t, s.Start())
	s.UpdateHash("a")
	assert.False(t, s.Apply(events.NewHashChangedEvent("tab=a")))
	s.Close()
}

func TestSynchronizer_FollowsBackAndForward(t *testing.T) {
	bus := events.New(10)
	defer bus.Close()

	h := NewHistory("tab=a", bus)
	s := NewSynchronizer(h, bus, true)
	ch := s.Start()
	require.NotNil(t, ch)
	defer s.Close()

	s.UpdateHash("b")
	s.UpdateHash("c")

	require.True(t, h.Back())
	select {
	case ev := <-ch:
		assert.True(t, s.Apply(ev))
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected hash change after back")
	}
	assert.Equal(t, "b", s.ActivePanelID())

	require.True(t, h.Forward())
	ev := <-ch
	assert.True(t, s.Apply(ev))
	assert.Equal(t, "c", s.ActivePanelID())

	assert.False(t, h.Forward())
}

func TestSynchronizer_ForeignFragmentClearsID(t *testing.T) {
	t.Parallel()

	s := NewSynchronizer(NewHistory("tab=a", nil), nil, true)
	assert.True(t, s.Apply(events.NewHashChangedEvent("comments")))
	assert.Empty(t, s.ActivePanelID())
	assert.False(t, s.Apply(events.NewViewportResizedEvent(1, 1)))
}

func TestHistory_PushTruncatesForward(t *testing.T) {
	t.Parallel()

	h := NewHistory("", nil)
	h.SetFragment("tab=a")
	h.SetFragment("tab=b")
	require.True(t, h.Back())
	h.SetFragment("tab=c")
	assert.Equal(t, 3, h.Len())
	assert.False(t, h.Forward())
	assert.Equal(t, "tab=c", h.Fragment())

	h.SetFragment("tab=c")
	assert.Equal(t, 3, h.Len())
}

func TestHistory_NavigatePublishes(t *testing.T) {
	bus := events.New(10)
	defer bus.Close()
	ch := bus.Subscribe(events.TypeHashChanged)

	h := NewHistory("", bus)
	h.Navigate("tab=z")

	select {
	case ev := <-ch:
		assert.Equal(t, "tab=z", ev.(events.HashChangedEvent).Fragment)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected navigate to publish")
	}
}
