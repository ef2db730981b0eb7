package hypertabs

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/deeplink"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

func simplePanel(id, title string, order int) panel.Panel {
	return panel.Panel{
		ID:          id,
		Title:       title,
		ContentType: panel.ContentSimple,
		Content:     title + " body",
		SortOrder:   order,
		Enabled:     true,
	}
}

func nestedPanel(id, title string, order int, mode core.Mode, children ...panel.Panel) panel.Panel {
	return panel.Panel{
		ID:          id,
		Title:       title,
		ContentType: panel.ContentNested,
		NestedConfig: &panel.NestedConfig{
			Mode:   mode,
			Panels: children,
		},
		SortOrder: order,
		Enabled:   true,
	}
}

func threePanels() []panel.Panel {
	return []panel.Panel{
		simplePanel("a", "Alpha", 0),
		simplePanel("b", "Bravo", 1),
		simplePanel("c", "Charlie", 2),
	}
}

func testOptions(mode core.Mode) Options {
	opts := DefaultOptions()
	opts.Mode = mode
	opts.Animation = false
	return opts
}

// harness mounts a root container on an in-process address bar.
type harness struct {
	c       *Container
	history *deeplink.History
	bus     *events.EventBus
}

func newHarness(t *testing.T, fragment string, panels []panel.Panel, opts Options) *harness {
	t.Helper()
	bus := events.New(16)
	history := deeplink.NewHistory(fragment, bus)
	c := New("root", panels, opts, Deps{Bus: bus, Location: history})
	t.Cleanup(func() {
		c.Close()
		bus.Close()
	})
	return &harness{c: c, history: history, bus: bus}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(c *Container, keys ...string) {
	for _, k := range keys {
		c.Update(keyMsg(k))
	}
}

// typeText sends each rune as its own key press.
func typeText(c *Container, s string) {
	for _, r := range s {
		c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// hashEvent delivers an external address change as the bus would.
func hashEvent(c *Container, fragment string) tea.Cmd {
	_, cmd := c.Update(busEventMsg{
		container: c.ID(),
		event:     events.NewHashChangedEvent(fragment),
	})
	return cmd
}

func contains(view string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(view, p) {
			return false
		}
	}
	return true
}

func drainActivations(ch <-chan events.Event) []string {
	var ids []string
	for {
		select {
		case ev := <-ch:
			if pa, ok := ev.(events.PanelActivatedEvent); ok {
				ids = append(ids, pa.ContainerID()+":"+pa.PanelID)
			}
		default:
			return ids
		}
	}
}
