package hypertabs

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
)

// renderer is one presentation strategy over a container's enabled panels.
// Renderers are stateless; everything they mutate lives on the container.
type renderer interface {
	// isShown reports whether the mode currently displays the panel body.
	isShown(c *Container, panelID string) bool
	// focusTarget is the panel whose nested container would take focus.
	focusTarget(c *Container) string
	handleKey(c *Container, msg tea.KeyMsg) (bool, tea.Cmd)
	// navigate shows the panel at idx. Address-driven navigation passes
	// writeHash=false.
	navigate(c *Container, idx int, writeHash bool) tea.Cmd
	// bodySize is the space available to one panel body.
	bodySize(c *Container) (int, int)
	view(c *Container, width, height int) string
	help(c *Container) []key.Binding
}

func (c *Container) renderer() renderer {
	switch c.EffectiveMode() {
	case core.ModeAccordion:
		return accordionRenderer{}
	case core.ModeWizard:
		return wizardRenderer{}
	case core.ModeScrollSpy:
		return scrollSpyRenderer{}
	default:
		return tabsRenderer{}
	}
}

// wrapIndex moves i by delta within [0, n), wrapping at both ends.
func wrapIndex(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
