package hypertabs

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

// accordionRenderer shows every header with its expansion state from the
// store. The cursor is independent of what is expanded.
type accordionRenderer struct{}

func (accordionRenderer) isShown(c *Container, panelID string) bool {
	return c.state.IsExpanded(panelID)
}

func (accordionRenderer) focusTarget(c *Container) string {
	if c.cursor < 0 || c.cursor >= len(c.enabled) {
		return ""
	}
	id := c.enabled[c.cursor].ID
	if !c.state.IsExpanded(id) {
		return ""
	}
	return id
}

func (r accordionRenderer) handleKey(c *Container, msg tea.KeyMsg) (bool, tea.Cmd) {
	n := len(c.enabled)
	switch {
	case key.Matches(msg, c.keys.CursorDown):
		c.cursor = wrapIndex(c.cursor, 1, n)
	case key.Matches(msg, c.keys.CursorUp):
		c.cursor = wrapIndex(c.cursor, -1, n)
	case key.Matches(msg, c.keys.First):
		c.cursor = 0
	case key.Matches(msg, c.keys.Last):
		c.cursor = n - 1
	case key.Matches(msg, c.keys.Toggle):
		r.toggle(c, c.cursor, true)
	case key.Matches(msg, c.keys.Marker):
		i := markerIndex(msg.String())
		if i >= n {
			return false, nil
		}
		r.toggle(c, i, true)
	case c.opts.ShowControls && key.Matches(msg, c.keys.ExpandAll):
		c.expandAll()
	case c.opts.ShowControls && key.Matches(msg, c.keys.CollapseAll):
		c.collapseAll()
	default:
		return false, nil
	}
	return true, nil
}

// toggle flips one panel under the single/multi expand rule. Opening a
// panel counts as navigation to it.
func (accordionRenderer) toggle(c *Container, idx int, writeHash bool) {
	if idx < 0 || idx >= len(c.enabled) {
		return
	}
	id := c.enabled[idx].ID
	wasOpen := c.state.IsExpanded(id)
	c.state.ToggleAccordionPanel(id, c.opts.MultiExpand)
	c.cursor = idx
	if !wasOpen {
		c.selectPanel(idx, writeHash)
	}
}

func (r accordionRenderer) navigate(c *Container, idx int, writeHash bool) tea.Cmd {
	if idx < 0 || idx >= len(c.enabled) {
		return nil
	}
	if c.state.IsExpanded(c.enabled[idx].ID) {
		c.selectPanel(idx, writeHash)
		return nil
	}
	r.toggle(c, idx, writeHash)
	return nil
}

func (accordionRenderer) bodySize(c *Container) (int, int) {
	return max(c.width-4, 0), c.height
}

func (r accordionRenderer) view(c *Container, width, _ int) string {
	var b strings.Builder

	if c.opts.ShowControls {
		b.WriteString(controlStyle.Render("[e] Expand all   [c] Collapse all"))
		b.WriteString("\n")
	}

	bodyW, bodyH := r.bodySize(c)
	for i, p := range c.enabled {
		open := c.state.IsExpanded(p.ID)
		chevron := "▸"
		if open {
			chevron = "▾"
		}

		style := accordionHeaderStyle
		if i == c.cursor && c.hasFocus() {
			style = accordionCursorStyle
		}
		if width > 0 {
			style = style.Width(width)
		}
		b.WriteString(style.Render(chevron + " " + headerLabel(p)))
		b.WriteString("\n")

		if !open {
			continue
		}
		if body := c.renderBody(p, bodyW, bodyH); body != "" {
			b.WriteString(accordionBodyStyle.Render(body))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (accordionRenderer) help(c *Container) []key.Binding {
	bindings := []key.Binding{c.keys.CursorDown, c.keys.CursorUp, c.keys.Toggle}
	if c.opts.ShowControls {
		bindings = append(bindings, c.keys.ExpandAll, c.keys.CollapseAll)
	}
	return bindings
}

// expandAll opens every enabled panel regardless of the expand rule.
func (c *Container) expandAll() {
	c.state.ExpandAllPanels(panel.IDs(c.enabled))
}

func (c *Container) collapseAll() {
	c.state.CollapseAllPanels()
	c.releaseChild()
}
