package hypertabs

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

// tabsRenderer shows one header per panel and the body of the active one.
// Selection and keyboard focus always move together.
type tabsRenderer struct{}

func (tabsRenderer) isShown(c *Container, panelID string) bool {
	return panelID != "" && c.state.ActivePanelID() == panelID
}

func (tabsRenderer) focusTarget(c *Container) string {
	return c.state.ActivePanelID()
}

func (r tabsRenderer) handleKey(c *Container, msg tea.KeyMsg) (bool, tea.Cmd) {
	n := len(c.enabled)
	current := panel.IndexOf(c.enabled, c.state.ActivePanelID())
	if current < 0 {
		current = 0
	}

	target := -1
	switch {
	case key.Matches(msg, c.keys.Next):
		target = wrapIndex(current, 1, n)
	case key.Matches(msg, c.keys.Prev):
		target = wrapIndex(current, -1, n)
	case key.Matches(msg, c.keys.First):
		target = 0
	case key.Matches(msg, c.keys.Last):
		target = n - 1
	case key.Matches(msg, c.keys.Marker):
		if i := markerIndex(msg.String()); i < n {
			target = i
		}
	}
	if target < 0 {
		return false, nil
	}
	return true, r.navigate(c, target, true)
}

func (tabsRenderer) navigate(c *Container, idx int, writeHash bool) tea.Cmd {
	c.selectPanel(idx, writeHash)
	return nil
}

func (tabsRenderer) bodySize(c *Container) (int, int) {
	if c.opts.TabStyle == core.TabStyleVertical {
		return max(c.width-verticalNavWidth(c)-1, 0), max(c.height, 0)
	}
	return c.width, max(c.height-2, 0)
}

func (r tabsRenderer) view(c *Container, width, height int) string {
	active := c.state.ActivePanelID()
	bodyW, bodyH := r.bodySize(c)

	var body string
	if p, ok := panel.Find(c.enabled, active); ok {
		body = c.renderBody(p, bodyW, bodyH)
	}

	if c.opts.TabStyle == core.TabStyleVertical {
		headers := make([]string, len(c.enabled))
		for i, p := range c.enabled {
			style := verticalTabStyle
			if p.ID == active {
				style = verticalTabActiveStyle
				if !c.hasFocus() {
					style = style.BorderForeground(ColorSecondary).Foreground(ColorSecondary)
				}
			}
			headers[i] = style.Width(verticalNavWidth(c)).Render(headerLabel(p))
		}
		nav := navBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headers...))
		return lipgloss.JoinHorizontal(lipgloss.Top, nav, body)
	}

	headers := make([]string, len(c.enabled))
	for i, p := range c.enabled {
		headers[i] = tabHeaderStyle(c.opts.TabStyle, p.ID == active, c.hasFocus()).Render(headerLabel(p))
	}

	var row string
	switch c.opts.TabStyle {
	case core.TabStylePill:
		row = lipgloss.JoinHorizontal(lipgloss.Top, headers...)
	default:
		row = strings.Join(headers, tabRuleStyle.Render("│"))
	}
	if width > 0 {
		row = lipgloss.NewStyle().MaxWidth(width).Render(row)
	}

	rule := ""
	if width > 0 && c.opts.TabStyle != core.TabStylePill {
		rule = tabRuleStyle.Render(strings.Repeat("─", width))
	}

	parts := []string{row}
	if rule != "" {
		parts = append(parts, rule)
	}
	if body != "" {
		parts = append(parts, body)
	}
	return strings.Join(parts, "\n")
}

func (tabsRenderer) help(c *Container) []key.Binding {
	return []key.Binding{c.keys.Next, c.keys.Prev, c.keys.First, c.keys.Last}
}

func tabHeaderStyle(style core.TabStyle, active, focused bool) lipgloss.Style {
	if !active {
		if style == core.TabStylePill {
			return pillStyle
		}
		return tabStyle
	}

	var s lipgloss.Style
	switch style {
	case core.TabStylePill:
		s = pillActiveStyle
		if !focused {
			s = s.Background(ColorSecondary)
		}
		return s
	case core.TabStyleUnderline:
		s = underlineActiveStyle
	default:
		s = tabActiveStyle
	}
	if !focused {
		s = s.Foreground(ColorSecondary)
	}
	return s
}

func verticalNavWidth(c *Container) int {
	w := 8
	for _, p := range c.enabled {
		w = max(w, lipgloss.Width(headerLabel(p))+3)
	}
	if c.width > 0 {
		w = min(w, c.width/3)
	}
	return w
}
