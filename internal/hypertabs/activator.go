package hypertabs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/visibility"
)

// NestingLimitMessage replaces containers that would exceed the nesting
// bound.
var NestingLimitMessage = fmt.Sprintf("Nested panels are limited to %d levels.", core.MaxNestingDepth)

// renderBody is the per-panel gate. Visibility wins over everything; lazy
// panels that were never shown render nothing.
func (c *Container) renderBody(p panel.Panel, width, height int) string {
	if c.deps.Visibility.Evaluate(p) == visibility.Hidden {
		return ""
	}
	if c.opts.LazyLoading && !c.state.IsActivated(p.ID) && !c.renderer().isShown(c, p.ID) {
		return ""
	}
	if p.IsNested() {
		return c.renderNested(p, width, height)
	}

	out, err := c.deps.Content.Render(p, width)
	if err != nil {
		c.log.WithPanel(p.ID).Warn("content render failed", "content_type", p.ContentType, "error", err)
		return contentErrorStyle.Render(err.Error())
	}
	return out
}

func (c *Container) renderNested(p panel.Panel, width, height int) string {
	if c.depth+1 >= core.MaxNestingDepth {
		return placeholderStyle.Render(NestingLimitMessage)
	}
	child := c.children[p.ID]
	if child == nil {
		return ""
	}
	out := child.View()
	if c.focusedChild == p.ID {
		return out
	}
	if c.hasFocus() && c.renderer().focusTarget(c) == p.ID {
		out += "\n" + placeholderStyle.Render("tab: enter nested panels")
	}
	return out
}

var symbolicIcons = map[string]string{
	"home":     "⌂",
	"info":     "ℹ",
	"star":     "★",
	"user":     "☺",
	"people":   "☺",
	"news":     "✉",
	"mail":     "✉",
	"calendar": "▦",
	"alert":    "⚠",
	"warning":  "⚠",
	"check":    "✓",
	"settings": "⚙",
	"search":   "⌕",
	"link":     "↗",
	"document": "≡",
	"heart":    "♥",
}

func iconText(icon *panel.Icon) string {
	if icon == nil || icon.Value == "" {
		return ""
	}
	glyph := icon.Value
	if icon.Kind == panel.IconSymbolic {
		g, ok := symbolicIcons[strings.ToLower(icon.Value)]
		if !ok {
			g = "•"
		}
		glyph = g
	}
	if icon.Color == "" {
		return glyph
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(icon.Color)).Render(glyph)
}

func badgeText(b *panel.Badge) string {
	if b == nil {
		return ""
	}
	var text string
	switch b.Kind {
	case panel.BadgeDot:
		text = "●"
	case panel.BadgeCount:
		switch {
		case b.Value == "" || b.Value == "0":
			return ""
		case len(b.Value) > 2:
			text = "99+"
		default:
			text = b.Value
		}
		text = "(" + text + ")"
	default:
		if b.Value == "" {
			return ""
		}
		text = "[" + b.Value + "]"
	}
	return lipgloss.NewStyle().Foreground(colorOr(b.Color, ColorAccent)).Render(text)
}

// headerLabel renders icon, title and badge of a panel header.
func headerLabel(p panel.Panel) string {
	parts := make([]string, 0, 3)
	if icon := iconText(p.Icon); icon != "" {
		parts = append(parts, icon)
	}
	title := p.Title
	if title == "" {
		title = p.ID
	}
	parts = append(parts, title)
	if badge := badgeText(p.Badge); badge != "" {
		parts = append(parts, badge)
	}
	return strings.Join(parts, " ")
}
