package hypertabs

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

const maxJumpMatches = 5

// jumpPrompt fuzzy-matches panel titles and navigates to the best match in
// the terms of the effective mode.
type jumpPrompt struct {
	input   textinput.Model
	matches fuzzy.Matches
	active  bool
}

func newJumpPrompt() *jumpPrompt {
	ti := textinput.New()
	ti.Prompt = "jump to: "
	ti.Placeholder = "panel title"
	ti.CharLimit = 64
	return &jumpPrompt{input: ti}
}

func (c *Container) openJump() tea.Cmd {
	if len(c.enabled) == 0 {
		return nil
	}
	if c.jump == nil {
		c.jump = newJumpPrompt()
	}
	c.jump.active = true
	c.jump.input.Reset()
	c.refreshJump()
	return c.jump.input.Focus()
}

func (c *Container) closeJump() {
	c.jump.active = false
	c.jump.input.Blur()
}

func (c *Container) updateJump(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		c.closeJump()
		return nil
	case tea.KeyEnter:
		c.closeJump()
		if len(c.jump.matches) == 0 {
			return nil
		}
		cmd := c.renderer().navigate(c, c.jump.matches[0].Index, true)
		c.syncActivation()
		return cmd
	}

	var cmd tea.Cmd
	c.jump.input, cmd = c.jump.input.Update(msg)
	c.refreshJump()
	return cmd
}

// refreshJump matches the query against enabled titles. An empty query
// lists panels in order.
func (c *Container) refreshJump() {
	titles := panel.Titles(c.enabled)
	query := strings.TrimSpace(c.jump.input.Value())
	if query == "" {
		c.jump.matches = make(fuzzy.Matches, len(titles))
		for i, t := range titles {
			c.jump.matches[i] = fuzzy.Match{Str: t, Index: i}
		}
		return
	}
	c.jump.matches = fuzzy.Find(query, titles)
}

func (c *Container) jumpView() string {
	var b strings.Builder
	b.WriteString(c.jump.input.View())

	for i, m := range c.jump.matches {
		if i == maxJumpMatches {
			break
		}
		b.WriteString("\n  ")
		b.WriteString(highlightMatch(m))
	}
	if len(c.jump.matches) == 0 {
		b.WriteString("\n  ")
		b.WriteString(placeholderStyle.Render("no matching panel"))
	}
	return jumpBoxStyle.Render(b.String())
}

func highlightMatch(m fuzzy.Match) string {
	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		matched[i] = true
	}
	var b strings.Builder
	for i, r := range m.Str {
		if matched[i] {
			b.WriteString(jumpMatchStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
