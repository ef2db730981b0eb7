package hypertabs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// wizardRenderer walks the enabled panels as numbered steps. Finishing is a
// resting state: Next is disabled on the last step and nothing is submitted.
type wizardRenderer struct{}

// step returns the current step clamped to the panel count.
func (wizardRenderer) step(c *Container) int {
	s := c.state.WizardCurrentStep()
	if s >= len(c.enabled) {
		s = len(c.enabled) - 1
	}
	return max(s, 0)
}

func (r wizardRenderer) isShown(c *Container, panelID string) bool {
	if len(c.enabled) == 0 {
		return false
	}
	return c.enabled[r.step(c)].ID == panelID
}

func (r wizardRenderer) focusTarget(c *Container) string {
	if len(c.enabled) == 0 {
		return ""
	}
	return c.enabled[r.step(c)].ID
}

// reachable applies step gating: in linear mode only visited or completed
// steps can be jumped to.
func (r wizardRenderer) reachable(c *Container, i int) bool {
	if i < 0 || i >= len(c.enabled) {
		return false
	}
	if !c.opts.Linear {
		return true
	}
	return i <= r.step(c) || c.state.IsStepCompleted(i)
}

func (r wizardRenderer) handleKey(c *Container, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, c.keys.StepNext):
		r.next(c)
	case key.Matches(msg, c.keys.StepPrev):
		r.prev(c)
	case key.Matches(msg, c.keys.First):
		r.goTo(c, 0, true)
	case key.Matches(msg, c.keys.Last):
		r.goTo(c, len(c.enabled)-1, true)
	case key.Matches(msg, c.keys.Marker):
		r.goTo(c, markerIndex(msg.String()), true)
	default:
		return false, nil
	}
	return true, nil
}

// next completes the current step, then advances. It does nothing on the
// last step.
func (r wizardRenderer) next(c *Container) {
	n := len(c.enabled)
	current := r.step(c)
	if current >= n-1 {
		return
	}
	c.state.WizardMarkStepCompleted(current)
	c.state.WizardNextStep(n)
	c.selectPanel(c.state.WizardCurrentStep(), true)
}

func (r wizardRenderer) prev(c *Container) {
	if r.step(c) == 0 {
		return
	}
	c.state.WizardPrevStep()
	c.selectPanel(c.state.WizardCurrentStep(), true)
}

// goTo jumps to a step marker. Unreachable markers are ignored.
func (r wizardRenderer) goTo(c *Container, i int, writeHash bool) bool {
	if !r.reachable(c, i) {
		return false
	}
	c.state.WizardGoToStep(i)
	c.selectPanel(i, writeHash)
	return true
}

func (r wizardRenderer) navigate(c *Container, idx int, writeHash bool) tea.Cmd {
	r.goTo(c, idx, writeHash)
	return nil
}

func (wizardRenderer) bodySize(c *Container) (int, int) {
	reserved := 6
	if c.opts.ShowProgress {
		reserved += 2
	}
	return c.width, max(c.height-reserved, 0)
}

func (r wizardRenderer) view(c *Container, width, _ int) string {
	n := len(c.enabled)
	current := r.step(c)
	p := c.enabled[current]

	var sections []string
	if c.opts.ShowProgress {
		sections = append(sections, r.markers(c, current))
		c.progress.Width = max(width-2, 10)
		done := float64(len(c.state.WizardCompletedSteps())) / float64(n)
		sections = append(sections, c.progress.ViewAs(done))
	}

	title := fmt.Sprintf("Step %d of %d: %s", current+1, n, headerLabel(p))
	sections = append(sections, stepTitleStyle.Render(title))

	bodyW, bodyH := r.bodySize(c)
	if body := c.renderBody(p, bodyW, bodyH); body != "" {
		sections = append(sections, body)
	}

	prev := buttonStyle.Render("← Previous")
	if current == 0 {
		prev = buttonDisabledStyle.Render("← Previous")
	}
	next := buttonStyle.Render("Next →")
	if current == n-1 {
		next = buttonDisabledStyle.Render("Finish")
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, prev, " ", next))

	return strings.Join(sections, "\n")
}

// markers renders one numbered marker per step joined by connectors.
func (r wizardRenderer) markers(c *Container, current int) string {
	var b strings.Builder
	for i := range c.enabled {
		if i > 0 {
			style := connectorStyle
			if c.state.IsStepCompleted(i - 1) {
				style = connectorDoneStyle
			}
			b.WriteString(style.Render("──"))
		}

		var symbol string
		var style lipgloss.Style
		switch {
		case i == current:
			symbol, style = "●", markerCurrentStyle
		case c.state.IsStepCompleted(i):
			symbol, style = "✓", markerDoneStyle
		case r.reachable(c, i):
			symbol, style = "○", markerOpenStyle
		default:
			symbol, style = "○", markerLockedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s %d", symbol, i+1)))
	}
	return b.String()
}

func (wizardRenderer) help(c *Container) []key.Binding {
	return []key.Binding{c.keys.StepNext, c.keys.StepPrev, c.keys.Marker}
}
