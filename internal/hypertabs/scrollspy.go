package hypertabs

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// ActiveSection returns the index of the last section whose top line is at
// or above offset+lookahead. Offsets must be ascending.
func ActiveSection(offsets []int, offset, lookahead int) int {
	active := 0
	for i, top := range offsets {
		if top > offset+lookahead {
			break
		}
		active = i
	}
	return active
}

// spyState is the scroll region of a scroll-spy container.
type spyState struct {
	vp      viewport.Model
	offsets []int
	active  int

	// samplePending coalesces scroll samples into one per interval.
	samplePending bool

	animating bool
	spring    harmonica.Spring
	pos       float64
	vel       float64
	target    float64
}

func newSpyState() *spyState {
	return &spyState{
		vp:     viewport.New(0, 0),
		spring: harmonica.NewSpring(harmonica.FPS(60), 6.0, 1.0),
	}
}

func (c *Container) ensureSpy() *spyState {
	if c.spy == nil {
		c.spy = newSpyState()
		if idx := c.cursor; idx >= 0 && idx < len(c.enabled) {
			c.spy.active = idx
		}
	}
	return c.spy
}

// scrollSpyRenderer renders all bodies in one scrollable region next to a
// section navigation. The highlighted entry follows the scroll offset.
type scrollSpyRenderer struct{}

func (scrollSpyRenderer) isShown(*Container, string) bool {
	return true
}

func (scrollSpyRenderer) focusTarget(c *Container) string {
	spy := c.ensureSpy()
	if spy.active >= len(c.enabled) {
		return ""
	}
	return c.enabled[spy.active].ID
}

func (r scrollSpyRenderer) handleKey(c *Container, msg tea.KeyMsg) (bool, tea.Cmd) {
	spy := c.ensureSpy()
	n := len(c.enabled)
	switch {
	case key.Matches(msg, c.keys.SectionNext):
		return true, r.navigate(c, min(spy.active+1, n-1), true)
	case key.Matches(msg, c.keys.SectionPrev):
		return true, r.navigate(c, max(spy.active-1, 0), true)
	case key.Matches(msg, c.keys.First):
		return true, r.navigate(c, 0, true)
	case key.Matches(msg, c.keys.Last):
		return true, r.navigate(c, n-1, true)
	case key.Matches(msg, c.keys.Marker):
		if i := markerIndex(msg.String()); i < n {
			return true, r.navigate(c, i, true)
		}
		return false, nil
	}
	return true, c.spyScroll(msg)
}

// navigate is a nav click: the entry becomes active at once and the region
// scrolls to it, smoothly when animation is on.
func (scrollSpyRenderer) navigate(c *Container, idx int, writeHash bool) tea.Cmd {
	if idx < 0 || idx >= len(c.enabled) {
		return nil
	}
	spy := c.ensureSpy()
	c.spyLayout()

	spy.active = idx
	c.selectPanel(idx, writeHash)

	target := 0
	if idx < len(spy.offsets) {
		target = spy.offsets[idx]
	}
	target = min(target, max(spy.vp.TotalLineCount()-spy.vp.Height, 0))

	if !c.opts.Animation {
		spy.animating = false
		spy.vp.SetYOffset(target)
		return nil
	}
	spy.target = float64(target)
	spy.pos = float64(spy.vp.YOffset)
	spy.vel = 0
	if spy.animating {
		return nil
	}
	spy.animating = true
	return spyFrameCmd(c.id)
}

// spyScroll forwards user scrolling to the viewport and schedules a sample.
func (c *Container) spyScroll(msg tea.Msg) tea.Cmd {
	spy := c.ensureSpy()
	before := spy.vp.YOffset

	var cmd tea.Cmd
	spy.vp, cmd = spy.vp.Update(msg)
	if spy.vp.YOffset == before {
		return cmd
	}
	// User scrolling interrupts a running animation
	spy.animating = false
	if spy.samplePending {
		return cmd
	}
	spy.samplePending = true
	return tea.Batch(cmd, spySampleCmd(c.id))
}

// spySample recomputes the active section from the latest offset.
func (c *Container) spySample() {
	if c.spy == nil {
		return
	}
	c.spy.samplePending = false
	if c.spy.animating || len(c.enabled) == 0 {
		return
	}
	idx := ActiveSection(c.spy.offsets, c.spy.vp.YOffset, c.opts.Lookahead)
	if idx != c.spy.active {
		c.spy.active = idx
		c.selectPanel(idx, false)
	}
}

func (c *Container) spyFrame() tea.Cmd {
	spy := c.spy
	if spy == nil || !spy.animating {
		return nil
	}
	spy.pos, spy.vel = spy.spring.Update(spy.pos, spy.vel, spy.target)
	if math.Abs(spy.pos-spy.target) < 0.5 && math.Abs(spy.vel) < 0.5 {
		spy.animating = false
		spy.vp.SetYOffset(int(spy.target))
		return nil
	}
	spy.vp.SetYOffset(int(math.Round(spy.pos)))
	return spyFrameCmd(c.id)
}

// spyLayout rebuilds the scroll region and the section offsets.
func (c *Container) spyLayout() {
	spy := c.ensureSpy()
	w, h := scrollSpyRenderer{}.bodySize(c)
	spy.vp.Width = w
	spy.vp.Height = max(h, 1)

	spy.offsets = spy.offsets[:0]
	var sections []string
	line := 0
	for _, p := range c.enabled {
		spy.offsets = append(spy.offsets, line)
		section := sectionTitleStyle.Render(headerLabel(p))
		if body := c.renderBody(p, w, 0); body != "" {
			section += "\n" + body
		}
		sections = append(sections, section)
		line += lipgloss.Height(section) + 1
	}

	y := spy.vp.YOffset
	spy.vp.SetContent(strings.Join(sections, "\n\n"))
	spy.vp.SetYOffset(y)
}

func (scrollSpyRenderer) bodySize(c *Container) (int, int) {
	return max(c.width-spyNavWidth(c)-1, 0), c.height
}

func (scrollSpyRenderer) view(c *Container, _, _ int) string {
	spy := c.ensureSpy()

	entries := make([]string, len(c.enabled))
	for i, p := range c.enabled {
		label := fmt.Sprintf("%d %s", i+1, headerLabel(p))
		if i == spy.active {
			entries[i] = navActiveStyle.Render("▶ " + label)
			continue
		}
		entries[i] = navStyle.Render(label)
	}
	nav := navBoxStyle.Width(spyNavWidth(c)).Render(lipgloss.JoinVertical(lipgloss.Left, entries...))
	return lipgloss.JoinHorizontal(lipgloss.Top, nav, spy.vp.View())
}

func (scrollSpyRenderer) help(c *Container) []key.Binding {
	return []key.Binding{c.keys.SectionNext, c.keys.SectionPrev, c.keys.Marker}
}

func spyNavWidth(c *Container) int {
	w := 10
	for i, p := range c.enabled {
		w = max(w, lipgloss.Width(fmt.Sprintf("%d %s", i+1, headerLabel(p)))+4)
	}
	if c.width > 0 {
		w = min(w, c.width/3)
	}
	return w
}
