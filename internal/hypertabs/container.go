// Package hypertabs renders a collection of panels through one of four
// interchangeable modes (tabs, accordion, wizard, scroll-spy). A Container
// owns its panel list, its private state store and its nested child
// containers, and runs inside a bubbletea program.
package hypertabs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/deeplink"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/logging"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/responsive"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/store"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/visibility"
)

// Container is one mounted panel container.
type Container struct {
	id    string
	depth int
	opts  Options
	deps  Deps
	log   *logging.Logger
	keys  KeyMap

	panels  []panel.Panel
	enabled []panel.Panel
	state   *store.Store
	link    *deeplink.Synchronizer

	width  int
	height int

	// cursor is the focused header: the active tab, the accordion header
	// under the cursor, or the scroll-spy section.
	cursor int
	// focused is false while an ancestor keeps the keyboard.
	focused      bool
	focusedChild string
	children     map[string]*Container

	spy      *spyState
	jump     *jumpPrompt
	progress progress.Model
	help     help.Model

	resizeSub <-chan events.Event
	closed    bool
}

// New mounts a top-level container.
func New(id string, panels []panel.Panel, opts Options, deps Deps) *Container {
	deps = deps.withDefaults()
	c := newContainer(id, 0, opts, deps)
	c.focused = true
	c.link = deeplink.NewSynchronizer(deps.Location, deps.Bus, opts.DeepLinking)
	c.SetPanels(panels)
	return c
}

func newContainer(id string, depth int, opts Options, deps Deps) *Container {
	return &Container{
		id:    id,
		depth: depth,
		opts:  opts,
		deps:  deps,
		log:   deps.Logger.WithContainer(id),
		keys:  DefaultKeyMap(),
		state: store.New(),
		link:  deeplink.Disabled(),
		progress: progress.New(
			progress.WithScaledGradient("#7c3aed", "#3b82f6"),
			progress.WithoutPercentage(),
		),
		help:     help.New(),
		children: make(map[string]*Container),
	}
}

// newChild mounts the container of a nested panel one level deeper. It has
// its own store and never touches the address.
func (c *Container) newChild(p panel.Panel) *Container {
	opts := c.opts
	opts.Mode = p.NestedConfig.Mode
	if p.NestedConfig.Style != "" {
		opts.TabStyle = p.NestedConfig.Style
	}
	opts.DeepLinking = false
	opts.DefaultPanelID = ""
	opts.ExpandAll = false

	deps := c.deps
	deps.Location = nil

	child := newContainer(c.id+"/"+p.ID, c.depth+1, opts, deps)
	w, h := c.renderer().bodySize(c)
	child.width, child.height = w, h
	child.SetPanels(p.NestedConfig.Panels)
	c.log.Debug("nested container mounted", "child", child.id, "depth", child.depth)
	return child
}

// ID returns the container id.
func (c *Container) ID() string { return c.id }

// Depth returns the nesting depth, 0 for a top-level container.
func (c *Container) Depth() int { return c.depth }

// Options returns the container settings.
func (c *Container) Options() Options { return c.opts }

// Store exposes the container state.
func (c *Container) Store() *store.Store { return c.state }

// Panels returns the full panel collection.
func (c *Container) Panels() []panel.Panel { return c.panels }

// EnabledPanels returns the enabled panels in display order.
func (c *Container) EnabledPanels() []panel.Panel { return c.enabled }

// ActivePanelID returns the active panel id.
func (c *Container) ActivePanelID() string { return c.state.ActivePanelID() }

// Child returns the nested container of panelID, if mounted.
func (c *Container) Child(panelID string) *Container { return c.children[panelID] }

// Breakpoint classifies the current width. An unknown width counts as
// desktop.
func (c *Container) Breakpoint() core.Breakpoint {
	if c.width <= 0 {
		return core.BreakpointDesktop
	}
	return responsive.Classify(c.width, c.opts.Breakpoint)
}

// EffectiveMode is the mode actually rendered at the current breakpoint.
func (c *Container) EffectiveMode() core.Mode {
	return responsive.Resolve(c.opts.Mode, c.Breakpoint(), c.opts.ResponsiveCollapse)
}

// SetPanels replaces the panel collection. Like a remount, it discards all
// state and nested containers.
func (c *Container) SetPanels(panels []panel.Panel) {
	c.panels = panels
	c.enabled = panel.Enabled(panels)

	for _, child := range c.children {
		child.Close()
	}
	c.children = make(map[string]*Container)
	c.focusedChild = ""
	c.spy = nil
	c.cursor = 0
	c.state.Reset()

	c.initialize()
	c.syncActivation()
	c.afterChange()
	if c.spy != nil && c.cursor > 0 && c.cursor < len(c.spy.offsets) {
		c.spy.active = c.cursor
		c.spy.vp.SetYOffset(c.spy.offsets[c.cursor])
	}

	c.log.Debug("panels set",
		"panels", len(panels),
		"enabled", len(c.enabled),
		"active", c.state.ActivePanelID(),
	)
}

// initialize applies the active-panel priority: deep link, then default,
// then first enabled panel. A linear wizard starts at its first step.
func (c *Container) initialize() {
	if len(c.enabled) == 0 {
		return
	}

	hashID := c.link.ActivePanelID()
	mode := c.EffectiveMode()
	active := store.StartingPanel(c.enabled, hashID, c.opts.DefaultPanelID, mode, c.opts.Linear)
	idx := panel.IndexOf(c.enabled, active)
	c.state.SetActivePanel(active)
	c.cursor = idx

	switch mode {
	case core.ModeAccordion:
		if !c.opts.ExpandAll && active == hashID {
			c.state.ToggleAccordionPanel(active, c.opts.MultiExpand)
		}
	case core.ModeWizard:
		c.state.WizardGoToStep(idx)
	}
	if c.opts.ExpandAll {
		c.state.ExpandAllPanels(panel.IDs(c.enabled))
	}
}

// Resize sets the viewport size. Crossing a breakpoint may change the
// effective mode; state is kept.
func (c *Container) Resize(width, height int) {
	before := c.EffectiveMode()
	c.width, c.height = width, height
	after := c.EffectiveMode()

	if before != after {
		c.log.Debug("effective mode changed", "from", before, "to", after, "width", width)
		if after == core.ModeAccordion && len(c.state.ExpandedPanelIDs()) == 0 {
			if active := c.state.ActivePanelID(); active != "" {
				c.state.ToggleAccordionPanel(active, c.opts.MultiExpand)
			}
		}
		c.releaseChild()
	}

	w, h := c.renderer().bodySize(c)
	for _, child := range c.children {
		child.Resize(w, h)
	}
	c.syncActivation()
	c.afterChange()
}

// Init subscribes to host signals. Only top-level containers listen to the
// viewport; nested ones are sized by their parent.
func (c *Container) Init() tea.Cmd {
	var cmds []tea.Cmd
	if c.depth == 0 && c.deps.Bus != nil && c.resizeSub == nil {
		c.resizeSub = c.deps.Bus.SubscribeForContainer(c.id, events.TypeViewportResized)
		cmds = append(cmds, waitForEvent(c.id, c.resizeSub))
	}
	cmds = append(cmds, waitForEvent(c.id, c.link.Start()))
	return tea.Batch(cmds...)
}

// Close detaches subscriptions and discards state, recursively.
func (c *Container) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.resizeSub != nil && c.deps.Bus != nil {
		c.deps.Bus.Unsubscribe(c.resizeSub)
		c.resizeSub = nil
	}
	c.link.Close()
	for _, child := range c.children {
		child.Close()
	}
	c.state.Reset()
}

// Update implements tea.Model.
func (c *Container) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if c.depth == 0 && c.deps.Bus == nil {
			c.Resize(msg.Width, msg.Height)
		}
		return c, nil

	case tea.KeyMsg:
		cmd := c.handleKey(msg)
		c.afterChange()
		return c, cmd

	case tea.MouseMsg:
		if c.focusedChild == "" && c.EffectiveMode() == core.ModeScrollSpy {
			return c, c.spyScroll(msg)
		}
		return c, nil

	case busEventMsg:
		if msg.container != c.id {
			return c, c.forward(msg.container, msg)
		}
		cmd := c.handleEvent(msg.event)
		c.afterChange()
		return c, tea.Batch(cmd, waitForEvent(c.id, msg.source))

	case spySampleMsg:
		if msg.container != c.id {
			return c, c.forward(msg.container, msg)
		}
		c.spySample()
		return c, nil

	case spyFrameMsg:
		if msg.container != c.id {
			return c, c.forward(msg.container, msg)
		}
		return c, c.spyFrame()

	case PanelsMsg:
		if msg.Container == c.id || (msg.Container == "" && c.depth == 0) {
			c.SetPanels(msg.Panels)
			return c, nil
		}
		return c, c.forward(msg.Container, msg)
	}
	return c, nil
}

// forward passes a message addressed to a descendant down the tree.
func (c *Container) forward(target string, msg tea.Msg) tea.Cmd {
	for _, child := range c.children {
		if target == child.id || strings.HasPrefix(target, child.id+"/") {
			_, cmd := child.Update(msg)
			c.afterChange()
			return cmd
		}
	}
	return nil
}

func (c *Container) handleEvent(ev events.Event) tea.Cmd {
	switch e := ev.(type) {
	case events.ViewportResizedEvent:
		c.Resize(e.Width, e.Height)
	case events.HashChangedEvent:
		if c.link.Apply(e) {
			return c.followHash()
		}
	}
	return nil
}

// followHash re-runs the initial selection rule after an external address
// change and shows the result without writing the address back.
func (c *Container) followHash() tea.Cmd {
	if len(c.enabled) == 0 {
		return nil
	}
	target := store.InitialActivePanel(c.enabled, c.link.ActivePanelID(), c.opts.DefaultPanelID)
	idx := panel.IndexOf(c.enabled, target)
	c.log.Debug("following address", "fragment_panel", c.link.ActivePanelID(), "target", target)

	cmd := c.renderer().navigate(c, idx, false)
	c.syncActivation()
	return cmd
}

func (c *Container) handleKey(msg tea.KeyMsg) tea.Cmd {
	if c.jump != nil && c.jump.active {
		return c.updateJump(msg)
	}

	if c.focusedChild != "" {
		child := c.children[c.focusedChild]
		if child == nil || !c.renderer().isShown(c, c.focusedChild) {
			c.releaseChild()
		} else {
			if key.Matches(msg, c.keys.Leave) && !child.Capturing() {
				c.releaseChild()
				return nil
			}
			_, cmd := child.Update(msg)
			return cmd
		}
	}

	switch {
	case key.Matches(msg, c.keys.Jump):
		return c.openJump()
	case key.Matches(msg, c.keys.Enter):
		if target := c.renderer().focusTarget(c); target != "" {
			if child := c.children[target]; child != nil {
				c.focusedChild = target
				child.focused = true
				return nil
			}
		}
	}

	handled, cmd := c.renderer().handleKey(c, msg)
	if handled {
		c.syncActivation()
	}
	return cmd
}

func (c *Container) releaseChild() {
	if child := c.children[c.focusedChild]; child != nil {
		child.focused = false
	}
	c.focusedChild = ""
}

// Capturing reports whether the container consumes free text or escape
// itself, as when a jump prompt is open.
func (c *Container) Capturing() bool {
	return c.focusedChild != "" || (c.jump != nil && c.jump.active)
}

// Typing reports whether a text prompt along the focus path owns the
// keyboard.
func (c *Container) Typing() bool {
	if c.jump != nil && c.jump.active {
		return true
	}
	if child := c.children[c.focusedChild]; child != nil {
		return child.Typing()
	}
	return false
}

// hasFocus reports whether key input lands on this container's own headers.
func (c *Container) hasFocus() bool {
	return c.focused && c.focusedChild == ""
}

// selectPanel makes idx the active panel and records the navigation in the
// address when asked to.
func (c *Container) selectPanel(idx int, writeHash bool) {
	if idx < 0 || idx >= len(c.enabled) {
		return
	}
	id := c.enabled[idx].ID
	c.state.SetActivePanel(id)
	c.cursor = idx
	if writeHash {
		c.link.UpdateHash(id)
	}
	c.log.WithPanel(id).Debug("panel selected", "mode", c.EffectiveMode())
}

// View implements tea.Model.
func (c *Container) View() string {
	if len(c.enabled) == 0 {
		return emptyStateStyle.Render("No panels to show")
	}
	out := c.renderer().view(c, c.width, c.height)
	if c.jump != nil && c.jump.active {
		out = c.jumpView() + "\n" + out
	}
	return out
}

// HelpBindings returns the bindings relevant to the focused container.
func (c *Container) HelpBindings() []key.Binding {
	if c.focusedChild != "" {
		if child := c.children[c.focusedChild]; child != nil {
			return append(child.HelpBindings(), c.keys.Leave)
		}
	}
	bindings := c.renderer().help(c)
	bindings = append(bindings, c.keys.Jump)
	if target := c.renderer().focusTarget(c); target != "" && c.children[target] != nil {
		bindings = append(bindings, c.keys.Enter)
	}
	return bindings
}

// HelpView renders the short help line for width.
func (c *Container) HelpView(width int) string {
	c.help.Width = width
	return c.help.ShortHelpView(c.HelpBindings())
}

// afterChange refreshes layout that depends on state, such as the
// scroll-spy content region.
func (c *Container) afterChange() {
	if c.EffectiveMode() == core.ModeScrollSpy && len(c.enabled) > 0 {
		c.spyLayout()
	}
}

// syncActivation records first activations for every panel the current mode
// shows and mounts nested containers for them. Hidden panels are skipped;
// pending ones are not.
func (c *Container) syncActivation() {
	r := c.renderer()
	for _, p := range c.enabled {
		shown := r.isShown(c, p.ID)
		if !shown && c.opts.LazyLoading {
			continue
		}
		if c.deps.Visibility.Evaluate(p) == visibility.Hidden {
			continue
		}
		if shown && c.state.MarkPanelActivated(p.ID) {
			c.log.WithPanel(p.ID).Debug("panel activated", "depth", c.depth)
			if c.deps.Bus != nil {
				c.deps.Bus.Publish(events.NewPanelActivatedEvent(c.id, p.ID, c.depth))
			}
		}
		if p.IsNested() && p.NestedConfig != nil && c.depth+1 < core.MaxNestingDepth && c.children[p.ID] == nil {
			c.children[p.ID] = c.newChild(p)
		}
	}
}

// String identifies the container in logs and test failures.
func (c *Container) String() string {
	return fmt.Sprintf("container(%s depth=%d mode=%s)", c.id, c.depth, c.EffectiveMode())
}
