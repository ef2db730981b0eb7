package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/clip"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/content"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/deeplink"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/hypertabs"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/logging"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/visibility"
)

// chromeHeight is the rows used by the title bar, divider, help and status.
const chromeHeight = 4

// AppConfig wires an App.
type AppConfig struct {
	ID         string
	Panels     []panel.Panel
	Options    hypertabs.Options
	Visibility visibility.Evaluator
	Content    *content.Registry
	Logger     *logging.Logger

	// BaseURL is the page address used for copied links.
	BaseURL string
	// Fragment is the address fragment the app starts at.
	Fragment string
	// Reload re-reads the panels and settings after a reload request.
	Reload func(path string) (Source, error)

	// State remembers the last fragment under StateKey when set.
	State    *UIStateManager
	StateKey string

	Copier *clip.Copier
	// Bus is created and owned by the app when nil.
	Bus *events.EventBus
}

// AppKeyMap holds the host bindings. They apply only while no prompt is
// open inside the container tree.
type AppKeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	Forward   key.Binding
	CopyLink  key.Binding
	Reload    key.Binding
}

// DefaultAppKeyMap returns the default host bindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Back:      key.NewBinding(key.WithKeys("alt+left", "backspace"), key.WithHelp("alt+←", "back")),
		Forward:   key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "forward")),
		CopyLink:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Reload:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
	}
}

// App is the bubbletea model of `hypertabs view`: a root container on an
// in-process address bar, with history, link copying and live reload.
type App struct {
	cfg     AppConfig
	root    *hypertabs.Container
	history *deeplink.History
	bus     *events.EventBus
	ownsBus bool
	adapter *EventBusAdapter
	keys    AppKeyMap
	help    help.Model
	log     *logging.Logger

	width  int
	height int

	status      string
	statusStyle lipgloss.Style
	quitting    bool
}

// Source is what a reload produces: the root container is mounted again
// from it.
type Source struct {
	Panels  []panel.Panel
	Options hypertabs.Options
	// Visibility replaces the evaluator when set.
	Visibility visibility.Evaluator
}

type sourceLoadedMsg struct {
	source Source
	path   string
}

// NewApp mounts the root container and starts listening to the bus.
func NewApp(cfg AppConfig) *App {
	if cfg.ID == "" {
		cfg.ID = "root"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Copier == nil {
		cfg.Copier = clip.New()
	}

	a := &App{
		cfg:         cfg,
		keys:        DefaultAppKeyMap(),
		help:        help.New(),
		log:         cfg.Logger.WithContainer(cfg.ID),
		statusStyle: StatusStyle,
	}

	a.bus = cfg.Bus
	if a.bus == nil {
		a.bus = events.New(100)
		a.ownsBus = true
	}
	a.history = deeplink.NewHistory(cfg.Fragment, a.bus)
	a.root = a.mount()
	a.adapter = NewEventBusAdapter(a.bus)
	return a
}

func (a *App) mount() *hypertabs.Container {
	return hypertabs.New(a.cfg.ID, a.cfg.Panels, a.cfg.Options, hypertabs.Deps{
		Bus:        a.bus,
		Location:   a.history,
		Visibility: a.cfg.Visibility,
		Content:    a.cfg.Content,
		Logger:     a.cfg.Logger,
	})
}

// remount rebuilds the root container from src. The address and the
// viewport size carry over; container state does not. When only the panels
// changed the mounted root takes them in place.
func (a *App) remount(src Source) tea.Cmd {
	if src.Options == a.cfg.Options && src.Visibility == nil {
		a.cfg.Panels = src.Panels
		_, cmd := a.root.Update(hypertabs.PanelsMsg{Container: a.root.ID(), Panels: src.Panels})
		return cmd
	}

	a.root.Close()
	a.cfg.Panels = src.Panels
	a.cfg.Options = src.Options
	if src.Visibility != nil {
		a.cfg.Visibility = src.Visibility
	}
	a.root = a.mount()
	if a.width > 0 {
		a.root.Resize(a.width, max(a.height-chromeHeight, 1))
	}
	return a.root.Init()
}

// Root returns the root container.
func (a *App) Root() *hypertabs.Container { return a.root }

// History returns the address bar.
func (a *App) History() *deeplink.History { return a.history }

// Bus returns the event bus shared by the container tree.
func (a *App) Bus() *events.EventBus { return a.bus }

// Status returns the current status line text.
func (a *App) Status() string { return a.status }

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.root.Init(), waitForAdapter(a.adapter))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer a.remember()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.bus.Publish(events.NewViewportResizedEvent(msg.Width, max(msg.Height-chromeHeight, 1)))
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a.quit()
		}
		if !a.root.Typing() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a.quit()
			case key.Matches(msg, a.keys.Back):
				if !a.history.Back() {
					a.setStatus("no earlier location", MetaStyle)
				}
				return a, nil
			case key.Matches(msg, a.keys.Forward):
				if !a.history.Forward() {
					a.setStatus("no later location", MetaStyle)
				}
				return a, nil
			case key.Matches(msg, a.keys.CopyLink):
				return a, a.copyLink()
			case key.Matches(msg, a.keys.Reload):
				return a, a.reload("")
			}
		}
		_, cmd := a.root.Update(msg)
		return a, cmd

	case ActivatedMsg:
		a.log.Debug("panel activated", "container", msg.Container, "panel_id", msg.PanelID, "depth", msg.Depth)
		return a, waitForAdapter(a.adapter)

	case ReloadMsg:
		return a, tea.Batch(a.reload(msg.Path), waitForAdapter(a.adapter))

	case sourceLoadedMsg:
		cmd := a.remount(msg.source)
		a.setStatus(fmt.Sprintf("reloaded %d panels", len(msg.source.Panels)), StatusStyle)
		a.log.Info("container reloaded",
			"path", msg.path,
			"panels", len(msg.source.Panels),
			"mode", msg.source.Options.Mode,
		)
		return a, cmd

	case CopiedMsg:
		if msg.Err != nil {
			a.setStatus("copy failed: "+msg.Err.Error(), StatusErrorStyle)
			return a, nil
		}
		a.setStatus(msg.Status, StatusStyle)
		return a, nil

	case LogMsg:
		style := StatusWarnStyle
		if msg.Level == "error" {
			style = StatusErrorStyle
		}
		a.setStatus(msg.Message, style)
		return a, nil

	case ErrorMsg:
		a.setStatus(msg.Err.Error(), StatusErrorStyle)
		return a, nil
	}

	_, cmd := a.root.Update(msg)
	return a, cmd
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	return a, tea.Quit
}

func (a *App) setStatus(text string, style lipgloss.Style) {
	a.status = text
	a.statusStyle = style
}

// remember records the current fragment for the next session.
func (a *App) remember() {
	if a.cfg.State == nil || a.cfg.StateKey == "" {
		return
	}
	a.cfg.State.SetLastFragment(a.cfg.StateKey, a.history.Fragment())
}

// Link returns the shareable address of the active panel.
func (a *App) Link() string {
	return deeplink.Link(a.cfg.BaseURL, a.root.ActivePanelID())
}

func (a *App) copyLink() tea.Cmd {
	if a.root.ActivePanelID() == "" {
		return nil
	}
	link := a.Link()
	copier := a.cfg.Copier
	return func() tea.Msg {
		res, err := copier.Copy(link)
		if err != nil {
			return CopiedMsg{Err: err}
		}
		return CopiedMsg{Status: res.Describe()}
	}
}

func (a *App) reload(path string) tea.Cmd {
	if a.cfg.Reload == nil {
		return nil
	}
	load := a.cfg.Reload
	return func() tea.Msg {
		src, err := load(path)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("reloading: %w", err)}
		}
		return sourceLoadedMsg{source: src, path: path}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	opts := a.root.Options()
	title := TitleStyle.Render("HyperTabs") + " " +
		MetaStyle.Render(a.root.ID()) + " " +
		ModeBadge(string(opts.Mode), string(a.root.EffectiveMode())) + " " +
		MetaStyle.Render(string(a.root.Breakpoint()))
	address := ""
	if f := a.history.Fragment(); f != "" {
		address = MetaStyle.Render("#" + f)
	}

	body := a.root.View()
	if a.height > chromeHeight {
		body = lipgloss.NewStyle().MaxHeight(a.height - chromeHeight).Render(body)
	}

	helpLine := a.root.HelpView(a.width)
	hostHelp := a.help.ShortHelpView([]key.Binding{a.keys.CopyLink, a.keys.Back, a.keys.Forward, a.keys.Quit})
	if helpLine != "" {
		helpLine += " • "
	}
	helpLine += hostHelp

	var b strings.Builder
	b.WriteString(Spread(title, address, a.width))
	b.WriteString("\n")
	b.WriteString(Divider(a.width, ""))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	status := a.status
	if a.width > 0 {
		helpLine = lipgloss.NewStyle().MaxWidth(a.width).Render(helpLine)
		status = Truncate(status, a.width)
	}
	b.WriteString(helpLine)
	if status != "" {
		b.WriteString("\n")
		b.WriteString(a.statusStyle.Render(status))
	}
	return b.String()
}

// Close releases the container tree and the bus when the app owns it.
func (a *App) Close() {
	a.adapter.Close()
	a.root.Close()
	if a.ownsBus {
		a.bus.Close()
	}
}
