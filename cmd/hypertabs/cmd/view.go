package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/content"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/deeplink"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/hypertabs"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/logging"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show a panels file in the terminal",
	Long: `Show a panels file as an interactive container.

The address fragment starts at --fragment, or at the last fragment used
for the same file. When stdout is not a terminal (or with --output) one
frame is printed instead, either rendered (plain) or as JSON.

Examples:
  # Open the configured panels file
  hypertabs view

  # Open a file as a wizard, starting at the "billing" step
  hypertabs view --panels onboarding.yaml --mode wizard --fragment tab=billing

  # Print the resolved state at a phone-sized width
  hypertabs view --output json --width 40`,
	RunE: runView,
}

var (
	viewPanels   string
	viewMode     string
	viewFragment string
	viewOutput   string
	viewWidth    int
	viewHeight   int
	viewBaseURL  string
)

func init() {
	rootCmd.AddCommand(viewCmd)
	registerViewFlags(viewCmd)
}

func registerViewFlags(c *cobra.Command) {
	c.Flags().StringVar(&viewPanels, "panels", "", "panels file (default: panels.file from config)")
	c.Flags().StringVar(&viewMode, "mode", "", "presentation mode (tabs, accordion, wizard, scrollspy)")
	c.Flags().StringVar(&viewFragment, "fragment", "", "initial address fragment, e.g. tab=news")
	c.Flags().StringVarP(&viewOutput, "output", "o", "auto", "output (auto, tui, plain, json)")
	c.Flags().IntVar(&viewWidth, "width", 0, "width for plain/json output (default: terminal width)")
	c.Flags().IntVar(&viewHeight, "height", 0, "height for plain/json output (default: terminal height)")
	c.Flags().StringVar(&viewBaseURL, "base-url", "", "page address used for copied links")
}

// viewSetup is everything a view needs, resolved from config and flags.
type viewSetup struct {
	cfg        *config.Config
	configFile string
	panelsPath string
	panels     []panel.Panel
	opts       hypertabs.Options
	output     tui.OutputMode
}

func prepareView() (*viewSetup, error) {
	cfg, loader, err := loadConfig()
	if err != nil {
		return nil, err
	}

	s := &viewSetup{cfg: cfg, configFile: loader.ConfigFile()}
	s.panelsPath = resolvePanelsPath(viewPanels, cfg)
	s.panels, err = loadViewPanels(s.panelsPath, newLogger(cfg, os.Stderr))
	if err != nil {
		return nil, err
	}
	if s.opts, err = containerOptions(cfg); err != nil {
		return nil, err
	}

	detector := tui.NewDetector().NoColor(noColor)
	if viewOutput != "" && viewOutput != "auto" {
		mode, ok := tui.ParseOutputMode(viewOutput)
		if !ok {
			return nil, fmt.Errorf("invalid --output %q (valid: auto, tui, plain, json)", viewOutput)
		}
		detector.ForceMode(mode)
	}
	s.output = detector.Detect()
	if !detector.ShouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return s, nil
}

// containerOptions reads the container settings, with --mode applied.
func containerOptions(cfg *config.Config) (hypertabs.Options, error) {
	opts := hypertabs.OptionsFromConfig(cfg.Container)
	if viewMode != "" {
		mode := core.Mode(viewMode)
		if !core.IsValidMode(mode) {
			return opts, fmt.Errorf("invalid --mode %q (valid: %v)", viewMode, core.Modes())
		}
		opts.Mode = mode
	}
	return opts, nil
}

// loadViewPanels reads the panels file of a view. A file that exists but
// cannot be decoded is shown as an empty container.
func loadViewPanels(path string, logger *logging.Logger) ([]panel.Panel, error) {
	panels, err := panel.LoadFile(path)
	if err == nil {
		return panels, nil
	}
	if !panel.IsMalformed(err) {
		return nil, fmt.Errorf("loading panels: %w", err)
	}
	logger.Warn("ignoring malformed panels file", "path", path, "error", err)
	return []panel.Panel{}, nil
}

// viewReloader re-reads the configuration and the panels file after either
// one changes. The audience evaluator is replaced only when the audience
// section changed.
func viewReloader(panelsPath string, audience config.AudienceConfig, logger *logging.Logger) func(string) (tui.Source, error) {
	return func(string) (tui.Source, error) {
		cfg, _, err := loadConfig()
		if err != nil {
			return tui.Source{}, err
		}
		opts, err := containerOptions(cfg)
		if err != nil {
			return tui.Source{}, err
		}
		panels, err := loadViewPanels(panelsPath, logger)
		if err != nil {
			return tui.Source{}, err
		}

		src := tui.Source{Panels: panels, Options: opts}
		if cfg.Audience.Pending != audience.Pending || !slices.Equal(cfg.Audience.Groups, audience.Groups) {
			audience = cfg.Audience
			src.Visibility = audienceEvaluator(audience)
		}
		return src, nil
	}
}

func runView(cmd *cobra.Command, _ []string) error {
	setup, err := prepareView()
	if err != nil {
		return err
	}

	if setup.output != tui.ModeTUI {
		return renderStatic(cmd.OutOrStdout(), setup)
	}
	return runInteractive(setup)
}

// renderStatic prints one frame or snapshot of the container.
func renderStatic(w io.Writer, setup *viewSetup) error {
	width, height := tui.TerminalSize()
	if viewWidth > 0 {
		width = viewWidth
	}
	if viewHeight > 0 {
		height = viewHeight
	}

	// Static output has no address bar to write to
	opts := setup.opts
	opts.Animation = false

	c := hypertabs.New("root", setup.panels, opts, hypertabs.Deps{
		Location:   deeplink.NewHistory(viewFragment, nil),
		Visibility: audienceEvaluator(setup.cfg.Audience),
		Content:    content.NewRegistry(),
		Logger:     logging.NewNop(),
	})
	defer c.Close()

	if setup.output == tui.ModeJSON {
		return tui.WriteJSON(w, c, width, height)
	}
	return tui.WriteFrame(w, c, width, height)
}

// runInteractive runs the bubbletea program until the user quits.
func runInteractive(setup *viewSetup) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	// The TTY belongs to the UI: logs go to the configured file, and
	// warnings also reach the status line.
	var sink io.Writer = io.Discard
	if setup.cfg.Log.File != "" {
		f, err := logging.OpenFile(setup.cfg.Log.File)
		if err != nil {
			return err
		}
		defer f.Close()
		sink = f
	}
	fileHandler := slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: logLevelOf(setup.cfg.Log.Level)})
	uiHandler := tui.NewLogHandler(fileHandler, slog.LevelWarn)
	logger := logging.NewWithHandler(uiHandler)

	bus := events.New(100)
	defer bus.Close()

	stateKey, _ := filepath.Abs(setup.panelsPath)
	state := tui.NewUIStateManager(stateDir())
	if err := state.Load(); err != nil {
		logger.Warn("failed to load ui state", "error", err)
	}
	defer func() {
		if err := state.Close(); err != nil {
			logger.Warn("failed to save ui state", "error", err)
		}
	}()

	fragment := viewFragment
	if fragment == "" {
		fragment = state.LastFragment(stateKey)
	}

	app := tui.NewApp(tui.AppConfig{
		Panels:     setup.panels,
		Options:    setup.opts,
		Visibility: audienceEvaluator(setup.cfg.Audience),
		Content:    content.NewRegistry(),
		Logger:     logger,
		BaseURL:    viewBaseURL,
		Fragment:   fragment,
		Reload:     viewReloader(setup.panelsPath, setup.cfg.Audience, logger),
		State:      state,
		StateKey:   stateKey,
		Bus:        bus,
	})
	defer app.Close()

	watcher := config.NewWatcher(func(path string) {
		logger.Info("file changed", "path", path)
		bus.PublishPriority(events.NewConfigReloadedEvent(path))
	}, setup.panelsPath, setup.configFile).OnError(func(err error) {
		logger.Warn("watcher error", "error", err)
	})
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Warn("file watcher stopped", "error", err)
		}
	}()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	uiHandler.SetSink(p.Send)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running view: %w", err)
	}
	return nil
}

func logLevelOf(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
