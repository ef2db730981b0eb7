package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/api"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/logging"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP host",
	Long: `Start the HyperTabs HTTP host.

The host stores widget panel collections in SQLite and answers which mode
and panel a container would show at a given width and address fragment.
The panels file is synced into one widget on start and on every change.

Examples:
  # Start with defaults (localhost:8080)
  hypertabs serve

  # Start on custom host and port
  hypertabs serve --host 0.0.0.0 --port 3000

  # Disable CORS (for production behind a reverse proxy)
  hypertabs serve --no-cors`,
	RunE: runServe,
}

var (
	serveHost   string
	servePort   int
	serveNoCORS bool
	serveWidget string
	serveNoSync bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "",
		"Host address to bind to (default: server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0,
		"Port to listen on (default: server.port)")
	serveCmd.Flags().BoolVar(&serveNoCORS, "no-cors", false,
		"Disable CORS headers")
	serveCmd.Flags().StringVar(&serveWidget, "widget", "default",
		"Widget that mirrors the panels file")
	serveCmd.Flags().BoolVar(&serveNoSync, "no-sync", false,
		"Do not mirror the panels file into the widget store")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stdout)

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	origins := cfg.Server.CORSOrigins
	if serveNoCORS {
		origins = nil
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening widget store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("failed to close widget store", "error", closeErr)
		}
	}()
	logger.Info("widget store opened", "path", store.Path())

	server := api.NewServer(store,
		api.WithLogger(logger.Logger),
		api.WithCORSOrigins(origins),
		api.WithContainerConfig(cfg.Container),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, net.JoinHostPort(host, strconv.Itoa(port)))
	})

	if !serveNoSync {
		syncer := &panelSync{store: store, widget: serveWidget, path: cfg.Panels.File, logger: logger}
		syncer.run(ctx)
		watcher := config.NewWatcher(func(string) { syncer.run(ctx) }, cfg.Panels.File).
			OnError(func(err error) {
				logger.Warn("watcher error", "error", err)
			})
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serving: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// panelSync mirrors a panels file into one widget.
type panelSync struct {
	store  *storage.WidgetStore
	widget string
	path   string
	logger *logging.Logger
}

func (s *panelSync) run(ctx context.Context) {
	panels, err := panel.LoadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no panels file to sync", "path", s.path)
		return
	}
	if err != nil {
		s.logger.Warn("panels file unreadable", "path", s.path, "error", err)
		return
	}
	if err := s.store.Save(ctx, s.widget, panels); err != nil {
		s.logger.Warn("panels file not synced", "path", s.path, "widget_id", s.widget, "error", err)
		return
	}
	s.logger.Info("panels file synced", "widget_id", s.widget, "panels", len(panels))
}
