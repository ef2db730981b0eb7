package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/logging"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/visibility"
)

// loadConfig reads and validates the configuration. The returned loader
// knows which file, if any, was used.
func loadConfig() (*config.Config, *config.Loader, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loader, nil
}

// newLogger builds the logger of a command writing to w.
func newLogger(cfg *config.Config, w io.Writer) *logging.Logger {
	return logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: w,
	})
}

// audienceEvaluator turns the audience section into a visibility evaluator.
// Pending membership keeps targeted panels pending; otherwise the configured
// groups are the viewer's full membership.
func audienceEvaluator(cfg config.AudienceConfig) visibility.Evaluator {
	if cfg.Pending {
		return visibility.NewGroups(nil)
	}
	return visibility.NewGroups(append([]string{}, cfg.Groups...))
}

// resolvePanelsPath returns the flag value, else the configured file.
func resolvePanelsPath(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Panels.File
}

// stateDir is where the terminal host remembers its last address.
func stateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "hypertabs")
	}
	return ".hypertabs"
}
