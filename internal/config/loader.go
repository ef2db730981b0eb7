package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v:         viper.New(),
		envPrefix: "HYPERTABS",
	}
}

// NewLoaderWithViper creates a loader using an existing viper instance.
// This allows integration with CLI flag bindings.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: "HYPERTABS",
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Viper returns the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load loads configuration from all sources.
// Precedence (highest to lowest):
// 1. CLI flags (set via viper.BindPFlag)
// 2. Environment variables (HYPERTABS_*)
// 3. Project config (.hypertabs.yaml in current directory)
// 4. User config (~/.config/hypertabs/config.yaml)
// 5. Defaults
func (l *Loader) Load() (*Config, error) {
	setDefaults(l.v)

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName(".hypertabs")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// The user config uses a different file name, so it gets its own pass
		if l.configFile == "" {
			if err := l.readUserConfig(); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func (l *Loader) readUserConfig() error {
	path, err := UserConfigPath()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading user config: %w", err)
	}
	return nil
}

// UserConfigPath returns ~/.config/hypertabs/config.yaml.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hypertabs", "config.yaml"), nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.file", "")

	// Container defaults
	v.SetDefault("container.mode", "tabs")
	v.SetDefault("container.tab_style", "horizontal")
	v.SetDefault("container.deep_linking", true)
	v.SetDefault("container.lazy_loading", true)
	v.SetDefault("container.responsive_collapse", true)
	v.SetDefault("container.breakpoint", 100)
	v.SetDefault("container.default_panel", "")
	v.SetDefault("container.animation", true)
	v.SetDefault("container.accordion.multi_expand", false)
	v.SetDefault("container.accordion.expand_all", false)
	v.SetDefault("container.accordion.show_controls", true)
	v.SetDefault("container.wizard.show_progress", true)
	v.SetDefault("container.wizard.linear", true)
	v.SetDefault("container.scrollspy.lookahead", 2)

	// Panels and audience
	v.SetDefault("panels.file", "panels.yaml")
	v.SetDefault("audience.groups", []string{})
	v.SetDefault("audience.pending", false)

	// Storage and server
	v.SetDefault("storage.path", ".hypertabs/widgets.db")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
}

// ConfigFile returns the config file path if one was used.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Get returns a configuration value by key.
func (l *Loader) Get(key string) interface{} {
	return l.v.Get(key)
}

// Set sets a configuration value.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// IsSet checks if a key has been set.
func (l *Loader) IsSet(key string) bool {
	return l.v.IsSet(key)
}
