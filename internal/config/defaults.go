package config

import (
	"fmt"
	"os"
)

// DefaultConfigYAML contains the default configuration YAML content.
// `hypertabs init` writes it; keep it in step with setDefaults.
const DefaultConfigYAML = `# HyperTabs configuration
#
# Values not specified here use the built-in defaults.

log:
  level: info
  format: auto
  # The terminal viewer owns the screen, so its logs only go to a file.
  file: .hypertabs/hypertabs.log

container:
  # tabs | accordion | wizard | scrollspy
  mode: tabs
  # horizontal | vertical | pill | underline
  tab_style: horizontal
  deep_linking: true
  lazy_loading: true
  # Collapse tabs into an accordion below the breakpoint (columns).
  responsive_collapse: true
  breakpoint: 100
  default_panel: ""
  animation: true
  accordion:
    multi_expand: false
    expand_all: false
    show_controls: true
  wizard:
    show_progress: true
    linear: true
  scrollspy:
    lookahead: 2

panels:
  file: panels.yaml

audience:
  groups: []
  pending: false

storage:
  path: .hypertabs/widgets.db

server:
  host: localhost
  port: 8080
  cors_origins: ["*"]
`

// WriteDefault writes DefaultConfigYAML to path. An existing file is kept
// unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("checking config: %w", err)
		}
	}
	if err := AtomicWrite(path, []byte(DefaultConfigYAML)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
