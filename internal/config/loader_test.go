package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoader_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Container.Mode != "tabs" {
		t.Errorf("Container.Mode = %q, want %q", cfg.Container.Mode, "tabs")
	}
	if cfg.Container.TabStyle != "horizontal" {
		t.Errorf("Container.TabStyle = %q, want %q", cfg.Container.TabStyle, "horizontal")
	}
	if !cfg.Container.DeepLinking || !cfg.Container.LazyLoading || !cfg.Container.ResponsiveCollapse {
		t.Errorf("expected deep linking, lazy loading and collapse on by default: %+v", cfg.Container)
	}
	if cfg.Container.Breakpoint != 100 {
		t.Errorf("Container.Breakpoint = %d, want 100", cfg.Container.Breakpoint)
	}
	if cfg.Container.Accordion.MultiExpand || cfg.Container.Accordion.ExpandAll {
		t.Errorf("accordion flags should default off: %+v", cfg.Container.Accordion)
	}
	if !cfg.Container.Accordion.ShowControls {
		t.Error("Accordion.ShowControls should default on")
	}
	if !cfg.Container.Wizard.ShowProgress || !cfg.Container.Wizard.Linear {
		t.Errorf("wizard flags should default on: %+v", cfg.Container.Wizard)
	}
	if cfg.Container.ScrollSpy.Lookahead != 2 {
		t.Errorf("ScrollSpy.Lookahead = %d, want 2", cfg.Container.ScrollSpy.Lookahead)
	}
	if cfg.Panels.File != "panels.yaml" {
		t.Errorf("Panels.File = %q", cfg.Panels.File)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Host != "localhost" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}

	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoader_ConfigFile(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "hypertabs.yaml")
	content := `
container:
  mode: wizard
  default_panel: intro
  wizard:
    linear: false
audience:
  groups: [hr, engineering]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader().WithConfigFile(path)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Container.Mode != "wizard" {
		t.Errorf("Container.Mode = %q, want wizard", cfg.Container.Mode)
	}
	if cfg.Container.DefaultPanel != "intro" {
		t.Errorf("Container.DefaultPanel = %q", cfg.Container.DefaultPanel)
	}
	if cfg.Container.Wizard.Linear {
		t.Error("Wizard.Linear should be overridden to false")
	}
	if !cfg.Container.Wizard.ShowProgress {
		t.Error("Wizard.ShowProgress should keep its default")
	}
	if len(cfg.Audience.Groups) != 2 {
		t.Errorf("Audience.Groups = %v", cfg.Audience.Groups)
	}
	if loader.ConfigFile() != path {
		t.Errorf("ConfigFile() = %q, want %q", loader.ConfigFile(), path)
	}
}

func TestLoader_UserConfigFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "hypertabs")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("container:\n  mode: scrollspy\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Container.Mode != "scrollspy" {
		t.Errorf("Container.Mode = %q, want scrollspy", cfg.Container.Mode)
	}
}

func TestLoader_EnvOverride(t *testing.T) {
	isolateHome(t)
	t.Setenv("HYPERTABS_CONTAINER_MODE", "accordion")
	t.Setenv("HYPERTABS_SERVER_PORT", "9090")

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Container.Mode != "accordion" {
		t.Errorf("Container.Mode = %q, want accordion", cfg.Container.Mode)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
}

func TestLoader_InvalidFile(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("container: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader().WithConfigFile(path).Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoader_SetGet(t *testing.T) {
	loader := NewLoader()
	loader.Set("container.mode", "wizard")
	if !loader.IsSet("container.mode") {
		t.Error("IsSet() = false after Set")
	}
	if got := loader.Get("container.mode"); got != "wizard" {
		t.Errorf("Get() = %v", got)
	}
	if loader.Viper() == nil {
		t.Error("Viper() = nil")
	}
}
