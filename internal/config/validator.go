package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateLog(&cfg.Log)
	v.validateContainer(&cfg.Container)
	v.validatePanels(&cfg.Panels)
	v.validateStorage(&cfg.Storage)
	v.validateServer(&cfg.Server)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// Errors returns the collected validation errors.
func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

func (v *Validator) addError(field string, value interface{}, msg string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

func (v *Validator) validateLog(cfg *LogConfig) {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"auto": true, "text": true, "json": true,
	}
	if !validFormats[cfg.Format] {
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}

	if cfg.File != "" && !isValidPath(cfg.File) {
		v.addError("log.file", cfg.File, "invalid file path")
	}
}

func (v *Validator) validateContainer(cfg *ContainerConfig) {
	if !core.IsValidMode(core.Mode(cfg.Mode)) {
		v.addError("container.mode", cfg.Mode, "must be one of: tabs, accordion, wizard, scrollspy")
	}
	if !core.IsValidTabStyle(core.TabStyle(cfg.TabStyle)) {
		v.addError("container.tab_style", cfg.TabStyle, "must be one of: horizontal, vertical, pill, underline")
	}
	if cfg.Breakpoint <= 0 {
		v.addError("container.breakpoint", cfg.Breakpoint, "must be positive")
	}
	if cfg.ScrollSpy.Lookahead < 0 {
		v.addError("container.scrollspy.lookahead", cfg.ScrollSpy.Lookahead, "must be non-negative")
	}
	if strings.TrimSpace(cfg.DefaultPanel) != cfg.DefaultPanel {
		v.addError("container.default_panel", cfg.DefaultPanel, "must not have surrounding spaces")
	}
}

func (v *Validator) validatePanels(cfg *PanelsConfig) {
	if cfg.File == "" {
		v.addError("panels.file", cfg.File, "file required")
		return
	}
	ext := strings.ToLower(filepath.Ext(cfg.File))
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		v.addError("panels.file", cfg.File, "must be a .yaml, .yml or .json file")
	}
}

func (v *Validator) validateStorage(cfg *StorageConfig) {
	if cfg.Path == "" {
		v.addError("storage.path", cfg.Path, "path required")
	} else if !isValidPath(cfg.Path) {
		v.addError("storage.path", cfg.Path, "invalid file path")
	}
}

func (v *Validator) validateServer(cfg *ServerConfig) {
	if cfg.Host == "" {
		v.addError("server.host", cfg.Host, "host required")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		v.addError("server.port", cfg.Port, "must be between 1 and 65535")
	}
	for _, origin := range cfg.CORSOrigins {
		if origin == "" {
			v.addError("server.cors_origins", cfg.CORSOrigins, "origins must not be empty")
			break
		}
	}
}

// isValidPath rejects paths whose parent exists as something other than a
// directory.
func isValidPath(path string) bool {
	info, err := os.Stat(filepath.Dir(path))
	if os.IsNotExist(err) {
		return true
	}
	return err == nil && info.IsDir()
}

// ValidateConfig is a convenience function that creates a validator and validates config.
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
