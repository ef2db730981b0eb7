package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

// resetFlags restores package flag variables between command runs.
func resetFlags() {
	cfgFile, logLevel, logFormat, noColor = "", "info", "auto", false
	viewPanels, viewMode, viewFragment, viewOutput = "", "", "", "auto"
	viewWidth, viewHeight, viewBaseURL = 0, 0, ""
	panelsFile, panelsType, panelsContent, panelsDisabled, panelsJSON = "", "", "", false, false
	initForce, initPath = false, ".hypertabs.yaml"
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// writeConfig writes the default configuration into a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefault(path, false))
	return path
}

// writePanels writes panels to a temp YAML file.
func writePanels(t *testing.T, panels []panel.Panel) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panels.yaml")
	require.NoError(t, panel.SaveFile(path, panels))
	return path
}

func fixturePanels() []panel.Panel {
	return []panel.Panel{
		{ID: "news", Title: "News", ContentType: panel.ContentSimple, Content: "<b>Fresh</b> news", SortOrder: 0, Enabled: true},
		{ID: "docs", Title: "Docs", ContentType: panel.ContentSimple, Content: "Handbook", SortOrder: 1, Enabled: true},
		{ID: "team", Title: "Team", ContentType: panel.ContentSimple, Content: "People", SortOrder: 2, Enabled: true},
	}
}
