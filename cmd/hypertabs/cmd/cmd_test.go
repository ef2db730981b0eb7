package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "hypertabs", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotNil(t, rootCmd.RunE, "root defaults to the view")

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"view", "serve", "panels", "init", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	for _, flag := range []string{"config", "log-level", "log-format", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("panels"), "root accepts view flags")
}

func TestPanelsCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range panelsCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "add", "move", "rm", "toggle", "validate"} {
		assert.True(t, names[want], "missing panels subcommand %s", want)
	}
}

func TestLogLevelOf(t *testing.T) {
	assert.Equal(t, "DEBUG", logLevelOf("debug").String())
	assert.Equal(t, "WARN", logLevelOf("warn").String())
	assert.Equal(t, "INFO", logLevelOf("bogus").String())
}
