package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	noColor   bool

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

var rootCmd = &cobra.Command{
	Use:   "hypertabs",
	Short: "Multi-mode panel container for the terminal and the web",
	Long: `hypertabs shows a collection of content panels as tabs, an accordion,
a step-by-step wizard or a scroll-spy page. The mode collapses to an
accordion on narrow screens and the selected panel is kept in the address
fragment (#tab=<id>) so views can be shared and restored.

Running 'hypertabs' without arguments opens the panels file in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default to the terminal view when no subcommand is provided
	RunE: runView,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion injects build information.
func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// GetVersion returns the application version string.
func GetVersion() string {
	return appVersion
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./.hypertabs.yaml, then ~/.config/hypertabs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto",
		"log format (auto, text, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")

	// Bind flags to viper (errors are nil when flag exists)
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	registerViewFlags(rootCmd)
}
