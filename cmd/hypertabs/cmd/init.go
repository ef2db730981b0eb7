package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a hypertabs project",
	Long: `Initialize a hypertabs project in the current directory.
Creates .hypertabs.yaml and, when missing, a starter panels.yaml.`,
	RunE: runInit,
}

var (
	initForce bool
	initPath  string
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing configuration")
	initCmd.Flags().StringVar(&initPath, "path", ".hypertabs.yaml", "Where to write the configuration")
}

func runInit(cmd *cobra.Command, _ []string) error {
	if err := config.WriteDefault(initPath, initForce); err != nil {
		if !initForce {
			return fmt.Errorf("%w, use --force to overwrite", err)
		}
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", initPath)

	const panelsPath = "panels.yaml"
	if _, err := os.Stat(panelsPath); errors.Is(err, fs.ErrNotExist) {
		if err := panel.SaveFile(panelsPath, starterPanels()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", panelsPath)
	}

	fmt.Fprintln(out, "\nNext: run 'hypertabs view' to browse the panels.")
	return nil
}

func starterPanels() []panel.Panel {
	return []panel.Panel{
		{ID: "welcome", Title: "Welcome", ContentType: panel.ContentMarkdown,
			Content: "# Welcome\n\nUse the arrow keys to switch panels.", SortOrder: 0, Enabled: true},
		{ID: "news", Title: "News", ContentType: panel.ContentSimple,
			Content: "<p>Nothing new yet.</p>", SortOrder: 1, Enabled: true},
		{ID: "links", Title: "Links", ContentType: panel.ContentListView,
			Content: "Quick Links", SortOrder: 2, Enabled: true},
	}
}
