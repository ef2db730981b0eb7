package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/tui"
)

var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "Edit a panels file",
	Long: `List and edit the panels of a panels file (.yaml, .yml or .json).

Every edit keeps sortOrder dense (0..n-1) and writes the file atomically.`,
}

var (
	panelsFile     string
	panelsType     string
	panelsContent  string
	panelsDisabled bool
	panelsJSON     bool
)

var panelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List panels in sort order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, panels, err := loadPanels()
		if err != nil {
			return err
		}
		if panelsJSON {
			// The serialized form a widget host stores
			fmt.Fprintln(cmd.OutOrStdout(), panel.Serialize(panels))
			return nil
		}
		printPanels(cmd.OutOrStdout(), path, panels)
		return nil
	},
}

var panelsAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Append a new panel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, panels, err := loadPanels()
		if err != nil {
			return err
		}
		p := panel.Create(args[0], len(panels))
		if panelsType != "" {
			p.ContentType = panel.ContentType(panelsType)
			if !panel.IsValidContentType(p.ContentType) {
				return fmt.Errorf("unknown content type %q", panelsType)
			}
		}
		p.Content = panelsContent
		p.Enabled = !panelsDisabled

		if err := panel.SaveFile(path, panel.Append(panels, p)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.ID)
		return nil
	},
}

var panelsMoveCmd = &cobra.Command{
	Use:   "move FROM TO",
	Short: "Move the panel at position FROM to position TO (0-based)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid FROM %q: %w", args[0], err)
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid TO %q: %w", args[1], err)
		}

		path, panels, err := loadPanels()
		if err != nil {
			return err
		}
		if from < 0 || from >= len(panels) || to < 0 || to >= len(panels) {
			return fmt.Errorf("positions must be in [0, %d)", len(panels))
		}
		panels = panel.Reorder(panels, from, to)
		if err := panel.SaveFile(path, panels); err != nil {
			return err
		}
		printPanels(cmd.OutOrStdout(), path, panels)
		return nil
	},
}

var panelsRemoveCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"remove"},
	Short:   "Remove a panel",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, panels, err := loadPanels()
		if err != nil {
			return err
		}
		if panel.IndexOf(panels, args[0]) < 0 {
			return fmt.Errorf("no panel with id %q", args[0])
		}
		if err := panel.SaveFile(path, panel.Remove(panels, args[0])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
		return nil
	},
}

var panelsToggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Enable or disable a panel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, panels, err := loadPanels()
		if err != nil {
			return err
		}
		if panel.IndexOf(panels, args[0]) < 0 {
			return fmt.Errorf("no panel with id %q", args[0])
		}
		panels = panel.Update(panels, args[0], func(p *panel.Panel) {
			p.Enabled = !p.Enabled
		})
		if err := panel.SaveFile(path, panels); err != nil {
			return err
		}
		p, _ := panel.Find(panels, args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s enabled=%t\n", p.ID, p.Enabled)
		return nil
	},
}

var panelsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check ids, sort order, content types and nesting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, panels, err := loadPanels()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := panel.Validate(panels); err != nil {
			problems := []error{err}
			if joined, ok := err.(interface{ Unwrap() []error }); ok {
				problems = joined.Unwrap()
			}
			for _, p := range problems {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return fmt.Errorf("%s: %d problem(s)", path, len(problems))
		}
		fmt.Fprintf(out, "%s: %d panels ok\n", path, len(panels))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(panelsCmd)
	panelsCmd.PersistentFlags().StringVar(&panelsFile, "panels", "", "panels file (default: panels.file from config)")

	panelsListCmd.Flags().BoolVar(&panelsJSON, "json", false, "print the serialized panel collection")

	panelsAddCmd.Flags().StringVar(&panelsType, "type", "", "content type (default: simple)")
	panelsAddCmd.Flags().StringVar(&panelsContent, "content", "", "panel content")
	panelsAddCmd.Flags().BoolVar(&panelsDisabled, "disabled", false, "add the panel disabled")

	panelsCmd.AddCommand(panelsListCmd, panelsAddCmd, panelsMoveCmd, panelsRemoveCmd, panelsToggleCmd, panelsValidateCmd)
}

// loadPanels reads the target panels file. A missing file is an empty
// collection so that `panels add` can start one.
func loadPanels() (string, []panel.Panel, error) {
	path := panelsFile
	if path == "" {
		cfg, _, err := loadConfig()
		if err != nil {
			return "", nil, err
		}
		path = cfg.Panels.File
	}

	panels, err := panel.LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, []panel.Panel{}, nil
		}
		return "", nil, err
	}
	return path, panels, nil
}

func printPanels(w io.Writer, path string, panels []panel.Panel) {
	if len(panels) == 0 {
		fmt.Fprintf(w, "%s: no panels\n", path)
		return
	}
	rows := make([][]string, 0, len(panels))
	for _, p := range panels {
		enabled := "yes"
		if !p.Enabled {
			enabled = "no"
		}
		rows = append(rows, []string{
			strconv.Itoa(p.SortOrder),
			p.ID,
			tui.Truncate(p.Title, 32),
			string(p.ContentType),
			enabled,
		})
	}
	fmt.Fprintln(w, tui.Table([]string{"#", "ID", "TITLE", "TYPE", "ENABLED"}, rows))
}
