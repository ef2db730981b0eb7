package tui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/hypertabs"
)

// PanelSummary describes one panel in a Snapshot.
type PanelSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Enabled     bool   `json:"enabled"`
	SortOrder   int    `json:"sort_order"`
}

// Snapshot is the resolved state of a container at one viewport size. It is
// what `hypertabs view --output json` prints.
type Snapshot struct {
	ContainerID          string         `json:"container_id"`
	Mode                 string         `json:"mode"`
	EffectiveMode        string         `json:"effective_mode"`
	Breakpoint           string         `json:"breakpoint"`
	Width                int            `json:"width"`
	ActivePanelID        string         `json:"active_panel_id"`
	ExpandedPanelIDs     []string       `json:"expanded_panel_ids"`
	ActivatedPanelIDs    []string       `json:"activated_panel_ids"`
	WizardCurrentStep    int            `json:"wizard_current_step"`
	WizardCompletedSteps []int          `json:"wizard_completed_steps"`
	Panels               []PanelSummary `json:"panels"`
	Children             []Snapshot     `json:"children,omitempty"`
}

// TakeSnapshot captures c and its mounted nested containers.
func TakeSnapshot(c *hypertabs.Container, width int) Snapshot {
	st := c.Store().Snapshot()
	s := Snapshot{
		ContainerID:          c.ID(),
		Mode:                 string(c.Options().Mode),
		EffectiveMode:        string(c.EffectiveMode()),
		Breakpoint:           string(c.Breakpoint()),
		Width:                width,
		ActivePanelID:        st.ActivePanelID,
		ExpandedPanelIDs:     st.ExpandedPanelIDs,
		ActivatedPanelIDs:    st.ActivatedPanelIDs,
		WizardCurrentStep:    st.WizardCurrentStep,
		WizardCompletedSteps: st.WizardCompletedSteps,
	}
	for _, p := range c.Panels() {
		s.Panels = append(s.Panels, PanelSummary{
			ID:          p.ID,
			Title:       p.Title,
			ContentType: string(p.ContentType),
			Enabled:     p.Enabled,
			SortOrder:   p.SortOrder,
		})
		if child := c.Child(p.ID); child != nil {
			s.Children = append(s.Children, TakeSnapshot(child, width))
		}
	}
	return s
}

// WriteFrame sizes c and prints one rendered frame.
func WriteFrame(w io.Writer, c *hypertabs.Container, width, height int) error {
	c.Resize(width, height)
	_, err := fmt.Fprintln(w, c.View())
	return err
}

// WriteJSON sizes c and prints its snapshot.
func WriteJSON(w io.Writer, c *hypertabs.Container, width, height int) error {
	c.Resize(width, height)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(TakeSnapshot(c, width))
}
