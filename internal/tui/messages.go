package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ActivatedMsg reports the first activation of a panel anywhere in the tree.
type ActivatedMsg struct {
	Container string
	PanelID   string
	Depth     int
}

// ReloadMsg asks the app to re-read its panel source.
type ReloadMsg struct {
	Path string
}

// LogMsg carries a warning or error from the log into the status line.
type LogMsg struct {
	Time    time.Time
	Level   string
	Message string
}

// ErrorMsg reports a failure to show in the status line.
type ErrorMsg struct {
	Err error
}

// CopiedMsg reports the outcome of a link copy.
type CopiedMsg struct {
	Status string
	Err    error
}

// waitForAdapter reads the next host message from the adapter.
func waitForAdapter(a *EventBusAdapter) tea.Cmd {
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-a.MsgChannel()
		if !ok {
			return nil
		}
		return msg
	}
}
