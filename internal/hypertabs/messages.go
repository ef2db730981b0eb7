package hypertabs

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

// busEventMsg carries a bus event to the container that subscribed to it.
type busEventMsg struct {
	container string
	event     events.Event
	source    <-chan events.Event
}

// spySampleMsg fires when a throttled scroll sample is due.
type spySampleMsg struct {
	container string
}

// spyFrameMsg advances a smooth-scroll animation by one frame.
type spyFrameMsg struct {
	container string
}

// PanelsMsg replaces the panel collection of the container with the given
// id, as when the host pushes a new configuration.
type PanelsMsg struct {
	Container string
	Panels    []panel.Panel
}

const (
	spySampleInterval = 50 * time.Millisecond
	spyFrameInterval  = time.Second / 60
)

// waitForEvent reads the next event from ch. Closed channels end the loop.
func waitForEvent(containerID string, ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return busEventMsg{container: containerID, event: ev, source: ch}
	}
}

func spySampleCmd(containerID string) tea.Cmd {
	return tea.Tick(spySampleInterval, func(time.Time) tea.Msg {
		return spySampleMsg{container: containerID}
	})
}

func spyFrameCmd(containerID string) tea.Cmd {
	return tea.Tick(spyFrameInterval, func(time.Time) tea.Msg {
		return spyFrameMsg{container: containerID}
	})
}
