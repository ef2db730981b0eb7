package hypertabs

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the container key bindings. Bindings are shared by all modes;
// each renderer reads the ones it understands.
type KeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding

	Toggle      key.Binding
	CursorDown  key.Binding
	CursorUp    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding

	StepNext key.Binding
	StepPrev key.Binding

	SectionNext key.Binding
	SectionPrev key.Binding

	// Marker selects step markers and nav entries by number.
	Marker key.Binding

	Jump  key.Binding
	Enter key.Binding
	Leave key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "down", "l", "j"),
			key.WithHelp("→/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "up", "h", "k"),
			key.WithHelp("←/↑", "previous"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle"),
		),
		CursorDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		CursorUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse all"),
		),
		StepNext: key.NewBinding(
			key.WithKeys("right", "n", "enter"),
			key.WithHelp("→/n", "next step"),
		),
		StepPrev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "previous step"),
		),
		SectionNext: key.NewBinding(
			key.WithKeys("]", "n"),
			key.WithHelp("]", "next section"),
		),
		SectionPrev: key.NewBinding(
			key.WithKeys("[", "p"),
			key.WithHelp("[", "previous section"),
		),
		Marker: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to"),
		),
		Jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump"),
		),
		Enter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "enter nested"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave nested"),
		),
	}
}

// markerIndex returns the zero-based index named by a digit key, or -1.
func markerIndex(k string) int {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return -1
	}
	return int(k[0] - '1')
}
