package core

// Mode selects the presentation strategy of a container.
type Mode string

const (
	ModeTabs      Mode = "tabs"
	ModeAccordion Mode = "accordion"
	ModeWizard    Mode = "wizard"
	ModeScrollSpy Mode = "scrollspy"
)

// Modes lists every presentation mode in display order.
func Modes() []Mode {
	return []Mode{ModeTabs, ModeAccordion, ModeWizard, ModeScrollSpy}
}

// IsValidMode reports whether m names a known presentation mode.
func IsValidMode(m Mode) bool {
	for _, known := range Modes() {
		if m == known {
			return true
		}
	}
	return false
}

// TabStyle is a visual variant of the tabs mode. It never changes behavior.
type TabStyle string

const (
	TabStyleHorizontal TabStyle = "horizontal"
	TabStyleVertical   TabStyle = "vertical"
	TabStylePill       TabStyle = "pill"
	TabStyleUnderline  TabStyle = "underline"
)

// IsValidTabStyle reports whether s names a known tab style.
func IsValidTabStyle(s TabStyle) bool {
	switch s {
	case TabStyleHorizontal, TabStyleVertical, TabStylePill, TabStyleUnderline:
		return true
	}
	return false
}

// Breakpoint is a coarse viewport size class.
type Breakpoint string

const (
	BreakpointMobile     Breakpoint = "mobile"
	BreakpointTablet     Breakpoint = "tablet"
	BreakpointDesktop    Breakpoint = "desktop"
	BreakpointWidescreen Breakpoint = "widescreen"
)

// MaxNestingDepth bounds container-within-panel recursion. A container at
// this depth is never built; a placeholder is rendered in its place.
const MaxNestingDepth = 2

// HashPrefix is the fragment convention used for deep links.
const HashPrefix = "tab="
