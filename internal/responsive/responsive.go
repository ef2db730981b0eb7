// Package responsive maps viewport sizes to breakpoints and breakpoints to
// the mode a container actually renders.
package responsive

import "github.com/hugo-lorenzo-mato/hypertabs/internal/core"

// Column thresholds for the fixed breakpoints. The tablet/desktop boundary is
// configurable and passed to Classify.
const (
	MobileMaxWidth     = 60
	WidescreenMinWidth = 160
	DefaultThreshold   = 100
)

// Classify returns the breakpoint for a viewport width in columns. Widths
// below MobileMaxWidth are mobile, widths below threshold are tablet.
func Classify(width, threshold int) core.Breakpoint {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	switch {
	case width < MobileMaxWidth:
		return core.BreakpointMobile
	case width < threshold:
		return core.BreakpointTablet
	case width >= WidescreenMinWidth:
		return core.BreakpointWidescreen
	default:
		return core.BreakpointDesktop
	}
}

// Resolve returns the effective mode. Tabs collapse to accordion on mobile
// and tablet when collapse is on; every other combination is unchanged.
func Resolve(configured core.Mode, bp core.Breakpoint, collapse bool) core.Mode {
	if !collapse || configured != core.ModeTabs {
		return configured
	}
	switch bp {
	case core.BreakpointMobile, core.BreakpointTablet:
		return core.ModeAccordion
	default:
		return core.ModeTabs
	}
}
