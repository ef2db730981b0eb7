package hypertabs

import (
	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/content"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/deeplink"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/events"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/logging"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/responsive"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/visibility"
)

// Options are the scalar settings of one container.
type Options struct {
	Mode               core.Mode
	TabStyle           core.TabStyle
	DeepLinking        bool
	LazyLoading        bool
	ResponsiveCollapse bool
	// Breakpoint is the tablet/desktop boundary in columns.
	Breakpoint     int
	DefaultPanelID string
	Animation      bool

	MultiExpand  bool
	ExpandAll    bool
	ShowControls bool

	ShowProgress bool
	Linear       bool

	// Lookahead is the scroll-spy tolerance in rows.
	Lookahead int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Mode:               core.ModeTabs,
		TabStyle:           core.TabStyleHorizontal,
		DeepLinking:        true,
		LazyLoading:        true,
		ResponsiveCollapse: true,
		Breakpoint:         responsive.DefaultThreshold,
		Animation:          true,
		ShowControls:       true,
		ShowProgress:       true,
		Linear:             true,
		Lookahead:          2,
	}
}

// OptionsFromConfig converts the container section of the configuration.
func OptionsFromConfig(cfg config.ContainerConfig) Options {
	return Options{
		Mode:               core.Mode(cfg.Mode),
		TabStyle:           core.TabStyle(cfg.TabStyle),
		DeepLinking:        cfg.DeepLinking,
		LazyLoading:        cfg.LazyLoading,
		ResponsiveCollapse: cfg.ResponsiveCollapse,
		Breakpoint:         cfg.Breakpoint,
		DefaultPanelID:     cfg.DefaultPanel,
		Animation:          cfg.Animation,
		MultiExpand:        cfg.Accordion.MultiExpand,
		ExpandAll:          cfg.Accordion.ExpandAll,
		ShowControls:       cfg.Accordion.ShowControls,
		ShowProgress:       cfg.Wizard.ShowProgress,
		Linear:             cfg.Wizard.Linear,
		Lookahead:          cfg.ScrollSpy.Lookahead,
	}
}

// Deps are the collaborators shared by a container tree. Location may be
// nil; deep linking is then off regardless of Options.
type Deps struct {
	Bus        *events.EventBus
	Location   deeplink.Location
	Visibility visibility.Evaluator
	Content    *content.Registry
	Logger     *logging.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Visibility == nil {
		d.Visibility = visibility.AllowAll
	}
	if d.Content == nil {
		d.Content = content.NewRegistry()
	}
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	return d
}
