package config

// Config holds all application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Container ContainerConfig `mapstructure:"container"`
	Panels    PanelsConfig    `mapstructure:"panels"`
	Audience  AudienceConfig  `mapstructure:"audience"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Server    ServerConfig    `mapstructure:"server"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ContainerConfig holds the scalar settings of the top-level container.
type ContainerConfig struct {
	Mode               string          `mapstructure:"mode"`
	TabStyle           string          `mapstructure:"tab_style"`
	DeepLinking        bool            `mapstructure:"deep_linking"`
	LazyLoading        bool            `mapstructure:"lazy_loading"`
	ResponsiveCollapse bool            `mapstructure:"responsive_collapse"`
	Breakpoint         int             `mapstructure:"breakpoint"`
	DefaultPanel       string          `mapstructure:"default_panel"`
	Animation          bool            `mapstructure:"animation"`
	Accordion          AccordionConfig `mapstructure:"accordion"`
	Wizard             WizardConfig    `mapstructure:"wizard"`
	ScrollSpy          ScrollSpyConfig `mapstructure:"scrollspy"`
}

// AccordionConfig configures accordion mode.
type AccordionConfig struct {
	MultiExpand  bool `mapstructure:"multi_expand"`
	ExpandAll    bool `mapstructure:"expand_all"`
	ShowControls bool `mapstructure:"show_controls"`
}

// WizardConfig configures wizard mode.
type WizardConfig struct {
	ShowProgress bool `mapstructure:"show_progress"`
	Linear       bool `mapstructure:"linear"`
}

// ScrollSpyConfig configures scroll-spy mode.
type ScrollSpyConfig struct {
	// Lookahead is the tolerance in rows when matching sections to the
	// scroll offset.
	Lookahead int `mapstructure:"lookahead"`
}

// PanelsConfig locates the panel collection.
type PanelsConfig struct {
	File string `mapstructure:"file"`
}

// AudienceConfig describes the viewer for audience targeting.
type AudienceConfig struct {
	Groups []string `mapstructure:"groups"`
	// Pending leaves membership unresolved, as when the directory lookup
	// has not answered yet.
	Pending bool `mapstructure:"pending"`
}

// StorageConfig configures widget persistence.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}
