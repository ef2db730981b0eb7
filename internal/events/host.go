package events

// Event type constants for host signals.
const (
	TypeHashChanged     = "hash_changed"
	TypeViewportResized = "viewport_resized"
	TypeConfigReloaded  = "config_reloaded"
	TypePanelActivated  = "panel_activated"
)

// HashChangedEvent reports an externally triggered address fragment change,
// such as back/forward navigation.
type HashChangedEvent struct {
	BaseEvent
	Fragment string `json:"fragment"`
}

// NewHashChangedEvent creates a page-wide fragment change event.
func NewHashChangedEvent(fragment string) HashChangedEvent {
	return HashChangedEvent{
		BaseEvent: NewBaseEvent(TypeHashChanged, ""),
		Fragment:  fragment,
	}
}

// ViewportResizedEvent reports a new host viewport size in columns and rows.
type ViewportResizedEvent struct {
	BaseEvent
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewViewportResizedEvent creates a page-wide resize event.
func NewViewportResizedEvent(width, height int) ViewportResizedEvent {
	return ViewportResizedEvent{
		BaseEvent: NewBaseEvent(TypeViewportResized, ""),
		Width:     width,
		Height:    height,
	}
}

// ConfigReloadedEvent reports that the host pushed a new configuration.
type ConfigReloadedEvent struct {
	BaseEvent
	Path string `json:"path"`
}

// NewConfigReloadedEvent creates a page-wide reload event for path.
func NewConfigReloadedEvent(path string) ConfigReloadedEvent {
	return ConfigReloadedEvent{
		BaseEvent: NewBaseEvent(TypeConfigReloaded, ""),
		Path:      path,
	}
}

// PanelActivatedEvent reports the first activation of a panel in a container.
type PanelActivatedEvent struct {
	BaseEvent
	PanelID string `json:"panel_id"`
	Depth   int    `json:"depth"`
}

// NewPanelActivatedEvent creates an activation event for containerID.
func NewPanelActivatedEvent(containerID, panelID string, depth int) PanelActivatedEvent {
	return PanelActivatedEvent{
		BaseEvent: NewBaseEvent(TypePanelActivated, containerID),
		PanelID:   panelID,
		Depth:     depth,
	}
}
