// Package panel defines the panel model shared by every container mode and
// the pure functions used to parse, serialize and edit panel collections.
package panel

import "github.com/hugo-lorenzo-mato/hypertabs/internal/core"

// ContentType selects the content collaborator used for a panel body.
type ContentType string

const (
	ContentSimple   ContentType = "simple"
	ContentImage    ContentType = "image"
	ContentNested   ContentType = "nested"
	ContentEmbed    ContentType = "embed"
	ContentListView ContentType = "list-view"
	ContentMedia    ContentType = "media"
	ContentMarkdown ContentType = "markdown"
)

// ContentTypes lists every known content type.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentSimple, ContentImage, ContentNested, ContentEmbed,
		ContentListView, ContentMedia, ContentMarkdown,
	}
}

// IsValidContentType reports whether ct is a known content type.
func IsValidContentType(ct ContentType) bool {
	for _, known := range ContentTypes() {
		if ct == known {
			return true
		}
	}
	return false
}

// IconKind distinguishes named icons from literal glyphs.
type IconKind string

const (
	IconSymbolic IconKind = "symbolic-name"
	IconGlyph    IconKind = "glyph"
)

// Icon decorates a panel header.
type Icon struct {
	Kind  IconKind `json:"kind" yaml:"kind"`
	Value string   `json:"value" yaml:"value"`
	Color string   `json:"color,omitempty" yaml:"color,omitempty"`
}

// BadgeKind selects how a badge value is displayed.
type BadgeKind string

const (
	BadgeCount BadgeKind = "count"
	BadgeDot   BadgeKind = "dot"
	BadgeText  BadgeKind = "text"
)

// Badge is a small marker shown next to a panel title.
type Badge struct {
	Kind  BadgeKind `json:"kind" yaml:"kind"`
	Value string    `json:"value" yaml:"value"`
	Color string    `json:"color" yaml:"color"`
}

// NestedConfig describes the container rendered inside a nested panel.
type NestedConfig struct {
	Mode   core.Mode     `json:"mode" yaml:"mode"`
	Style  core.TabStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Panels []Panel       `json:"panels" yaml:"panels"`
}

// AudienceTarget is the visibility predicate handle of a panel. The model
// never interprets it; the visibility collaborator does.
type AudienceTarget struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Groups  []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Panel is one content unit of a container.
type Panel struct {
	ID             string         `json:"id" yaml:"id"`
	Title          string         `json:"title" yaml:"title"`
	Icon           *Icon          `json:"icon,omitempty" yaml:"icon,omitempty"`
	Badge          *Badge         `json:"badge,omitempty" yaml:"badge,omitempty"`
	ContentType    ContentType    `json:"contentType" yaml:"contentType"`
	Content        string         `json:"content" yaml:"content"`
	NestedConfig   *NestedConfig  `json:"nestedConfig,omitempty" yaml:"nestedConfig,omitempty"`
	CustomStyles   map[string]any `json:"customStyles,omitempty" yaml:"customStyles,omitempty"`
	AudienceTarget AudienceTarget `json:"audienceTarget" yaml:"audienceTarget"`
	SortOrder      int            `json:"sortOrder" yaml:"sortOrder"`
	Enabled        bool           `json:"enabled" yaml:"enabled"`
}

// IsNested reports whether the panel hosts a nested container.
func (p Panel) IsNested() bool {
	return p.ContentType == ContentNested
}
