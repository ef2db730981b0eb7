// Package content holds the per content-type renderers that turn a panel's
// payload into terminal text. The container engine treats them as opaque.
package content

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

// Renderer produces the body of a panel for the given width in columns.
type Renderer interface {
	Render(p panel.Panel, width int) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(p panel.Panel, width int) (string, error)

// Render calls f.
func (f RendererFunc) Render(p panel.Panel, width int) (string, error) { return f(p, width) }

// Registry maps content types to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[panel.ContentType]Renderer
}

// NewRegistry returns a registry with the built-in renderers installed.
// Nested panels are composed by the container and have no renderer here.
func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[panel.ContentType]Renderer)}
	r.Register(panel.ContentSimple, NewSimpleRenderer())
	r.Register(panel.ContentMarkdown, NewMarkdownRenderer())
	r.Register(panel.ContentImage, referenceRenderer("image"))
	r.Register(panel.ContentMedia, referenceRenderer("media"))
	r.Register(panel.ContentEmbed, referenceRenderer("embed"))
	r.Register(panel.ContentListView, RendererFunc(renderListView))
	return r
}

// Register installs or replaces the renderer for ct.
func (r *Registry) Register(ct panel.ContentType, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[ct] = renderer
}

// Unregister removes the renderer for ct.
func (r *Registry) Unregister(ct panel.ContentType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.renderers, ct)
}

// Has reports whether a renderer exists for ct.
func (r *Registry) Has(ct panel.ContentType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.renderers[ct]
	return ok
}

// Render renders p with the renderer registered for its content type.
func (r *Registry) Render(p panel.Panel, width int) (string, error) {
	r.mu.RLock()
	renderer, ok := r.renderers[p.ContentType]
	r.mu.RUnlock()

	if !ok {
		return "", &core.DomainError{
			Category: core.ErrCatNotFound,
			Code:     core.CodeNoRenderer,
			Message:  fmt.Sprintf("no renderer for content type %q", p.ContentType),
		}
	}
	out, err := renderer.Render(p, width)
	if err != nil {
		return "", core.ErrInternal(core.CodeRenderFailed, "rendering panel "+p.ID).WithCause(err)
	}
	return out, nil
}

// SimpleRenderer strips markup from rich text and wraps it to width.
type SimpleRenderer struct {
	policy *bluemonday.Policy
}

// NewSimpleRenderer creates a simple text renderer.
func NewSimpleRenderer() *SimpleRenderer {
	return &SimpleRenderer{policy: bluemonday.StrictPolicy()}
}

// Render implements Renderer.
func (s *SimpleRenderer) Render(p panel.Panel, width int) (string, error) {
	text := strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n\n").Replace(p.Content)
	text = html.UnescapeString(s.policy.Sanitize(text))
	text = strings.TrimSpace(text)
	if width <= 0 {
		return text, nil
	}
	return lipgloss.NewStyle().Width(width).Render(text), nil
}

// MarkdownRenderer renders markdown with glamour, caching one renderer per
// wrap width.
type MarkdownRenderer struct {
	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
}

// NewMarkdownRenderer creates a markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{cache: make(map[int]*glamour.TermRenderer)}
}

// Render implements Renderer.
func (m *MarkdownRenderer) Render(p panel.Panel, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	tr, err := m.renderer(width)
	if err != nil {
		return "", err
	}
	out, err := tr.Render(p.Content)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

func (m *MarkdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tr, ok := m.cache[width]; ok {
		return tr, nil
	}

	// Inline code without background blocks reads better inside panels
	style := styles.DraculaStyleConfig
	style.Code = ansi.StyleBlock{
		StylePrimitive: ansi.StylePrimitive{
			Color:           stringPtr("229"),
			BackgroundColor: stringPtr(""),
		},
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	m.cache[width] = tr
	return tr, nil
}

func referenceRenderer(label string) Renderer {
	return RendererFunc(func(p panel.Panel, width int) (string, error) {
		ref := strings.TrimSpace(p.Content)
		if ref == "" {
			ref = "(no source)"
		}
		line := fmt.Sprintf("[%s] %s", label, ref)
		if width > 0 {
			line = lipgloss.NewStyle().Width(width).Render(line)
		}
		return line, nil
	})
}

func renderListView(p panel.Panel, _ int) (string, error) {
	name := strings.TrimSpace(p.Content)
	if name == "" {
		name = p.Title
	}
	return fmt.Sprintf("[list] %s (items are loaded by the host)", name), nil
}

func stringPtr(s string) *string {
	return &s
}
