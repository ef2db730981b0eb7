package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// SanitizingHandler wraps another handler and sanitizes log attributes.
type SanitizingHandler struct {
	handler   slog.Handler
	sanitizer *Sanitizer
}

// NewSanitizingHandler creates a new sanitizing handler.
func NewSanitizingHandler(handler slog.Handler, sanitizer *Sanitizer) *SanitizingHandler {
	return &SanitizingHandler{
		handler:   handler,
		sanitizer: sanitizer,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SanitizingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record and passes it to the underlying handler.
func (h *SanitizingHandler) Handle(ctx context.Context, r slog.Record) error {
	// Sanitize the message
	sanitizedMsg := h.sanitizer.Sanitize(r.Message)

	// Create a new record with sanitized values
	newRecord := slog.NewRecord(r.Time, r.Level, sanitizedMsg, r.PC)

	// Sanitize attributes
	r.Attrs(func(a slog.Attr) bool {
		newRecord.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, newRecord)
}

// WithAttrs returns a new handler with sanitized attrs.
func (h *SanitizingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		sanitizedAttrs[i] = h.sanitizeAttr(attr)
	}
	return &SanitizingHandler{
		handler:   h.handler.WithAttrs(sanitizedAttrs),
		sanitizer: h.sanitizer,
	}
}

// WithGroup returns a new handler with a group.
func (h *SanitizingHandler) WithGroup(name string) slog.Handler {
	return &SanitizingHandler{
		handler:   h.handler.WithGroup(name),
		sanitizer: h.sanitizer,
	}
}

func (h *SanitizingHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.Attr{
			Key:   a.Key,
			Value: slog.StringValue(h.sanitizer.Sanitize(a.Value.String())),
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		sanitized := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			sanitized[i] = h.sanitizeAttr(attr)
		}
		return slog.Attr{
			Key:   a.Key,
			Value: slog.GroupValue(sanitized...),
		}
	case slog.KindAny:
		// Errors from content collaborators often embed the failing URL
		if err, ok := a.Value.Any().(error); ok && err != nil {
			return slog.String(a.Key, h.sanitizer.Sanitize(err.Error()))
		}
		return a
	default:
		return a
	}
}

// PrettyHandler provides colorized console output for TTY. Scope attributes
// (container and panel ids) are lifted into a bracketed prefix.
type PrettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

var (
	prettyTime  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	prettyScope = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
	prettyKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))

	prettyLevels = map[slog.Level]lipgloss.Style{
		slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}
)

// scopeKeys are rendered as "[container/panel]" instead of key=value.
var scopeKeys = map[string]int{"container_id": 0, "panel_id": 1}

// NewPrettyHandler creates a new pretty handler.
func NewPrettyHandler(w io.Writer, level slog.Level) *PrettyHandler {
	return &PrettyHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes the log record.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	scope := make([]string, len(scopeKeys))
	var rest strings.Builder

	collect := func(a slog.Attr) {
		if idx, ok := scopeKeys[a.Key]; ok && len(h.groups) == 0 {
			scope[idx] = a.Value.String()
			return
		}
		h.writeAttr(&rest, a)
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	var line strings.Builder
	line.WriteString(prettyTime.Render(r.Time.Format("15:04:05")))
	line.WriteByte(' ')
	line.WriteString(formatLevel(r.Level))
	if prefix := joinScope(scope); prefix != "" {
		line.WriteString(" " + prettyScope.Render("["+prefix+"]"))
	}
	line.WriteByte(' ')
	line.WriteString(r.Message)
	line.WriteString(rest.String())

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, line.String())
	return err
}

// WithAttrs returns a new handler with attrs.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// WithGroup returns a new handler with a group.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func formatLevel(level slog.Level) string {
	style, ok := prettyLevels[level]
	if !ok {
		return level.String()
	}
	switch level {
	case slog.LevelDebug:
		return style.Render("DBG")
	case slog.LevelInfo:
		return style.Render("INF")
	case slog.LevelWarn:
		return style.Render("WRN")
	default:
		return style.Render("ERR")
	}
}

func joinScope(scope []string) string {
	parts := make([]string, 0, len(scope))
	for _, s := range scope {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

func (h *PrettyHandler) writeAttr(b *strings.Builder, a slog.Attr) {
	if a.Value.Kind() == slog.KindGroup {
		for _, attr := range a.Value.Group() {
			h.writeAttr(b, attr)
		}
		return
	}

	key := a.Key
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	fmt.Fprintf(b, " %s=%v", prettyKey.Render(key), a.Value.Any())
}
