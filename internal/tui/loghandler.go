package tui

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// LogHandler is a slog.Handler that surfaces records in the app status line
// while the terminal belongs to bubbletea. It wraps the file handler so the
// full log is still written.
type LogHandler struct {
	next  slog.Handler
	level slog.Level
	attrs []slog.Attr

	// sink is shared by derived handlers so a late SetSink reaches all.
	sink *logSink
}

type logSink struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewLogHandler creates a handler that forwards records at or above level
// to the app and every record to next (which may be nil).
func NewLogHandler(next slog.Handler, level slog.Level) *LogHandler {
	return &LogHandler{next: next, level: level, sink: &logSink{}}
}

// SetSink connects the handler to a running program, usually
// (*tea.Program).Send.
func (h *LogHandler) SetSink(send func(tea.Msg)) {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.send = send
}

// Enabled reports whether either destination wants the level.
func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level || (h.next != nil && h.next.Enabled(ctx, level))
}

// Handle forwards the record.
func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level {
		h.sink.mu.RLock()
		send := h.sink.send
		h.sink.mu.RUnlock()
		if send != nil {
			send(LogMsg{Time: timeOr(r.Time), Level: levelToString(r.Level), Message: h.format(r)})
		}
	}
	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

// WithAttrs returns a new Handler with the given attributes added.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

// WithGroup returns a new Handler with the given group.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.next != nil {
		clone.next = h.next.WithGroup(name)
	}
	return &clone
}

func (h *LogHandler) format(r slog.Record) string {
	parts := []string{r.Message}
	for _, a := range h.attrs {
		parts = append(parts, a.Key+"="+a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.Key+"="+a.Value.String())
		return true
	})
	return strings.Join(parts, " ")
}

func levelToString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

func timeOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
