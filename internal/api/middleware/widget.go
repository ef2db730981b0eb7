// Package middleware provides HTTP middleware for the HyperTabs API.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const widgetIDKey contextKey = "widgetID"

var widgetIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// ValidWidgetID reports whether id can name a widget.
func ValidWidgetID(id string) bool {
	return widgetIDPattern.MatchString(id)
}

// GetWidgetID retrieves the widget ID from the request context.
// Returns empty string if no widget ID is set.
func GetWidgetID(ctx context.Context) string {
	id, _ := ctx.Value(widgetIDKey).(string)
	return id
}

// WithWidgetID adds the widget ID to the request context.
func WithWidgetID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, widgetIDKey, id)
}

// WidgetIDMiddleware extracts {widgetID} from the URL and stores it in the
// request context.
//
// Error responses:
//   - 400 Bad Request: widgetID missing or malformed
func WidgetIDMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			widgetID := chi.URLParam(r, "widgetID")
			if !ValidWidgetID(widgetID) {
				logger.Warn("widget middleware: invalid widgetID",
					"widget_id", widgetID,
					"path", r.URL.Path,
					"method", r.Method,
				)
				http.Error(w, `{"error": "invalid widget id"}`, http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithWidgetID(r.Context(), widgetID)))
		})
	}
}
