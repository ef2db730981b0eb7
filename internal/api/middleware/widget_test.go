package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(seen *string) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Route("/widgets/{widgetID}", func(r chi.Router) {
		r.Use(WidgetIDMiddleware(logger))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			*seen = GetWidgetID(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestWidgetIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantID     string
	}{
		{"simple", "/widgets/home/", http.StatusOK, "home"},
		{"dotted", "/widgets/team.site-2/", http.StatusOK, "team.site-2"},
		{"leading dot", "/widgets/.hidden/", http.StatusBadRequest, ""},
		{"too long", "/widgets/" + strings.Repeat("a", 65) + "/", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var seen string
			rec := httptest.NewRecorder()
			newTestRouter(&seen).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if seen != tt.wantID {
				t.Errorf("widget id = %q, want %q", seen, tt.wantID)
			}
		})
	}
}

func TestGetWidgetID_Empty(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetWidgetID(req.Context()); got != "" {
		t.Errorf("GetWidgetID() = %q, want empty", got)
	}
	if got := GetWidgetID(WithWidgetID(req.Context(), "home")); got != "home" {
		t.Errorf("GetWidgetID() = %q, want home", got)
	}
}
