package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, opts ...ServerOption) (*Server, *storage.WidgetStore) {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "widgets.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	opts = append([]ServerOption{WithLogger(discardLogger())}, opts...)
	return NewServer(st, opts...), st
}

func seedPanels() []panel.Panel {
	return []panel.Panel{
		{ID: "news", Title: "News", ContentType: panel.ContentSimple, Content: "hello", SortOrder: 0, Enabled: true},
		{ID: "docs", Title: "Docs", ContentType: panel.ContentSimple, SortOrder: 1, Enabled: true},
		{ID: "staff", Title: "Staff", ContentType: panel.ContentSimple, SortOrder: 2, Enabled: true,
			AudienceTarget: panel.AudienceTarget{Enabled: true, Groups: []string{"staff"}}},
		{ID: "old", Title: "Old", ContentType: panel.ContentSimple, SortOrder: 3, Enabled: false},
	}
}

func seed(t *testing.T, st *storage.WidgetStore, id string) {
	t.Helper()
	if err := st.Save(context.Background(), id, seedPanels()); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func do(t *testing.T, s *Server, method, path string, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodePanels(t *testing.T, rec *httptest.ResponseRecorder) []panel.Panel {
	t.Helper()
	var panels []panel.Panel
	if err := json.Unmarshal(rec.Body.Bytes(), &panels); err != nil {
		t.Fatalf("decoding panels: %v\n%s", err, rec.Body.String())
	}
	return panels
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestListWidgets(t *testing.T) {
	s, st := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/widgets", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list: %d %s", rec.Code, rec.Body.String())
	}

	seed(t, st, "home")
	rec = do(t, s, http.MethodGet, "/api/v1/widgets", "")
	var list []storage.WidgetSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "home" || list[0].PanelCount != 4 {
		t.Errorf("list = %+v", list)
	}
}

func TestGetPanels(t *testing.T) {
	s, st := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/widgets/home/panels", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing widget status = %d", rec.Code)
	}

	seed(t, st, "home")
	rec = do(t, s, http.MethodGet, "/api/v1/widgets/home/panels", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" || !strings.HasPrefix(etag, `"`) {
		t.Errorf("ETag = %q", etag)
	}
	if got := decodePanels(t, rec); len(got) != 4 {
		t.Errorf("got %d panels", len(got))
	}

	rec = do(t, s, http.MethodGet, "/api/v1/widgets/home/panels", "", "If-None-Match", etag)
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional GET status = %d", rec.Code)
	}
}

func TestPutPanels(t *testing.T) {
	s, _ := newTestServer(t)

	body := `[{"id":"a","title":"A","contentType":"simple","content":"x","sortOrder":0,"enabled":true}]`
	rec := do(t, s, http.MethodPut, "/api/v1/widgets/home/panels", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	etag := rec.Header().Get("ETag")

	// Stale ETag is refused
	rec = do(t, s, http.MethodPut, "/api/v1/widgets/home/panels", body, "If-Match", `"stale"`)
	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("stale If-Match status = %d", rec.Code)
	}

	// Matching ETag is accepted
	next := `[{"id":"b","title":"B","contentType":"simple","sortOrder":0,"enabled":true}]`
	rec = do(t, s, http.MethodPut, "/api/v1/widgets/home/panels", next, "If-Match", etag)
	if rec.Code != http.StatusOK {
		t.Fatalf("matching If-Match status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodePanels(t, rec); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("panels = %+v", got)
	}
}

func TestPutPanels_Invalid(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"not":"a list"`},
		{"duplicate ids", `[{"id":"a","title":"A","contentType":"simple","sortOrder":0},{"id":"a","title":"B","contentType":"simple","sortOrder":1}]`},
		{"unknown type", `[{"id":"a","title":"A","contentType":"carousel","sortOrder":0}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPut, "/api/v1/widgets/home/panels", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreatePanel(t *testing.T) {
	s, st := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/widgets/home/panels", `{"title":"Welcome"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var created panel.Panel
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(created.ID, "panel-") || created.Title != "Welcome" || !created.Enabled {
		t.Errorf("created = %+v", created)
	}

	stored, err := st.Load(context.Background(), "home")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].ID != created.ID {
		t.Errorf("stored = %+v", stored)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/widgets/home/panels", `{"title":"   "}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank title status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodPost, "/api/v1/widgets/home/panels", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d", rec.Code)
	}
}

func TestReorderPanels(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st, "home")

	rec := do(t, s, http.MethodPost, "/api/v1/widgets/home/panels/reorder", `{"from":0,"to":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	got := panel.IDs(decodePanels(t, rec))
	want := []string{"docs", "staff", "news", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	rec = do(t, s, http.MethodPost, "/api/v1/widgets/home/panels/reorder", `{"from":0,"to":9}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("out of range status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodPost, "/api/v1/widgets/nope/panels/reorder", `{"from":0,"to":1}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing widget status = %d", rec.Code)
	}
}

func TestDeletePanel(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st, "home")

	rec := do(t, s, http.MethodDelete, "/api/v1/widgets/home/panels/docs", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	stored, err := st.Load(context.Background(), "home")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 3 || panel.IndexOf(stored, "docs") >= 0 || stored[1].SortOrder != 1 {
		t.Errorf("stored = %+v", stored)
	}

	rec = do(t, s, http.MethodDelete, "/api/v1/widgets/home/panels/docs", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rec.Code)
	}
}

func TestResolve(t *testing.T) {
	s, st := newTestServer(t, WithContainerConfig(config.ContainerConfig{
		Mode:               "tabs",
		ResponsiveCollapse: true,
		Breakpoint:         100,
		DefaultPanel:       "docs",
	}))
	seed(t, st, "home")

	tests := []struct {
		name       string
		query      string
		wantMode   string
		wantBP     string
		wantActive string
	}{
		{"no width", "", "tabs", "desktop", "docs"},
		{"mobile collapses", "?width=40", "accordion", "mobile", "docs"},
		{"tablet collapses", "?width=80", "accordion", "tablet", "docs"},
		{"deep link wins", "?width=120&fragment=%23tab%3Dstaff", "tabs", "desktop", "staff"},
		{"disabled link falls back", "?fragment=tab%3Dold", "tabs", "desktop", "docs"},
		{"default override", "?default=news", "tabs", "desktop", "news"},
		{"unknown default", "?default=zzz", "tabs", "desktop", "news"},
		{"wizard never collapses", "?width=40&mode=wizard", "wizard", "mobile", "docs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/api/v1/widgets/home/resolve"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			var resp ResolveResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.EffectiveMode != tt.wantMode || resp.Breakpoint != tt.wantBP || resp.ActivePanelID != tt.wantActive {
				t.Errorf("resolve = %+v", resp)
			}
			if len(resp.Panels) != 3 {
				t.Errorf("expected the three enabled panels, got %+v", resp.Panels)
			}
		})
	}
}

func TestResolve_LinearWizardStartsAtFirstStep(t *testing.T) {
	s, st := newTestServer(t, WithContainerConfig(config.ContainerConfig{
		Mode:         "tabs",
		Breakpoint:   100,
		DefaultPanel: "docs",
		Wizard:       config.WizardConfig{Linear: true},
	}))
	seed(t, st, "home")

	tests := []struct {
		query      string
		wantActive string
	}{
		{"?mode=wizard&fragment=tab%3Dstaff", "news"},
		{"?mode=wizard", "news"},
		{"?mode=tabs&fragment=tab%3Dstaff", "staff"},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodGet, "/api/v1/widgets/home/resolve"+tt.query, "")
		var resp ResolveResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.ActivePanelID != tt.wantActive {
			t.Errorf("%s: active = %q, want %q", tt.query, resp.ActivePanelID, tt.wantActive)
		}
	}
}

func TestResolve_Visibility(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st, "home")

	visibilityOf := func(query string) map[string]string {
		rec := do(t, s, http.MethodGet, "/api/v1/widgets/home/resolve"+query, "")
		var resp ResolveResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		out := make(map[string]string)
		for _, p := range resp.Panels {
			out[p.ID] = p.Visibility
		}
		return out
	}

	if got := visibilityOf(""); got["staff"] != "visible" {
		t.Errorf("without groups: %v", got)
	}
	if got := visibilityOf("?groups=guests"); got["staff"] != "hidden" || got["news"] != "visible" {
		t.Errorf("guests: %v", got)
	}
	if got := visibilityOf("?groups=guests,staff"); got["staff"] != "visible" {
		t.Errorf("staff: %v", got)
	}
}

func TestResolve_BadInput(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st, "home")

	for _, q := range []string{"?width=wide", "?width=-1", "?mode=carousel"} {
		rec := do(t, s, http.MethodGet, "/api/v1/widgets/home/resolve"+q, "")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: status = %d", q, rec.Code)
		}
	}
	rec := do(t, s, http.MethodGet, "/api/v1/widgets/nope/resolve", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing widget status = %d", rec.Code)
	}
}

func TestInvalidWidgetID(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/widgets/.bad/panels", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

type failingStore struct{ WidgetStore }

func (failingStore) List(context.Context) ([]storage.WidgetSummary, error) {
	return nil, errors.New("disk on fire")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	s := NewServer(failingStore{}, WithLogger(discardLogger()))
	rec := do(t, s, http.MethodGet, "/api/v1/widgets", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "fire") {
		t.Errorf("internal error leaked: %s", rec.Body.String())
	}
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, WithCORSOrigins([]string{"https://intranet.example"}))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://intranet.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://intranet.example" {
		t.Errorf("allow origin = %q", got)
	}

	off, _ := newTestServer(t, WithCORSOrigins(nil))
	rec = httptest.NewRecorder()
	off.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("CORS disabled but got %q", got)
	}
}

func TestListenAndServe_StopsWithContext(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() = %v", err)
	}
}
