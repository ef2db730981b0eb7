package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	widgetmw "github.com/hugo-lorenzo-mato/hypertabs/internal/api/middleware"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/deeplink"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/responsive"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/store"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/visibility"
)

const maxBodyBytes = 1 << 20

var errETagMismatch = core.ErrConflict("ETAG_MISMATCH", "panels changed since they were read")

// CreatePanelRequest is the body of POST /panels.
type CreatePanelRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type,omitempty"`
	Content     string `json:"content,omitempty"`
}

// ReorderRequest is the body of POST /panels/reorder.
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// PanelVisibility is one panel entry of a ResolveResponse.
type PanelVisibility struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Visibility string `json:"visibility"`
}

// ResolveResponse is what a container would show on first render.
type ResolveResponse struct {
	WidgetID      string            `json:"widget_id"`
	Mode          string            `json:"mode"`
	EffectiveMode string            `json:"effective_mode"`
	Breakpoint    string            `json:"breakpoint"`
	Width         int               `json:"width"`
	ActivePanelID string            `json:"active_panel_id"`
	Panels        []PanelVisibility `json:"panels"`
}

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	widgets, err := s.store.List(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, widgets)
}

// respondPanels writes panels with their ETag.
func (s *Server) respondPanels(w http.ResponseWriter, status int, panels []panel.Panel) {
	data, err := panel.Encode(panels)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	w.Header().Set("ETag", config.CalculateETag(data))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) handleGetPanels(w http.ResponseWriter, r *http.Request) {
	id := widgetmw.GetWidgetID(r.Context())

	panels, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	data, err := panel.Encode(panels)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	etag := config.CalculateETag(data)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	s.respondPanels(w, http.StatusOK, panels)
}

func (s *Server) handlePutPanels(w http.ResponseWriter, r *http.Request) {
	id := widgetmw.GetWidgetID(r.Context())

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	incoming, err := panel.Decode(raw)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	ifMatch := r.Header.Get("If-Match")
	saved, err := s.store.Modify(r.Context(), id, ifMatch == "", func(current []panel.Panel) ([]panel.Panel, error) {
		if ifMatch != "" && ifMatch != "*" {
			data, err := panel.Encode(current)
			if err != nil {
				return nil, err
			}
			if config.CalculateETag(data) != ifMatch {
				return nil, errETagMismatch
			}
		}
		return incoming, nil
	})
	if errors.Is(err, errETagMismatch) {
		respondError(w, http.StatusPreconditionFailed, err.Error())
		return
	}
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	s.logger.Info("widget panels replaced", "widget_id", id, "panels", len(saved))
	s.respondPanels(w, http.StatusOK, saved)
}

func (s *Server) handleCreatePanel(w http.ResponseWriter, r *http.Request) {
	id := widgetmw.GetWidgetID(r.Context())

	var req CreatePanelRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		s.respondDomainError(w, core.ErrValidation("TITLE_REQUIRED", "title is required"))
		return
	}

	var created panel.Panel
	_, err := s.store.Modify(r.Context(), id, true, func(current []panel.Panel) ([]panel.Panel, error) {
		created = panel.Create(title, len(current))
		if req.ContentType != "" {
			created.ContentType = panel.ContentType(req.ContentType)
		}
		created.Content = req.Content
		return panel.Append(current, created), nil
	})
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	s.logger.Info("panel created", "widget_id", id, "panel_id", created.ID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleReorderPanels(w http.ResponseWriter, r *http.Request) {
	id := widgetmw.GetWidgetID(r.Context())

	var req ReorderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.store.Modify(r.Context(), id, false, func(current []panel.Panel) ([]panel.Panel, error) {
		n := len(current)
		if req.From < 0 || req.From >= n || req.To < 0 || req.To >= n {
			return nil, core.ErrValidation(core.CodeInvalidIndex,
				fmt.Sprintf("from and to must be in [0, %d)", n))
		}
		return panel.Reorder(current, req.From, req.To), nil
	})
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondPanels(w, http.StatusOK, saved)
}

func (s *Server) handleDeletePanel(w http.ResponseWriter, r *http.Request) {
	id := widgetmw.GetWidgetID(r.Context())
	panelID := chi.URLParam(r, "panelID")

	_, err := s.store.Modify(r.Context(), id, false, func(current []panel.Panel) ([]panel.Panel, error) {
		if panel.IndexOf(current, panelID) < 0 {
			return nil, core.ErrNotFound("panel", panelID)
		}
		return panel.Remove(current, panelID), nil
	})
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	s.logger.Info("panel deleted", "widget_id", id, "panel_id", panelID)
	w.WriteHeader(http.StatusNoContent)
}

// handleResolve answers what a container holding the widget's panels would
// show first at the given width and address fragment.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	id := widgetmw.GetWidgetID(r.Context())
	q := r.URL.Query()

	width := 0
	if raw := q.Get("width"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondDomainError(w, core.ErrValidation("INVALID_WIDTH", "width must be a non-negative integer"))
			return
		}
		width = n
	}

	mode := core.Mode(s.container.Mode)
	if raw := q.Get("mode"); raw != "" {
		mode = core.Mode(raw)
	}
	if !core.IsValidMode(mode) {
		s.respondDomainError(w, core.ErrValidation("INVALID_MODE", fmt.Sprintf("unknown mode %q", mode)))
		return
	}

	defaultPanel := s.container.DefaultPanel
	if q.Has("default") {
		defaultPanel = q.Get("default")
	}

	evaluator := visibility.AllowAll
	if q.Has("groups") {
		groups := []string{}
		for _, g := range strings.Split(q.Get("groups"), ",") {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, g)
			}
		}
		evaluator = visibility.NewGroups(groups)
	}

	panels, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	enabled := panel.Enabled(panels)

	bp := core.BreakpointDesktop
	if width > 0 {
		bp = responsive.Classify(width, s.container.Breakpoint)
	}

	effective := responsive.Resolve(mode, bp, s.container.ResponsiveCollapse)
	hashID := deeplink.ParseFragment(q.Get("fragment"))
	resp := ResolveResponse{
		WidgetID:      id,
		Mode:          string(mode),
		EffectiveMode: string(effective),
		Breakpoint:    string(bp),
		Width:         width,
		ActivePanelID: store.StartingPanel(enabled, hashID, defaultPanel, effective, s.container.Wizard.Linear),
		Panels:        make([]PanelVisibility, 0, len(enabled)),
	}
	for _, p := range enabled {
		resp.Panels = append(resp.Panels, PanelVisibility{
			ID:         p.ID,
			Title:      p.Title,
			Visibility: evaluator.Evaluate(p).String(),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
