// Package storage persists the panel collections of hosted widgets in SQLite.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
	_ "modernc.org/sqlite"
)

//go:embed migrations/001_widgets.sql
var migrationV1 string

// WidgetSummary is one row of List.
type WidgetSummary struct {
	ID         string    `json:"id"`
	PanelCount int       `json:"panel_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WidgetStore stores panel collections keyed by widget id.
type WidgetStore struct {
	path string
	db   *sql.DB
	mu   sync.RWMutex
	// modifyMu serialises read-modify-write cycles.
	modifyMu sync.Mutex
	now      func() time.Time
}

// Open opens (creating when missing) the widget database at path.
func Open(path string) (*WidgetStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite serialises writers anyway
	db.SetMaxOpenConns(1)

	s := &WidgetStore{path: path, db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *WidgetStore) Path() string { return s.path }

// Close closes the database connection.
func (s *WidgetStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *WidgetStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		version = 0
	}

	if version < 1 {
		if _, err := s.db.Exec(migrationV1); err != nil {
			return fmt.Errorf("applying migration v1: %w", err)
		}
	}
	return nil
}

// Save validates panels and replaces the collection of widget id.
func (s *WidgetStore) Save(ctx context.Context, id string, panels []panel.Panel) error {
	if strings.TrimSpace(id) == "" {
		return core.ErrValidation(core.CodeEmptyID, "widget id is required")
	}
	if err := panel.Validate(panels); err != nil {
		return err
	}
	data, err := panel.Encode(panels)
	if err != nil {
		return core.ErrValidation(core.CodeParseFailed, "panels cannot be serialized").WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO widgets (id, panels, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET panels = excluded.panels, updated_at = excluded.updated_at`,
		id, string(data), s.now().UTC())
	if err != nil {
		return fmt.Errorf("saving widget %s: %w", id, err)
	}
	return nil
}

// Load returns the collection of widget id. An unknown id is a not-found
// error; a stored collection that no longer decodes is a state error.
func (s *WidgetStore) Load(ctx context.Context, id string) ([]panel.Panel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT panels FROM widgets WHERE id = ?", id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound("widget", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading widget %s: %w", id, err)
	}

	panels, err := panel.Decode([]byte(raw))
	if err != nil {
		return nil, core.ErrState(core.CodeParseFailed, "stored panels are corrupt").
			WithCause(err).
			WithDetail("widget", id)
	}
	return panels, nil
}

// Exists reports whether widget id has a stored collection.
func (s *WidgetStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM widgets WHERE id = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("checking widget %s: %w", id, err)
	}
	return n > 0, nil
}

// List returns every stored widget ordered by id.
func (s *WidgetStore) List(ctx context.Context) ([]WidgetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, panels, updated_at FROM widgets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing widgets: %w", err)
	}
	defer rows.Close()

	out := []WidgetSummary{}
	for rows.Next() {
		var (
			w   WidgetSummary
			raw string
		)
		if err := rows.Scan(&w.ID, &raw, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning widget: %w", err)
		}
		w.PanelCount = len(panel.Parse(raw))
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating widgets: %w", err)
	}
	return out, nil
}

// Delete removes widget id. Deleting an unknown id is a not-found error.
func (s *WidgetStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM widgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting widget %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting widget %s: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound("widget", id)
	}
	return nil
}

// Modify loads widget id, applies fn and saves the result in one step.
// A missing widget starts from an empty collection when create is true.
func (s *WidgetStore) Modify(ctx context.Context, id string, create bool, fn func([]panel.Panel) ([]panel.Panel, error)) ([]panel.Panel, error) {
	s.modifyMu.Lock()
	defer s.modifyMu.Unlock()

	current, err := s.Load(ctx, id)
	switch {
	case err == nil:
	case create && core.IsCategory(err, core.ErrCatNotFound):
		current = []panel.Panel{}
	default:
		return nil, err
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, id, next); err != nil {
		return nil, err
	}
	return next, nil
}
