package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/config"
)

// UIState is what `hypertabs view` remembers between runs: the last address
// fragment per panel source, so reopening a file resumes where it was left.
type UIState struct {
	Version   int               `json:"version"`
	Fragments map[string]string `json:"fragments,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CurrentUIStateVersion is the schema version for UI state.
const CurrentUIStateVersion = 1

// DefaultUIState returns the default UI state.
func DefaultUIState() *UIState {
	return &UIState{
		Version:   CurrentUIStateVersion,
		Fragments: make(map[string]string),
		UpdatedAt: time.Now(),
	}
}

// UIStateManager handles UI state persistence.
type UIStateManager struct {
	mu       sync.RWMutex
	path     string
	state    *UIState
	dirty    bool
	debounce time.Duration
	saveCh   chan struct{}
	closeCh  chan struct{}
	closeWg  sync.WaitGroup
	closed   bool
}

// NewUIStateManager creates a manager for baseDir/ui-state.json.
func NewUIStateManager(baseDir string) *UIStateManager {
	mgr := &UIStateManager{
		path:     filepath.Join(baseDir, "ui-state.json"),
		state:    DefaultUIState(),
		debounce: 500 * time.Millisecond,
		saveCh:   make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
	}

	mgr.closeWg.Add(1)
	go mgr.backgroundSaver()

	return mgr
}

// Path returns the state file path.
func (m *UIStateManager) Path() string {
	return m.path
}

// Load reads the state file. A missing or unreadable file keeps defaults.
func (m *UIStateManager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var state UIState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil
	}
	if state.Fragments == nil {
		state.Fragments = make(map[string]string)
	}
	state.Version = CurrentUIStateVersion
	m.state = &state
	return nil
}

// Save writes the state atomically.
func (m *UIStateManager) Save() error {
	m.mu.Lock()
	m.state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(m.state, "", "  ")
	m.dirty = false
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return config.AtomicWrite(m.path, data)
}

// LastFragment returns the remembered fragment for key.
func (m *UIStateManager) LastFragment(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Fragments[key]
}

// SetLastFragment remembers fragment for key and schedules a save.
func (m *UIStateManager) SetLastFragment(key, fragment string) {
	m.mu.Lock()
	if m.state.Fragments[key] == fragment {
		m.mu.Unlock()
		return
	}
	m.state.Fragments[key] = fragment
	m.dirty = true
	m.mu.Unlock()

	select {
	case m.saveCh <- struct{}{}:
	default:
	}
}

// Close stops the background saver and flushes pending changes.
func (m *UIStateManager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	close(m.closeCh)
	m.closeWg.Wait()

	m.mu.RLock()
	dirty := m.dirty
	m.mu.RUnlock()
	if dirty {
		return m.Save()
	}
	return nil
}

func (m *UIStateManager) backgroundSaver() {
	defer m.closeWg.Done()

	for {
		select {
		case <-m.closeCh:
			return
		case <-m.saveCh:
		}

		// Coalesce bursts of navigation into one write
		select {
		case <-m.closeCh:
			return
		case <-time.After(m.debounce):
		}

		m.mu.RLock()
		dirty := m.dirty
		m.mu.RUnlock()
		if dirty {
			_ = m.Save()
		}
	}
}
