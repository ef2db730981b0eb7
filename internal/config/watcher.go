package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to a fixed set of files. It watches the parent
// directories so that rename-over-original saves are seen too.
type Watcher struct {
	mu       sync.Mutex
	files    map[string]bool
	timers   map[string]*time.Timer
	debounce time.Duration
	onChange func(path string)
	onError  func(err error)
}

// NewWatcher creates a watcher that calls onChange with the changed path.
func NewWatcher(onChange func(path string), paths ...string) *Watcher {
	w := &Watcher{
		files:    make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		debounce: DefaultDebounce,
		onChange: onChange,
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			w.files[abs] = true
		}
	}
	return w
}

// WithDebounce overrides the debounce window.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// OnError sets a callback for watcher errors. Errors are otherwise dropped.
func (w *Watcher) OnError(fn func(err error)) *Watcher {
	w.onError = fn
	return w
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for file := range w.files {
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			w.schedule(name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.onChange(path)
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}
