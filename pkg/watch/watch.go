// Package watch reloads the victory graph when its data files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// ReloadFunc is called once per burst of changes.
type ReloadFunc func(ctx context.Context) error

// Config configures a Watcher.
type Config struct {
	// Files are the data files to watch. Empty entries are ignored.
	Files []string

	// Reload is called after a watched file was written, created or renamed.
	Reload ReloadFunc

	// Debounce coalesces rapid changes (defaults to 500ms).
	Debounce time.Duration

	// Logger is the configured slog logger
	Logger *slog.Logger
}

// Watcher watches the parent directories of the configured files, so editors
// and scrapers that replace files by rename are still seen.
type Watcher struct {
	config  Config
	files   map[string]bool
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher. Call Run to start it.
func New(c Config) (*Watcher, error) {
	if c.Reload == nil {
		return nil, errors.New("reload func is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if c.Debounce == 0 {
		c.Debounce = defaultDebounce
	}

	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range c.Files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return &Watcher{config: c, files: files, watcher: w}, nil
}

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}

			w.config.Logger.Debug("data file changed",
				"file", event.Name,
				"op", event.Op.String(),
			)
			w.schedule(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.config.Debounce, func() {
		if ctx.Err() != nil {
			return
		}
		if err := w.config.Reload(ctx); err != nil {
			w.config.Logger.Error("reload failed", "error", err)
			return
		}
		w.config.Logger.Info("data reloaded")
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
