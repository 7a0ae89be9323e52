// Package maintenance provides the runtime maintenance-mode switch.
//
// The switch can be seeded from configuration and toggled at runtime by
// creating or removing a marker file, watched via fsnotify. While enabled,
// the API answers GET/POST/PUT/PATCH requests with 503.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Flag is a concurrency-safe maintenance-mode switch.
type Flag struct {
	enabled atomic.Bool
}

// NewFlag creates a flag with the given initial state.
func NewFlag(initial bool) *Flag {
	f := &Flag{}
	f.enabled.Store(initial)
	return f
}

// Enabled reports whether maintenance mode is active.
func (f *Flag) Enabled() bool {
	return f.enabled.Load()
}

// Set switches maintenance mode on or off.
func (f *Flag) Set(on bool) {
	f.enabled.Store(on)
}

// Watcher toggles a Flag based on the presence of a marker file.
// Creating the marker enables maintenance mode; removing it disables it.
// Once the marker changes, it becomes the source of truth and overrides
// the configured initial state.
type Watcher struct {
	flag       *Flag
	markerPath string
	watcher    *fsnotify.Watcher
	logger     *slog.Logger

	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher for the given marker file.
// The marker's parent directory must exist; fsnotify watches directories,
// not individual files that may not exist yet.
func NewWatcher(flag *Flag, markerPath string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(markerPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		flag:       flag,
		markerPath: filepath.Clean(markerPath),
		watcher:    fsw,
		logger:     logger,
		done:       make(chan struct{}),
	}, nil
}

// Start begins watching for marker file changes. It syncs the flag with the
// marker's current presence, then processes events in the background until
// Stop is called or the context is canceled.
func (w *Watcher) Start(ctx context.Context) {
	// Sync with the state on disk. The marker may have been left behind by
	// a previous run.
	if _, err := os.Stat(w.markerPath); err == nil {
		w.flag.Set(true)
		w.logger.Warn("maintenance marker present at startup, entering maintenance mode", "path", w.markerPath)
	}

	w.wg.Add(1)
	go w.processEvents(ctx)
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.markerPath {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
				if !w.flag.Enabled() {
					w.logger.Warn("maintenance marker created, entering maintenance mode", "path", w.markerPath)
				}
				w.flag.Set(true)
			case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
				if w.flag.Enabled() {
					w.logger.Info("maintenance marker removed, leaving maintenance mode", "path", w.markerPath)
				}
				w.flag.Set(false)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("maintenance watcher error", "error", err)
		}
	}
}
