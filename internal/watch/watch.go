// Package watch reruns a callback whenever a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs. Editors often emit several events per save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reruns a callback when a file is written, created or renamed
// into place.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// New returns a Watcher for path. A nil logger discards output.
func New(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		logger:   logger,
	}
}

// SetDebounce overrides DefaultDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls fn once the watch is established and again after every
// change, until ctx is done. Errors from fn are logged and do not stop
// the watch.
//
// The parent directory is watched rather than the file itself so that
// atomic saves (write to temp, rename over) keep being observed.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch: %s: %w", w.path, err)
	}

	w.call(fn)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("watch: event", "op", event.Op.String(), "path", event.Name)
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch: error", "err", err)
		case <-timer.C:
			w.call(fn)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) call(fn func() error) {
	w.logger.Info("watch: running", "path", w.path)
	if err := fn(); err != nil {
		w.logger.Warn("watch: run failed", "path", w.path, "err", err)
	}
}
