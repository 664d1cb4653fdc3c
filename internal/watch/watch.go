// Package watch rebuilds the mnemonic index whenever the manual text file
// changes on disk. The parent directory is watched rather than the file
// itself so editor save strategies that replace the file (write temp +
// rename) are still observed.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceWindow is the time to wait after the last event before
// invoking the change handler.
const DefaultDebounceWindow = 500 * time.Millisecond

// Watcher observes a single file and invokes a handler after changes,
// coalescing bursts of events within the debounce window.
type Watcher struct {
	path     string
	window   time.Duration
	onChange func(ctx context.Context) error
}

// New creates a watcher for path. onChange is called after each coalesced
// change; a returned error is logged and watching continues.
func New(path string, window time.Duration, onChange func(ctx context.Context) error) *Watcher {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Watcher{
		path:     filepath.Clean(path),
		window:   window,
		onChange: onChange,
	}
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	slog.Info("watching source file",
		slog.String("path", w.path),
		slog.Duration("debounce", w.window),
	)

	debounce := newDebouncer(w.window)
	defer debounce.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("source file event",
				slog.String("op", event.Op.String()),
				slog.String("path", event.Name),
			)
			debounce.touch()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", slog.String("error", err.Error()))

		case <-debounce.fired():
			if err := w.onChange(ctx); err != nil {
				slog.Error("change handler failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// relevant reports whether the event concerns the watched file. Create and
// Rename matter because editors replace files on save; Chmod alone does not
// change content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
