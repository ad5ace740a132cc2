// Package watcher re-runs a callback whenever a results file changes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single write produces.
const DefaultDebounce = 250 * time.Millisecond

// Func is called once at start and after every change to the file.
type Func func(ctx context.Context) error

// Options configures Watch.
type Options struct {
	// Debounce is the quiet period before fn runs. Defaults to DefaultDebounce.
	Debounce time.Duration

	// OnError receives errors returned by fn and from the watcher itself.
	// Errors do not stop the loop.
	OnError func(error)
}

// Watch calls fn immediately and again each time path is written, created
// or renamed into place. The parent directory is watched so editors that
// replace the file atomically are still seen. Watch returns when ctx is
// done.
func Watch(ctx context.Context, path string, fn Func, opts Options) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.OnError == nil {
		opts.OnError = func(error) {}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	if err := fn(ctx); err != nil {
		opts.OnError(err)
	}

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, abs) {
				continue
			}
			timer.Reset(opts.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			opts.OnError(fmt.Errorf("watcher: %w", err))

		case <-timer.C:
			if err := fn(ctx); err != nil {
				opts.OnError(err)
			}
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
