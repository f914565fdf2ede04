package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval is the quiet period a Watcher waits for after the
// last file event before reloading.
const DefaultDebounceInterval = 100 * time.Millisecond

// Watcher watches a configuration file and reloads it on change.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename-over keep being observed.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce *Debouncer
}

// NewWatcher creates a watcher for the configuration file at path.
func NewWatcher(path string, interval time.Duration, logger *slog.Logger) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		logger:   logger.With("component", "config.watcher"),
		debounce: NewDebouncer(interval),
	}, nil
}

// Watch blocks until ctx is cancelled, calling onReload with each
// successfully reloaded configuration. A reload that fails to load or
// validate is logged and the callback is not invoked, so the caller keeps its
// current configuration.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Config)) error {
	defer w.close()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.path, err)
	}

	w.logger.Info("config watcher started", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("config file event", "path", event.Name, "op", event.Op.String())

			w.debounce.Trigger(func() {
				cfg, err := LoadConfigWithEnvOverrides(w.path)
				if err != nil {
					w.logger.Error("config reload failed, keeping current configuration", "error", err)
					return
				}
				w.logger.Info("config reloaded", "path", w.path)
				onReload(cfg)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) close() {
	w.debounce.Stop()
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("failed to close fsnotify watcher", "error", err)
	}
}

// shouldProcessEvent reports whether event concerns the watched file and may
// have changed its content.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Debouncer collects rapid events and runs the latest callback once after a
// quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopped  bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback to run after the debounce interval, replacing
// any callback still pending.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		cb := d.callback
		stopped := d.stopped
		d.callback = nil
		d.mu.Unlock()

		if cb != nil && !stopped {
			cb()
		}
	})
}

// Stop cancels any pending callback. Further triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
