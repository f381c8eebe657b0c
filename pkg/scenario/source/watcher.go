package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures a scenario file watcher.
type WatcherConfig struct {
	// Path is the scenario file or directory to watch.
	Path string

	// DebounceInterval is the quiet period before a burst of file
	// events triggers one reload.
	DebounceInterval time.Duration

	// Extensions lists the file extensions that trigger reloads.
	Extensions []string
}

// DefaultWatcherConfig returns the default watcher configuration.
func DefaultWatcherConfig(path string) WatcherConfig {
	return WatcherConfig{
		Path:             path,
		DebounceInterval: 100 * time.Millisecond,
		Extensions:       []string{".yaml", ".yml"},
	}
}

// Watcher turns filesystem events on scenario files into debounced
// reload callbacks. Editors tend to emit several events per save; the
// debouncer collapses each burst into one reload.
type Watcher struct {
	watcher  *fsnotify.Watcher
	config   WatcherConfig
	logger   *slog.Logger
	debounce *debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher over the configured path.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("watch path cannot be empty")
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 100 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".yaml", ".yml"}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		config:   config,
		logger:   slog.Default().With("component", "scenario-watcher"),
		debounce: newDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks processing filesystem events until the context is
// cancelled or Stop is called. onReload runs after each debounced burst
// of scenario file changes; its error is logged, not fatal.
func (w *Watcher) Watch(ctx context.Context, onReload func() error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addPath(w.config.Path); err != nil {
		return fmt.Errorf("watching path: %w", err)
	}

	w.logger.Info("scenario watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("scenario watcher stopped", "reason", "context cancelled")
			return nil

		case <-w.stopCh:
			w.logger.Info("scenario watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcess(event) {
				continue
			}
			w.logger.Debug("scenario file event", "path", event.Name, "op", event.Op.String())
			w.debounce.trigger(func() {
				w.logger.Info("reloading scenarios", "path", event.Name)
				if err := onReload(); err != nil {
					w.logger.Error("scenario reload failed", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			// Keep watching through transient errors.
			w.logger.Error("scenario watcher error", "error", err)
		}
	}
}

// Stop terminates a running Watch and releases the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.debounce.stop()
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("closing watcher: %w", err)
	}
	return nil
}

func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && strings.HasPrefix(filepath.Base(p), ".") && p != path {
			return filepath.SkipDir
		}
		if info.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
}

func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, want := range w.config.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// debouncer collapses a burst of events into one callback after a quiet
// period.
type debouncer struct {
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopped  bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(callback func()) {
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
		d.mu.Unlock()
		if cb != nil && !stopped {
			cb()
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
