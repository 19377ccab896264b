package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads the config file on change and publishes the result
// Only the newest valid config is kept, a slow consumer never blocks the watcher
type Watcher struct {
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	path     string
	name     string
	debounce time.Duration
	updates  chan *Config
}

// NewWatcher creates a watcher for the config file at path
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		logger:   logger,
		watcher:  fw,
		path:     abs,
		name:     filepath.Base(abs),
		debounce: DefaultDebounce,
		updates:  make(chan *Config, 1),
	}, nil
}

// SetDebounce changes the quiet period before a reload, call before Start
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Updates delivers each successfully reloaded config
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start watches the config directory until ctx is done or Stop is called
// The directory is watched rather than the file so atomic rename saves are seen
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("Watching config", zap.String("path", w.path))

	debounceTimer := time.NewTimer(time.Hour)
	debounceTimer.Stop()

	go func() {
		defer debounceTimer.Stop()
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if w.shouldProcessEvent(event) {
					w.logger.Debug("Config change detected",
						zap.String("file", event.Name),
						zap.String("op", event.Op.String()))
					debounceTimer.Reset(w.debounce)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("Watcher error", zap.Error(err))

			case <-debounceTimer.C:
				w.reload()

			case <-ctx.Done():
				w.logger.Info("Stopping config watcher")
				return
			}
		}
	}()

	return nil
}

// Stop closes the underlying watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// shouldProcessEvent accepts content changes to the watched file only
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Base(event.Name) == w.name
}

func (w *Watcher) reload() {
	start := time.Now()
	cfg, err := Load(w.path)
	if err != nil {
		// Keep running on the previous config
		w.logger.Warn("Config reload rejected", zap.Error(err))
		return
	}

	// Replace any unconsumed update with the newer one
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg

	w.logger.Info("Config reloaded",
		zap.Duration("duration", time.Since(start)),
		zap.Int("scents", len(cfg.Scents)))
}
