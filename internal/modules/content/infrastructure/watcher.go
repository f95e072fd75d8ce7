package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// ReloadObserver is told about every reload attempt.
type ReloadObserver interface {
	ObserveReload(ok bool)
}

// Watcher reloads the catalog file into a Store when it changes on disk.
// The parent directory is watched so editors that replace the file on save
// are picked up too.
type Watcher struct {
	path     string
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	observer ReloadObserver
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

func NewWatcher(path string, store *Store, observer ReloadObserver, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		store:    store,
		watcher:  fsw,
		debounce: defaultDebounce,
		observer: observer,
		logger:   logger,
	}, nil
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) reload() {
	catalog, err := LoadCatalog(w.path)
	if w.observer != nil {
		w.observer.ObserveReload(err == nil)
	}
	if err != nil {
		w.logger.Warn("catalog reload rejected, keeping previous", slog.String("path", w.path), slog.Any("error", err))
		return
	}
	w.store.Replace(catalog)
	w.logger.Info("catalog reloaded", slog.String("path", w.path), slog.Int("dishes", len(catalog.Dishes)), slog.Int("gallery", len(catalog.Gallery)))
}
