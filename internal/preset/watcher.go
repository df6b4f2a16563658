package preset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/internal/logger"
)

// settle absorbs the burst of events an editor produces for one save.
const settle = 50 * time.Millisecond

// Watcher reapplies a preset file whenever it changes.
type Watcher struct {
	path  string
	queue *lighting.EditQueue
	fsw   *fsnotify.Watcher
	log   *zap.Logger

	// Reloaded, if set, receives every successful reload. Used by tests.
	Reloaded chan<- lighting.Snapshot
}

// NewWatcher watches path and pushes its contents into queue on change.
// The parent directory is watched so atomic replaces are seen too.
func NewWatcher(path string, queue *lighting.EditQueue) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("preset path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create preset watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:  abs,
		queue: queue,
		fsw:   fsw,
		log:   logger.Component("preset"),
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// Run processes file events until ctx is cancelled. It closes the underlying
// watcher on return.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(settle)
			}

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("preset watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		// Half-written files are common mid-save; the next event retries.
		w.log.Warn("preset reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	if err := w.queue.Push(Edit(s)); err != nil {
		w.log.Warn("preset dropped", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("preset reloaded", zap.String("path", w.path))
	if w.Reloaded != nil {
		select {
		case w.Reloaded <- s:
		default:
		}
	}
}
