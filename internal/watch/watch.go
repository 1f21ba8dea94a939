// Package watch reports changes to import-map.json, whoever makes them.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/logger"
	"github.com/psidex/citygraph/internal/store"
)

const DefaultDebounce = 250 * time.Millisecond

// ImportMapWatcher publishes an ImportMapChanged event after the import map is
// written, renamed into place or created. Bursts of changes inside the debounce period
// produce one event.
type ImportMapWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	notifier store.Notifier
	debounce time.Duration
	log      *zap.SugaredLogger

	mu    sync.Mutex
	timer *time.Timer
}

// New watches the directory holding path rather than the file, so replacing the file
// by rename keeps being noticed.
func New(path string, n store.Notifier, debounce time.Duration) (*ImportMapWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", dir)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &ImportMapWatcher{
		path:     filepath.Clean(path),
		watcher:  watcher,
		notifier: n,
		debounce: debounce,
		log:      logger.Named("watch"),
	}, nil
}

// Run blocks until ctx is done or the watcher fails, then closes the watcher.
func (w *ImportMapWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.log.Debugw("import map changed", "file", event.Name, "op", event.Op.String())
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", "error", err)
		}
	}
}

func (w *ImportMapWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.notifier.Publish(store.Event{Type: store.ImportMapChanged, Time: time.Now()})
	})
}
