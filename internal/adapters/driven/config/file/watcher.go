package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ragtalk-labs/ragtalk-cli/internal/logger"
)

// Watcher reloads a ConfigStore when its file changes on disk.
// Edits made while the application runs (for example pointing
// backend.base_url at a different host) take effect on the next request.
type Watcher struct {
	store   *ConfigStore
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher bound to the store's config file.
func NewWatcher(store *ConfigStore) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory, not the file: editors often replace files
	// atomically, which drops a watch on the file itself.
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	return &Watcher{store: store, watcher: fw}, nil
}

// Run processes file events until the context is cancelled.
// Intended to be called on its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.store.Path() {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.store.Load(); err != nil {
				logger.Warn("config reload failed: %v", err)
				continue
			}
			logger.Info("config reloaded from %s", w.store.Path())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}
