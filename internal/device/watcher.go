package device

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows the device snapshot file and reloads the Manager when
// another process saves it. FileBackend saves via rename, so the parent
// directory is watched rather than the file.
type Watcher struct {
	fs      *fsnotify.Watcher
	manager *Manager
	path    string
	logger  *slog.Logger
}

// NewWatcher subscribes to the directory holding path. The directory must exist.
func NewWatcher(manager *Manager, path string, logger *slog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	path = filepath.Clean(path)
	if err := fs.Add(filepath.Dir(path)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{fs: fs, manager: manager, path: path, logger: logger}, nil
}

// Run reloads the manager on every snapshot change until ctx is done.
// The watcher cannot be reused after Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.touchesSnapshot(ev) {
				continue
			}
			w.logger.Debug("device snapshot changed", "path", w.path, "op", ev.Op.String())
			if err := w.manager.Reload(); err != nil {
				w.logger.Warn("device reload failed", "path", w.path, "error", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("snapshot watch error", "error", err)
		}
	}
}

// touchesSnapshot ignores siblings, including the backend's .tmp file.
func (w *Watcher) touchesSnapshot(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}
