package resources

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a slot whenever its file-backed source changes on
// disk. Rapid successive writes simply supersede one another through
// the manager's generation counters.
type Watcher struct {
	logger *zap.Logger
	mgr    *Manager
	fsw    *fsnotify.Watcher

	mu      sync.Mutex
	targets map[string]SlotKind

	done chan struct{}
}

func NewWatcher(logger *zap.Logger, mgr *Manager) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		logger:  logger,
		mgr:     mgr,
		fsw:     fsw,
		targets: make(map[string]SlotKind),
		done:    make(chan struct{}),
	}, nil
}

// Watch registers path as the file-backed source for the given slot.
func (w *Watcher) Watch(path string, slot SlotKind) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if err := w.fsw.Add(abs); err != nil {
		return fmt.Errorf("failed to watch %q: %w", abs, err)
	}

	w.mu.Lock()
	w.targets[abs] = slot
	w.mu.Unlock()

	w.logger.Info("Watching source file",
		zap.String("path", abs),
		zap.String("slot", string(slot)))
	return nil
}

// Run processes watch events until Close is called.
func (w *Watcher) Run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload(path string) {
	w.mu.Lock()
	slot, ok := w.targets[path]
	w.mu.Unlock()
	if !ok {
		return
	}

	w.logger.Info("Source file changed, reloading",
		zap.String("path", path),
		zap.String("slot", string(slot)))

	src := FileSource{Path: path}
	switch slot {
	case SlotModel:
		w.mgr.LoadModel(context.Background(), src)
	case SlotPath:
		w.mgr.LoadPath(context.Background(), src)
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
