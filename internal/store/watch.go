package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/jotty/internal/kv"
)

type Reloader interface {
	Key() string
	Reload(ctx context.Context)
}

// Watcher reloads values when their backing files change on disk, so two
// processes sharing a local storage dir see each other's writes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	byPath   map[string]Reloader
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	done   chan struct{}
}

// NewWatcher returns nil without error when backend keeps no files.
func NewWatcher(backend kv.Store, debounce time.Duration, values ...Reloader) (*Watcher, error) {
	fb, ok := backend.(kv.FileBacked)
	if !ok {
		return nil, nil
	}
	byPath := make(map[string]Reloader, len(values))
	dirs := make(map[string]struct{})
	for _, v := range values {
		path := fb.FilePath(v.Key())
		if path == "" {
			return nil, nil
		}
		byPath[filepath.Clean(path)] = v
		dirs[filepath.Dir(path)] = struct{}{}
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Writes land via rename, so watch the directory rather than the file.
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}
	return &Watcher{
		watcher:  w,
		byPath:   byPath,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	logger := logutil.GetLogger(ctx)
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			target, ok := w.byPath[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			w.schedule(ctx, event.Name, target)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("storage watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, path string, target Reloader) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		logutil.GetLogger(ctx).Debug("storage changed on disk, reloading", zap.String("key", target.Key()))
		target.Reload(ctx)
	})
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
