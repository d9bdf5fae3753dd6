package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"notegraph/internal/contextutil"
)

// DefaultDebounce is how long a file must stay quiet before it is handed off.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports new supported files under a directory tree. Each path is
// handed off once, after writes to it have settled.
type Watcher struct {
	dir      string
	debounce time.Duration
}

// NewWatcher creates a watcher for dir. Non-positive debounce falls back to
// DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{dir: dir, debounce: debounce}
}

// Run watches until ctx is cancelled. handle is called from the watch loop,
// one path at a time.
func (w *Watcher) Run(ctx context.Context, handle func(ctx context.Context, path string)) error {
	logger := contextutil.LoggerFromContext(ctx).With("dir", w.dir)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, w.dir); err != nil {
		return err
	}
	logger.InfoContext(ctx, "watching inbox")

	fired := make(chan string, 64)
	timers := make(map[string]*time.Timer)
	done := make(map[string]struct{})
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if hiddenUnder(w.dir, event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(fw, event.Name); err != nil {
						logger.WarnContext(ctx, "failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !Supported(event.Name) {
				continue
			}
			if _, seen := done[event.Name]; seen {
				continue
			}
			path := event.Name
			if t, ok := timers[path]; ok {
				t.Reset(w.debounce)
				continue
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				select {
				case fired <- path:
				case <-ctx.Done():
				}
			})

		case path := <-fired:
			delete(timers, path)
			done[path] = struct{}{}
			handle(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.ErrorContext(ctx, "watcher error", "error", err)
		}
	}
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if hiddenUnder(root, path) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
