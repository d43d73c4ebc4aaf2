// Package watch reports changes to diagnostic input files.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/diagview/internal/logging"
	"github.com/yaklabco/diagview/pkg/fsutil"
)

// DefaultDebounce coalesces the burst of events an editor or tool produces
// when it rewrites a file.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches a fixed set of files. Parent directories are watched so
// files replaced by rename are still seen. A burst of events only counts as
// a change when some file's content differs from its last snapshot.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]fsutil.Snapshot
	debounce time.Duration
	logger   *log.Logger
}

// New starts watching paths. A nil logger uses the default logger.
func New(paths []string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		files:    make(map[string]fsutil.Snapshot, len(paths)),
		debounce: debounce,
		logger:   logger,
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		snap, err := fsutil.Take(context.Background(), abs)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("snapshot %s: %w", path, err)
		}
		w.files[abs] = snap
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run calls notify after each burst of changes to a watched file until ctx
// is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, notify func()) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("input changed", logging.FieldFile, event.Name, logging.FieldAction, event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch events dropped", logging.FieldError, err)
				timer.Reset(w.debounce)
				continue
			}
			w.logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			if w.refresh(ctx) {
				notify()
			}
		}
	}
}

// refresh re-snapshots every file and reports whether any content changed.
// Files that cannot be read count as changed so the reload surfaces the error.
func (w *Watcher) refresh(ctx context.Context) bool {
	changed := false
	for path, snap := range w.files {
		next, differs, err := snap.Refresh(ctx)
		if err != nil {
			w.logger.Warn("snapshot failed", logging.FieldFile, path, logging.FieldError, err)
			changed = true
			continue
		}
		if differs {
			w.files[path] = next
			changed = true
		}
	}
	if !changed {
		w.logger.Debug("inputs unchanged")
	}
	return changed
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// Close stops watching.
func (w *Watcher) Close() error {
	if err := w.fs.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}
