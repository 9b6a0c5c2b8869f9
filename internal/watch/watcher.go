// Package watch re-runs validation when a bundle changes on disk.
//
// It wraps an fsnotify watcher over the bundle tree with a debounce window,
// so editor save bursts collapse into one re-validation cycle. Each cycle
// gets a correlation ID that appears in logs only, never in the report.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bundlecheck/pkg/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

const subsystem = "Watch"

// DefaultDebounce is how long the watcher waits for further changes before
// triggering a cycle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches one bundle root and invokes a callback after changes
// settle.
type Watcher struct {
	root     string
	debounce time.Duration
}

// New creates a watcher for the given bundle root. A zero debounce means
// DefaultDebounce.
func New(root string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{root: root, debounce: debounce}
}

// Run watches the bundle tree until ctx is cancelled, calling onChange with
// a fresh cycle ID after each settled burst of filesystem events.
// Directories created while watching are added to the watch set, so new
// component directories are picked up without a restart.
func (w *Watcher) Run(ctx context.Context, onChange func(cycleID string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addTree(watcher, w.root); err != nil {
		return err
	}
	logging.Info(subsystem, "Watching %s for changes", w.root)

	// A single stopped timer serves as the debounce: every relevant event
	// resets it, and only the final event of a burst fires it.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := w.addTree(watcher, event.Name); addErr != nil {
						logging.Warn(subsystem, "Cannot watch new directory %s: %v", event.Name, addErr)
					}
				}
			}
			logging.Debug(subsystem, "Change detected: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error(subsystem, err, "Filesystem watcher error")

		case <-timer.C:
			cycleID := uuid.NewString()
			logging.Info(subsystem, "Re-validating after change (cycle %s)", cycleID)
			onChange(cycleID)
		}
	}
}

// addTree adds root and every directory below it to the watch set. Hidden
// directories are skipped; editors drop scratch state there constantly.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevant filters out event types that cannot change validation results.
func relevant(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
