package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gallery-builder/internal/config"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/metrics"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc runs one build. Errors are logged and do not stop the watcher.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers rebuilds when the input tree, the configuration file or
// the theme changes.
type Watcher struct {
	Debounce time.Duration

	trees   []string
	config  string
	output  string
	rebuild RebuildFunc
}

// New watches the directories named by s.
func New(s *config.Settings, rebuild RebuildFunc) *Watcher {
	w := &Watcher{
		Debounce: DefaultDebounce,
		trees:    []string{s.Input, s.Theme, s.Fonts},
		output:   absPath(s.Output),
		rebuild:  rebuild,
	}
	if s.Path != "" {
		w.config = absPath(s.Path)
	}
	return w
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		metrics.WatcherErrors.Inc()
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		if err := fw.Close(); err != nil {
			logging.Error("failed to close file watcher: %v", err)
		}
	}()

	count := 0
	for _, tree := range w.trees {
		if tree == "" {
			continue
		}
		count += w.addTree(fw, tree)
	}
	if w.config != "" {
		if err := fw.Add(filepath.Dir(w.config)); err != nil {
			logging.Warn("failed to watch config directory: %v", err)
			metrics.WatcherErrors.Inc()
		} else {
			count++
		}
	}
	metrics.WatchedDirectories.Set(float64(count))
	logging.Info("Watching %d directories for changes", count)

	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.handle(fw, event) {
				timer.Reset(w.Debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watcher error: %v", err)
			metrics.WatcherErrors.Inc()

		case <-timer.C:
			logging.Info("Change detected; rebuilding gallery")
			if err := w.rebuild(ctx); err != nil {
				logging.Error("Rebuild failed: %v", err)
			}
		}
	}
}

// handle records the event and reports whether it should trigger a rebuild.
func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	name := absPath(event.Name)
	if w.inOutput(name) || ignored(name) {
		return false
	}
	// The config directory is watched for the config file only.
	if w.config != "" && filepath.Dir(name) == filepath.Dir(w.config) && name != w.config && !w.inTree(name) {
		return false
	}

	metrics.WatcherEventsTotal.WithLabelValues(eventType(event.Op)).Inc()
	logging.Debug("File change detected: %s (%s)", event.Name, event.Op)

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			added := w.addTree(fw, event.Name)
			metrics.WatchedDirectories.Add(float64(added))
		}
	}
	return true
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) int {
	count := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.inOutput(absPath(path)) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			logging.Warn("failed to add path to watcher %s: %v", path, err)
			metrics.WatcherErrors.Inc()
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		logging.Error("failed to walk %s for watcher: %v", root, err)
		metrics.WatcherErrors.Inc()
	}
	return count
}

func (w *Watcher) inOutput(path string) bool {
	return w.output != "" && within(path, w.output)
}

func (w *Watcher) inTree(path string) bool {
	for _, tree := range w.trees {
		if tree != "" && within(path, absPath(tree)) {
			return true
		}
	}
	return false
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ignored reports hidden, editor swap and OS metadata files.
func ignored(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}

func eventType(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	case op&fsnotify.Chmod != 0:
		return "chmod"
	default:
		return "unknown"
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
