// Package watch reports batches of changed files under a project root.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"promptpack/internal/walker"

	"github.com/fsnotify/fsnotify"
)

// DefaultWindow is how long the tree must be quiet before a batch is emitted.
const DefaultWindow = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Filter walker.Filter
	Window time.Duration
	// Ignore lists substrings of base names whose events are dropped, such
	// as the index file itself and its lock and temp files.
	Ignore []string
	Logger *slog.Logger
}

// Watcher coalesces fsnotify events into sorted batches of relative paths.
type Watcher struct {
	root   string
	opts   Options
	skip   map[string]bool
	fsw    *fsnotify.Watcher
	logger *slog.Logger
}

// New watches every directory under root that the filter does not prune.
func New(root string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{root: abs, opts: opts, skip: map[string]bool{}, fsw: fsw, logger: logger}
	for _, d := range opts.Filter.Dirs {
		w.skip[d] = true
	}
	if err := w.addTree(abs); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != w.root && w.skip[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	for _, s := range w.opts.Ignore {
		if s != "" && strings.Contains(base, s) {
			return true
		}
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if w.skip[part] {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling onChange with the relative paths
// touched since the last quiet period.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	pending := map[string]bool{}
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || w.ignored(ev.Name) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if err := w.addTree(ev.Name); err != nil {
					w.logger.Warn("cannot watch new directory", "path", ev.Name, "err", err)
				}
			}
			rel, _ := filepath.Rel(w.root, ev.Name)
			pending[filepath.ToSlash(rel)] = true
			fire = time.After(w.opts.Window)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-fire:
			fire = nil
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			pending = map[string]bool{}
			onChange(batch)
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
