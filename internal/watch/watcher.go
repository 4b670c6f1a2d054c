// Package watch re-runs work when files under a locale tree change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Roots are the directories watched recursively.
	Roots []string
	// Debounce is how long the tree must stay quiet before the callback runs.
	Debounce time.Duration
	// ExcludeDirs are directory base names to skip. Hidden directories are
	// always skipped.
	ExcludeDirs []string
}

// Watcher collects change events under its roots and hands them to a
// callback in batches.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	excludes map[string]bool

	mu      sync.Mutex
	pending map[string]struct{}
}

func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	ex := map[string]bool{}
	for _, d := range cfg.ExcludeDirs {
		ex[d] = true
	}
	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		logger:   logger,
		excludes: ex,
		pending:  map[string]struct{}{},
	}
	for _, root := range cfg.Roots {
		if err := w.addRecursive(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) skipDir(path string) bool {
	base := filepath.Base(path)
	return w.excludes[base] || (strings.HasPrefix(base, ".") && base != "." && base != "..")
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.skipDir(p) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			w.logger.Warn("watch directory failed", "path", p, "err", err)
		}
		return nil
	})
}

// Run blocks until ctx is cancelled, calling onChange with the sorted set of
// changed paths after each quiet period. Callbacks never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.logger.Info("watching", "roots", w.cfg.Roots, "debounce", w.cfg.Debounce)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(ev) {
				timer.Reset(w.cfg.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "err", err)

		case <-timer.C:
			if batch := w.drain(); len(batch) > 0 {
				w.logger.Debug("change batch", "files", len(batch))
				onChange(ctx, batch)
			}
		}
	}
}

// handle records ev and reports whether it counts as a change.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w.skipDir(ev.Name) {
				return false
			}
			if err := w.addRecursive(ev.Name); err != nil {
				w.logger.Warn("watch new directory failed", "path", ev.Name, "err", err)
			}
		}
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	w.mu.Lock()
	w.pending[ev.Name] = struct{}{}
	w.mu.Unlock()
	return true
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	w.pending = map[string]struct{}{}
	sort.Strings(out)
	return out
}
