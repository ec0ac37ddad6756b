// Package watch rebuilds the site when its sources change on disk.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Quiet is how long a burst of file events must settle before a rebuild.
const Quiet = 200 * time.Millisecond

type Event struct {
	Path string
	Op   string
}

type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}
}

// New watches every directory under each path. Paths that are files have
// their parent directory watched; missing paths are skipped.
func New(paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		events:  make(chan Event, 100),
		done:    make(chan struct{}),
	}
	for _, p := range paths {
		if err := w.addPath(p); err != nil {
			fw.Close()
			return nil, err
		}
	}

	go w.processEvents()
	return w, nil
}

func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		return w.watcher.Add(filepath.Dir(path))
	}
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if p != path && ignored(p) {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}

func (w *Watcher) processEvents() {
	defer close(w.events)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ignored(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			// new directories need their own watch
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addPath(event.Name); err != nil {
						slog.Default().Warn("watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			select {
			case w.events <- Event{Path: event.Name, Op: event.Op.String()}:
			case <-w.done:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Default().Warn("file watch error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Events() <-chan Event {
	return w.events
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

// ignored filters hidden files and editor scratch files.
func ignored(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp")
}

// Loop calls rebuild with the changed paths once each burst of events has
// been quiet for quiet. It returns when ctx is done or events closes.
func Loop(ctx context.Context, events <-chan Event, quiet time.Duration, rebuild func(paths []string)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(quiet)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			pending[ev.Path] = struct{}{}
			timer.Reset(quiet)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			rebuild(paths)
		}
	}
}
