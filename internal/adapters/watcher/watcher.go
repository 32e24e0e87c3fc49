// Package watcher streams filesystem change events for the dev session.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// skipDirs are directory names that never hold watchable sources: VCS
// internals, build output and vendored packages.
var skipDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	".build":       true,
	".kiln":        true,
	"node_modules": true,
}

const eventBuffer = 100

// Watcher turns fsnotify notifications into ports.WatchEvent values.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
}

// NewWatcher creates an fsnotify-backed watcher.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		events:    make(chan ports.WatchEvent, eventBuffer),
	}, nil
}

// Start registers every directory under the given roots and begins
// delivering events. The event stream closes when ctx is canceled or the
// watcher is stopped.
func (w *Watcher) Start(ctx context.Context, roots []string) error {
	for _, root := range roots {
		for dir := range w.dirsUnder(root) {
			if err := w.fsWatcher.Add(dir); err != nil {
				return err
			}
		}
	}

	go w.pump(ctx)
	return nil
}

// Stop closes the underlying watcher and, through it, the event stream.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns the event stream as a single-use iterator.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

// dirsUnder yields root and every watchable directory below it.
func (w *Watcher) dirsUnder(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped, not fatal
			}
			if !d.IsDir() {
				return nil
			}
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// pump drains fsnotify, forwarding translated events until the context ends
// or the watcher closes.
func (w *Watcher) pump(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := w.convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			// Directories created during the session join the watch set.
			if watchEvent.Operation == ports.OpCreate {
				w.watchNewDir(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

// watchNewDir registers a newly created directory tree.
func (w *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || skipDirs[info.Name()] {
		return
	}
	for dir := range w.dirsUnder(path) {
		_ = w.fsWatcher.Add(dir)
	}
}

// convertEvent translates one fsnotify event, stamping the moment the
// notification was received. The debounce gate judges freshness against
// this instant, not against delivery time.
func (w *Watcher) convertEvent(event fsnotify.Event) *ports.WatchEvent {
	op, ok := convertOp(event.Op)
	if !ok {
		return nil
	}

	return &ports.WatchEvent{
		Path:      event.Name,
		Operation: op,
		At:        time.Now(),
	}
}

// convertOp maps fsnotify operation bits to watch operations. Chmod-only
// events carry no content change and are dropped.
func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op&fsnotify.Write == fsnotify.Write:
		return ports.OpWrite, true
	case op&fsnotify.Create == fsnotify.Create:
		return ports.OpCreate, true
	case op&fsnotify.Remove == fsnotify.Remove:
		return ports.OpRemove, true
	case op&fsnotify.Rename == fsnotify.Rename:
		return ports.OpRename, true
	default:
		return 0, false
	}
}
