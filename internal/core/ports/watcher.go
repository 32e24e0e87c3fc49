package ports

import (
	"context"
	"iter"
	"time"
)

// WatchOp classifies a filesystem change.
type WatchOp uint8

const (
	// OpCreate is a new file or directory.
	OpCreate WatchOp = iota
	// OpWrite is a content change.
	OpWrite
	// OpRemove is a deletion.
	OpRemove
	// OpRename is a rename; the path carries the old name.
	OpRename
)

// WatchEvent is one filesystem change as delivered by the watcher.
type WatchEvent struct {
	// Path is the absolute path that changed.
	Path string
	// Operation classifies the change.
	Operation WatchOp
	// At is when the watcher received the notification. The debounce gate
	// judges freshness against this instant.
	At time.Time
}

// Watcher delivers filesystem changes under a set of root directories.
type Watcher interface {
	// Start watches the given roots recursively and begins delivering
	// events.
	Start(ctx context.Context, roots []string) error
	// Stop releases the watcher. The event stream closes afterwards.
	Stop() error
	// Events returns the change stream as a single-use iterator.
	Events() iter.Seq[WatchEvent]
}
