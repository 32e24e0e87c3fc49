// Package host signals the embedding dev server after successful rebuilds.
package host

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Host = (*Notifier)(nil)

// Notifier implements ports.Host by bumping the entry module's modification
// time. The dev server imports the entry file like any other module and
// watches it, so a fresh mtime is observed as a change and turns into a full
// reload on the host side. The artifact path inside the entry never changes
// during a session, which is why touching is enough.
type Notifier struct {
	entryPath string
}

// NewNotifier creates a Notifier for the project rooted at root.
func NewNotifier(root string) *Notifier {
	return &Notifier{
		entryPath: filepath.Join(root, domain.DefaultEntryPath()),
	}
}

// Reload marks the entry module as changed. The entry must already exist; the
// session writes it before the first build completes.
func (n *Notifier) Reload(_ context.Context) error {
	now := time.Now()
	if err := os.Chtimes(n.entryPath, now, now); err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrReloadSignalFailed.Error()),
			"entry", n.entryPath,
		)
	}
	return nil
}

// EntryPath returns the path of the entry module the notifier touches.
func (n *Notifier) EntryPath() string {
	return n.entryPath
}
