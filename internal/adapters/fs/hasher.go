package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing for watched files and frozen build configurations.
type Hasher struct{}

// NewHasher returns a stateless Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile computes the XXHash of a file's content.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // caller supplies project-local paths
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only close

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrWriteHashFailed.Error()), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// HashConfig computes a single hash representing the frozen build
// configuration. Fields are written in a fixed order; identical
// configurations digest identically across processes.
func (h *Hasher) HashConfig(cfg domain.BuildConfig) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(cfg.SDKIdentifier)
	_, _ = hasher.Write([]byte{0}) // field boundary
	_, _ = hasher.WriteString(cfg.Product)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(string(cfg.Configuration))
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(cfg.PackagePath)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(cfg.ArtifactPath)
	_, _ = hasher.Write([]byte{0})

	for _, entry := range cfg.ToolsetFlags {
		_, _ = hasher.WriteString(string(entry))
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // list terminator

	for _, arg := range cfg.ExtraArgs {
		_, _ = hasher.WriteString(arg)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	return fmt.Sprintf("%016x", hasher.Sum64())
}
