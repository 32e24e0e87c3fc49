package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the loader's view of the filesystem. Walk-up discovery only
// ever stats and reads files.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OSFS is the real filesystem.
type OSFS struct{}

// NewOSFS creates a new OSFS.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat implements FileSystem.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile implements FileSystem.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- the loader only reads config paths it discovered itself
	return os.ReadFile(path)
}

// MapFSAdapter lets tests drive the loader from an fstest.MapFS. Map keys are
// relative while discovery works on absolute paths, so the adapter anchors the
// map at a simulated root and translates.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// NewMapFSAdapter creates an adapter anchored at root.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{
		FS:   fsys,
		Root: root,
	}
}

// Stat implements FileSystem.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile implements FileSystem.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// toRelPath rebases an absolute path onto the map. Paths outside the root
// pass through unchanged and fail downstream as not found.
func (m *MapFSAdapter) toRelPath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	sep := string(filepath.Separator)
	if m.Root != "/" && absPath != m.Root && !strings.HasPrefix(absPath, m.Root+sep) {
		return absPath
	}

	rel := strings.TrimPrefix(absPath, m.Root)
	return strings.TrimPrefix(rel, sep)
}
