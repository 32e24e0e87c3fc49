// Package store persists build records under the kiln workspace directory.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildRecordStore = (*Store)(nil)

// Store implements ports.BuildRecordStore using a file-per-record strategy.
type Store struct{}

// NewStore creates a new BuildRecordStore.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Get retrieves the build record for a given configuration hash.
func (s *Store) Get(root, configHash string) (*domain.BuildRecord, error) {
	filename := s.getFilename(root, configHash)
	//nolint:gosec // filename derives from the store root and a hash
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	return &record, nil
}

// Put stores the build record keyed by its configuration hash.
func (s *Store) Put(root string, record domain.BuildRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, record.ConfigHash)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // filename derives from the store root and a hash
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

func (s *Store) getFilename(root, configHash string) string {
	storeDir := filepath.Join(root, domain.DefaultStorePath())
	return filepath.Join(storeDir, configHash+".json")
}
