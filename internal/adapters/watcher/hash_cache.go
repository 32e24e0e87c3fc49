package watcher

import (
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.InputHashCache = (*HashCache)(nil)

// HashCache implements ports.InputHashCache. It remembers the last observed
// content hash per watched path, so editor save storms that leave the bytes
// untouched never reach the debounce gate. Paths are interned: the same few
// source files come through on every save.
type HashCache struct {
	mu      sync.Mutex
	entries map[domain.InternedString]string
	hasher  ports.Hasher
}

// NewHashCache returns an empty cache backed by the given hasher.
func NewHashCache(hasher ports.Hasher) *HashCache {
	return &HashCache{
		entries: make(map[domain.InternedString]string),
		hasher:  hasher,
	}
}

// Changed reports whether the content at path differs from the last
// observation and records the new hash. Unreadable paths count as changed
// and drop any cached entry, so a later re-create is never missed.
func (h *HashCache) Changed(path string) bool {
	key := domain.NewInternedString(path)

	hash, err := h.hasher.HashFile(path)
	if err != nil {
		h.mu.Lock()
		delete(h.entries, key)
		h.mu.Unlock()
		return true
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if previous, ok := h.entries[key]; ok && previous == hash {
		return false
	}

	h.entries[key] = hash
	return true
}

// Forget drops the cached hash for path.
func (h *HashCache) Forget(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.entries, domain.NewInternedString(path))
}
