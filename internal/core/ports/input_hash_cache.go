package ports

// InputHashCache tracks content hashes of watched files. Notification storms
// for unchanged bytes stop here, before the debounce gate.
//
//go:generate mockgen -destination=mocks/mock_input_hash_cache.go -package=mocks -source=input_hash_cache.go
type InputHashCache interface {
	// Changed reports whether the content at path differs from the last
	// observation and records the new hash. Unreadable paths count as
	// changed and drop any cached entry.
	Changed(path string) bool

	// Forget drops the cached hash for path.
	Forget(path string)
}
