package domain

import "unique"

// InternedString is a comparable handle to a deduplicated string. Watched
// source paths repeat on every file event, so cache keys intern them instead
// of holding their own copies.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s and returns its handle.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the interned value. The zero handle renders as "".
func (is InternedString) String() string {
	if is.h == (unique.Handle[string]{}) {
		return ""
	}
	return is.h.Value()
}
