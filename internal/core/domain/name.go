package domain

import "unique"

// PackageName is an interned package name.
// Names are repeated across every environment, lock stanza and dependency
// table, so they share a single canonical copy.
type PackageName struct {
	h unique.Handle[string]
}

// NewPackageName interns s as a PackageName.
func NewPackageName(s string) PackageName {
	return PackageName{h: unique.Make(s)}
}

// String returns the underlying name.
func (n PackageName) String() string {
	var zero unique.Handle[string]
	if n.h == zero {
		return ""
	}
	return n.h.Value()
}

// IsZero reports whether the name was never set.
func (n PackageName) IsZero() bool {
	var zero unique.Handle[string]
	return n.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (n PackageName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *PackageName) UnmarshalText(text []byte) error {
	n.h = unique.Make(string(text))
	return nil
}
