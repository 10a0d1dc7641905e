package domain

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// DepsKind tags a dependency table.
type DepsKind uint8

const (
	// NoProjectFile marks a package without any descriptor. Imports issued by
	// its code resolve as if they were top-level.
	NoProjectFile DepsKind = iota
	// Declared marks a package whose descriptor or lock stanza lists its
	// dependencies. Imports are restricted to that list, even when it is empty.
	Declared
)

// String returns the kind name.
func (k DepsKind) String() string {
	if k == Declared {
		return "declared"
	}
	return "no-project-file"
}

// DepsEntry is one GraphMap value: the dependency names visible from a context.
type DepsEntry struct {
	Kind DepsKind
	deps map[string]uuid.UUID
}

// NewDeclaredDeps builds a Declared entry. The map is copied.
func NewDeclaredDeps(deps map[string]uuid.UUID) DepsEntry {
	return DepsEntry{Kind: Declared, deps: maps.Clone(deps)}
}

// FlatDeps is the entry of a package without a descriptor.
func FlatDeps() DepsEntry {
	return DepsEntry{Kind: NoProjectFile}
}

// Get returns the id bound to name.
func (d DepsEntry) Get(name string) (uuid.UUID, bool) {
	id, ok := d.deps[name]
	return id, ok
}

// Names returns the declared dependency names in sorted order.
func (d DepsEntry) Names() []string {
	return slices.Sorted(maps.Keys(d.deps))
}

// Len returns the number of declared dependencies.
func (d DepsEntry) Len() int {
	return len(d.deps)
}

// Lookup is the outcome of a context-scoped resolution in one environment.
type Lookup uint8

const (
	// LookupUnknown means the environment does not know the context.
	LookupUnknown Lookup = iota
	// LookupMissing means the context is known but does not declare the name.
	LookupMissing
	// LookupFound means the name was bound.
	LookupFound
)

// String returns the lookup name.
func (l Lookup) String() string {
	switch l {
	case LookupMissing:
		return "missing"
	case LookupFound:
		return "found"
	default:
		return "unknown"
	}
}
