// Package domain contains the core domain models for package identity and location resolution.
package domain

import (
	"github.com/google/uuid"
)

// Identity names a package globally.
// Two source trees denote the same package iff their IDs are equal; the name is
// only a label scoped to the context that uses it.
type Identity struct {
	Name PackageName
	ID   uuid.UUID
}

// Main is the context of the main program: imports issued from it resolve
// against the roots of the active environment.
var Main = Identity{}

// NewIdentity builds an Identity from a name and an id.
func NewIdentity(name string, id uuid.UUID) Identity {
	return Identity{Name: NewPackageName(name), ID: id}
}

// IsMain reports whether the identity denotes the main program context.
func (i Identity) IsMain() bool {
	return i.ID == uuid.Nil && i.Name.IsZero()
}

// HasID reports whether the identity carries a non-nil id.
func (i Identity) HasID() bool {
	return i.ID != uuid.Nil
}

// Key returns the registry key for the identity.
func (i Identity) Key() Key {
	if i.ID != uuid.Nil {
		return Key{ID: i.ID}
	}
	return Key{Name: i.Name.String()}
}

// String renders the identity as "name [id]".
func (i Identity) String() string {
	if i.IsMain() {
		return "main"
	}
	if i.ID == uuid.Nil {
		return i.Name.String()
	}
	return i.Name.String() + " [" + i.ID.String() + "]"
}

// Key identifies a package inside a LoadRegistry.
// Packages with an id are keyed by id alone. Packages discovered without any
// descriptor carry the nil id and are keyed by name.
type Key struct {
	ID   uuid.UUID
	Name string
}

// String renders the key.
func (k Key) String() string {
	if k.ID != uuid.Nil {
		return k.ID.String()
	}
	return "name:" + k.Name
}
