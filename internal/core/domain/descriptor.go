package domain

import (
	"maps"
	"path/filepath"

	"github.com/google/uuid"
)

// Descriptor is a parsed project descriptor.
type Descriptor struct {
	// Path is the absolute path of the descriptor file.
	Path string

	// Name is the declared package name. It may be empty for pure environments.
	Name string

	// ID is the declared id, or uuid.Nil when the descriptor has none.
	ID uuid.UUID

	// Version is informational only.
	Version string

	// Dependencies maps direct dependency names to ids.
	Dependencies map[string]uuid.UUID
}

// Dir returns the directory holding the descriptor.
func (d *Descriptor) Dir() string {
	return filepath.Dir(d.Path)
}

// Identity returns the identity declared by the descriptor.
func (d *Descriptor) Identity() Identity {
	return NewIdentity(d.Name, d.ID)
}

// Deps returns the descriptor's dependency table as a Declared entry.
func (d *Descriptor) Deps() DepsEntry {
	return NewDeclaredDeps(d.Dependencies)
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	c.Dependencies = maps.Clone(d.Dependencies)
	return &c
}
