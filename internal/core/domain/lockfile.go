package domain

import (
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/zerr"
)

// LockStanza is one package entry of a lock file.
type LockStanza struct {
	// Name is the name the stanza is filed under.
	Name string

	// ID is the package id; required.
	ID uuid.UUID

	// Location says where the package content lives.
	Location LocationEntry

	// DepNames lists dependencies by name; each must match exactly one sibling stanza.
	DepNames []string

	// Deps lists dependencies with explicit ids.
	Deps map[string]uuid.UUID
}

// LockGraph is the parsed and cross-referenced lock file of an environment.
// It is immutable once built.
type LockGraph struct {
	path    string
	format  int
	stanzas []LockStanza
	byID    map[uuid.UUID]int
	deps    map[uuid.UUID]map[string]uuid.UUID
}

// NewLockGraph validates the stanzas and resolves name-list dependencies
// against sibling stanzas.
func NewLockGraph(path string, format int, stanzas []LockStanza) (*LockGraph, error) {
	g := &LockGraph{
		path:    path,
		format:  format,
		stanzas: stanzas,
		byID:    make(map[uuid.UUID]int, len(stanzas)),
		deps:    make(map[uuid.UUID]map[string]uuid.UUID, len(stanzas)),
	}

	byName := make(map[string][]uuid.UUID)
	for i, st := range stanzas {
		if st.ID == uuid.Nil {
			err := zerr.With(zerr.Wrap(ErrMalformedLock, "stanza has no id"), "path", path)
			return nil, zerr.With(err, "name", st.Name)
		}
		if prev, dup := g.byID[st.ID]; dup {
			err := zerr.With(zerr.Wrap(ErrMalformedLock, "duplicate stanza id"), "path", path)
			err = zerr.With(err, "id", st.ID.String())
			return nil, zerr.With(err, "names", stanzas[prev].Name+", "+st.Name)
		}
		g.byID[st.ID] = i
		byName[st.Name] = append(byName[st.Name], st.ID)
	}

	for _, st := range stanzas {
		resolved := make(map[string]uuid.UUID, len(st.DepNames)+len(st.Deps))
		for _, dep := range st.DepNames {
			candidates := byName[dep]
			switch len(candidates) {
			case 1:
				resolved[dep] = candidates[0]
			case 0:
				err := zerr.With(zerr.Wrap(ErrMalformedLock, "dependency has no matching stanza"), "path", path)
				err = zerr.With(err, "package", st.Name)
				return nil, zerr.With(err, "dependency", dep)
			default:
				err := zerr.With(zerr.Wrap(ErrMalformedLock, "ambiguous dependency name"), "path", path)
				err = zerr.With(err, "package", st.Name)
				return nil, zerr.With(err, "dependency", dep)
			}
		}
		for dep, id := range st.Deps {
			if id == uuid.Nil {
				err := zerr.With(zerr.Wrap(ErrMalformedLock, "dependency has nil id"), "path", path)
				err = zerr.With(err, "package", st.Name)
				return nil, zerr.With(err, "dependency", dep)
			}
			resolved[dep] = id
		}
		g.deps[st.ID] = resolved
	}

	return g, nil
}

// Path returns the lock file path.
func (g *LockGraph) Path() string { return g.path }

// Dir returns the directory explicit stanza paths are relative to.
func (g *LockGraph) Dir() string { return filepath.Dir(g.path) }

// Format returns the lock format version.
func (g *LockGraph) Format() int { return g.format }

// Len returns the number of stanzas.
func (g *LockGraph) Len() int { return len(g.stanzas) }

// IDs returns the stanza ids in file order.
func (g *LockGraph) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(g.stanzas))
	for i, st := range g.stanzas {
		ids[i] = st.ID
	}
	return ids
}

// Stanza returns the stanza for id.
func (g *LockGraph) Stanza(id uuid.UUID) (LockStanza, bool) {
	i, ok := g.byID[id]
	if !ok {
		return LockStanza{}, false
	}
	return g.stanzas[i], true
}

// Deps returns the resolved dependency table of id as a Declared entry.
func (g *LockGraph) Deps(id uuid.UUID) (DepsEntry, bool) {
	deps, ok := g.deps[id]
	if !ok {
		return DepsEntry{}, false
	}
	return NewDeclaredDeps(deps), true
}
