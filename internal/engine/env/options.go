// Package env builds resolution environments from project descriptors, lock
// files and package directories, and stacks them into a load path.
package env

import (
	"maps"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/slug"
)

// Options carries the collaborators shared by every environment of a load path.
type Options struct {
	Storage   ports.Storage
	Manifests ports.ManifestReader

	// Locator resolves content-hash stanzas. Nil disables them.
	Locator *slug.Locator

	// BundledRoot holds packages locked without path or content hash.
	BundledRoot string

	// SourceExt is the entry file extension, without the dot.
	SourceExt string
}

func (o Options) ext() string {
	if o.SourceExt == "" {
		return domain.DefaultSourceExt
	}
	return o.SourceExt
}

// isFile reports whether path exists and is not a directory.
func (o Options) isFile(path string) bool {
	info, err := o.Storage.Stat(path)
	return err == nil && !info.IsDir()
}

// isDir reports whether path exists and is a directory.
func (o Options) isDir(path string) bool {
	info, err := o.Storage.Stat(path)
	return err == nil && info.IsDir()
}

// findFirst returns the first of names that exists as a file in dir.
func (o Options) findFirst(dir string, names []string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if o.isFile(path) {
			return path, true
		}
	}
	return "", false
}

// sortedIdentities returns the values of m ordered by name.
func sortedIdentities(m map[string]domain.Identity) []domain.Identity {
	out := make([]domain.Identity, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[name])
	}
	return out
}

// declaredIdentities turns a Declared entry into identities ordered by name.
func declaredIdentities(entry domain.DepsEntry) []domain.Identity {
	names := entry.Names()
	out := make([]domain.Identity, 0, len(names))
	for _, name := range names {
		id, _ := entry.Get(name)
		out = append(out, domain.NewIdentity(name, id))
	}
	return out
}

// lookupIn binds name within a Declared entry.
func lookupIn(entry domain.DepsEntry, name string) (domain.Identity, domain.Lookup) {
	id, ok := entry.Get(name)
	if !ok || id == uuid.Nil {
		return domain.Identity{}, domain.LookupMissing
	}
	return domain.NewIdentity(name, id), domain.LookupFound
}
