package slug

import (
	"github.com/google/uuid"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// Locator finds slug-addressed packages below an ordered list of cache roots.
type Locator struct {
	storage ports.Storage
	roots   []string
	hasher  Hasher
	ext     string
}

// NewLocator creates a Locator. Roots are searched in the given order.
func NewLocator(storage ports.Storage, roots []string, hasher Hasher, ext string) *Locator {
	if hasher == nil {
		hasher = CRC32C
	}
	if ext == "" {
		ext = domain.DefaultSourceExt
	}
	return &Locator{
		storage: storage,
		roots:   append([]string(nil), roots...),
		hasher:  hasher,
		ext:     ext,
	}
}

// Candidates lists the entry files Locate would probe, in search order.
func (l *Locator) Candidates(name string, id uuid.UUID, hash []byte) []string {
	slug := l.hasher.Slug(id, hash)
	paths := make([]string, 0, len(l.roots))
	for _, root := range l.roots {
		paths = append(paths, domain.SlugEntryFile(root, name, slug, l.ext))
	}
	return paths
}

// Locate returns the first existing candidate.
func (l *Locator) Locate(name string, id uuid.UUID, hash []byte) (string, bool) {
	for _, path := range l.Candidates(name, id, hash) {
		if info, err := l.storage.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Roots returns the cache roots in search order.
func (l *Locator) Roots() []string {
	return append([]string(nil), l.roots...)
}
