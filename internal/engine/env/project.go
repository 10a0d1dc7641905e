package env

import (
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Project is the environment of a project descriptor and its lock file.
//
// Its roots are the project itself plus the descriptor's dependencies. Every
// locked package is a context whose imports are restricted to the
// dependencies of its stanza.
type Project struct {
	opts       Options
	descriptor *domain.Descriptor
	lock       *domain.LockGraph

	roots map[string]domain.Identity
	graph map[uuid.UUID]domain.DepsEntry
}

// NewProject builds a Project from the descriptor at path. The lock file is
// looked up beside the descriptor; a missing lock leaves every locked context
// unknown.
func NewProject(path string, opts Options) (*Project, error) {
	canonical, err := opts.Storage.Canonical(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDocumentReadFailed.Error()), "path", path)
	}

	descriptor, err := opts.Manifests.ReadDescriptor(canonical)
	if err != nil {
		return nil, err
	}

	var lock *domain.LockGraph
	if lockPath, ok := opts.findFirst(descriptor.Dir(), domain.LockFileNames()); ok {
		if lock, err = opts.Manifests.ReadLock(lockPath); err != nil {
			return nil, err
		}
	}

	return newProject(opts, descriptor, lock), nil
}

func newProject(opts Options, descriptor *domain.Descriptor, lock *domain.LockGraph) *Project {
	p := &Project{
		opts:       opts,
		descriptor: descriptor,
		lock:       lock,
		roots:      make(map[string]domain.Identity, len(descriptor.Dependencies)+1),
		graph:      make(map[uuid.UUID]domain.DepsEntry),
	}

	for name, id := range descriptor.Dependencies {
		p.roots[name] = domain.NewIdentity(name, id)
	}
	if descriptor.Name != "" {
		p.roots[descriptor.Name] = descriptor.Identity()
	}

	if lock != nil {
		for _, id := range lock.IDs() {
			deps, _ := lock.Deps(id)
			p.graph[id] = deps
		}
	}
	if descriptor.ID != uuid.Nil {
		p.graph[descriptor.ID] = descriptor.Deps()
	}

	return p
}

// Descriptor returns the project's descriptor.
func (p *Project) Descriptor() *domain.Descriptor {
	return p.descriptor
}

// Lock returns the project's lock graph, or nil when the project has no lock file.
func (p *Project) Lock() *domain.LockGraph {
	return p.lock
}

// ResolveRoot binds a top-level name.
func (p *Project) ResolveRoot(name string) (domain.Identity, bool) {
	id, ok := p.roots[name]
	return id, ok
}

// ResolveInContext binds name as imported by the package with the given id.
func (p *Project) ResolveInContext(ctxID uuid.UUID, name string) (domain.Identity, domain.Lookup) {
	entry, ok := p.graph[ctxID]
	if !ok {
		return domain.Identity{}, domain.LookupUnknown
	}
	return lookupIn(entry, name)
}

// Locate returns the entry file of a package.
func (p *Project) Locate(id domain.Identity) (string, bool) {
	if p.isSelf(id) {
		path := domain.EntryFile(p.descriptor.Dir(), p.descriptor.Name, p.opts.ext())
		return path, p.opts.isFile(path)
	}
	if p.lock == nil || !id.HasID() {
		return "", false
	}

	stanza, ok := p.lock.Stanza(id.ID)
	if !ok {
		return "", false
	}

	switch stanza.Location.Kind {
	case domain.LocationPath:
		return p.locatePath(stanza)
	case domain.LocationContentHash:
		if p.opts.Locator == nil {
			return "", false
		}
		return p.opts.Locator.Locate(stanza.Name, stanza.ID, stanza.Location.ContentHash)
	default:
		if p.opts.BundledRoot == "" {
			return "", false
		}
		path := domain.EntryFile(filepath.Join(p.opts.BundledRoot, stanza.Name), stanza.Name, p.opts.ext())
		return path, p.opts.isFile(path)
	}
}

// locatePath resolves an explicit path against the lock file's directory. A
// directory gets the entry file convention appended.
func (p *Project) locatePath(stanza domain.LockStanza) (string, bool) {
	path := resolveAgainst(p.lock.Dir(), stanza.Location.Path)
	if p.opts.isDir(path) {
		path = domain.EntryFile(path, stanza.Name, p.opts.ext())
	}
	return path, p.opts.isFile(path)
}

func (p *Project) isSelf(id domain.Identity) bool {
	if p.descriptor.Name == "" {
		return false
	}
	if p.descriptor.ID != uuid.Nil {
		return id.ID == p.descriptor.ID
	}
	return !id.HasID() && id.Name.String() == p.descriptor.Name
}

// Roots lists the top-level identities, sorted by name.
func (p *Project) Roots() []domain.Identity {
	return sortedIdentities(p.roots)
}

// Dependencies lists the identities visible from a context, sorted by name.
func (p *Project) Dependencies(ctxID uuid.UUID) ([]domain.Identity, domain.Lookup) {
	entry, ok := p.graph[ctxID]
	if !ok {
		return nil, domain.LookupUnknown
	}
	return declaredIdentities(entry), domain.LookupFound
}

// Describe returns a short human-readable description.
func (p *Project) Describe() string {
	return "project " + p.descriptor.Path
}

// resolveAgainst anchors a relative path at base.
func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
