package env

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// PseudoIDNamespace is the UUIDv5 namespace of pseudo-ids, derived for
// descriptors found in a package directory that declare no id.
var PseudoIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://go.trai.ch/depot/pseudo-id"))

// PseudoID returns the deterministic id of the descriptor at the canonical path.
func PseudoID(canonicalPath string) uuid.UUID {
	return uuid.NewSHA1(PseudoIDNamespace, []byte(canonicalPath))
}

// Directory is the environment of a flat directory of packages.
//
// Every immediate subdirectory X holding X/src/X.<ext> is a root named X.
// Packages with a descriptor are contexts restricted to its dependencies,
// even when it declares none. Packages without a descriptor carry the nil id
// and resolve their imports against the roots.
type Directory struct {
	dir   string
	roots map[string]domain.Identity
	graph map[uuid.UUID]domain.DepsEntry
	paths map[domain.Key]string
}

type candidate struct {
	name  string
	entry string
	desc  *domain.Descriptor
	id    uuid.UUID
	found bool
}

// NewDirectory scans dir. Subdirectories are inspected in parallel.
func NewDirectory(ctx context.Context, dir string, opts Options) (*Directory, error) {
	canonical, err := opts.Storage.Canonical(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrEnvironmentScanFailed, err.Error()), "path", dir)
	}

	entries, err := opts.Storage.ReadDir(canonical)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrEnvironmentScanFailed, err.Error()), "path", canonical)
	}

	candidates := make([]candidate, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, entry := range entries {
		name := entry.Name()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := inspect(opts, filepath.Join(canonical, name), name)
			if err != nil {
				return err
			}
			candidates[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Directory{
		dir:   canonical,
		roots: make(map[string]domain.Identity),
		graph: make(map[uuid.UUID]domain.DepsEntry),
		paths: make(map[domain.Key]string),
	}
	for _, c := range candidates {
		if !c.found {
			continue
		}
		id := domain.NewIdentity(c.name, c.id)
		d.roots[c.name] = id
		d.paths[id.Key()] = c.entry
		if c.desc != nil {
			d.graph[c.id] = c.desc.Deps()
		} else {
			d.graph[uuid.Nil] = domain.FlatDeps()
		}
	}

	return d, nil
}

// inspect decides whether the subdirectory path is a package named name.
func inspect(opts Options, path, name string) (candidate, error) {
	c := candidate{name: name}
	if !opts.isDir(path) {
		return c, nil
	}

	c.entry = domain.EntryFile(path, name, opts.ext())
	if !opts.isFile(c.entry) {
		return c, nil
	}
	c.found = true

	descPath, ok := opts.findFirst(path, domain.DescriptorFileNames())
	if !ok {
		return c, nil
	}

	desc, err := opts.Manifests.ReadDescriptor(descPath)
	if err != nil {
		return c, err
	}
	c.desc = desc
	c.id = desc.ID
	if c.id == uuid.Nil {
		if canonical, err := opts.Storage.Canonical(descPath); err == nil {
			descPath = canonical
		}
		c.id = PseudoID(descPath)
	}
	return c, nil
}

// ResolveRoot binds a top-level name.
func (d *Directory) ResolveRoot(name string) (domain.Identity, bool) {
	id, ok := d.roots[name]
	return id, ok
}

// ResolveInContext binds name as imported by the package with the given id.
// The nil context denotes packages without a descriptor.
func (d *Directory) ResolveInContext(ctxID uuid.UUID, name string) (domain.Identity, domain.Lookup) {
	entry, ok := d.graph[ctxID]
	if !ok {
		return domain.Identity{}, domain.LookupUnknown
	}
	if entry.Kind == domain.NoProjectFile {
		if id, ok := d.roots[name]; ok {
			return id, domain.LookupFound
		}
		return domain.Identity{}, domain.LookupMissing
	}
	return lookupIn(entry, name)
}

// Locate returns the entry file of a package found by the scan.
func (d *Directory) Locate(id domain.Identity) (string, bool) {
	path, ok := d.paths[id.Key()]
	return path, ok
}

// Roots lists the top-level identities, sorted by name.
func (d *Directory) Roots() []domain.Identity {
	return sortedIdentities(d.roots)
}

// Dependencies lists the identities visible from a context, sorted by name.
func (d *Directory) Dependencies(ctxID uuid.UUID) ([]domain.Identity, domain.Lookup) {
	entry, ok := d.graph[ctxID]
	if !ok {
		return nil, domain.LookupUnknown
	}
	if entry.Kind == domain.NoProjectFile {
		return d.Roots(), domain.LookupFound
	}
	return declaredIdentities(entry), domain.LookupFound
}

// Describe returns a short human-readable description.
func (d *Directory) Describe() string {
	return "directory " + d.dir
}
