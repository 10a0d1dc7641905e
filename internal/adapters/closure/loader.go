// Package closure provides a Loader that materializes a package together with
// every dependency it declares.
package closure

import (
	"context"
	"runtime"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Unit is the value Loader produces for one package.
type Unit struct {
	Identity domain.Identity
	Path     string
	Size     int64
	Deps     []*domain.Module
}

// Loader implements ports.Loader by importing every dependency the package
// being loaded declares. Dependencies are imported in parallel.
type Loader struct {
	storage ports.Storage
	limit   int
}

// NewLoader creates a new Loader.
func NewLoader(storage ports.Storage) *Loader {
	return &Loader{
		storage: storage,
		limit:   runtime.NumCPU(),
	}
}

// Load checks the entry file and imports the package's dependencies.
func (l *Loader) Load(ctx context.Context, id domain.Identity, path string, importer ports.Importer) (any, error) {
	info, err := l.storage.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat entry file"), "path", path)
	}

	names := importer.Names()
	deps := make([]*domain.Module, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for i, name := range names {
		g.Go(func() error {
			mod, err := importer.Import(ctx, name)
			if err != nil {
				return err
			}
			deps[i] = mod
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Unit{
		Identity: id,
		Path:     path,
		Size:     info.Size(),
		Deps:     deps,
	}, nil
}

// Walk visits root and its dependencies depth first. seen reports whether the
// module was already visited through another path; its dependencies are not
// visited again.
func Walk(root *domain.Module, visit func(depth int, mod *domain.Module, seen bool)) {
	visited := make(map[*domain.Module]bool)
	var walk func(mod *domain.Module, depth int)
	walk = func(mod *domain.Module, depth int) {
		seen := visited[mod]
		visit(depth, mod, seen)
		if seen {
			return
		}
		visited[mod] = true
		unit, ok := mod.Value.(*Unit)
		if !ok {
			return
		}
		for _, dep := range unit.Deps {
			walk(dep, depth+1)
		}
	}
	walk(root, 0)
}
