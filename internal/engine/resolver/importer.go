package resolver

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
)

// importer is the ports.Importer handed to a Loader. It resolves the imports
// of one package and records that package as the owner of every load it
// triggers.
type importer struct {
	resolver *Resolver
	from     domain.Identity
}

// Context returns the identity imports are resolved from.
func (i *importer) Context() domain.Identity {
	return i.from
}

// Names lists the dependencies the context declares. A package without a
// descriptor declares none; its imports resolve against the roots on demand.
func (i *importer) Names() []string {
	if !i.from.HasID() {
		return nil
	}
	ids, _ := i.resolver.env.Dependencies(i.from.ID)

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.Name.String())
	}
	return names
}

// Import resolves and, if needed, loads name.
func (i *importer) Import(ctx context.Context, name string) (*domain.Module, error) {
	owner := i.from.Key()
	return i.resolver.resolve(ctx, i.from, &owner, name)
}
