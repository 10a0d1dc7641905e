// Package resolver binds import names to package identities, locates their
// entry files, and loads each package at most once per Registry.
package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver answers imports issued from any context of an environment.
type Resolver struct {
	env      ports.Environment
	registry *Registry
	loader   ports.Loader
	logger   ports.Logger
}

// New creates a Resolver. A nil registry gets a fresh one.
func New(env ports.Environment, registry *Registry, loader ports.Loader, logger ports.Logger) *Resolver {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Resolver{
		env:      env,
		registry: registry,
		loader:   loader,
		logger:   logger,
	}
}

// Environment returns the environment imports are resolved in.
func (r *Resolver) Environment() ports.Environment {
	return r.env
}

// Registry returns the registry loaded packages are recorded in.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Identify binds name as imported from the given context.
// The main context and packages without an id resolve against the roots.
func (r *Resolver) Identify(from domain.Identity, name string) (domain.Identity, error) {
	if !from.HasID() {
		if id, ok := r.env.ResolveRoot(name); ok {
			return id, nil
		}
		return domain.Identity{}, nameNotFound(from, name)
	}

	id, res := r.env.ResolveInContext(from.ID, name)
	if res != domain.LookupFound {
		return domain.Identity{}, nameNotFound(from, name)
	}
	return id, nil
}

// Locate returns the entry file of id.
func (r *Resolver) Locate(id domain.Identity) (string, error) {
	path, ok := r.env.Locate(id)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrLocationNotFound, "no entry file for "+id.String()), "package", id.Name.String())
		return "", zerr.With(err, "id", id.ID.String())
	}
	return path, nil
}

// Resolve returns the loaded module bound to name in the context from.
// Every resolution of the same identity shares one *domain.Module.
func (r *Resolver) Resolve(ctx context.Context, from domain.Identity, name string) (*domain.Module, error) {
	return r.resolve(ctx, from, nil, name)
}

func (r *Resolver) resolve(ctx context.Context, from domain.Identity, owner *domain.Key, name string) (*domain.Module, error) {
	id, err := r.Identify(from, name)
	if err != nil {
		return nil, err
	}

	return r.registry.load(ctx, owner, id, func() (*domain.Module, error) {
		return r.load(ctx, id)
	})
}

func (r *Resolver) load(ctx context.Context, id domain.Identity) (*domain.Module, error) {
	path, err := r.Locate(id)
	if err != nil {
		return nil, err
	}

	r.logger.Debug(fmt.Sprintf("loading %s from %s", id, path))

	value, err := r.loader.Load(ctx, id, path, &importer{resolver: r, from: id})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLoadFailed.Error()), "package", id.String())
	}

	return &domain.Module{Identity: id, Path: path, Value: value}, nil
}

func nameNotFound(from domain.Identity, name string) error {
	err := zerr.With(zerr.Wrap(domain.ErrNameNotFound, fmt.Sprintf("cannot resolve %q from %s", name, from)), "name", name)
	return zerr.With(err, "context", from.String())
}
