package ports

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
)

// Importer resolves imports issued by the code of one package.
// The resolver hands a fresh Importer to every Load call; it carries the
// importing context and the dependency chain explicitly.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type Importer interface {
	// Context returns the identity imports are resolved from.
	Context() domain.Identity

	// Names lists the dependencies the context declares. It is empty for a
	// package without a descriptor, whose imports resolve against the roots.
	Names() []string

	// Import resolves and, if needed, loads name.
	Import(ctx context.Context, name string) (*domain.Module, error)
}

// Loader materializes a located package.
type Loader interface {
	// Load turns the entry file at path into a handle value.
	// Nested imports must go through importer.
	Load(ctx context.Context, id domain.Identity, path string, importer Importer) (any, error)
}
