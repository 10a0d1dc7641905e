// Package ports defines the core interfaces for the application.
package ports

import (
	"github.com/google/uuid"
	"go.trai.ch/depot/internal/core/domain"
)

// Environment is one unit of resolution context.
//
// Implementations are immutable snapshots: every answer is a pure function of
// the descriptor, lock and directory data read at construction.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type Environment interface {
	// ResolveRoot binds a top-level name.
	ResolveRoot(name string) (domain.Identity, bool)

	// ResolveInContext binds name as imported by the package with the given id.
	// LookupUnknown means the environment knows nothing about the context and a
	// stack should consult the next environment; LookupMissing is authoritative.
	ResolveInContext(context uuid.UUID, name string) (domain.Identity, domain.Lookup)

	// Locate returns the entry file of a package.
	Locate(id domain.Identity) (string, bool)

	// Roots lists the top-level identities, sorted by name.
	Roots() []domain.Identity

	// Dependencies lists the identities visible from a context, sorted by name.
	Dependencies(context uuid.UUID) ([]domain.Identity, domain.Lookup)

	// Describe returns a short human-readable description.
	Describe() string
}
