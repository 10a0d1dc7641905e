package ports

import "go.trai.ch/depot/internal/core/domain"

// ManifestReader reads and validates descriptor and lock documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// ReadDescriptor parses the descriptor at path.
	ReadDescriptor(path string) (*domain.Descriptor, error)

	// ReadLock parses and cross-references the lock file at path.
	ReadLock(path string) (*domain.LockGraph, error)
}
