package ports

import "io/fs"

// Storage abstracts the read-only filesystem operations the engine needs.
//
//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type Storage interface {
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)

	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the entries of a directory, sorted by name.
	ReadDir(path string) ([]fs.DirEntry, error)

	// Canonical returns the absolute, symlink-free form of path.
	Canonical(path string) (string, error)
}
