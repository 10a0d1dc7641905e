package domain

import (
	"path/filepath"
	"slices"
)

const (
	// DepotDirName is the name of the per-user depot directory.
	DepotDirName = ".depot"

	// PackagesDirName is the directory below a cache root holding slug-addressed packages.
	PackagesDirName = "packages"

	// SourceDirName is the directory holding a package's entry file.
	SourceDirName = "src"

	// DefaultSourceExt is the default extension of package entry files.
	DefaultSourceExt = "src"

	// ConfigFileName is the base name of the tool configuration file.
	ConfigFileName = "depot.config"

	// ActiveProjectEntry is the load path entry naming the active project.
	ActiveProjectEntry = "@"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DescriptorFileNames lists the accepted descriptor names in lookup order.
func DescriptorFileNames() []string {
	return []string{"depot.toml", "depot.yaml", "depot.yml"}
}

// LockFileNames lists the accepted lock file names in lookup order.
func LockFileNames() []string {
	return []string{"depot-lock.toml", "depot-lock.yaml", "depot-lock.yml"}
}

// IsDescriptorFile reports whether the base name of path is a descriptor name.
func IsDescriptorFile(path string) bool {
	return slices.Contains(DescriptorFileNames(), filepath.Base(path))
}

// EntryFile returns the conventional entry file of a package rooted at dir:
// dir/src/<name>.<ext>.
func EntryFile(dir, name, ext string) string {
	return filepath.Join(dir, SourceDirName, name+"."+ext)
}

// SlugEntryFile returns the entry file of a slug-addressed package below a cache root:
// root/packages/<name>/<slug>/src/<name>.<ext>.
func SlugEntryFile(root, name, slug, ext string) string {
	return EntryFile(filepath.Join(root, PackagesDirName, name, slug), name, ext)
}
