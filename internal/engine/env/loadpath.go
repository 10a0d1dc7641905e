package env

import (
	"context"
	"path/filepath"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Build turns load path entries into a Stack, highest precedence first.
//
// An entry is the active project marker "@", a descriptor file, a directory
// holding a descriptor, or a package directory. Relative entries are anchored
// at cwd. Entries that do not exist are skipped with a warning; an entry that
// exists but cannot be parsed fails the build.
func Build(ctx context.Context, cwd string, entries []string, opts Options, logger ports.Logger) (*Stack, error) {
	envs := make([]ports.Environment, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		path, ok := resolveEntry(cwd, entry, opts, logger)
		if !ok {
			continue
		}

		canonical, err := opts.Storage.Canonical(path)
		if err != nil {
			logger.Warn("skipping load path entry " + entry + ": " + err.Error())
			continue
		}
		if opts.isDir(canonical) {
			if descriptor, ok := opts.findFirst(canonical, domain.DescriptorFileNames()); ok {
				canonical = descriptor
			}
		}
		if seen[canonical] {
			logger.Debug("skipping duplicate load path entry " + entry)
			continue
		}
		seen[canonical] = true

		env, err := build(ctx, canonical, opts)
		if err != nil {
			return nil, zerr.With(err, "load_path_entry", entry)
		}
		logger.Debug("using " + env.Describe())
		envs = append(envs, env)
	}

	return NewStack(envs...), nil
}

// resolveEntry maps a load path entry to a path on storage.
func resolveEntry(cwd, entry string, opts Options, logger ports.Logger) (string, bool) {
	if entry == domain.ActiveProjectEntry {
		path, err := FindProject(opts, cwd)
		if err != nil {
			logger.Debug("no active project above " + cwd)
			return "", false
		}
		return path, true
	}

	path := resolveAgainst(cwd, entry)
	if _, err := opts.Storage.Stat(path); err != nil {
		logger.Warn("skipping missing load path entry " + entry)
		return "", false
	}
	return path, true
}

// build creates the environment for a package directory or a descriptor file.
func build(ctx context.Context, path string, opts Options) (ports.Environment, error) {
	if opts.isDir(path) {
		return NewDirectory(ctx, path, opts)
	}
	if !domain.IsDescriptorFile(path) {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedDocument, "load path file is not a descriptor"), "path", path)
	}
	return NewProject(path, opts)
}

// FindProject walks up from dir to the first directory holding a descriptor
// and returns the descriptor's path.
func FindProject(opts Options, dir string) (string, error) {
	current := filepath.Clean(dir)
	for {
		if path, ok := opts.findFirst(current, domain.DescriptorFileNames()); ok {
			return path, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "no descriptor in any parent directory"), "cwd", dir)
		}
		current = parent
	}
}
