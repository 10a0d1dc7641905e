// Package app implements the application layer for depot.
package app

import (
	"context"
	"encoding/hex"
	"os"

	"github.com/google/uuid"
	"go.trai.ch/depot/internal/adapters/closure"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/env"
	"go.trai.ch/depot/internal/engine/resolver"
	"go.trai.ch/depot/internal/engine/slug"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
//
// The registry lives as long as the App: every operation of one App shares
// the packages loaded by the previous ones.
type App struct {
	configLoader ports.ConfigLoader
	manifests    ports.ManifestReader
	storage      ports.Storage
	loader       ports.Loader
	registry     *resolver.Registry
	logger       ports.Logger
	workDir      string
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	manifests ports.ManifestReader,
	storage ports.Storage,
	loader ports.Loader,
	registry *resolver.Registry,
	log ports.Logger,
) *App {
	if registry == nil {
		registry = resolver.NewRegistry()
	}
	return &App{
		configLoader: configLoader,
		manifests:    manifests,
		storage:      storage,
		loader:       loader,
		registry:     registry,
		logger:       log,
	}
}

// WithWorkDir pins the directory the load path is resolved from.
// By default the process working directory is used.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// Options carries the command line values shared by every operation.
type Options = ports.ConfigOverrides

// Resolution is the answer for one requested name.
type Resolution struct {
	Identity domain.Identity
	Path     string
}

// LoadReport describes the packages materialized by Load.
type LoadReport struct {
	Roots []*domain.Module
	Lines []TreeLine
	Total int
}

// TreeLine is one row of the rendered dependency tree.
type TreeLine struct {
	Depth  int
	Module *domain.Module
	Seen   bool
}

// EnvironmentReport describes the active load path.
type EnvironmentReport struct {
	Config       *domain.Config
	Environments []EnvironmentSummary
}

// EnvironmentSummary describes one environment of the stack.
type EnvironmentSummary struct {
	Description string
	Roots       []domain.Identity
}

// SlugReport is the result of Slug.
type SlugReport struct {
	Slug       string
	Hash       domain.SlugHash
	Candidates []string
}

// session is the per-operation view of the configuration and load path.
type session struct {
	cfg      *domain.Config
	stack    *env.Stack
	locator  *slug.Locator
	resolver *resolver.Resolver
}

func (a *App) open(ctx context.Context, opts Options) (*session, error) {
	cwd, cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	hasher, err := slug.HasherFor(cfg.SlugHash)
	if err != nil {
		return nil, err
	}
	locator := slug.NewLocator(a.storage, cfg.CacheRoots, hasher, cfg.SourceExt)

	stack, err := env.Build(ctx, cwd, cfg.LoadPath, env.Options{
		Storage:     a.storage,
		Manifests:   a.manifests,
		Locator:     locator,
		BundledRoot: cfg.BundledRoot,
		SourceExt:   cfg.SourceExt,
	}, a.logger)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build load path")
	}

	return &session{
		cfg:      cfg,
		stack:    stack,
		locator:  locator,
		resolver: resolver.New(stack, a.registry, a.loader, a.logger),
	}, nil
}

func (a *App) loadConfig(opts Options) (string, *domain.Config, error) {
	cwd := a.workDir
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return "", nil, zerr.Wrap(err, "failed to determine working directory")
		}
	}

	cfg, err := a.configLoader.Load(cwd, opts)
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.configureLogger(cfg)
	return cwd, cfg, nil
}

// configureLogger applies the verbosity and format switches when the logger
// supports them.
func (a *App) configureLogger(cfg *domain.Config) {
	if v, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(cfg.Verbose)
	}
	if j, ok := a.logger.(interface{ SetJSON(bool) }); ok && cfg.JSONLogs {
		j.SetJSON(true)
	}
}

// origin returns the identity imports are resolved from. An empty value is
// the main program; otherwise from is a package id or a root name.
func (s *session) origin(from string) (domain.Identity, error) {
	if from == "" {
		return domain.Main, nil
	}
	if id, err := uuid.Parse(from); err == nil {
		return domain.NewIdentity("", id), nil
	}
	return s.resolver.Identify(domain.Main, from)
}

// Resolve identifies and locates names without loading them.
func (a *App) Resolve(ctx context.Context, opts Options, names []string, from string) ([]Resolution, error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return nil, err
	}

	fromID, err := s.origin(from)
	if err != nil {
		return nil, err
	}

	out := make([]Resolution, 0, len(names))
	for _, name := range names {
		id, err := s.resolver.Identify(fromID, name)
		if err != nil {
			return nil, err
		}
		path, err := s.resolver.Locate(id)
		if err != nil {
			return nil, err
		}
		out = append(out, Resolution{Identity: id, Path: path})
	}
	return out, nil
}

// Load resolves names and loads them together with their dependency
// closures. Names are loaded concurrently.
func (a *App) Load(ctx context.Context, opts Options, names []string, from string) (*LoadReport, error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return nil, err
	}

	fromID, err := s.origin(from)
	if err != nil {
		return nil, err
	}

	roots := make([]*domain.Module, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			mod, err := s.resolver.Resolve(gctx, fromID, name)
			if err != nil {
				return err
			}
			roots[i] = mod
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &LoadReport{Roots: roots, Total: a.registry.Len()}
	for _, root := range roots {
		closure.Walk(root, func(depth int, mod *domain.Module, seen bool) {
			report.Lines = append(report.Lines, TreeLine{Depth: depth, Module: mod, Seen: seen})
		})
	}
	return report, nil
}

// Environments describes the load path in precedence order.
func (a *App) Environments(ctx context.Context, opts Options) (*EnvironmentReport, error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return nil, err
	}

	envs := s.stack.Environments()
	report := &EnvironmentReport{
		Config:       s.cfg,
		Environments: make([]EnvironmentSummary, 0, len(envs)),
	}
	for _, e := range envs {
		report.Environments = append(report.Environments, EnvironmentSummary{
			Description: e.Describe(),
			Roots:       e.Roots(),
		})
	}
	return report, nil
}

// Slug computes the slug of a package version. When name is set the
// candidate entry files below every cache root are listed too.
func (a *App) Slug(opts Options, rawID, rawHash, name string) (*SlugReport, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidID, err.Error()), "id", rawID)
	}
	hash, err := hex.DecodeString(rawHash)
	if err != nil || len(hash) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidContentHash, "expected a hex digest"), "hash", rawHash)
	}

	_, cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	hasher, err := slug.HasherFor(cfg.SlugHash)
	if err != nil {
		return nil, err
	}

	report := &SlugReport{Slug: hasher.Slug(id, hash), Hash: cfg.SlugHash}
	if name != "" {
		locator := slug.NewLocator(a.storage, cfg.CacheRoots, hasher, cfg.SourceExt)
		report.Candidates = locator.Candidates(name, id, hash)
	}
	return report, nil
}
