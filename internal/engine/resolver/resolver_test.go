package resolver_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/document"
	"go.trai.ch/depot/internal/adapters/fs"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/env"
	"go.trai.ch/depot/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

var (
	appID = uuid.MustParse("7876af07-990d-54b4-ab0e-23690620f79a")
	id1   = uuid.MustParse("ba13f791-ae1d-465a-978b-69c3ad90f72b") // private Priv
	id2   = uuid.MustParse("c07ecb7d-0dc9-4db7-8803-fadaaeaa6b71") // Pub
	id3   = uuid.MustParse("f7a24cb4-21fc-4002-ac70-f0e3a0dd3f62") // Zebra
	id4   = uuid.MustParse("2a550a13-6bab-4a91-a4ee-dff34d6b99d0") // public Priv

	idA = uuid.MustParse("a0000000-0000-4000-8000-00000000000a")
	idB = uuid.MustParse("b0000000-0000-4000-8000-00000000000b")
)

type loaderFunc func(ctx context.Context, id domain.Identity, path string, imp ports.Importer) (any, error)

func (f loaderFunc) Load(ctx context.Context, id domain.Identity, path string, imp ports.Importer) (any, error) {
	return f(ctx, id, path, imp)
}

// importAll loads every dependency visible from the package being loaded.
func importAll(ctx context.Context, _ domain.Identity, _ string, imp ports.Importer) (any, error) {
	var deps []*domain.Module
	for _, name := range imp.Names() {
		mod, err := imp.Import(ctx, name)
		if err != nil {
			return nil, err
		}
		deps = append(deps, mod)
	}
	return deps, nil
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return logger
}

func projectEnv(t *testing.T, descriptor, lock string, entries ...string) ports.Environment {
	t.Helper()

	files := fstest.MapFS{
		"app/depot.toml":      {Data: []byte(descriptor)},
		"app/depot-lock.toml": {Data: []byte(lock)},
	}
	for _, name := range entries {
		files["app/pkgs/"+name+"/src/"+name+".src"] = &fstest.MapFile{Data: []byte(name)}
	}

	storage := fs.NewMapStorage("/", files)
	p, err := env.NewProject("/app/depot.toml", env.Options{
		Storage:   storage,
		Manifests: document.NewReader(storage),
	})
	require.NoError(t, err)
	return p
}

func scenarioEnv(t *testing.T) ports.Environment {
	t.Helper()
	return projectEnv(t, `
name = "App"
id = "`+appID.String()+`"

[dependencies]
Priv = "`+id1.String()+`"
Pub = "`+id2.String()+`"
`, `
[[packages.Priv]]
id = "`+id1.String()+`"
path = "pkgs/Priv"
dependencies = ["Pub", "Zebra"]

[[packages.Priv]]
id = "`+id4.String()+`"
path = "pkgs/PublicPriv/src/PublicPriv.src"

[[packages.Pub]]
id = "`+id2.String()+`"
path = "pkgs/Pub"

[packages.Pub.dependencies]
Priv = "`+id4.String()+`"
Zebra = "`+id3.String()+`"

[[packages.Zebra]]
id = "`+id3.String()+`"
path = "pkgs/Zebra"
`, "Priv", "PublicPriv", "Pub", "Zebra")
}

func cycleEnv(t *testing.T) ports.Environment {
	t.Helper()
	return projectEnv(t, `
name = "App"
id = "`+appID.String()+`"

[dependencies]
A = "`+idA.String()+`"
B = "`+idB.String()+`"
`, `
[[packages.A]]
id = "`+idA.String()+`"
path = "pkgs/A"
dependencies = ["B"]

[[packages.B]]
id = "`+idB.String()+`"
path = "pkgs/B"
dependencies = ["A"]
`, "A", "B")
}

func TestResolve_CanonicalScenario(t *testing.T) {
	r := resolver.New(scenarioEnv(t), resolver.NewRegistry(), loaderFunc(importAll), quietLogger(t))
	ctx := context.Background()

	priv, err := r.Resolve(ctx, domain.Main, "Priv")
	require.NoError(t, err)
	assert.Equal(t, id1, priv.Identity.ID)
	assert.Equal(t, "/app/pkgs/Priv/src/Priv.src", priv.Path)

	pub, err := r.Resolve(ctx, domain.Main, "Pub")
	require.NoError(t, err)

	fromPub, err := r.Resolve(ctx, pub.Identity, "Priv")
	require.NoError(t, err)
	assert.Equal(t, id4, fromPub.Identity.ID, "same name, different context")

	_, err = r.Resolve(ctx, domain.Main, "Zebra")
	require.ErrorIs(t, err, domain.ErrNameNotFound)

	_, err = r.Resolve(ctx, fromPub.Identity, "Zebra")
	require.ErrorIs(t, err, domain.ErrNameNotFound)

	t.Run("shared dependencies share one handle", func(t *testing.T) {
		privDeps := priv.Value.([]*domain.Module)
		pubDeps := pub.Value.([]*domain.Module)
		require.Len(t, privDeps, 2)
		require.Len(t, pubDeps, 2)

		assert.Same(t, pub, privDeps[0], "private Priv imports the very Pub main sees")
		assert.Same(t, privDeps[1], pubDeps[1], "both reach one Zebra")
		assert.Same(t, fromPub, pubDeps[0])
		assert.Equal(t, 4, r.Registry().Len(), "App itself was never imported")
	})
}

func TestResolve_RepeatedResolutionIsStable(t *testing.T) {
	r := resolver.New(scenarioEnv(t), nil, loaderFunc(importAll), quietLogger(t))

	first, err := r.Identify(domain.Main, "Pub")
	require.NoError(t, err)
	second, err := r.Identify(domain.Main, "Pub")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	a, err := r.Resolve(context.Background(), domain.Main, "Pub")
	require.NoError(t, err)
	b, err := r.Resolve(context.Background(), domain.Main, "Pub")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestResolve_SingletonUnderConcurrency(t *testing.T) {
	var mu sync.Mutex
	calls := make(map[uuid.UUID]int)

	loader := loaderFunc(func(ctx context.Context, id domain.Identity, path string, imp ports.Importer) (any, error) {
		mu.Lock()
		calls[id.ID]++
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		return importAll(ctx, id, path, imp)
	})

	r := resolver.New(scenarioEnv(t), resolver.NewRegistry(), loader, quietLogger(t))
	app := domain.NewIdentity("App", appID)

	const workers = 16
	results := make([]*domain.Module, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Go(func() {
			var (
				mod *domain.Module
				err error
			)
			// Half resolve Pub from main, half from the project context.
			if i%2 == 0 {
				mod, err = r.Resolve(context.Background(), domain.Main, "Pub")
			} else {
				mod, err = r.Resolve(context.Background(), app, "Pub")
			}
			assert.NoError(t, err)
			results[i] = mod
		})
	}
	wg.Wait()

	for _, mod := range results {
		assert.Same(t, results[0], mod)
	}
	for id, n := range calls {
		assert.Equal(t, 1, n, "package %s loaded more than once", id)
	}
}

func TestResolve_CycleOnOneChain(t *testing.T) {
	r := resolver.New(cycleEnv(t), resolver.NewRegistry(), loaderFunc(importAll), quietLogger(t))

	_, err := r.Resolve(context.Background(), domain.Main, "A")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrCyclicDependency)
	assert.Zero(t, r.Registry().Len())
}

func TestResolve_SelfImport(t *testing.T) {
	e := projectEnv(t, `
[dependencies]
A = "`+idA.String()+`"
`, `
[[packages.A]]
id = "`+idA.String()+`"
path = "pkgs/A"
dependencies = ["A"]
`, "A")

	r := resolver.New(e, nil, loaderFunc(importAll), quietLogger(t))

	_, err := r.Resolve(context.Background(), domain.Main, "A")
	require.ErrorIs(t, err, domain.ErrCyclicDependency)
}

func TestResolve_CycleAcrossGoroutines(t *testing.T) {
	aStarted := make(chan struct{})
	bStarted := make(chan struct{})

	loader := loaderFunc(func(ctx context.Context, id domain.Identity, _ string, imp ports.Importer) (any, error) {
		switch id.ID {
		case idA:
			close(aStarted)
			<-bStarted
			return imp.Import(ctx, "B")
		default:
			close(bStarted)
			<-aStarted
			return imp.Import(ctx, "A")
		}
	})

	r := resolver.New(cycleEnv(t), resolver.NewRegistry(), loader, quietLogger(t))

	errs := make(chan error, 2)
	for _, name := range []string{"A", "B"} {
		go func() {
			_, err := r.Resolve(context.Background(), domain.Main, name)
			errs <- err
		}()
	}

	for range 2 {
		select {
		case err := <-errs:
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCyclicDependency)
		case <-time.After(5 * time.Second):
			t.Fatal("resolution deadlocked")
		}
	}
}

func TestResolve_FailureDoesNotPoison(t *testing.T) {
	var attempts atomic.Int32
	boom := errors.New("boom")

	loader := loaderFunc(func(_ context.Context, _ domain.Identity, _ string, _ ports.Importer) (any, error) {
		if attempts.Add(1) == 1 {
			return nil, boom
		}
		return "ok", nil
	})

	r := resolver.New(scenarioEnv(t), resolver.NewRegistry(), loader, quietLogger(t))

	_, err := r.Resolve(context.Background(), domain.Main, "Pub")
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, domain.ErrLoadFailed.Error())
	_, loaded := r.Registry().Lookup(domain.NewIdentity("Pub", id2))
	assert.False(t, loaded)

	mod, err := r.Resolve(context.Background(), domain.Main, "Pub")
	require.NoError(t, err)
	assert.Equal(t, "ok", mod.Value)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestResolve_LoaderPanicReleasesKey(t *testing.T) {
	var attempts atomic.Int32
	loader := loaderFunc(func(_ context.Context, _ domain.Identity, _ string, _ ports.Importer) (any, error) {
		if attempts.Add(1) == 1 {
			panic("corrupt entry file")
		}
		return "ok", nil
	})

	r := resolver.New(scenarioEnv(t), resolver.NewRegistry(), loader, quietLogger(t))

	_, err := r.Resolve(context.Background(), domain.Main, "Pub")
	require.ErrorIs(t, err, domain.ErrLoaderPanicked)
	assert.ErrorContains(t, err, "corrupt entry file")
	_, loaded := r.Registry().Lookup(domain.NewIdentity("Pub", id2))
	assert.False(t, loaded)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	mod, err := r.Resolve(ctx, domain.Main, "Pub")
	require.NoError(t, err)
	assert.Equal(t, "ok", mod.Value)
}

func TestResolve_WaitersShareFailure(t *testing.T) {
	release := make(chan struct{})
	boom := errors.New("boom")
	var calls atomic.Int32

	loader := loaderFunc(func(_ context.Context, _ domain.Identity, _ string, _ ports.Importer) (any, error) {
		calls.Add(1)
		<-release
		return nil, boom
	})

	r := resolver.New(scenarioEnv(t), resolver.NewRegistry(), loader, quietLogger(t))

	var wg sync.WaitGroup
	results := make(chan error, 4)
	for range 4 {
		wg.Go(func() {
			_, err := r.Resolve(context.Background(), domain.Main, "Pub")
			results <- err
		})
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for err := range results {
		require.ErrorIs(t, err, boom)
	}
}

func TestResolve_LocationNotFound(t *testing.T) {
	e := projectEnv(t, `
[dependencies]
Ghost = "`+idA.String()+`"
`, `
[[packages.Ghost]]
id = "`+idA.String()+`"
path = "pkgs/Ghost"
`)

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockLoader(ctrl)

	r := resolver.New(e, resolver.NewRegistry(), loader, quietLogger(t))

	_, err := r.Resolve(context.Background(), domain.Main, "Ghost")
	require.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestResolve_LoaderReceivesImporter(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockLoader(ctrl)

	r := resolver.New(scenarioEnv(t), resolver.NewRegistry(), loader, quietLogger(t))

	loader.EXPECT().
		Load(gomock.Any(), domain.NewIdentity("Pub", id2), "/app/pkgs/Pub/src/Pub.src", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Identity, _ string, imp ports.Importer) (any, error) {
			assert.Equal(t, id2, imp.Context().ID)
			assert.Equal(t, []string{"Priv", "Zebra"}, imp.Names())
			return "pub", nil
		})

	mod, err := r.Resolve(context.Background(), domain.Main, "Pub")
	require.NoError(t, err)
	assert.Equal(t, "pub", mod.Value)

	got, ok := r.Registry().Lookup(domain.NewIdentity("Renamed", id2))
	require.True(t, ok, "registry is keyed by id")
	assert.Same(t, mod, got)
	assert.Equal(t, []*domain.Module{mod}, r.Registry().Modules())
}

func TestResolve_FlatPackages(t *testing.T) {
	storage := fs.NewMapStorage("/", fstest.MapFS{
		"pkgs/Alpha/src/Alpha.src": {Data: []byte("alpha")},
		"pkgs/Beta/src/Beta.src":   {Data: []byte("beta")},
	})
	d, err := env.NewDirectory(context.Background(), "/pkgs", env.Options{
		Storage:   storage,
		Manifests: document.NewReader(storage),
	})
	require.NoError(t, err)

	loader := loaderFunc(func(ctx context.Context, id domain.Identity, _ string, imp ports.Importer) (any, error) {
		assert.Empty(t, imp.Names(), "a package without descriptor declares no dependencies")
		if id.Name.String() != "Alpha" {
			return id.Name.String(), nil
		}
		beta, err := imp.Import(ctx, "Beta")
		if err != nil {
			return nil, err
		}
		return beta, nil
	})

	r := resolver.New(env.NewStack(d), resolver.NewRegistry(), loader, quietLogger(t))

	alpha, err := r.Resolve(context.Background(), domain.Main, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, alpha.Identity.ID)
	assert.Equal(t, "/pkgs/Alpha/src/Alpha.src", alpha.Path)

	beta, err := r.Resolve(context.Background(), domain.Main, "Beta")
	require.NoError(t, err)
	assert.Same(t, beta, alpha.Value, "on-demand import shares the registry handle")
	assert.Equal(t, 2, r.Registry().Len())
}
