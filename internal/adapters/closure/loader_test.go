package closure_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/closure"
	"go.trai.ch/depot/internal/adapters/document"
	"go.trai.ch/depot/internal/adapters/fs"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/env"
	"go.trai.ch/depot/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

func TestLoader_ImportsEveryDependency(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)

	storage := fs.NewMapStorage("/", fstest.MapFS{
		"pkgs/App/src/App.src": {Data: []byte("app source")},
	})

	pub := &domain.Module{Identity: domain.NewIdentity("Pub", uuid.New())}
	zebra := &domain.Module{Identity: domain.NewIdentity("Zebra", uuid.New())}

	importer.EXPECT().Names().Return([]string{"Pub", "Zebra"})
	importer.EXPECT().Import(gomock.Any(), "Pub").Return(pub, nil)
	importer.EXPECT().Import(gomock.Any(), "Zebra").Return(zebra, nil)

	id := domain.NewIdentity("App", uuid.New())
	v, err := closure.NewLoader(storage).Load(context.Background(), id, "/pkgs/App/src/App.src", importer)
	require.NoError(t, err)

	unit, ok := v.(*closure.Unit)
	require.True(t, ok)
	assert.Equal(t, id, unit.Identity)
	assert.Equal(t, int64(len("app source")), unit.Size)
	require.Len(t, unit.Deps, 2)
	assert.Same(t, pub, unit.Deps[0])
	assert.Same(t, zebra, unit.Deps[1])
}

func TestLoader_Errors(t *testing.T) {
	storage := fs.NewMapStorage("/", fstest.MapFS{
		"pkgs/App/src/App.src": {Data: []byte("app")},
	})

	t.Run("missing entry file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		importer := mocks.NewMockImporter(ctrl)

		_, err := closure.NewLoader(storage).Load(context.Background(), domain.NewIdentity("Ghost", uuid.New()), "/pkgs/Ghost/src/Ghost.src", importer)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to stat entry file")
	})

	t.Run("import failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		importer := mocks.NewMockImporter(ctrl)
		boom := errors.New("boom")

		importer.EXPECT().Names().Return([]string{"Pub"})
		importer.EXPECT().Import(gomock.Any(), "Pub").Return(nil, boom)

		_, err := closure.NewLoader(storage).Load(context.Background(), domain.NewIdentity("App", uuid.New()), "/pkgs/App/src/App.src", importer)
		require.ErrorIs(t, err, boom)
	})
}

func TestLoader_DirectoryPackages(t *testing.T) {
	betaID := uuid.MustParse("0f3e4a4e-5d7b-4c5a-9b8e-3c1d2e4f5a6b")
	storage := fs.NewMapStorage("/", fstest.MapFS{
		"pkgs/Alpha/src/Alpha.src": {Data: []byte("alpha")},
		"pkgs/Omega/src/Omega.src": {Data: []byte("omega")},
		"pkgs/Beta/src/Beta.src":   {Data: []byte("beta")},
		"pkgs/Beta/depot.toml":     {Data: []byte(`name = "Beta"` + "\n" + `id = "` + betaID.String() + `"`)},
		"pkgs/Gamma/src/Gamma.src": {Data: []byte("gamma")},
		"pkgs/Gamma/depot.yaml":    {Data: []byte("name: Gamma\ndependencies:\n  Beta: " + betaID.String() + "\n")},
	})
	d, err := env.NewDirectory(context.Background(), "/pkgs", env.Options{
		Storage:   storage,
		Manifests: document.NewReader(storage),
	})
	require.NoError(t, err)

	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	r := resolver.New(env.NewStack(d), resolver.NewRegistry(), closure.NewLoader(storage), logger)

	t.Run("package without descriptor", func(t *testing.T) {
		for _, name := range []string{"Alpha", "Omega"} {
			mod, err := r.Resolve(context.Background(), domain.Main, name)
			require.NoError(t, err)

			unit, ok := mod.Value.(*closure.Unit)
			require.True(t, ok)
			assert.Equal(t, uuid.Nil, unit.Identity.ID)
			assert.Empty(t, unit.Deps)
		}
	})

	t.Run("declared dependency", func(t *testing.T) {
		gamma, err := r.Resolve(context.Background(), domain.Main, "Gamma")
		require.NoError(t, err)

		unit, ok := gamma.Value.(*closure.Unit)
		require.True(t, ok)
		require.Len(t, unit.Deps, 1)
		assert.Equal(t, betaID, unit.Deps[0].Identity.ID)

		beta, err := r.Resolve(context.Background(), domain.Main, "Beta")
		require.NoError(t, err)
		assert.Same(t, beta, unit.Deps[0])
	})

	assert.Equal(t, 4, r.Registry().Len())
}

func TestWalk(t *testing.T) {
	zebra := &domain.Module{Identity: domain.NewIdentity("Zebra", uuid.New()), Value: &closure.Unit{}}
	pub := &domain.Module{Identity: domain.NewIdentity("Pub", uuid.New()), Value: &closure.Unit{Deps: []*domain.Module{zebra}}}
	app := &domain.Module{Identity: domain.NewIdentity("App", uuid.New()), Value: &closure.Unit{Deps: []*domain.Module{pub, zebra}}}

	type visit struct {
		name  string
		depth int
		seen  bool
	}
	var got []visit
	closure.Walk(app, func(depth int, mod *domain.Module, seen bool) {
		got = append(got, visit{mod.Identity.Name.String(), depth, seen})
	})

	assert.Equal(t, []visit{
		{"App", 0, false},
		{"Pub", 1, false},
		{"Zebra", 2, false},
		{"Zebra", 1, true},
	}, got)
}
