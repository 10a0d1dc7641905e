package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolate(t *testing.T) (home, cwd string) {
	t.Helper()
	home = t.TempDir()
	cwd = t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"LOAD_PATH", "CACHE_ROOTS", "BUNDLED_ROOT", "SOURCE_EXT", "SLUG_HASH", "VERBOSE", "JSON_LOGS"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
		require.NoError(t, os.Unsetenv(config.EnvPrefix+"_"+key))
	}
	return home, cwd
}

func TestLoader_Defaults(t *testing.T) {
	home, cwd := isolate(t)

	cfg, err := newLoader(t).Load(cwd, ports.ConfigOverrides{})
	require.NoError(t, err)

	assert.Equal(t, []string{"@", filepath.Join(home, ".depot", "environments", "default")}, cfg.LoadPath)
	assert.Equal(t, []string{filepath.Join(home, ".depot")}, cfg.CacheRoots)
	assert.Empty(t, cfg.BundledRoot)
	assert.Equal(t, "src", cfg.SourceExt)
	assert.Equal(t, domain.SlugHashCRC32C, cfg.SlugHash)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.JSONLogs)
}

func TestLoader_ConfigFileInWorkingDirectory(t *testing.T) {
	home, cwd := isolate(t)
	createFile(t, filepath.Join(home, ".depot"), "depot.config.yaml", "source_ext: ignored\n")
	createFile(t, cwd, "depot.config.yaml", `
load_path:
  - "@"
  - envs/shared
cache_roots:
  - ~/cache
  - /opt/depot
bundled_root: /usr/share/depot/bundled
source_ext: .jl
slug_hash: xxhash
`)

	cfg, err := newLoader(t).Load(cwd, ports.ConfigOverrides{})
	require.NoError(t, err)

	assert.Equal(t, []string{"@", filepath.Join(cwd, "envs", "shared")}, cfg.LoadPath)
	assert.Equal(t, []string{filepath.Join(home, "cache"), "/opt/depot"}, cfg.CacheRoots)
	assert.Equal(t, "/usr/share/depot/bundled", cfg.BundledRoot)
	assert.Equal(t, "jl", cfg.SourceExt)
	assert.Equal(t, domain.SlugHashXXHash, cfg.SlugHash)
}

func TestLoader_ConfigFileInHome(t *testing.T) {
	home, cwd := isolate(t)
	createFile(t, filepath.Join(home, ".depot"), "depot.config.yaml", "verbose: true\n")

	cfg, err := newLoader(t).Load(cwd, ports.ConfigOverrides{})
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoader_RelativeEntriesFollowConfigFile(t *testing.T) {
	t.Run("home config", func(t *testing.T) {
		home, cwd := isolate(t)
		dir := filepath.Join(home, ".depot")
		createFile(t, dir, "depot.config.yaml", `
load_path: ["@", envs/shared]
cache_roots: [cache]
bundled_root: bundled
`)

		cfg, err := newLoader(t).Load(cwd, ports.ConfigOverrides{})
		require.NoError(t, err)

		assert.Equal(t, []string{"@", filepath.Join(dir, "envs", "shared")}, cfg.LoadPath)
		assert.Equal(t, []string{filepath.Join(dir, "cache")}, cfg.CacheRoots)
		assert.Equal(t, filepath.Join(dir, "bundled"), cfg.BundledRoot)
	})

	t.Run("explicit config", func(t *testing.T) {
		_, cwd := isolate(t)
		dir := t.TempDir()
		path := createFile(t, dir, "custom.yaml", "cache_roots: [cache]\n")

		cfg, err := newLoader(t).Load(cwd, ports.ConfigOverrides{ConfigFile: path})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "cache")}, cfg.CacheRoots)
	})

	t.Run("flags and environment stay at cwd", func(t *testing.T) {
		home, cwd := isolate(t)
		createFile(t, filepath.Join(home, ".depot"), "depot.config.yaml", "load_path: [envs]\ncache_roots: [cache]\n")
		t.Setenv("DEPOT_CACHE_ROOTS", "env-cache")

		cfg, err := newLoader(t).Load(cwd, ports.ConfigOverrides{LoadPath: []string{"flag-envs"}})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(cwd, "flag-envs")}, cfg.LoadPath)
		assert.Equal(t, []string{filepath.Join(cwd, "env-cache")}, cfg.CacheRoots)
	})
}

func TestLoader_Precedence(t *testing.T) {
	_, cwd := isolate(t)
	createFile(t, cwd, "depot.config.yaml", `
load_path: ["/from/file"]
cache_roots: ["/from/file"]
slug_hash: xxhash
`)

	t.Setenv("DEPOT_SLUG_HASH", "crc32c")
	t.Setenv("DEPOT_CACHE_ROOTS", "/env/a"+string(os.PathListSeparator)+"/env/b")

	cfg, err := newLoader(t).Load(cwd, ports.ConfigOverrides{
		LoadPath: []string{"/from/flag"},
		Verbose:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/from/flag"}, cfg.LoadPath, "flags beat the file")
	assert.Equal(t, []string{"/env/a", "/env/b"}, cfg.CacheRoots, "environment beats the file")
	assert.Equal(t, domain.SlugHashCRC32C, cfg.SlugHash)
	assert.True(t, cfg.Verbose)
}

func TestLoader_ExplicitConfigFile(t *testing.T) {
	_, cwd := isolate(t)
	path := createFile(t, t.TempDir(), "custom.yaml", "json_logs: true\n")

	cfg, err := newLoader(t).Load(cwd, ports.ConfigOverrides{ConfigFile: path})
	require.NoError(t, err)
	assert.True(t, cfg.JSONLogs)

	_, err = newLoader(t).Load(cwd, ports.ConfigOverrides{ConfigFile: filepath.Join(cwd, "missing.yaml")})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoader_Errors(t *testing.T) {
	t.Run("invalid slug hash", func(t *testing.T) {
		_, cwd := isolate(t)
		createFile(t, cwd, "depot.config.yaml", "slug_hash: md5\n")

		_, err := newLoader(t).Load(cwd, ports.ConfigOverrides{})
		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrInvalidSlugHash)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, cwd := isolate(t)
		createFile(t, cwd, "depot.config.yaml", "load_path: [unterminated\n")

		_, err := newLoader(t).Load(cwd, ports.ConfigOverrides{})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
	})
}
