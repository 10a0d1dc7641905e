// Package config provides the configuration loader for depot.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
const EnvPrefix = "DEPOT"

// Loader implements ports.ConfigLoader using viper.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration. Precedence, highest first: command line
// overrides, DEPOT_* environment variables, the config file, defaults.
func (l *Loader) Load(cwd string, overrides ports.ConfigOverrides) (*domain.Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := l.readConfigFile(v, cwd, home, overrides.ConfigFile); err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if len(overrides.LoadPath) > 0 {
		fc.LoadPath = overrides.LoadPath
	}
	if len(overrides.CacheRoots) > 0 {
		fc.CacheRoots = overrides.CacheRoots
	}

	cfg := &domain.Config{
		LoadPath:    expandList(fc.LoadPath, anchor(v, "load_path", cwd, len(overrides.LoadPath) > 0), home),
		CacheRoots:  expandList(fc.CacheRoots, anchor(v, "cache_roots", cwd, len(overrides.CacheRoots) > 0), home),
		BundledRoot: expandPath(fc.BundledRoot, anchor(v, "bundled_root", cwd, false), home),
		SourceExt:   strings.TrimPrefix(fc.SourceExt, "."),
		SlugHash:    domain.SlugHash(strings.ToLower(fc.SlugHash)),
		Verbose:     fc.Verbose || overrides.Verbose,
		JSONLogs:    fc.JSONLogs || overrides.JSONLogs,
	}

	if cfg.SourceExt == "" {
		cfg.SourceExt = domain.DefaultSourceExt
	}
	if !cfg.SlugHash.Valid() {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSlugHash, "unknown slug hash"), "slug_hash", fc.SlugHash)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("load_path", []string{domain.ActiveProjectEntry, filepath.Join("~", domain.DepotDirName, "environments", "default")})
	v.SetDefault("cache_roots", []string{filepath.Join("~", domain.DepotDirName)})
	v.SetDefault("bundled_root", "")
	v.SetDefault("source_ext", domain.DefaultSourceExt)
	v.SetDefault("slug_hash", string(domain.SlugHashCRC32C))
	v.SetDefault("verbose", false)
	v.SetDefault("json_logs", false)
}

// readConfigFile loads an explicit config file, or searches cwd and then
// ~/.depot for depot.config.yaml. A missing file is not an error unless it
// was named explicitly.
func (l *Loader) readConfigFile(v *viper.Viper, cwd, home, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(expandPath(explicit, cwd, home))
		if err := v.ReadInConfig(); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", explicit)
		}
		return nil
	}

	v.SetConfigName(domain.ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cwd)
	if home != "" {
		v.AddConfigPath(filepath.Join(home, domain.DepotDirName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if l.Logger != nil {
		l.Logger.Debug("using config file " + v.ConfigFileUsed())
	}
	return nil
}

// anchor returns the directory relative entries of key are resolved against:
// the directory of the config file when the value was read from it, cwd when
// it came from the command line or the environment.
func anchor(v *viper.Viper, key, cwd string, overridden bool) string {
	if overridden {
		return cwd
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_" + strings.ToUpper(key)); ok {
		return cwd
	}
	if used := v.ConfigFileUsed(); used != "" && v.InConfig(key) {
		return filepath.Dir(used)
	}
	return cwd
}

// expandList splits entries on the OS path list separator and expands each one.
func expandList(entries []string, base, home string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, part := range filepath.SplitList(entry) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, expandPath(part, base, home))
		}
	}
	return out
}

// expandPath expands a leading "~" and anchors relative paths at base.
// The active project marker is kept verbatim.
func expandPath(path, base, home string) string {
	switch {
	case path == "" || path == domain.ActiveProjectEntry:
		return path
	case path == "~":
		return home
	case strings.HasPrefix(path, "~"+string(filepath.Separator)):
		return filepath.Join(home, path[2:])
	case filepath.IsAbs(path):
		return filepath.Clean(path)
	default:
		return filepath.Join(base, path)
	}
}
