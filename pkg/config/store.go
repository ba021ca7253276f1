package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/logging"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/envmgr/envmgr/pkg/types"
	"gopkg.in/yaml.v3"
)

// reservedDirs are subdirectories of the config root that are not
// environments.
var reservedDirs = map[string]bool{
	types.BaseEnvName:    true,
	paths.PluginsDirName: true,
}

// Store reads and writes environment configurations under the config root.
type Store struct {
	fs    types.FS
	paths *paths.Paths
}

// NewStore creates a Store over the given filesystem and path layout.
func NewStore(fs types.FS, p *paths.Paths) *Store {
	return &Store{fs: fs, paths: p}
}

// Load reads a named environment's config.yaml into an EnvironmentConfig.
// It fails with ErrEnvNotFound if the environment directory or config file
// is absent, and ErrConfigParse if the file cannot be decoded into the
// expected schema.
func (s *Store) Load(name string) (*types.EnvironmentConfig, error) {
	logger := logging.GetLogger("config.store")

	if _, err := s.fs.Stat(s.paths.EnvDir(name)); err != nil {
		return nil, errors.Newf(errors.ErrEnvNotFound, "environment %q does not exist", name).
			WithDetail("environment", name)
	}

	data, err := s.fs.ReadFile(s.paths.ConfigFile(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrEnvNotFound, "environment %q has no config file", name).
				WithDetail("environment", name)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read config for environment %q", name)
	}

	var cfg types.EnvironmentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config for environment %q", name)
	}

	if cfg.Name == "" {
		cfg.Name = name
	} else if cfg.Name != name {
		return nil, errors.Newf(errors.ErrConfigParse,
			"environment %q declares mismatched name %q", name, cfg.Name)
	}
	if cfg.EnvVars == nil {
		cfg.EnvVars = make(map[string]string)
	}
	if cfg.Plugins == nil {
		cfg.Plugins = make(map[string]interface{})
	}

	logger.Debug().Str("environment", name).Int("vars", len(cfg.EnvVars)).Msg("Loaded environment config")
	return &cfg, nil
}

// Save writes an environment's config.yaml atomically (temp file + rename).
// Plugin blocks are opaque passthrough data; unknown fields inside them are
// preserved as-is.
func (s *Store) Save(name string, cfg *types.EnvironmentConfig) error {
	if err := s.fs.MkdirAll(s.paths.EnvDir(name), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create environment directory for %q", name)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to encode config for environment %q", name)
	}

	target := s.paths.ConfigFile(name)
	tmp := target + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write config for environment %q", name)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write config for environment %q", name)
	}
	return nil
}

// List enumerates declared environment names, sorted lexicographically.
// The base layer and the plugins directory are not listed.
func (s *Store) List() ([]string, error) {
	entries, err := s.fs.ReadDir(s.paths.ConfigRoot())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read config root")
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || reservedDirs[entry.Name()] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a named environment directory is present.
func (s *Store) Exists(name string) bool {
	_, err := s.fs.Stat(s.paths.EnvDir(name))
	return err == nil
}

// Create scaffolds a new environment: directory, dotfiles and plugins
// subtrees, and an initial config.yaml. Fails with ErrEnvExists when the
// name is taken.
func (s *Store) Create(name string, base *string) (*types.EnvironmentConfig, error) {
	if s.Exists(name) {
		return nil, errors.Newf(errors.ErrEnvExists, "environment %q already exists", name)
	}
	if base != nil && !s.Exists(*base) {
		return nil, errors.Newf(errors.ErrEnvNotFound, "base environment %q does not exist", *base).
			WithDetail("environment", *base)
	}

	for _, dir := range []string{
		s.paths.EnvDir(name),
		s.paths.DotfilesDir(name),
		s.paths.PluginsDir(name),
	} {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}

	cfg := &types.EnvironmentConfig{
		Name:    name,
		Base:    base,
		EnvVars: make(map[string]string),
		Plugins: make(map[string]interface{}),
	}
	if err := s.Save(name, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Delete removes an environment's subtree.
func (s *Store) Delete(name string) error {
	if !s.Exists(name) {
		return errors.Newf(errors.ErrEnvNotFound, "environment %q does not exist", name)
	}
	if err := s.fs.RemoveAll(s.paths.EnvDir(name)); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove environment %q", name)
	}
	return nil
}

// EnsureLayout creates the config root skeleton on first run: the base
// layer (with an empty config) and its dotfiles tree.
func (s *Store) EnsureLayout() error {
	for _, dir := range []string{
		s.paths.ConfigRoot(),
		s.paths.DotfilesDir(types.BaseEnvName),
	} {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}

	if _, err := s.fs.Stat(s.paths.ConfigFile(types.BaseEnvName)); err != nil {
		base := &types.EnvironmentConfig{
			Name:    types.BaseEnvName,
			EnvVars: make(map[string]string),
			Plugins: make(map[string]interface{}),
		}
		if err := s.Save(types.BaseEnvName, base); err != nil {
			return fmt.Errorf("initializing base layer: %w", err)
		}
	}
	return nil
}
