// Package paths provides centralized path handling for envmgr.
// It implements XDG Base Directory compliance and is the single place
// that knows how the configuration root is laid out on disk.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/envmgr/envmgr/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the envmgr configuration root
	EnvConfigDir = "ENVMGR_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Layout of the configuration root. These names are not user-configurable;
// they must stay consistent across installations.
const (
	// AppDirName is the directory name for envmgr-specific files
	AppDirName = "envmgr"

	// ConfigFileName is the per-environment structured config file
	ConfigFileName = "config.yaml"

	// DotfilesDirName is the per-environment dotfiles subtree
	DotfilesDirName = "dotfiles"

	// PluginsDirName holds per-plugin structured config blocks
	PluginsDirName = "plugins"

	// CurrentMarkerName is the active-environment marker file
	CurrentMarkerName = "current"

	// SettingsFileName is the global application settings file
	SettingsFileName = "envmgr.toml"

	// LogFileName is the name of the log file
	LogFileName = "envmgr.log"
)

// Paths resolves every location envmgr reads or writes.
type Paths struct {
	configRoot string
	home       string
}

// New creates a Paths instance. configRoot and home may be empty, in which
// case they are resolved from ENVMGR_CONFIG_DIR / XDG_CONFIG_HOME and the
// process's home directory respectively.
func New(configRoot, home string) (*Paths, error) {
	p := &Paths{}

	if home == "" {
		home = os.Getenv(EnvHome)
	}
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "could not determine home directory")
		}
		home = h
	}
	p.home = expandHome(home, home)

	if configRoot == "" {
		if dir := os.Getenv(EnvConfigDir); dir != "" {
			configRoot = dir
		} else {
			configRoot = filepath.Join(xdg.ConfigHome, AppDirName)
		}
	}
	configRoot = expandHome(configRoot, p.home)

	absRoot, err := filepath.Abs(configRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for config root")
	}
	p.configRoot = absRoot

	return p, nil
}

// ConfigRoot returns the envmgr configuration root directory.
func (p *Paths) ConfigRoot() string {
	return p.configRoot
}

// Home returns the user's home directory, the target of all dotfile links.
func (p *Paths) Home() string {
	return p.home
}

// EnvDir returns the directory of a named environment. The base layer lives
// in EnvDir("base").
func (p *Paths) EnvDir(name string) string {
	return filepath.Join(p.configRoot, name)
}

// ConfigFile returns the structured config file of a named environment.
func (p *Paths) ConfigFile(name string) string {
	return filepath.Join(p.EnvDir(name), ConfigFileName)
}

// DotfilesDir returns the dotfiles subtree of a named environment.
func (p *Paths) DotfilesDir(name string) string {
	return filepath.Join(p.EnvDir(name), DotfilesDirName)
}

// PluginsDir returns the per-plugin config directory of a named environment.
func (p *Paths) PluginsDir(name string) string {
	return filepath.Join(p.EnvDir(name), PluginsDirName)
}

// PluginConfigFile returns the structured config block file for one plugin
// within an environment.
func (p *Paths) PluginConfigFile(env, plugin string) string {
	return filepath.Join(p.PluginsDir(env), plugin+".yaml")
}

// CurrentMarker returns the path of the active-environment marker file.
func (p *Paths) CurrentMarker() string {
	return filepath.Join(p.configRoot, CurrentMarkerName)
}

// SettingsFile returns the path of the global settings file.
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.configRoot, SettingsFileName)
}

// HomePath maps a dotfile-relative path to its home-directory target.
func (p *Paths) HomePath(relPath string) string {
	return filepath.Join(p.home, relPath)
}

// IsUnderConfigRoot reports whether path points inside the configuration
// root. Symlinks whose destination passes this check are considered managed.
func (p *Paths) IsUnderConfigRoot(path string) bool {
	rel, err := filepath.Rel(p.configRoot, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// expandHome expands a leading ~ in path against home.
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}
