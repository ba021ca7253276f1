package commands

import (
	"os"

	"github.com/envmgr/envmgr/pkg/errors"
)

// defaultPluginConfig seeds a freshly created per-plugin config file.
const defaultPluginConfig = "# Plugin configuration\n# Add your plugin settings here\n"

// PluginList returns the names of all registered plugins.
func (a *App) PluginList() []string {
	return a.Plugins.Names()
}

// PluginEnable adds an (empty) plugin block to an environment's config so
// the plugin participates in its lifecycle. Enabling twice is a no-op.
func (a *App) PluginEnable(plugin, env string) error {
	if _, ok := a.Plugins.Get(plugin); !ok {
		return errors.Newf(errors.ErrPluginNotFound, "plugin %q is not registered", plugin)
	}

	cfg, err := a.Store.Load(env)
	if err != nil {
		return err
	}
	if _, enabled := cfg.Plugins[plugin]; enabled {
		return nil
	}
	cfg.Plugins[plugin] = map[string]interface{}{}
	return a.Store.Save(env, cfg)
}

// PluginDisable removes a plugin's block from an environment's config.
func (a *App) PluginDisable(plugin, env string) error {
	cfg, err := a.Store.Load(env)
	if err != nil {
		return err
	}
	if _, enabled := cfg.Plugins[plugin]; !enabled {
		return nil
	}
	delete(cfg.Plugins, plugin)
	return a.Store.Save(env, cfg)
}

// PluginConfigFile enables a plugin for an environment and returns the path
// of its structured config block file, creating a commented skeleton on
// first use. The caller opens it in the editor.
func (a *App) PluginConfigFile(plugin, env string) (string, error) {
	if err := a.PluginEnable(plugin, env); err != nil {
		return "", err
	}

	if err := a.FS.MkdirAll(a.Paths.PluginsDir(env), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create plugins directory for %q", env)
	}

	path := a.Paths.PluginConfigFile(env, plugin)
	if _, err := a.FS.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path)
		}
		if err := a.FS.WriteFile(path, []byte(defaultPluginConfig), 0644); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigWrite, "failed to create %s", path)
		}
	}
	return path, nil
}
