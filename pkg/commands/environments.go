package commands

import (
	"os"
	"os/exec"
	"sort"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/logging"
	"github.com/envmgr/envmgr/pkg/types"
	"github.com/envmgr/envmgr/pkg/ui"
)

// Add creates a new environment, optionally inheriting from base.
func (a *App) Add(name string, base *string) (*types.EnvironmentConfig, error) {
	cfg, err := a.Store.Create(name, base)
	if err != nil {
		return nil, err
	}
	if err := a.Plugins.OnAdd(name, cfg.Plugins); err != nil {
		return nil, err
	}
	logger := logging.GetLogger("commands")
	logger.Info().Str("environment", name).Msg("Created environment")
	return cfg, nil
}

// Remove deletes an environment. The active environment cannot be removed.
func (a *App) Remove(name string) error {
	current, err := a.State.Read()
	if err != nil {
		return err
	}
	if current == name {
		return errors.Newf(errors.ErrEnvActive, "cannot remove currently active environment %q", name)
	}

	cfg, err := a.Store.Load(name)
	if err != nil {
		return err
	}
	if err := a.Plugins.OnRemove(name, cfg.Plugins); err != nil {
		return err
	}
	if err := a.Store.Delete(name); err != nil {
		return err
	}
	logger := logging.GetLogger("commands")
	logger.Info().Str("environment", name).Msg("Removed environment")
	return nil
}

// Edit opens an environment's config in the user's editor, then reloads it
// so schema mistakes surface immediately instead of on the next switch.
func (a *App) Edit(name string) error {
	if !a.Store.Exists(name) {
		return errors.Newf(errors.ErrEnvNotFound, "environment %q does not exist", name)
	}

	editor := a.Settings.EditorCommand()
	cmd := exec.Command(editor, a.Paths.ConfigFile(name))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "editor %q exited with an error", editor)
	}

	if _, err := a.Store.Load(name); err != nil {
		return err
	}
	return nil
}

// List returns every declared environment with its inheritance and plugin
// summary, flagging the active one.
func (a *App) List() ([]ui.EnvInfo, error) {
	names, err := a.Store.List()
	if err != nil {
		return nil, err
	}
	current, err := a.State.Read()
	if err != nil {
		return nil, err
	}

	infos := make([]ui.EnvInfo, 0, len(names))
	for _, name := range names {
		cfg, err := a.Store.Load(name)
		if err != nil {
			return nil, err
		}

		var pluginNames []string
		for p := range cfg.Plugins {
			pluginNames = append(pluginNames, p)
		}
		sort.Strings(pluginNames)

		infos = append(infos, ui.EnvInfo{
			Name:    name,
			Base:    cfg.BaseName(),
			Active:  name == current,
			Plugins: pluginNames,
		})
	}
	return infos, nil
}

// Current returns the active environment's name, or "" when none is.
func (a *App) Current() (string, error) {
	return a.State.Read()
}
