// Package commands implements the operations behind the CLI surface.
// Each function takes its collaborators through App and returns plain
// values; printing and exit codes stay in cmd/envmgr.
package commands

import (
	"github.com/envmgr/envmgr/pkg/config"
	"github.com/envmgr/envmgr/pkg/dotfiles"
	"github.com/envmgr/envmgr/pkg/filesystem"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/envmgr/envmgr/pkg/plugins"
	"github.com/envmgr/envmgr/pkg/resolver"
	"github.com/envmgr/envmgr/pkg/state"
	"github.com/envmgr/envmgr/pkg/types"
)

// App bundles the collaborators every command needs. State is passed
// explicitly rather than held in globals so each piece stays testable.
type App struct {
	FS       types.FS
	Paths    *paths.Paths
	Store    *config.Store
	State    *state.Store
	Resolver *resolver.Resolver
	Linker   *dotfiles.Linker
	Plugins  *plugins.Registry
	Settings *config.Settings
}

// NewApp wires an App against the real filesystem, creating the config
// root skeleton on first run.
func NewApp(configRoot string) (*App, error) {
	p, err := paths.New(configRoot, "")
	if err != nil {
		return nil, err
	}
	return newApp(filesystem.NewOS(), p)
}

// NewAppWithDeps wires an App over explicit filesystem and paths, used by
// tests.
func NewAppWithDeps(fs types.FS, p *paths.Paths) (*App, error) {
	return newApp(fs, p)
}

func newApp(fs types.FS, p *paths.Paths) (*App, error) {
	store := config.NewStore(fs, p)
	if err := store.EnsureLayout(); err != nil {
		return nil, err
	}
	if err := config.WriteDefaultSettings(p); err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(p)
	if err != nil {
		return nil, err
	}

	return &App{
		FS:       fs,
		Paths:    p,
		Store:    store,
		State:    state.NewStore(fs, p),
		Resolver: resolver.New(store),
		Linker:   dotfiles.NewLinker(fs, p),
		Plugins:  plugins.DefaultRegistry(),
		Settings: settings,
	}, nil
}

// resolveWithDotfiles resolves an environment and materializes its dotfile
// entry set.
func (a *App) resolveWithDotfiles(name string) (*types.ResolvedEnvironment, error) {
	res, err := a.Resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	entries, err := dotfiles.ResolveEntries(a.FS, dotfiles.LayersFor(a.Paths, res.Chain))
	if err != nil {
		return nil, err
	}
	res.Dotfiles = entries
	return res, nil
}
