package commands

import (
	"github.com/envmgr/envmgr/pkg/dotfiles"
	"github.com/envmgr/envmgr/pkg/types"
)

// DotfilesList returns the authoritative entry set for the active
// environment (base only when none is active).
func (a *App) DotfilesList() ([]types.DotfileEntry, error) {
	layers, _, err := a.currentLayers()
	if err != nil {
		return nil, err
	}
	return dotfiles.ResolveEntries(a.FS, layers)
}

// DotfilesLink re-links all dotfiles for the active environment. Conflicts
// follow partial-failure semantics: everything linkable is linked, and the
// report carries the rest.
func (a *App) DotfilesLink() (*types.LinkReport, error) {
	layers, _, err := a.currentLayers()
	if err != nil {
		return nil, err
	}
	entries, err := dotfiles.ResolveEntries(a.FS, layers)
	if err != nil {
		return nil, err
	}
	return a.Linker.Link(entries)
}

// DotfilesDiff resolves a named environment and classifies its entry set
// against the home directory without mutating anything.
func (a *App) DotfilesDiff(env string) (*types.LinkReport, error) {
	res, err := a.resolveWithDotfiles(env)
	if err != nil {
		return nil, err
	}
	return a.Linker.Diff(res.Dotfiles), nil
}
