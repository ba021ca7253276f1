package commands

import (
	"github.com/envmgr/envmgr/pkg/dotfiles"
	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/logging"
	"github.com/envmgr/envmgr/pkg/shell"
	"github.com/envmgr/envmgr/pkg/types"
)

// UseResult is the outcome of a successful switch.
type UseResult struct {
	Resolved *types.ResolvedEnvironment
	Report   *types.LinkReport

	// Lines is the activation command sequence for the requested dialect.
	// The caller prints them only on overall success; an errored switch
	// must emit nothing for the shell to eval.
	Lines []string
}

// Use activates an environment: resolve, link dotfiles, diff variables
// against the previously active environment, then persist the marker.
// An empty name re-applies the current environment.
func (a *App) Use(name string, dialect shell.Dialect) (*UseResult, error) {
	logger := logging.GetLogger("commands.use")

	previous, err := a.State.Read()
	if err != nil {
		return nil, err
	}
	if name == "" {
		if previous == "" {
			return nil, errors.New(errors.ErrInvalidInput,
				"no environment is currently active; specify one to use")
		}
		name = previous
	}

	res, err := a.resolveWithDotfiles(name)
	if err != nil {
		return nil, err
	}

	oldVars := a.previousVars(previous)

	// Drop links owned by the previous environment that the new entry set
	// no longer covers, so overrides don't outlive their environment.
	if previous != "" && previous != name {
		a.unlinkOrphans(previous, res.Dotfiles)
	}

	report, err := a.Linker.Link(res.Dotfiles)
	if err != nil {
		return &UseResult{Resolved: res, Report: report}, err
	}

	if err := a.Plugins.OnUse(name, res.Plugins); err != nil {
		return nil, err
	}

	newVars := make(map[string]string, len(res.Vars)+1)
	for k, v := range res.Vars {
		newVars[k] = v
	}
	newVars[types.ActiveEnvVar] = name

	lines := shell.EmitDiff(oldVars, newVars, dialect)

	if err := a.State.Write(name); err != nil {
		return nil, err
	}

	logger.Info().Str("environment", name).Str("previous", previous).
		Int("links", report.Linked+report.Replaced).Int("commands", len(lines)).
		Msg("Activated environment")
	return &UseResult{Resolved: res, Report: report, Lines: lines}, nil
}

// previousVars re-resolves the previously active environment's variable
// map. A previous environment that no longer resolves (deleted, broken
// config) degrades to an empty map; the switch must still succeed.
func (a *App) previousVars(previous string) map[string]string {
	if previous == "" {
		return nil
	}
	res, err := a.Resolver.Resolve(previous)
	if err != nil {
		logger := logging.GetLogger("commands.use")
		logger.Warn().Err(err).Str("environment", previous).
			Msg("Previous environment no longer resolves, treating as empty")
		return map[string]string{types.ActiveEnvVar: previous}
	}
	vars := make(map[string]string, len(res.Vars)+1)
	for k, v := range res.Vars {
		vars[k] = v
	}
	vars[types.ActiveEnvVar] = previous
	return vars
}

// unlinkOrphans removes the previous environment's managed links for paths
// the new entry set does not claim. Failures here are logged, not fatal:
// a leftover link never blocks a switch.
func (a *App) unlinkOrphans(previous string, newEntries []types.DotfileEntry) {
	logger := logging.GetLogger("commands.use")

	prevRes, err := a.resolveWithDotfiles(previous)
	if err != nil {
		logger.Warn().Err(err).Str("environment", previous).Msg("Cannot compute previous entry set, skipping cleanup")
		return
	}

	claimed := make(map[string]bool, len(newEntries))
	for _, e := range newEntries {
		claimed[e.RelPath] = true
	}

	var orphans []types.DotfileEntry
	for _, e := range prevRes.Dotfiles {
		if !claimed[e.RelPath] {
			orphans = append(orphans, e)
		}
	}
	if len(orphans) == 0 {
		return
	}

	removed, err := a.Linker.Unlink(orphans)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to clean up previous environment's links")
	}
	if len(removed) > 0 {
		logger.Debug().Strs("removed", removed).Msg("Removed orphaned links")
	}
}

// currentLayers picks the layer stack of the active environment, or just
// the base tree when none is active.
func (a *App) currentLayers() ([]dotfiles.Layer, string, error) {
	current, err := a.State.Read()
	if err != nil {
		return nil, "", err
	}
	if current == "" {
		return dotfiles.LayersFor(a.Paths, nil), "", nil
	}
	res, err := a.Resolver.Resolve(current)
	if err != nil {
		return nil, "", err
	}
	return dotfiles.LayersFor(a.Paths, res.Chain), current, nil
}
