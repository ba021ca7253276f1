// Package ui renders human-facing output: environment listings, dotfile
// status and conflict reports. It is never used for activation lines,
// which go to stdout raw.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/envmgr/envmgr/pkg/types"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// EnvInfo is one row of the environment listing.
type EnvInfo struct {
	Name    string
	Base    string
	Active  bool
	Plugins []string
}

// Renderer turns command results into terminal text.
type Renderer struct{}

// NewRenderer creates a Renderer, disabling color when stdout is not a
// terminal or color was switched off in settings.
func NewRenderer(color bool) *Renderer {
	if !color || !isatty.IsTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
	return &Renderer{}
}

var (
	activeStyle = pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	mutedStyle  = pterm.NewStyle(pterm.FgGray)
	errorStyle  = pterm.NewStyle(pterm.FgRed)
)

// RenderEnvList renders the environment listing with the active marker and
// inheritance info.
func (r *Renderer) RenderEnvList(envs []EnvInfo) string {
	if len(envs) == 0 {
		return mutedStyle.Sprint("No environments found")
	}

	var result strings.Builder
	result.WriteString("Available environments:\n")
	for _, env := range envs {
		marker := "  "
		name := env.Name
		if env.Active {
			marker = activeStyle.Sprint("* ")
			name = activeStyle.Sprint(env.Name)
		}
		line := marker + name
		if env.Base != "" {
			line += mutedStyle.Sprintf(" (inherits from %s)", env.Base)
		}
		result.WriteString(line + "\n")
		if len(env.Plugins) > 0 {
			result.WriteString(mutedStyle.Sprintf("    plugins: %s\n", strings.Join(env.Plugins, ", ")))
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderLinkReport renders a diff/link report, one line per entry.
func (r *Renderer) RenderLinkReport(report *types.LinkReport) string {
	if len(report.Statuses) == 0 {
		return mutedStyle.Sprint("No dotfiles to manage")
	}

	var result strings.Builder
	for _, status := range report.Statuses {
		var state string
		switch {
		case status.Err != nil:
			state = errorStyle.Sprintf("error: %v", status.Err)
		case status.State == types.LinkConflict:
			state = errorStyle.Sprint("conflict: file exists")
		case status.State == types.LinkStale:
			state = pterm.Yellow("stale")
		case status.State == types.LinkOK:
			state = pterm.Green("linked")
		default:
			state = mutedStyle.Sprint("missing")
		}
		result.WriteString(fmt.Sprintf("  %-40s %s  [%s]\n", status.Entry.RelPath, state, status.Entry.Layer))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderDotfileEntries renders the authoritative entry set of a resolution.
func (r *Renderer) RenderDotfileEntries(entries []types.DotfileEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Sprint("No dotfiles declared")
	}

	var result strings.Builder
	for _, entry := range entries {
		result.WriteString(fmt.Sprintf("  %-40s -> %s  [%s]\n", entry.RelPath, entry.Source, entry.Layer))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderConflicts renders each conflict on its own line so every blocking
// file can be resolved individually.
func (r *Renderer) RenderConflicts(report *types.LinkReport) string {
	var result strings.Builder
	for _, c := range report.Conflicts {
		result.WriteString(errorStyle.Sprintf("conflict: %s exists and is not a managed symlink\n", c.Target))
	}
	for _, e := range report.Errors {
		result.WriteString(errorStyle.Sprintf("error: %s: %v\n", e.Target, e.Err))
	}
	return strings.TrimRight(result.String(), "\n")
}
