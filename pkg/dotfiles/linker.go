package dotfiles

import (
	"os"
	"path/filepath"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/logging"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/envmgr/envmgr/pkg/types"
)

// tmpSuffix names the temporary symlink that is renamed into place. The
// rename is what makes link creation atomic.
const tmpSuffix = ".envmgr-tmp"

// Linker materializes DotfileEntry sets as symlinks in the home directory.
// A pre-existing real file is never overwritten.
type Linker struct {
	fs    types.FS
	paths *paths.Paths
}

// NewLinker creates a Linker over the given filesystem and path layout.
func NewLinker(fs types.FS, p *paths.Paths) *Linker {
	return &Linker{fs: fs, paths: p}
}

// classify observes the current state of one entry's home path without
// mutating anything.
func (l *Linker) classify(entry types.DotfileEntry) types.LinkStatus {
	target := l.paths.HomePath(entry.RelPath)
	status := types.LinkStatus{Entry: entry, Target: target}

	info, err := l.fs.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			status.State = types.LinkAbsent
			return status
		}
		status.Err = errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", target)
		return status
	}

	if info.Mode()&os.ModeSymlink == 0 {
		status.State = types.LinkConflict
		return status
	}

	dest, err := l.fs.Readlink(target)
	if err != nil {
		status.Err = errors.Wrapf(err, errors.ErrFileAccess, "failed to read symlink %s", target)
		return status
	}
	status.CurrentDest = dest
	if dest == entry.Source {
		status.State = types.LinkOK
	} else {
		status.State = types.LinkStale
	}
	return status
}

// Diff classifies every entry against the home directory and returns the
// report without mutating anything.
func (l *Linker) Diff(entries []types.DotfileEntry) *types.LinkReport {
	report := &types.LinkReport{}
	for _, entry := range entries {
		status := l.classify(entry)
		report.Statuses = append(report.Statuses, status)
		switch {
		case status.Err != nil:
			report.Errors = append(report.Errors, status)
		case status.State == types.LinkConflict:
			report.Conflicts = append(report.Conflicts, status)
		case status.State == types.LinkOK:
			report.Unchanged++
		}
	}
	return report
}

// Link makes the home directory match the entry set. Outcomes are
// per-entry: a conflict or I/O error on one entry is recorded and the rest
// are still linked. The returned error is non-nil iff at least one entry
// failed; the report holds the details in relative-path order.
func (l *Linker) Link(entries []types.DotfileEntry) (*types.LinkReport, error) {
	logger := logging.GetLogger("dotfiles.linker")
	report := &types.LinkReport{}

	for _, entry := range entries {
		status := l.classify(entry)

		switch {
		case status.Err != nil:
			// classification failed, leave the path alone
		case status.State == types.LinkOK:
			report.Unchanged++
		case status.State == types.LinkConflict:
			logger.Warn().Str("path", status.Target).Msg("Refusing to overwrite existing file")
		case status.State == types.LinkStale:
			if err := l.atomicLink(entry.Source, status.Target); err != nil {
				status.Err = err
			} else {
				report.Replaced++
				logger.Debug().Str("path", status.Target).Str("source", entry.Source).Msg("Replaced stale link")
			}
		case status.State == types.LinkAbsent:
			if err := l.fs.MkdirAll(filepath.Dir(status.Target), 0755); err != nil {
				status.Err = errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", status.Target)
			} else if err := l.atomicLink(entry.Source, status.Target); err != nil {
				status.Err = err
			} else {
				report.Linked++
				logger.Debug().Str("path", status.Target).Str("source", entry.Source).Msg("Created link")
			}
		}

		report.Statuses = append(report.Statuses, status)
		if status.Err != nil {
			report.Errors = append(report.Errors, status)
		} else if status.State == types.LinkConflict {
			report.Conflicts = append(report.Conflicts, status)
		}
	}

	if report.Failed() {
		return report, errors.Newf(errors.ErrLinkConflict,
			"%d of %d entries could not be linked", len(report.Conflicts)+len(report.Errors), len(entries))
	}
	return report, nil
}

// atomicLink creates a symlink at a temporary name and renames it into
// place, so an interrupted run never leaves a half-written link.
func (l *Linker) atomicLink(source, target string) error {
	tmp := target + tmpSuffix
	_ = l.fs.Remove(tmp)

	if err := l.fs.Symlink(source, tmp); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink for %s", target)
	}
	if err := l.fs.Rename(tmp, target); err != nil {
		_ = l.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to move symlink into place at %s", target)
	}
	return nil
}

// Unlink removes the symlinks for the given entries, but only when the
// existing link points into the configuration root (a link this system
// created). Anything else is left untouched. Returns the relative paths
// actually removed.
func (l *Linker) Unlink(entries []types.DotfileEntry) ([]string, error) {
	logger := logging.GetLogger("dotfiles.linker")
	var removed []string

	for _, entry := range entries {
		status := l.classify(entry)
		if status.Err != nil {
			return removed, status.Err
		}
		if status.State != types.LinkOK && status.State != types.LinkStale {
			continue
		}
		if status.CurrentDest != entry.Source && !l.paths.IsUnderConfigRoot(status.CurrentDest) {
			logger.Warn().Str("path", status.Target).Str("dest", status.CurrentDest).
				Msg("Refusing to remove symlink not managed by envmgr")
			continue
		}
		if err := l.fs.Remove(status.Target); err != nil {
			return removed, errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", status.Target)
		}
		removed = append(removed, entry.RelPath)
		logger.Debug().Str("path", status.Target).Msg("Removed link")
	}
	return removed, nil
}
