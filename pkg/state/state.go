// Package state persists the single piece of cross-invocation state:
// which environment is currently active. The marker is a plain-text file
// at a well-known location under the configuration root.
//
// The marker is not a lock. Two shells switching at the same time race,
// and the final value is whichever write lands last; callers are expected
// to avoid concurrent switches.
package state

import (
	"os"
	"strings"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/envmgr/envmgr/pkg/types"
)

// Store reads and writes the active-environment marker.
type Store struct {
	fs    types.FS
	paths *paths.Paths
}

// NewStore creates a Store over the given filesystem and path layout.
func NewStore(fs types.FS, p *paths.Paths) *Store {
	return &Store{fs: fs, paths: p}
}

// Read returns the active environment's name, or "" when none has ever
// been set. Absence is a normal first-run condition, never an error.
func (s *Store) Read() (string, error) {
	data, err := s.fs.ReadFile(s.paths.CurrentMarker())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to read current-environment marker")
	}
	return strings.TrimSpace(string(data)), nil
}

// Write overwrites the marker atomically (temp file + rename), so a crash
// mid-write can never leave a partial name behind.
func (s *Store) Write(name string) error {
	target := s.paths.CurrentMarker()
	tmp := target + ".tmp"

	if err := s.fs.WriteFile(tmp, []byte(name+"\n"), 0644); err != nil {
		return errors.Wrap(err, errors.ErrStateWrite, "failed to write current-environment marker")
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrap(err, errors.ErrStateWrite, "failed to write current-environment marker")
	}
	return nil
}

// Clear removes the marker, returning the system to the "none active"
// state. Clearing an absent marker is a no-op.
func (s *Store) Clear() error {
	err := s.fs.Remove(s.paths.CurrentMarker())
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrStateWrite, "failed to clear current-environment marker")
	}
	return nil
}
