package dotfiles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/envmgr/envmgr/pkg/dotfiles"
	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/filesystem"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/envmgr/envmgr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linkFixture builds a real config root and home directory; symlink
// behavior needs the OS filesystem.
type linkFixture struct {
	fs     types.FS
	paths  *paths.Paths
	linker *dotfiles.Linker
}

func newLinkFixture(t *testing.T) *linkFixture {
	t.Helper()
	root := filepath.Join(t.TempDir(), "envmgr")
	require.NoError(t, os.MkdirAll(root, 0755))
	p, err := paths.New(root, t.TempDir())
	require.NoError(t, err)
	fs := filesystem.NewOS()
	return &linkFixture{fs: fs, paths: p, linker: dotfiles.NewLinker(fs, p)}
}

// entry writes a source file under the config root and returns its entry.
func (f *linkFixture) entry(t *testing.T, layer, rel, content string) types.DotfileEntry {
	t.Helper()
	source := filepath.Join(f.paths.DotfilesDir(layer), rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0755))
	require.NoError(t, os.WriteFile(source, []byte(content), 0644))
	return types.DotfileEntry{RelPath: rel, Source: source, Layer: layer}
}

func TestLinkCreatesSymlinks(t *testing.T) {
	f := newLinkFixture(t)
	entries := []types.DotfileEntry{
		f.entry(t, "base", ".gitconfig", "[user]"),
		f.entry(t, "base", filepath.Join(".config", "app", "config.toml"), "key = 1"),
	}

	report, err := f.linker.Link(entries)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Linked)
	assert.False(t, report.Failed())

	for _, e := range entries {
		dest, err := os.Readlink(f.paths.HomePath(e.RelPath))
		require.NoError(t, err)
		assert.Equal(t, e.Source, dest)
	}
}

func TestLinkIdempotent(t *testing.T) {
	f := newLinkFixture(t)
	entries := []types.DotfileEntry{f.entry(t, "base", ".vimrc", "set nu")}

	_, err := f.linker.Link(entries)
	require.NoError(t, err)

	report, err := f.linker.Link(entries)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Linked)
	assert.Equal(t, 1, report.Unchanged)
	assert.Empty(t, report.Conflicts)
}

func TestLinkReplacesStaleLink(t *testing.T) {
	f := newLinkFixture(t)
	old := f.entry(t, "personal", ".gitconfig", "personal")
	updated := f.entry(t, "work", ".gitconfig", "work")

	_, err := f.linker.Link([]types.DotfileEntry{old})
	require.NoError(t, err)

	report, err := f.linker.Link([]types.DotfileEntry{updated})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Replaced)

	dest, err := os.Readlink(f.paths.HomePath(".gitconfig"))
	require.NoError(t, err)
	assert.Equal(t, updated.Source, dest)
}

func TestLinkConflictPartialFailure(t *testing.T) {
	f := newLinkFixture(t)
	blocked := f.entry(t, "base", ".gitconfig", "managed")
	fine := f.entry(t, "base", ".vimrc", "set nu")

	// a real file occupies one target
	require.NoError(t, os.WriteFile(f.paths.HomePath(".gitconfig"), []byte("precious"), 0644))

	report, err := f.linker.Link([]types.DotfileEntry{blocked, fine})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkConflict))
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, ".gitconfig", report.Conflicts[0].Entry.RelPath)

	// the conflicting file is untouched
	data, readErr := os.ReadFile(f.paths.HomePath(".gitconfig"))
	require.NoError(t, readErr)
	assert.Equal(t, "precious", string(data))

	// the other entry is still linked
	_, readlinkErr := os.Readlink(f.paths.HomePath(".vimrc"))
	assert.NoError(t, readlinkErr)
}

func TestDiffDoesNotMutate(t *testing.T) {
	f := newLinkFixture(t)
	linked := f.entry(t, "base", ".zshrc", "z")
	missing := f.entry(t, "base", ".bashrc", "b")
	conflicting := f.entry(t, "base", ".profile", "p")

	_, err := f.linker.Link([]types.DotfileEntry{linked})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.paths.HomePath(".profile"), []byte("mine"), 0644))

	report := f.linker.Diff([]types.DotfileEntry{linked, missing, conflicting})
	require.Len(t, report.Statuses, 3)

	states := map[string]types.LinkState{}
	for _, s := range report.Statuses {
		states[s.Entry.RelPath] = s.State
	}
	assert.Equal(t, types.LinkOK, states[".zshrc"])
	assert.Equal(t, types.LinkAbsent, states[".bashrc"])
	assert.Equal(t, types.LinkConflict, states[".profile"])

	// diff never links
	_, statErr := os.Lstat(f.paths.HomePath(".bashrc"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDiffDetectsStale(t *testing.T) {
	f := newLinkFixture(t)
	old := f.entry(t, "personal", ".gitconfig", "old")
	current := f.entry(t, "work", ".gitconfig", "new")

	_, err := f.linker.Link([]types.DotfileEntry{old})
	require.NoError(t, err)

	report := f.linker.Diff([]types.DotfileEntry{current})
	require.Len(t, report.Statuses, 1)
	assert.Equal(t, types.LinkStale, report.Statuses[0].State)
	assert.Equal(t, old.Source, report.Statuses[0].CurrentDest)
}

func TestUnlinkRemovesManagedOnly(t *testing.T) {
	f := newLinkFixture(t)
	managed := f.entry(t, "base", ".vimrc", "set nu")

	_, err := f.linker.Link([]types.DotfileEntry{managed})
	require.NoError(t, err)

	// a foreign symlink envmgr does not own
	foreignSource := filepath.Join(t.TempDir(), "other")
	require.NoError(t, os.WriteFile(foreignSource, []byte("x"), 0644))
	require.NoError(t, os.Symlink(foreignSource, f.paths.HomePath(".foreign")))
	foreign := types.DotfileEntry{RelPath: ".foreign", Source: filepath.Join(f.paths.DotfilesDir("base"), ".foreign")}

	removed, err := f.linker.Unlink([]types.DotfileEntry{managed, foreign})
	require.NoError(t, err)
	assert.Equal(t, []string{".vimrc"}, removed)

	_, statErr := os.Lstat(f.paths.HomePath(".vimrc"))
	assert.True(t, os.IsNotExist(statErr))

	// the foreign link survives
	_, statErr = os.Lstat(f.paths.HomePath(".foreign"))
	assert.NoError(t, statErr)
}

func TestUnlinkIgnoresRealFiles(t *testing.T) {
	f := newLinkFixture(t)
	entry := f.entry(t, "base", ".gitconfig", "managed")
	require.NoError(t, os.WriteFile(f.paths.HomePath(".gitconfig"), []byte("precious"), 0644))

	removed, err := f.linker.Unlink([]types.DotfileEntry{entry})
	require.NoError(t, err)
	assert.Empty(t, removed)

	data, readErr := os.ReadFile(f.paths.HomePath(".gitconfig"))
	require.NoError(t, readErr)
	assert.Equal(t, "precious", string(data))
}
