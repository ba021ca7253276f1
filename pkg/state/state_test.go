package state_test

import (
	"path/filepath"
	"testing"

	"github.com/envmgr/envmgr/pkg/filesystem"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/envmgr/envmgr/pkg/state"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	p, err := paths.New(filepath.Join(t.TempDir(), "envmgr"), t.TempDir())
	require.NoError(t, err)
	fs := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll(p.ConfigRoot(), 0755))
	return state.NewStore(fs, p)
}

func TestReadAbsentMarker(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Read()
	require.NoError(t, err, "absence is a first-run condition, not an error")
	assert.Equal(t, "", name)
}

func TestWriteRead(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write("work"))
	name, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "work", name)

	// overwrite
	require.NoError(t, store.Write("personal"))
	name, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, "personal", name)
}

func TestReadTrimsWhitespace(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write("work"))

	name, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "work", name, "trailing newline must not leak into the name")
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write("work"))

	require.NoError(t, store.Clear())
	name, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "", name)

	// clearing twice is fine
	require.NoError(t, store.Clear())
}
