package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/filesystem"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/envmgr/envmgr/pkg/shell"
	"github.com/envmgr/envmgr/pkg/types"
)

// newTestApp wires an App over a throwaway config root and home. Link
// operations need real symlinks, so this uses the OS filesystem.
func newTestApp(t *testing.T) *App {
	t.Helper()

	root := t.TempDir()
	configRoot := filepath.Join(root, "envmgr")
	home := filepath.Join(root, "home")
	require.NoError(t, os.MkdirAll(home, 0755))

	p, err := paths.New(configRoot, home)
	require.NoError(t, err)

	app, err := NewAppWithDeps(filesystem.NewOS(), p)
	require.NoError(t, err)
	return app
}

// writeDotfile places a file under an environment's dotfiles tree.
func writeDotfile(t *testing.T, app *App, env, relPath, content string) {
	t.Helper()
	path := filepath.Join(app.Paths.DotfilesDir(env), relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func strptr(s string) *string { return &s }

func TestAddCreatesEnvironment(t *testing.T) {
	app := newTestApp(t)

	cfg, err := app.Add("dev", nil)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Name)
	assert.Nil(t, cfg.Base)

	assert.True(t, app.Store.Exists("dev"))
	assert.DirExists(t, app.Paths.DotfilesDir("dev"))
}

func TestAddWithMissingBase(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", strptr("ghost"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrEnvNotFound, errors.GetErrorCode(err))
}

func TestRemove(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)

	require.NoError(t, app.Remove("dev"))
	assert.False(t, app.Store.Exists("dev"))
}

func TestRemoveRefusesActiveEnvironment(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)
	_, err = app.Use("dev", shell.DialectBash)
	require.NoError(t, err)

	err = app.Remove("dev")
	require.Error(t, err)
	assert.Equal(t, errors.ErrEnvActive, errors.GetErrorCode(err))
	assert.True(t, app.Store.Exists("dev"))
}

func TestListMarksActive(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)
	_, err = app.Add("work", nil)
	require.NoError(t, err)
	_, err = app.Use("work", shell.DialectBash)
	require.NoError(t, err)

	infos, err := app.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "dev", infos[0].Name)
	assert.False(t, infos[0].Active)
	assert.Equal(t, "work", infos[1].Name)
	assert.True(t, infos[1].Active)
}

func TestCurrentWithoutActiveEnvironment(t *testing.T) {
	app := newTestApp(t)

	current, err := app.Current()
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestUseActivatesEnvironment(t *testing.T) {
	app := newTestApp(t)

	cfg, err := app.Add("dev", nil)
	require.NoError(t, err)
	cfg.EnvVars["GOFLAGS"] = "-count=1"
	require.NoError(t, app.Store.Save("dev", cfg))
	writeDotfile(t, app, "dev", ".gitconfig", "[user]\n\tname = dev\n")

	result, err := app.Use("dev", shell.DialectBash)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"export ENVMGR_ACTIVE_ENV=dev",
		"export GOFLAGS='-count=1'",
	}, result.Lines)
	assert.Equal(t, 1, result.Report.Linked)

	current, err := app.Current()
	require.NoError(t, err)
	assert.Equal(t, "dev", current)

	dest, err := os.Readlink(app.Paths.HomePath(".gitconfig"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(app.Paths.DotfilesDir("dev"), ".gitconfig"), dest)
}

func TestUseEmptyNameReappliesCurrent(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)
	_, err = app.Use("dev", shell.DialectBash)
	require.NoError(t, err)

	result, err := app.Use("", shell.DialectBash)
	require.NoError(t, err)
	assert.Equal(t, "dev", result.Resolved.Name)
}

func TestUseEmptyNameWithoutActiveEnvironment(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Use("", shell.DialectBash)
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
}

func TestUseUnknownEnvironment(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Use("ghost", shell.DialectBash)
	require.Error(t, err)
	assert.Equal(t, errors.ErrEnvNotFound, errors.GetErrorCode(err))
}

func TestUseSwitchEmitsUnsets(t *testing.T) {
	app := newTestApp(t)

	dev, err := app.Add("dev", nil)
	require.NoError(t, err)
	dev.EnvVars["DEV_ONLY"] = "1"
	require.NoError(t, app.Store.Save("dev", dev))

	work, err := app.Add("work", nil)
	require.NoError(t, err)
	work.EnvVars["WORK_ONLY"] = "1"
	require.NoError(t, app.Store.Save("work", work))

	_, err = app.Use("dev", shell.DialectBash)
	require.NoError(t, err)

	result, err := app.Use("work", shell.DialectBash)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"unset DEV_ONLY",
		"export ENVMGR_ACTIVE_ENV=work",
		"export WORK_ONLY=1",
	}, result.Lines)
}

func TestUseSwitchUnlinksOrphans(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)
	_, err = app.Add("work", nil)
	require.NoError(t, err)
	writeDotfile(t, app, "dev", ".devrc", "dev\n")
	writeDotfile(t, app, "work", ".workrc", "work\n")

	_, err = app.Use("dev", shell.DialectBash)
	require.NoError(t, err)
	assert.FileExists(t, app.Paths.HomePath(".devrc"))

	_, err = app.Use("work", shell.DialectBash)
	require.NoError(t, err)

	_, statErr := os.Lstat(app.Paths.HomePath(".devrc"))
	assert.True(t, os.IsNotExist(statErr), "orphaned link should be removed")
	assert.FileExists(t, app.Paths.HomePath(".workrc"))
}

func TestUseConflictReturnsErrorWithReport(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)
	writeDotfile(t, app, "dev", ".vimrc", "set number\n")

	// A pre-existing real file at the target is never overwritten.
	require.NoError(t, os.WriteFile(app.Paths.HomePath(".vimrc"), []byte("mine\n"), 0644))

	result, err := app.Use("dev", shell.DialectBash)
	require.Error(t, err)
	assert.Equal(t, errors.ErrLinkConflict, errors.GetErrorCode(err))
	require.NotNil(t, result.Report)
	assert.Len(t, result.Report.Conflicts, 1)
	assert.Empty(t, result.Lines)

	content, readErr := os.ReadFile(app.Paths.HomePath(".vimrc"))
	require.NoError(t, readErr)
	assert.Equal(t, "mine\n", string(content))
}

func TestUseInheritsBaseDotfiles(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)
	writeDotfile(t, app, types.BaseEnvName, ".profile", "base\n")
	writeDotfile(t, app, "dev", ".profile", "dev\n")

	result, err := app.Use("dev", shell.DialectBash)
	require.NoError(t, err)
	require.Len(t, result.Resolved.Dotfiles, 1)
	assert.Equal(t, "dev", result.Resolved.Dotfiles[0].Layer)

	dest, err := os.Readlink(app.Paths.HomePath(".profile"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(app.Paths.DotfilesDir("dev"), ".profile"), dest)
}

func TestDotfilesListWithoutActiveEnvironment(t *testing.T) {
	app := newTestApp(t)

	writeDotfile(t, app, types.BaseEnvName, ".profile", "base\n")

	entries, err := app.DotfilesList()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.BaseEnvName, entries[0].Layer)
}

func TestDotfilesDiffDoesNotMutate(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)
	writeDotfile(t, app, "dev", ".gitconfig", "x\n")

	report, err := app.DotfilesDiff("dev")
	require.NoError(t, err)
	require.Len(t, report.Statuses, 1)
	assert.Equal(t, types.LinkAbsent, report.Statuses[0].State)

	_, statErr := os.Lstat(app.Paths.HomePath(".gitconfig"))
	assert.True(t, os.IsNotExist(statErr), "diff must not create links")
}

func TestDotfilesLink(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)
	writeDotfile(t, app, "dev", ".gitconfig", "x\n")
	_, err = app.Use("dev", shell.DialectBash)
	require.NoError(t, err)

	// A second link pass over an already-linked tree changes nothing.
	report, err := app.DotfilesLink()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Linked)
	assert.Equal(t, 1, report.Unchanged)
}

func TestPluginEnableDisable(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)

	require.NoError(t, app.PluginEnable("gh", "dev"))
	cfg, err := app.Store.Load("dev")
	require.NoError(t, err)
	assert.Contains(t, cfg.Plugins, "gh")

	// Enabling twice is a no-op.
	require.NoError(t, app.PluginEnable("gh", "dev"))

	require.NoError(t, app.PluginDisable("gh", "dev"))
	cfg, err = app.Store.Load("dev")
	require.NoError(t, err)
	assert.NotContains(t, cfg.Plugins, "gh")
}

func TestPluginEnableUnknownPlugin(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)

	err = app.PluginEnable("nope", "dev")
	require.Error(t, err)
	assert.Equal(t, errors.ErrPluginNotFound, errors.GetErrorCode(err))
}

func TestPluginConfigFile(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Add("dev", nil)
	require.NoError(t, err)

	path, err := app.PluginConfigFile("gh", "dev")
	require.NoError(t, err)
	assert.FileExists(t, path)

	cfg, err := app.Store.Load("dev")
	require.NoError(t, err)
	assert.Contains(t, cfg.Plugins, "gh")

	// Seeded content survives a second call.
	require.NoError(t, os.WriteFile(path, []byte("token: abc\n"), 0644))
	again, err := app.PluginConfigFile("gh", "dev")
	require.NoError(t, err)
	assert.Equal(t, path, again)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "token: abc\n", string(content))
}

func TestPluginList(t *testing.T) {
	app := newTestApp(t)

	names := app.PluginList()
	assert.Equal(t, []string{"gh", "op-ssh-agent", "tailscale"}, names)
}
