package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envmgr/envmgr/pkg/commands"
	"github.com/envmgr/envmgr/pkg/config"
	"github.com/envmgr/envmgr/pkg/shell"
)

func TestAddThenListCmd(t *testing.T) {
	t.Setenv("ENVMGR_CONFIG_DIR", filepath.Join(t.TempDir(), "envmgr"))

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"add", "dev"})
	require.NoError(t, rootCmd.Execute())

	rootCmd = NewRootCmd()
	rootCmd.SetArgs([]string{"list"})
	require.NoError(t, rootCmd.Execute())
}

func TestCurrentCmdWithoutActiveEnvironment(t *testing.T) {
	t.Setenv("ENVMGR_CONFIG_DIR", filepath.Join(t.TempDir(), "envmgr"))

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"current"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no environment is currently active")
}

func TestNoCommandShowsHelp(t *testing.T) {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestDialectFlagPrecedence(t *testing.T) {
	settings := &config.Settings{Shell: "fish"}

	// The settings file's shell entry applies when no flag is given.
	d, err := dialectFlag("", settings)
	require.NoError(t, err)
	assert.Equal(t, shell.DialectFish, d)

	// An explicit flag wins over the settings entry.
	d, err = dialectFlag("zsh", settings)
	require.NoError(t, err)
	assert.Equal(t, shell.DialectZsh, d)

	// An invalid settings value is reported, not silently detected over.
	_, err = dialectFlag("", &config.Settings{Shell: "powershell"})
	require.Error(t, err)
}

func TestShellSettingFlowsFromFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "envmgr")
	t.Setenv("ENVMGR_CONFIG_DIR", dir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "envmgr.toml"), []byte("shell = \"fish\"\n"), 0644))

	app, err := commands.NewApp("")
	require.NoError(t, err)

	d, err := dialectFlag("", app.Settings)
	require.NoError(t, err)
	assert.Equal(t, shell.DialectFish, d)
}

func TestUnsupportedShellFlag(t *testing.T) {
	t.Setenv("ENVMGR_CONFIG_DIR", filepath.Join(t.TempDir(), "envmgr"))

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"use", "dev", "--shell", "powershell"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}
