package config

import (
	"os"
	"strings"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Settings holds the global application settings from envmgr.toml.
// They tune behavior outside any single environment.
type Settings struct {
	// Editor is used by `edit` and `plugin config`; empty falls back to
	// $EDITOR, then nano.
	Editor string `koanf:"editor" toml:"editor"`

	// Shell forces the activation dialect instead of detecting it.
	Shell string `koanf:"shell" toml:"shell"`

	// Color toggles styled terminal output.
	Color bool `koanf:"color" toml:"color"`
}

var defaultSettings = []byte(`# envmgr global settings
editor = ""
shell = ""
color = true
`)

// LoadSettings resolves settings by layering, in order of precedence:
// built-in defaults, the envmgr.toml file at the config root, and
// ENVMGR_-prefixed environment variables (ENVMGR_EDITOR, ENVMGR_SHELL,
// ENVMGR_COLOR).
func LoadSettings(p *paths.Paths) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultSettings), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default settings")
	}

	settingsFile := p.SettingsFile()
	if _, err := os.Stat(settingsFile); err == nil {
		if err := k.Load(file.Provider(settingsFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", settingsFile)
		}
	}

	if err := k.Load(env.Provider("ENVMGR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ENVMGR_"))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load settings from environment")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}
	return &settings, nil
}

// WriteDefaultSettings writes envmgr.toml with commented defaults if it does
// not exist yet. Existing files are left alone.
func WriteDefaultSettings(p *paths.Paths) error {
	settingsFile := p.SettingsFile()
	if _, err := os.Stat(settingsFile); err == nil {
		return nil
	}

	// Marshal through go-toml so the written file always matches the
	// Settings schema.
	var s Settings
	if err := gotoml.Unmarshal(defaultSettings, &s); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "default settings are invalid")
	}
	data, err := gotoml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode default settings")
	}
	if err := os.WriteFile(settingsFile, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", settingsFile)
	}
	return nil
}

// EditorCommand returns the editor to launch, falling back to $EDITOR and
// then nano, matching common CLI behavior.
func (s *Settings) EditorCommand() string {
	if s.Editor != "" {
		return s.Editor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	return "nano"
}
