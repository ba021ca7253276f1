package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/logging"
	"github.com/envmgr/envmgr/pkg/paths"
)

// hookSentinel marks an installed snippet so installation stays idempotent.
const hookSentinel = "envmgr (auto-generated) start"

const posixHookTemplate = `
# >>> envmgr (auto-generated) start >>>
function envmgr() {
  case "$1" in
    use|switch)
      eval "$(command envmgr "$@")"
      ;;
    *)
      command envmgr "$@"
      ;;
  esac
}
if [ -f %[1]s/current ]; then
  cur="$(cat %[1]s/current)"
  if [ -n "$cur" ]; then eval "$(command envmgr use "$cur")"; fi
fi
# <<< envmgr (auto-generated) end <<<
`

const fishHookTemplate = `
# >>> envmgr (auto-generated) start >>>
function envmgr --wraps envmgr
    if test (count $argv) -ge 1; and contains -- $argv[1] use switch
        command envmgr $argv | source -
    else
        command envmgr $argv
    end
end
if test -f %[1]s/current
    set -l cur (cat %[1]s/current)
    if test -n "$cur"
        command envmgr use $cur | source -
    end
end
# <<< envmgr (auto-generated) end <<<
`

// rcFile returns the rc file a dialect's hook belongs in.
func rcFile(d Dialect, home string) string {
	switch d {
	case DialectFish:
		return filepath.Join(home, ".config", "fish", "conf.d", "envmgr.fish")
	case DialectZsh:
		return filepath.Join(home, ".zshrc")
	default:
		return filepath.Join(home, ".bashrc")
	}
}

// HookSnippet renders the wrapper-function snippet for a dialect. The
// wrapper evals `envmgr use` output so activation lands in the calling
// shell, and re-applies the current environment on shell startup.
func HookSnippet(d Dialect, p *paths.Paths) string {
	if d == DialectFish {
		return fmt.Sprintf(fishHookTemplate, p.ConfigRoot())
	}
	return fmt.Sprintf(posixHookTemplate, p.ConfigRoot())
}

// InstallHooks appends the hook snippet to the dialect's rc file, creating
// parent directories as needed. A file already carrying the sentinel is
// left unchanged. Returns the rc file path and whether it was modified.
func InstallHooks(d Dialect, p *paths.Paths) (string, bool, error) {
	logger := logging.GetLogger("shell.hooks")
	rc := rcFile(d, p.Home())

	existing, err := os.ReadFile(rc)
	if err != nil && !os.IsNotExist(err) {
		return rc, false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", rc)
	}
	if strings.Contains(string(existing), hookSentinel) {
		logger.Debug().Str("rc", rc).Msg("Hooks already installed")
		return rc, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(rc), 0755); err != nil {
		return rc, false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", rc)
	}

	content := string(existing) + HookSnippet(d, p)
	if err := os.WriteFile(rc, []byte(content), 0644); err != nil {
		return rc, false, errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", rc)
	}

	logger.Info().Str("rc", rc).Str("shell", string(d)).Msg("Installed shell hooks")
	return rc, true, nil
}
