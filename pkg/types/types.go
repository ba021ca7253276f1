package types

// BaseEnvName is the name of the distinguished base environment. Its
// dotfiles tree is the bottom layer of every resolution, and it is the
// implicit terminal of every inheritance chain.
const BaseEnvName = "base"

// ActiveEnvVar is injected into every activation so shells and prompts
// can display the active environment.
const ActiveEnvVar = "ENVMGR_ACTIVE_ENV"

// EnvironmentConfig is the on-disk configuration of one named environment,
// as stored in <configroot>/<name>/config.yaml.
type EnvironmentConfig struct {
	Name string `yaml:"name"`

	// Base names the environment this one inherits from. nil means no
	// inheritance (the base dotfiles tree still applies, see resolver).
	Base *string `yaml:"base"`

	EnvVars map[string]string `yaml:"env_vars"`

	// Plugins maps plugin name to an opaque configuration block. Blocks are
	// passed through unvalidated; their schema belongs to each plugin.
	Plugins map[string]interface{} `yaml:"plugins"`
}

// BaseName returns the declared base name or "" if none.
func (c *EnvironmentConfig) BaseName() string {
	if c.Base == nil {
		return ""
	}
	return *c.Base
}

// DotfileEntry records that the physical file Source is authoritative for
// the home-relative path RelPath. Layer is the environment (or "base") that
// supplied the file.
type DotfileEntry struct {
	RelPath string
	Source  string
	Layer   string
}

// ResolvedEnvironment is the merged view of an environment after applying
// inheritance. It is a pure computed value, recomputed on every invocation.
type ResolvedEnvironment struct {
	Name    string
	Vars    map[string]string
	Plugins map[string]interface{}

	// Dotfiles holds one authoritative entry per relative path, sorted by
	// RelPath.
	Dotfiles []DotfileEntry

	// Chain is the inheritance chain from root to the target environment,
	// e.g. ["base", "work"].
	Chain []string
}

// LinkState classifies a home-directory path against its expected symlink.
type LinkState int

const (
	// LinkAbsent means nothing exists at the target path.
	LinkAbsent LinkState = iota
	// LinkOK means a symlink exists and points at the expected source.
	LinkOK
	// LinkStale means a symlink exists but points somewhere else.
	LinkStale
	// LinkConflict means a real file or directory occupies the target path.
	LinkConflict
)

func (s LinkState) String() string {
	switch s {
	case LinkAbsent:
		return "absent"
	case LinkOK:
		return "linked"
	case LinkStale:
		return "stale"
	case LinkConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// LinkStatus is the observed state of one dotfile entry.
type LinkStatus struct {
	Entry  DotfileEntry
	Target string
	State  LinkState
	// CurrentDest is the destination of the existing symlink when State is
	// LinkOK or LinkStale.
	CurrentDest string
	Err         error
}

// LinkReport collects the per-entry outcomes of a link or diff pass.
// Entries keep their input order (sorted by relative path).
type LinkReport struct {
	Statuses  []LinkStatus
	Linked    int
	Unchanged int
	Replaced  int
	Conflicts []LinkStatus
	Errors    []LinkStatus
}

// Failed reports whether any entry could not be applied.
func (r *LinkReport) Failed() bool {
	return len(r.Conflicts) > 0 || len(r.Errors) > 0
}
