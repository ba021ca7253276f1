// Package plugins holds the plugin registry and lifecycle dispatch.
//
// Plugin configuration blocks are opaque to the core: each block is a
// semi-structured document keyed by plugin name, passed through without
// validation. Whatever a block means is the plugin's own business.
package plugins

import (
	"sort"

	"github.com/envmgr/envmgr/pkg/logging"
)

// Config is the opaque configuration block handed to a plugin, together
// with the environment it applies to.
type Config struct {
	Name string
	Env  string
	Data map[string]interface{}
}

// Plugin reacts to environment lifecycle events. Implementations must be
// side-effect free on error paths; a failing plugin aborts the operation.
type Plugin interface {
	Name() string
	OnAdd(cfg Config) error
	OnUse(cfg Config) error
	OnRemove(cfg Config) error
}

// Registry is a name-keyed collection of plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// DefaultRegistry returns a registry with all built-in plugins registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ghPlugin{})
	r.Register(&tailscalePlugin{})
	r.Register(&onePasswordPlugin{})
	return r
}

// Register adds a plugin, replacing any previous one with the same name.
func (r *Registry) Register(p Plugin) {
	r.plugins[p.Name()] = p
}

// Get looks up a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// Names returns all registered plugin names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// event dispatches one lifecycle hook for every configured plugin that is
// also registered. Unknown plugin names in the configuration are skipped;
// their blocks stay untouched for whoever does know them.
func (r *Registry) event(env string, blocks map[string]interface{}, hook func(Plugin, Config) error) error {
	logger := logging.GetLogger("plugins")

	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		plugin, ok := r.Get(name)
		if !ok {
			logger.Debug().Str("plugin", name).Str("environment", env).Msg("No registered plugin for config block")
			continue
		}
		cfg := Config{Name: name, Env: env}
		if data, ok := blocks[name].(map[string]interface{}); ok {
			cfg.Data = data
		}
		if err := hook(plugin, cfg); err != nil {
			return err
		}
	}
	return nil
}

// OnAdd runs every configured plugin's add hook.
func (r *Registry) OnAdd(env string, blocks map[string]interface{}) error {
	return r.event(env, blocks, func(p Plugin, cfg Config) error { return p.OnAdd(cfg) })
}

// OnUse runs every configured plugin's activation hook.
func (r *Registry) OnUse(env string, blocks map[string]interface{}) error {
	return r.event(env, blocks, func(p Plugin, cfg Config) error { return p.OnUse(cfg) })
}

// OnRemove runs every configured plugin's removal hook.
func (r *Registry) OnRemove(env string, blocks map[string]interface{}) error {
	return r.event(env, blocks, func(p Plugin, cfg Config) error { return p.OnRemove(cfg) })
}
