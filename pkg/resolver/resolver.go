// Package resolver merges an environment's configuration with its
// inheritance chain, producing the effective variable and plugin maps.
// Resolution is a pure function of the loaded configs; it touches no
// filesystem state of its own.
package resolver

import (
	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/logging"
	"github.com/envmgr/envmgr/pkg/types"
)

// Loader loads a named environment's stored configuration.
type Loader interface {
	Load(name string) (*types.EnvironmentConfig, error)
}

// Resolver applies inheritance to environment configurations.
type Resolver struct {
	store Loader
}

// New creates a Resolver over the given config loader.
func New(store Loader) *Resolver {
	return &Resolver{store: store}
}

// Resolve produces the effective configuration of a named environment.
//
// The inheritance chain is followed to arbitrary depth. Variable maps merge
// key-wise with the child winning; plugin blocks replace wholesale per
// plugin name (a block is an opaque unit, never merged internally). A name
// recurring in the chain fails with ErrCyclicBase; a declared base that does
// not exist fails with ErrEnvNotFound naming the missing base.
func (r *Resolver) Resolve(name string) (*types.ResolvedEnvironment, error) {
	logger := logging.GetLogger("resolver")

	visited := make(map[string]bool)
	var chain []*types.EnvironmentConfig // child first

	current := name
	for {
		if visited[current] {
			return nil, errors.Newf(errors.ErrCyclicBase,
				"inheritance chain of %q revisits %q", name, current).
				WithDetail("environment", name).
				WithDetail("revisited", current)
		}
		visited[current] = true

		cfg, err := r.store.Load(current)
		if err != nil {
			if current != name && errors.IsErrorCode(err, errors.ErrEnvNotFound) {
				return nil, errors.Newf(errors.ErrEnvNotFound,
					"base environment %q (inherited by %q) does not exist", current, name).
					WithDetail("environment", current)
			}
			return nil, err
		}
		chain = append(chain, cfg)

		if cfg.Base == nil {
			break
		}
		current = *cfg.Base
	}

	resolved := &types.ResolvedEnvironment{
		Name:    name,
		Vars:    make(map[string]string),
		Plugins: make(map[string]interface{}),
	}

	// Merge root first so each child overrides its parent.
	for i := len(chain) - 1; i >= 0; i-- {
		cfg := chain[i]
		resolved.Chain = append(resolved.Chain, cfg.Name)
		for k, v := range cfg.EnvVars {
			resolved.Vars[k] = v
		}
		for p, block := range cfg.Plugins {
			resolved.Plugins[p] = block
		}
	}

	logger.Debug().
		Str("environment", name).
		Strs("chain", resolved.Chain).
		Int("vars", len(resolved.Vars)).
		Msg("Resolved environment")
	return resolved, nil
}
