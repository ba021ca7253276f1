// Package config reads and writes the on-disk configuration tree: one
// subtree per environment, each holding a config.yaml, a dotfiles tree and
// an optional plugins directory. The store has no knowledge of merging
// semantics; that belongs to the resolver.
//
// The package also loads the global application settings file
// (envmgr.toml) via koanf.
package config
