// Package types defines the core data model shared across envmgr:
// environment configurations, resolved environments, dotfile entries,
// link reports, and the filesystem abstraction.
//
// Types here are plain values with no behavior beyond small helpers, so
// that the resolver and emitter stay pure functions over them.
package types
