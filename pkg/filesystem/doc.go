// Package filesystem provides implementations of types.FS: the real OS
// filesystem used by the CLI, and an afero-backed one used by tests that
// do not need symlink fidelity.
package filesystem
