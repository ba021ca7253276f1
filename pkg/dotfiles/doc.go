// Package dotfiles decides which physical file owns each home-relative
// dotfile path and materializes those decisions as symlinks.
//
// Resolution and mutation are strictly separated: ResolveEntries computes a
// full plan without touching the home directory, and Linker applies or
// inspects it with per-entry independent outcomes.
package dotfiles
