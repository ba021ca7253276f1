// Package shell turns resolved environments into the command stream a shell
// wrapper function evaluates, and installs the wrapper hooks themselves.
package shell

import (
	"os"
	"strings"
)

// Dialect selects the syntax of emitted activation commands.
type Dialect string

const (
	DialectBash Dialect = "bash"
	DialectZsh  Dialect = "zsh"
	DialectFish Dialect = "fish"
)

// ParseDialect maps a shell name to its dialect, or false for anything
// unsupported.
func ParseDialect(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case "bash":
		return DialectBash, true
	case "zsh":
		return DialectZsh, true
	case "fish":
		return DialectFish, true
	default:
		return "", false
	}
}

// Detect infers the caller's shell from the environment: ENVMGR_SHELL has
// priority, then FISH_VERSION, then $SHELL. Bash is the fallback so posix
// output is always available.
func Detect() Dialect {
	if s := os.Getenv("ENVMGR_SHELL"); s != "" {
		if d, ok := ParseDialect(s); ok {
			return d
		}
	}
	if os.Getenv("FISH_VERSION") != "" {
		return DialectFish
	}
	shell := os.Getenv("SHELL")
	switch {
	case strings.HasSuffix(shell, "fish"):
		return DialectFish
	case strings.HasSuffix(shell, "zsh"):
		return DialectZsh
	default:
		return DialectBash
	}
}

// isSafe reports whether a value can be emitted without quoting.
func isSafe(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.' || c == '/':
		default:
			return false
		}
	}
	return true
}

// sanitize strips line breaks; activation is a line protocol and a value
// containing a newline would otherwise be read as a second command.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// posixQuote quotes a value for bash/zsh export statements.
func posixQuote(value string) string {
	value = sanitize(value)
	if isSafe(value) {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

// fishQuote quotes a value for fish set statements. Inside fish single
// quotes both backslash and quote are special, so backslashes must be
// doubled before quotes are escaped.
func fishQuote(value string) string {
	value = sanitize(value)
	if isSafe(value) {
		return value
	}
	value = strings.ReplaceAll(value, `\`, `\\`)
	return "'" + strings.ReplaceAll(value, "'", `\'`) + "'"
}

// SetCmd renders the command that sets an exported variable.
func (d Dialect) SetCmd(key, value string) string {
	if d == DialectFish {
		return "set -gx " + key + " " + fishQuote(value)
	}
	return "export " + key + "=" + posixQuote(value)
}

// UnsetCmd renders the command that removes an exported variable.
func (d Dialect) UnsetCmd(key string) string {
	if d == DialectFish {
		return "set -e " + key
	}
	return "unset " + key
}
