package script

import (
	"errors"
	"fmt"
	"strings"
)

// Kind enumerates the ways a script can be executed
type Kind int

const (
	Direct Kind = iota
	Npm
	Yarn
	Pnpm
	Composer
	Custom
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Npm:
		return "npm"
	case Yarn:
		return "yarn"
	case Pnpm:
		return "pnpm"
	case Composer:
		return "composer"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrUnknownExecutor is returned when an executor name does not match a named executor
var ErrUnknownExecutor = errors.New("unknown executor")

// Executor identifies the mechanism used to run a script. The tool is only
// set for Custom executors. Executor values are comparable and may be used
// as map keys.
type Executor struct {
	kind Kind
	tool string
}

// Named executors
var (
	DirectExecutor   = Executor{kind: Direct}
	NpmExecutor      = Executor{kind: Npm}
	YarnExecutor     = Executor{kind: Yarn}
	PnpmExecutor     = Executor{kind: Pnpm}
	ComposerExecutor = Executor{kind: Composer}
)

// CustomExecutor creates an executor that delegates to the given tool
func CustomExecutor(tool string) Executor {
	return Executor{kind: Custom, tool: tool}
}

// ParseExecutor parses a package manager name (case-insensitive). Only the
// package manager executors can be named; Direct and Custom cannot.
func ParseExecutor(name string) (Executor, error) {
	switch strings.ToLower(name) {
	case "npm":
		return NpmExecutor, nil
	case "yarn":
		return YarnExecutor, nil
	case "pnpm":
		return PnpmExecutor, nil
	case "composer":
		return ComposerExecutor, nil
	default:
		return Executor{}, fmt.Errorf("%w: %q", ErrUnknownExecutor, name)
	}
}

// InferFromPackageManager maps a package.json "packageManager" value such
// as "pnpm@8.0.0" to an executor. Empty or unrecognized values yield Npm.
func InferFromPackageManager(packageManager string) Executor {
	switch {
	case strings.HasPrefix(packageManager, "pnpm"):
		return PnpmExecutor
	case strings.HasPrefix(packageManager, "yarn"):
		return YarnExecutor
	default:
		return NpmExecutor
	}
}

// Kind returns the executor kind
func (e Executor) Kind() Kind {
	return e.kind
}

// Tool returns the delegating tool of a Custom executor
func (e Executor) Tool() string {
	return e.tool
}

// IsNamed reports whether the executor is one of the package managers and
// therefore a valid executor table key.
func (e Executor) IsNamed() bool {
	switch e.kind {
	case Npm, Yarn, Pnpm, Composer:
		return true
	default:
		return false
	}
}

// String returns the executor name, or the tool for Custom executors
func (e Executor) String() string {
	if e.kind == Custom {
		return e.tool
	}
	return e.kind.String()
}

// MarshalText implements encoding.TextMarshaler
func (e Executor) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
