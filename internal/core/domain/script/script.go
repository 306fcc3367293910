package script

import (
	"strings"
	"unicode"
)

// Script is a named command discovered in a manifest. Scripts are values;
// once created their fields never change.
type Script struct {
	name        string
	cmd         string
	description string
	dir         string
	source      string
	executor    Executor
}

// New creates a script. cmd may be empty when the executor delegates to a
// package manager that owns the command text.
func New(name, cmd, dir string, executor Executor) Script {
	return Script{
		name:     name,
		cmd:      cmd,
		dir:      dir,
		executor: executor,
	}
}

// WithDescription returns a copy of the script with a description
func (s Script) WithDescription(description string) Script {
	s.description = description
	return s
}

// WithSource returns a copy of the script recording the manifest it came from
func (s Script) WithSource(source string) Script {
	s.source = source
	return s
}

func (s Script) Name() string        { return s.name }
func (s Script) Cmd() string         { return s.cmd }
func (s Script) Description() string { return s.description }
func (s Script) Dir() string         { return s.dir }
func (s Script) Source() string      { return s.source }
func (s Script) Executor() Executor  { return s.executor }

// CommandLine returns the shell command line that runs the script with the
// given pass-through arguments.
func (s Script) CommandLine(args []string) string {
	rest := strings.Join(args, " ")

	var line string
	switch s.executor.kind {
	case Direct:
		line = s.cmd + " " + rest
	case Npm:
		line = "npm run " + s.name + " -- " + rest
	case Yarn:
		line = "yarn run " + s.name + " -- " + rest
	case Pnpm:
		line = "pnpm run " + s.name + " -- " + rest
	case Composer:
		line = "composer run-script " + s.name + " -- " + rest
	case Custom:
		line = s.executor.tool + " " + s.name + " -- " + rest
	}

	return strings.TrimRightFunc(line, unicode.IsSpace)
}
