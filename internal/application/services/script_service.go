package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"px.dev/cli/internal/core/domain/process"
	"px.dev/cli/internal/core/domain/script"
	procp "px.dev/cli/internal/core/ports/process"
)

// ErrScriptNotFound is returned when running a name that is not registered
var ErrScriptNotFound = errors.New("script not found")

// ScriptService runs registered scripts
type ScriptService struct {
	scripts  *script.Registry
	executor procp.Executor
	stderr   io.Writer
	logger   hclog.Logger
}

// NewScriptService creates a new script service
func NewScriptService(scripts *script.Registry, executor procp.Executor, stderr io.Writer, logger hclog.Logger) *ScriptService {
	return &ScriptService{
		scripts:  scripts,
		executor: executor,
		stderr:   stderr,
		logger:   logger.Named("run"),
	}
}

// Scripts returns the registered scripts sorted by name
func (s *ScriptService) Scripts() []script.Script {
	return s.scripts.Scripts()
}

// Run executes the named script with trailing arguments in the script's
// working directory and returns the child's exit code. A non-zero exit is
// reported on stderr but is not an error.
func (s *ScriptService) Run(ctx context.Context, name string, args []string) (int, error) {
	sc, ok := s.scripts.Get(name)
	if !ok {
		return 1, fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}

	cmd, err := process.NewCommand(sc.CommandLine(args), sc.Dir())
	if err != nil {
		return 1, fmt.Errorf("script %s: %w", name, err)
	}

	s.logger.Debug("running script", "script", name, "executor", sc.Executor(), "command", cmd.String())

	code, err := s.executor.Execute(ctx, cmd)
	if err != nil {
		return 1, fmt.Errorf("failed to run %s: %w", name, err)
	}

	if code != 0 {
		fmt.Fprintf(s.stderr, "Command exited with status: %d\n", code)
	}
	return code, nil
}
