package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"px.dev/cli/internal/core/domain/process"
	procp "px.dev/cli/internal/core/ports/process"
)

// Executor runs command lines through the system shell with the parent's
// standard streams attached.
type Executor struct {
	shell  string
	flag   string
	env    []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates an executor using shell, or the platform shell when
// shell is empty (sh -c, or cmd /C on Windows).
func NewExecutor(shell string) *Executor {
	return NewExecutorWithOptions(shell, os.Stdin, os.Stdout, os.Stderr, nil)
}

// NewExecutorWithOptions creates an executor with custom streams and
// environment. A nil env uses the current environment.
func NewExecutorWithOptions(shell string, stdin io.Reader, stdout, stderr io.Writer, env []string) *Executor {
	if env == nil {
		env = os.Environ()
	}

	name, flag := shellFor(shell, runtime.GOOS)
	return &Executor{
		shell:  name,
		flag:   flag,
		env:    env,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Execute runs the command and waits for it to exit
func (e *Executor) Execute(ctx context.Context, cmd process.Command) (int, error) {
	execCmd := exec.CommandContext(ctx, e.shell, e.flag, cmd.Line())
	execCmd.Dir = cmd.WorkingDir()
	execCmd.Env = e.env
	execCmd.Stdin = e.stdin
	execCmd.Stdout = e.stdout
	execCmd.Stderr = e.stderr

	// The child shares the terminal and receives interrupts itself; keep
	// them from terminating px before the child has exited.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	if err := execCmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start process: %w", err)
	}

	err := execCmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// Terminated by a signal
		return 1, nil
	}
	return -1, fmt.Errorf("failed to wait for process: %w", err)
}

// shellFor returns the shell executable and the flag that makes it run a
// command string.
func shellFor(shell, goos string) (string, string) {
	if shell == "" {
		if goos == "windows" {
			return "cmd", "/C"
		}
		return "sh", "-c"
	}

	base := strings.ToLower(filepath.Base(shell))
	switch strings.TrimSuffix(base, ".exe") {
	case "cmd":
		return shell, "/C"
	case "powershell", "pwsh":
		return shell, "-Command"
	default:
		return shell, "-c"
	}
}

var _ procp.Executor = (*Executor)(nil)
