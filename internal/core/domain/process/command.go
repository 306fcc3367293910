package process

import (
	"fmt"
	"os"
	"path/filepath"
)

// Command is a shell command line to run in a working directory
type Command struct {
	line       string
	workingDir string
}

// NewCommand creates a Command value object. An empty line is valid and
// runs as a no-op shell. An empty working directory means the current
// directory; relative paths are made absolute.
func NewCommand(line string, workingDir string) (Command, error) {
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Command{}, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		workingDir = wd
	}

	if !filepath.IsAbs(workingDir) {
		absDir, err := filepath.Abs(workingDir)
		if err != nil {
			return Command{}, fmt.Errorf("failed to resolve %s: %w", workingDir, err)
		}
		workingDir = absDir
	}

	return Command{
		line:       line,
		workingDir: workingDir,
	}, nil
}

// Line returns the command line handed to the shell
func (c Command) Line() string {
	return c.line
}

// WorkingDir returns the working directory for the command
func (c Command) WorkingDir() string {
	return c.workingDir
}

// String returns a string representation of the command
func (c Command) String() string {
	return fmt.Sprintf("(cd %s && %s)", c.workingDir, c.line)
}
