package process

import (
	"context"

	"px.dev/cli/internal/core/domain/process"
)

// Executor runs commands to completion
type Executor interface {
	// Execute runs cmd with inherited standard streams and returns the exit
	// code of the child. A non-nil error means the command could not be run.
	Execute(ctx context.Context, cmd process.Command) (int, error)
}
