package di

import (
	"context"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"px.dev/cli/internal/application/discovery"
	"px.dev/cli/internal/application/services"
	"px.dev/cli/internal/config"
	"px.dev/cli/internal/infrastructure/manifest"
	"px.dev/cli/internal/infrastructure/process"
	"px.dev/cli/internal/interfaces/cli"
	"px.dev/cli/internal/logging"
)

// Streams are the standard streams handed to scripts and to the CLI
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger hclog.Logger

	// Discovery
	Locator   *manifest.AncestorLocator
	Engine    *discovery.Engine
	Discovery *discovery.Result

	// Execution
	Executor      *process.Executor
	ScriptService *services.ScriptService

	// CLI
	CLIContainer *cli.CLIContainer
}

// NewContainer creates the container and runs discovery from cfg.Dir. A
// manifest that cannot be decoded fails container creation.
func NewContainer(ctx context.Context, cfg *config.Config, streams Streams) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logging.NewLogger(cfg.Debug, streams.Err),
	}

	if err := container.initializeComponents(ctx, streams); err != nil {
		return nil, err
	}

	return container, nil
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents(ctx context.Context, streams Streams) error {
	// 1. Discover scripts
	c.Locator = manifest.NewAncestorLocator(c.Config.Dir)
	c.Engine = discovery.NewEngine(c.Locator, c.Logger, manifest.Loaders(c.Logger)...)

	result, err := c.Engine.Discover(ctx)
	if err != nil {
		return err
	}
	c.Discovery = result

	// 2. Initialize execution
	c.Executor = process.NewExecutorWithOptions(c.Config.Shell, streams.In, streams.Out, streams.Err, nil)
	c.ScriptService = services.NewScriptService(result.Scripts, c.Executor, streams.Err, c.Logger)

	// 3. Initialize CLI container
	c.CLIContainer = &cli.CLIContainer{
		Config:        c.Config,
		ScriptService: c.ScriptService,
		Logger:        c.Logger,
		In:            streams.In,
		Out:           streams.Out,
		Err:           streams.Err,
	}

	c.Logger.Debug("container initialized", "scripts", result.Scripts.Len(), "overrides", result.Executors.Len(), "sources", result.Sources)
	return nil
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}
