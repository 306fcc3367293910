package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"px.dev/cli/internal/application/services"
	"px.dev/cli/internal/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	Config        *config.Config
	ScriptService *services.ScriptService
	Logger        hclog.Logger

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// ExitError carries a script's non-zero exit code up to the process
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// RootFlags holds the flags that only apply to the root command
type RootFlags struct {
	List        bool
	Format      string
	Interactive bool
}

// NewRootCommand creates the px command with one subcommand per script
func NewRootCommand(container *CLIContainer) *cobra.Command {
	flags := &RootFlags{}

	rootCmd := &cobra.Command{
		Use:   "px",
		Short: "Run project scripts from px.json, px.toml, package.json, Cargo.toml and composer.json",
		Long: `px collects the scripts defined in the manifests found in the current
directory and its ancestors, and runs them with the right tool.

Scripts from px.json take precedence over px.toml, then package.json,
Cargo.toml and composer.json. Anything after the script name is passed
through to the script unchanged.

Examples:
  px --list                 # Show every discovered script
  px test -- --nocapture    # Run "test" with extra arguments
  px -C ../web build        # Discover from another directory
  px -i                     # Pick a script interactively`,
		Version:          Version,
		Args:             cobra.NoArgs,
		TraverseChildren: true,
		SilenceErrors:    true,
		SilenceUsage:     true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case flags.List:
				return printScripts(cmd.OutOrStdout(), container.ScriptService.Scripts(), flags.Format)
			case flags.Interactive:
				return runInteractive(cmd, container)
			default:
				return cmd.Help()
			}
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	container.Config.BindFlags(rootCmd.Flags())
	rootCmd.Flags().BoolVarP(&flags.List, "list", "l", false, "List discovered scripts")
	rootCmd.Flags().StringVar(&flags.Format, "format", formatText, "Listing format (text, json, yaml)")
	rootCmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Choose a script to run from a list")

	for _, s := range container.ScriptService.Scripts() {
		rootCmd.AddCommand(newScriptCommand(container, s.Name(), s.Description()))
	}

	if container.In != nil {
		rootCmd.SetIn(container.In)
	}
	if container.Out != nil {
		rootCmd.SetOut(container.Out)
	}
	if container.Err != nil {
		rootCmd.SetErr(container.Err)
	}

	return rootCmd
}

// newScriptCommand creates the subcommand that runs a single script. Flag
// parsing is disabled so every trailing token reaches the script verbatim,
// apart from a leading "--" separator.
func newScriptCommand(container *CLIContainer, name, description string) *cobra.Command {
	return &cobra.Command{
		Use:                name,
		Short:              description,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd.Context(), container, name, passThroughArgs(args))
		},
	}
}

// passThroughArgs drops the "--" that separates px's arguments from the
// script's. Later separators belong to the script.
func passThroughArgs(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

func runScript(ctx context.Context, container *CLIContainer, name string, args []string) error {
	code, err := container.ScriptService.Run(ctx, name, args)
	if err != nil {
		return err
	}
	container.Logger.Debug("script finished", "script", name, "exit_code", code)
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command with args and returns the process exit code
func Execute(ctx context.Context, container *CLIContainer, args []string) int {
	rootCmd := NewRootCommand(container)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
