package main

import (
	"context"
	"fmt"
	"os"

	"px.dev/cli/internal/config"
	"px.dev/cli/internal/interfaces/cli"
	"px.dev/cli/internal/interfaces/di"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()
	if err := cfg.ApplyArgs(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := di.NewContainer(ctx, cfg, di.StdStreams())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return cli.Execute(ctx, container.GetCLIContainer(), args)
}
