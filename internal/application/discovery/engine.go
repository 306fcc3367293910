package discovery

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"px.dev/cli/internal/core/domain/script"
	manifestports "px.dev/cli/internal/core/ports/manifest"
)

// Result is the outcome of one discovery pass. It is read-only once
// Discover returns.
type Result struct {
	Scripts   *script.Registry
	Executors *script.ExecutorTable

	// Sources lists the manifests that were applied, in precedence order
	Sources []string
}

// Engine applies manifest loaders one at a time in precedence order. Each
// loader only adds names that earlier loaders did not define.
type Engine struct {
	locator manifestports.Locator
	loaders []manifestports.Loader
	logger  hclog.Logger
}

func NewEngine(locator manifestports.Locator, logger hclog.Logger, loaders ...manifestports.Loader) *Engine {
	return &Engine{
		locator: locator,
		loaders: loaders,
		logger:  logger.Named("discovery"),
	}
}

// Discover runs the discovery pass. Missing manifests are skipped; a
// manifest that cannot be decoded stops the pass with its error.
func (e *Engine) Discover(ctx context.Context) (*Result, error) {
	result := &Result{
		Scripts:   script.NewRegistry(),
		Executors: script.NewExecutorTable(),
	}

	for _, loader := range e.loaders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		format := loader.Format()
		file, found, err := e.locator.Locate(format)
		if err != nil {
			return nil, fmt.Errorf("failed to locate %s: %w", format, err)
		}
		if !found {
			e.logger.Debug("manifest not found", "format", format)
			continue
		}

		before := result.Scripts.Len()
		if err := loader.Load(ctx, file, result.Scripts, result.Executors); err != nil {
			return nil, err
		}

		e.logger.Debug("manifest applied", "path", file.Path(), "scripts_added", result.Scripts.Len()-before)
		result.Sources = append(result.Sources, file.Path())
	}

	return result, nil
}
