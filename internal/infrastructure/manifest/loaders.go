package manifest

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	manifestdomain "px.dev/cli/internal/core/domain/manifest"
	"px.dev/cli/internal/core/domain/script"
	manifestports "px.dev/cli/internal/core/ports/manifest"
)

// loaderFactories builds the loader for each supported format
var loaderFactories = map[manifestdomain.Format]func(hclog.Logger) manifestports.Loader{
	manifestdomain.FormatPxJSON:       func(l hclog.Logger) manifestports.Loader { return NewPxJSONLoader(l) },
	manifestdomain.FormatPxTOML:       func(l hclog.Logger) manifestports.Loader { return NewPxTOMLLoader(l) },
	manifestdomain.FormatPackageJSON:  func(l hclog.Logger) manifestports.Loader { return NewPackageJSONLoader(l) },
	manifestdomain.FormatCargoTOML:    func(l hclog.Logger) manifestports.Loader { return NewCargoTOMLLoader(l) },
	manifestdomain.FormatComposerJSON: func(l hclog.Logger) manifestports.Loader { return NewComposerJSONLoader(l) },
}

// Loaders returns one loader per manifest format, ordered by
// manifestdomain.Precedence
func Loaders(logger hclog.Logger) []manifestports.Loader {
	loaders := make([]manifestports.Loader, 0, len(manifestdomain.Precedence))
	for _, format := range manifestdomain.Precedence {
		if factory, ok := loaderFactories[format]; ok {
			loaders = append(loaders, factory(logger))
		}
	}
	return loaders
}

// PxJSONLoader loads the native px.json manifest
type PxJSONLoader struct {
	logger hclog.Logger
}

func NewPxJSONLoader(logger hclog.Logger) *PxJSONLoader {
	return &PxJSONLoader{logger: logger.Named("px.json")}
}

func (l *PxJSONLoader) Format() manifestdomain.Format { return manifestdomain.FormatPxJSON }

func (l *PxJSONLoader) Load(ctx context.Context, file manifestdomain.File, scripts *script.Registry, executors *script.ExecutorTable) error {
	doc, err := parseJSON(file)
	if err != nil {
		return err
	}

	registerOverrides(file, overridesFromJSON(doc.Get("executor")), executors, l.logger)
	insertScripts(file, scriptsFromJSON(doc.Get("scripts")), scripts, l.logger)
	return nil
}

// PxTOMLLoader loads the native px.toml manifest
type PxTOMLLoader struct {
	logger hclog.Logger
}

func NewPxTOMLLoader(logger hclog.Logger) *PxTOMLLoader {
	return &PxTOMLLoader{logger: logger.Named("px.toml")}
}

func (l *PxTOMLLoader) Format() manifestdomain.Format { return manifestdomain.FormatPxTOML }

func (l *PxTOMLLoader) Load(ctx context.Context, file manifestdomain.File, scripts *script.Registry, executors *script.ExecutorTable) error {
	doc, err := parseTOML(file)
	if err != nil {
		return err
	}

	if table, ok := lookupTable(doc, "executor"); ok {
		registerOverrides(file, overridesFromTOML(table), executors, l.logger)
	}
	if table, ok := lookupTable(doc, "scripts"); ok {
		insertScripts(file, scriptsFromTOML(table), scripts, l.logger)
	}
	return nil
}

// PackageJSONLoader loads scripts from package.json. The scripts themselves
// are run through the project's package manager.
type PackageJSONLoader struct {
	logger hclog.Logger
}

func NewPackageJSONLoader(logger hclog.Logger) *PackageJSONLoader {
	return &PackageJSONLoader{logger: logger.Named("package.json")}
}

func (l *PackageJSONLoader) Format() manifestdomain.Format { return manifestdomain.FormatPackageJSON }

func (l *PackageJSONLoader) Load(ctx context.Context, file manifestdomain.File, scripts *script.Registry, executors *script.ExecutorTable) error {
	doc, err := parseJSON(file)
	if err != nil {
		return err
	}

	executor := packageExecutor(doc, executors)
	l.logger.Debug("resolved executor", "executor", executor, "path", file.Path())

	insertDelegated(file, keysFromJSON(doc.Get("scripts")), nil, executor, scripts, l.logger)
	return nil
}

// packageExecutor picks the executor for package.json scripts. An explicit
// px.executor wins; otherwise the packageManager field is inferred and any
// executor table override for it applies.
func packageExecutor(doc gjson.Result, executors *script.ExecutorTable) script.Executor {
	if override := doc.Get("px.executor"); override.Type == gjson.String && override.Str != "" {
		return script.CustomExecutor(override.Str)
	}

	var packageManager string
	if field := doc.Get("packageManager"); field.Type == gjson.String {
		packageManager = field.Str
	}
	return executors.Resolve(script.InferFromPackageManager(packageManager))
}

// CargoTOMLLoader loads scripts from the metadata tables of Cargo.toml
type CargoTOMLLoader struct {
	logger hclog.Logger
}

func NewCargoTOMLLoader(logger hclog.Logger) *CargoTOMLLoader {
	return &CargoTOMLLoader{logger: logger.Named("Cargo.toml")}
}

func (l *CargoTOMLLoader) Format() manifestdomain.Format { return manifestdomain.FormatCargoTOML }

func (l *CargoTOMLLoader) Load(ctx context.Context, file manifestdomain.File, scripts *script.Registry, executors *script.ExecutorTable) error {
	doc, err := parseTOML(file)
	if err != nil {
		return err
	}

	// A workspace root may carry scripts for the whole workspace; package
	// scripts come first.
	for _, root := range []string{"package", "workspace"} {
		if table, ok := lookupTable(doc, root, "metadata", "scripts"); ok {
			insertScripts(file, scriptsFromTOML(table), scripts, l.logger)
		}
	}
	return nil
}

// ComposerJSONLoader loads scripts from composer.json
type ComposerJSONLoader struct {
	logger hclog.Logger
}

func NewComposerJSONLoader(logger hclog.Logger) *ComposerJSONLoader {
	return &ComposerJSONLoader{logger: logger.Named("composer.json")}
}

func (l *ComposerJSONLoader) Format() manifestdomain.Format { return manifestdomain.FormatComposerJSON }

func (l *ComposerJSONLoader) Load(ctx context.Context, file manifestdomain.File, scripts *script.Registry, executors *script.ExecutorTable) error {
	doc, err := parseJSON(file)
	if err != nil {
		return err
	}

	if override := doc.Get("px.executor"); override.Type == gjson.String {
		if !executors.Register(script.ComposerExecutor, override.Str) {
			l.logger.Debug("composer executor override ignored", "tool", override.Str, "path", file.Path())
		}
	}

	executor := executors.Resolve(script.ComposerExecutor)
	descriptions := stringsFromJSON(doc.Get("scripts-descriptions"))
	insertDelegated(file, keysFromJSON(doc.Get("scripts")), descriptions, executor, scripts, l.logger)
	return nil
}

var (
	_ manifestports.Loader = (*PxJSONLoader)(nil)
	_ manifestports.Loader = (*PxTOMLLoader)(nil)
	_ manifestports.Loader = (*PackageJSONLoader)(nil)
	_ manifestports.Loader = (*CargoTOMLLoader)(nil)
	_ manifestports.Loader = (*ComposerJSONLoader)(nil)
)
