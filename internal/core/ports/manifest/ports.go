package manifestports

import (
	"context"

	manifestdomain "px.dev/cli/internal/core/domain/manifest"
	"px.dev/cli/internal/core/domain/script"
)

// Locator finds the nearest manifest of a format
type Locator interface {
	// Locate returns the manifest closest to the start directory. found is
	// false when no ancestor directory contains a readable file of that name.
	Locate(format manifestdomain.Format) (file manifestdomain.File, found bool, err error)
}

// Loader applies one manifest format to the registry and executor table
type Loader interface {
	// Format returns the manifest format handled by this loader
	Format() manifestdomain.Format

	// Load decodes file and inserts its scripts and executor overrides.
	// Names already present are left untouched.
	Load(ctx context.Context, file manifestdomain.File, scripts *script.Registry, executors *script.ExecutorTable) error
}
