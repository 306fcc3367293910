package manifest

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	manifestdomain "px.dev/cli/internal/core/domain/manifest"
	manifestports "px.dev/cli/internal/core/ports/manifest"
)

// AncestorLocator finds manifests by walking from a start directory up to
// the filesystem root. The nearest match wins.
type AncestorLocator struct {
	start string
}

// NewAncestorLocator creates a locator rooted at start. An empty start uses
// the process working directory at lookup time.
func NewAncestorLocator(start string) *AncestorLocator {
	return &AncestorLocator{start: start}
}

// Locate returns the manifest nearest to the start directory
func (l *AncestorLocator) Locate(format manifestdomain.Format) (manifestdomain.File, bool, error) {
	start, err := l.startDir()
	if err != nil {
		return manifestdomain.File{}, false, err
	}

	for dir := range Ancestors(start) {
		data, ok := readManifest(filepath.Join(dir, format.Filename()))
		if !ok {
			continue
		}
		return manifestdomain.File{Format: format, Dir: dir, Data: data}, true, nil
	}

	return manifestdomain.File{}, false, nil
}

func (l *AncestorLocator) startDir() (string, error) {
	start := l.start
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		start = wd
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	return abs, nil
}

// Ancestors yields dir and then each of its parents, ending at the root
func Ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		current := filepath.Clean(dir)
		for {
			if !yield(current) {
				return
			}
			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	}
}

// readManifest reads a regular file. Missing, unreadable and directory
// entries are all reported as not found so the walk continues upwards.
func readManifest(path string) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

var _ manifestports.Locator = (*AncestorLocator)(nil)
