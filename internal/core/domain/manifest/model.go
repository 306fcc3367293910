package manifestdomain

import "path/filepath"

// Format identifies a manifest file format consulted during discovery
type Format string

const (
	FormatPxJSON       Format = "px.json"
	FormatPxTOML       Format = "px.toml"
	FormatPackageJSON  Format = "package.json"
	FormatCargoTOML    Format = "Cargo.toml"
	FormatComposerJSON Format = "composer.json"
)

// Precedence lists the formats in the order they are applied. Definitions
// from an earlier format are never replaced by a later one.
var Precedence = []Format{
	FormatPxJSON,
	FormatPxTOML,
	FormatPackageJSON,
	FormatCargoTOML,
	FormatComposerJSON,
}

// Filename returns the file name searched for on disk
func (f Format) Filename() string {
	return string(f)
}

// File is a located manifest: its contents and the directory it was found in.
// Dir is also the working directory for scripts defined by the manifest.
type File struct {
	Format Format
	Dir    string
	Data   []byte
}

// Path returns the absolute path of the manifest
func (f File) Path() string {
	return filepath.Join(f.Dir, f.Format.Filename())
}
