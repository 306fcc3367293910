package config

import (
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// Config holds px's own settings. Values come from defaults, then the
// environment, then command-line flags.
type Config struct {
	// Debug enables debug logging to stderr
	Debug bool

	// Dir is the directory discovery starts from (empty = working directory)
	Dir string

	// Shell overrides the shell used to run scripts
	Shell string
}

// Load returns the configuration from the process environment
func Load() *Config {
	return LoadFromEnv(os.LookupEnv)
}

// LoadFromEnv reads configuration through lookup, falling back to defaults
func LoadFromEnv(lookup func(string) (string, bool)) *Config {
	cfg := &Config{}

	if value, ok := lookup("PX_DEBUG"); ok {
		if debug, err := strconv.ParseBool(value); err == nil {
			cfg.Debug = debug
		}
	}
	if value, ok := lookup("PX_DIR"); ok {
		cfg.Dir = value
	}
	if value, ok := lookup("PX_SHELL"); ok {
		cfg.Shell = value
	}

	return cfg
}

// BindFlags registers the settings flags on fs. The current values become
// the flag defaults, so flags only override what they explicitly set.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
	fs.StringVarP(&c.Dir, "dir", "C", c.Dir, "Discover manifests starting from this directory")
	fs.StringVar(&c.Shell, "shell", c.Shell, "Shell used to run scripts (default sh, cmd on Windows)")
}

// ApplyArgs applies settings flags that appear before the first positional
// argument. Scripts are discovered before the command tree exists, so these
// flags are read ahead of the full command-line parse.
func (c *Config) ApplyArgs(args []string) error {
	fs := pflag.NewFlagSet("px", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}

	c.BindFlags(fs)
	// Root-only boolean flags, declared so they never swallow the next token
	fs.BoolP("list", "l", false, "")
	fs.BoolP("interactive", "i", false, "")
	fs.BoolP("version", "v", false, "")

	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return err
	}
	return nil
}
