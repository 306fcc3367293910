package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// NewLogger creates the px logger. Output is discarded unless debug is set,
// in which case debug-level messages go to output.
func NewLogger(debug bool, output io.Writer) hclog.Logger {
	level := hclog.Error
	if debug {
		level = hclog.Debug
	} else {
		output = io.Discard
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "px",
		Level:  level,
		Output: output,
	})
}
