package manifest

import (
	"errors"
	"fmt"
)

var errMalformedJSON = errors.New("malformed JSON document")

// ParseError reports a manifest that was found but could not be decoded
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
