package cli

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes used in JSON output and LoadError values.
const (
	ErrCodeNotFound    = "E_NOT_FOUND"
	ErrCodeParseFailed = "E_PARSE_FAILED"
	ErrCodeInvalid     = "E_INVALID"
	ErrCodeEncode      = "E_ENCODE"
	ErrCodeStore       = "E_STORE"
)

// LoadError reports a failure to load a model or specification file,
// with a CUE source position when one is available.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsLoadError reports whether err is a LoadError, unwrapping as
// needed.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
