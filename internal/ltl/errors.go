package ltl

import (
	"errors"
	"fmt"
)

// UnsupportedOperatorError reports a formula node that cannot be
// rendered in the requested dialect. It is always fatal to the render
// call; no partial output is produced.
type UnsupportedOperatorError struct {
	Op      Op
	Dialect Dialect
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %q not supported in %s syntax", e.Op.String(), e.Dialect)
}

// IsUnsupportedOperator reports whether err is an
// UnsupportedOperatorError, unwrapping as needed.
func IsUnsupportedOperator(err error) bool {
	var ue *UnsupportedOperatorError
	return errors.As(err, &ue)
}
