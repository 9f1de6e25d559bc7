package solver

import (
	"errors"
	"fmt"

	"github.com/reactive-kit/gears/internal/gr1"
)

// UnknownSolverError reports an unrecognized solver name. Known names
// are "gr1c" and "jtlv".
type UnknownSolverError struct {
	Name string
}

func (e *UnknownSolverError) Error() string {
	return fmt.Sprintf("unknown solver %q (known: gr1c, jtlv)", e.Name)
}

// IsUnknownSolver reports whether err is an UnknownSolverError,
// unwrapping as needed.
func IsUnknownSolver(err error) bool {
	var ue *UnknownSolverError
	return errors.As(err, &ue)
}

// UnsupportedDomainError reports a variable domain the target input
// format cannot express.
type UnsupportedDomainError struct {
	Var    string
	Domain gr1.Domain
}

func (e *UnsupportedDomainError) Error() string {
	return fmt.Sprintf("variable %q: domain %s not expressible in gr1c input", e.Var, e.Domain)
}

// IsUnsupportedDomain reports whether err is an
// UnsupportedDomainError, unwrapping as needed.
func IsUnsupportedDomain(err error) bool {
	var ue *UnsupportedDomainError
	return errors.As(err, &ue)
}
