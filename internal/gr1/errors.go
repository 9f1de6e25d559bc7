package gr1

import (
	"errors"
	"fmt"
)

// ConflictingDeclarationError reports a variable declared twice with
// incompatible domains during specification combination, or declared
// on both the environment and the system side. Fatal: the combined
// specification would be ill-formed.
type ConflictingDeclarationError struct {
	Name string
	// A and B are the clashing domains; both nil when the conflict
	// is env-vs-sys ownership rather than a domain mismatch.
	A, B Domain
}

func (e *ConflictingDeclarationError) Error() string {
	if e.A != nil && e.B != nil {
		return fmt.Sprintf("variable %q declared with incompatible domains: %s vs %s",
			e.Name, e.A, e.B)
	}
	return fmt.Sprintf("variable %q declared as both an environment and a system variable", e.Name)
}

// IsConflictingDeclaration reports whether err is a
// ConflictingDeclarationError, unwrapping as needed.
func IsConflictingDeclaration(err error) bool {
	var ce *ConflictingDeclarationError
	return errors.As(err, &ce)
}
