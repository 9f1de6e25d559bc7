package synth

import "errors"

// EncodingOptionError reports an invalid encoding option combination.
// This is a programming-contract violation, not a data error.
type EncodingOptionError struct {
	Reason string
}

func (e *EncodingOptionError) Error() string {
	return "invalid encoding option: " + e.Reason
}

// IsEncodingOption reports whether err is an EncodingOptionError,
// unwrapping as needed.
func IsEncodingOption(err error) bool {
	var ee *EncodingOptionError
	return errors.As(err, &ee)
}
