package validate

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	errEmpty      = errors.New("empty value")
	errUnparsable = errors.New("not a number")
)

// MissingValueError reports a field that is empty or cannot be parsed.
type MissingValueError struct {
	Field Field
	Cause error
}

func (e *MissingValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: missing value (%v)", e.Field, e.Cause)
	}
	return fmt.Sprintf("%s: missing value", e.Field)
}

func (e *MissingValueError) Unwrap() error {
	return e.Cause
}

// OutOfRangeError reports a parsed value that violates its field bound.
type OutOfRangeError struct {
	Field Field
	Value float64
	Bound Bound
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %g is out of range %s", e.Field, e.Value, e.Bound)
}

// Violations flattens a combined validation error into its parts.
func Violations(err error) []error {
	return multierr.Errors(err)
}

// FieldErrors groups violations by field. Errors that do not belong to a
// field are dropped.
func FieldErrors(err error) map[Field]error {
	out := make(map[Field]error)
	for _, e := range multierr.Errors(err) {
		var missing *MissingValueError
		var outOfRange *OutOfRangeError
		switch {
		case errors.As(e, &missing):
			out[missing.Field] = e
		case errors.As(e, &outOfRange):
			out[outOfRange.Field] = e
		}
	}
	return out
}
