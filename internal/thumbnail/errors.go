package thumbnail

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingWidth is returned when a request carries no width at all.
	ErrMissingWidth = errors.New("no width specified")
	// ErrNonPositiveWidth is returned when the resolved destination width is zero or negative.
	ErrNonPositiveWidth = errors.New("invalid destination width")
	// ErrNonPositiveSourceWidth is returned when the source reports no usable width.
	ErrNonPositiveSourceWidth = errors.New("invalid source width")
	// ErrInvalidParameters signals a contract violation: a parameter string
	// was requested for a set that was never given a width.
	ErrInvalidParameters = errors.New("invalid transform parameters")
)

// ParamError carries the operation and offending value of a failed
// normalization or encoding step.
type ParamError struct {
	Op    string
	Value any
	Err   error
}

func (e *ParamError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Err, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether err is a bad-input failure that should be
// surfaced to the user as "cannot generate a thumbnail of this size".
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrMissingWidth) ||
		errors.Is(err, ErrNonPositiveWidth) ||
		errors.Is(err, ErrNonPositiveSourceWidth)
}

// IsContractViolation reports whether err stems from the pipeline being
// driven out of order rather than from user input.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}
