package parser

import (
	"errors"
	"fmt"
)

// FormatError reports malformed benchmark output.
type FormatError struct {
	// Line is the 1-based line number, 0 when the input itself is unusable.
	Line int

	// Tuple is the 1-based tuple index within the line, 0 for line-level errors.
	Tuple int

	// Text is the offending tuple or line text.
	Text string

	// Reason describes what was wrong.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

func (e *FormatError) Error() string {
	switch {
	case e.Line == 0:
		return "format error: " + e.Reason
	case e.Tuple == 0:
		return fmt.Sprintf("format error: line %d: %s", e.Line, e.Reason)
	default:
		return fmt.Sprintf("format error: line %d, tuple %d %q: %s", e.Line, e.Tuple, e.Text, e.Reason)
	}
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err is or wraps a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
