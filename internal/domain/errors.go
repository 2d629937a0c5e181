package domain

import "errors"

// ErrNotFound marks operations against an id with no matching row.
var ErrNotFound = errors.New("hotel not found")

// ValidationError reports missing or malformed input. Its message is safe to
// show to callers verbatim.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Validation(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
