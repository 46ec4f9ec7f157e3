package chroma

import "errors"

// Sentinel errors. Callers wrap them with context and test with errors.Is.
var (
	// ErrDivisionByZero is returned for a zero fraction denominator or frequency divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidInput is returned when textual input cannot be parsed.
	ErrInvalidInput = errors.New("invalid input")
)
