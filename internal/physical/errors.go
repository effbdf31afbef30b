package physical

import "fmt"

// Error reports an invalid physical stream parameter.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes physical stream errors.
type ErrorCode string

const (
	// ErrCodeEmptyComplexity indicates an empty complexity level list.
	ErrCodeEmptyComplexity ErrorCode = "EMPTY_COMPLEXITY"

	// ErrCodeBadComplexity indicates a malformed complexity string.
	ErrCodeBadComplexity ErrorCode = "BAD_COMPLEXITY"

	// ErrCodeZeroWidth indicates a field with a zero bit count.
	ErrCodeZeroWidth ErrorCode = "ZERO_WIDTH"

	// ErrCodeDuplicateField indicates two fields sharing a path name.
	ErrCodeDuplicateField ErrorCode = "DUPLICATE_FIELD"

	// ErrCodeZeroLanes indicates a stream constructed without element lanes.
	ErrCodeZeroLanes ErrorCode = "ZERO_LANES"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
