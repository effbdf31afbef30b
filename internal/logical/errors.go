package logical

import "fmt"

// TypeError reports an invalid logical type construction or an invalid
// operation on a logical type.
type TypeError struct {
	// Code identifies the error category.
	Code TypeErrorCode

	// Message is a human-readable description.
	Message string
}

// TypeErrorCode categorizes logical type errors.
type TypeErrorCode string

const (
	// ErrCodeZeroWidthBits indicates Bits was constructed with width 0.
	ErrCodeZeroWidthBits TypeErrorCode = "ZERO_WIDTH_BITS"

	// ErrCodeEmptyFields indicates a Group or Union without fields.
	ErrCodeEmptyFields TypeErrorCode = "EMPTY_FIELDS"

	// ErrCodeDuplicateField indicates a Group or Union with two fields of
	// the same name.
	ErrCodeDuplicateField TypeErrorCode = "DUPLICATE_FIELD"

	// ErrCodeBadThroughput indicates a Stream with non-positive throughput.
	ErrCodeBadThroughput TypeErrorCode = "BAD_THROUGHPUT"

	// ErrCodeNonElementUser indicates a Stream user type containing a
	// nested Stream.
	ErrCodeNonElementUser TypeErrorCode = "NON_ELEMENT_USER"

	// ErrCodeBadSelection indicates a field selection that is meaningless
	// for the type variant or out of range.
	ErrCodeBadSelection TypeErrorCode = "BAD_SELECTION"
)

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newTypeError(code TypeErrorCode, format string, args ...any) *TypeError {
	return &TypeError{Code: code, Message: fmt.Sprintf(format, args...)}
}
