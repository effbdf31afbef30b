package design

import "fmt"

// Error reports a failed registry or streamlet operation.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes design errors.
type ErrorCode string

const (
	// ErrCodeDuplicateKey indicates an insertion under an already-used key.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeNotFound indicates a lookup that resolved to nothing.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeImplExists indicates a second implementation attached to a
	// streamlet.
	ErrCodeImplExists ErrorCode = "IMPL_EXISTS"

	// ErrCodeUnimplemented marks declared but unimplemented paths, such as
	// back-ends that are reserved without a generator behind them.
	ErrCodeUnimplemented ErrorCode = "UNIMPLEMENTED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
