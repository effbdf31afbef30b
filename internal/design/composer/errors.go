package composer

import "fmt"

// Error reports a failed graph operation.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes composer errors.
type ErrorCode string

const (
	// ErrCodeNodeNotFound indicates an edge endpoint naming an unknown node.
	ErrCodeNodeNotFound ErrorCode = "NODE_NOT_FOUND"

	// ErrCodeIfaceNotFound indicates an edge endpoint naming an unknown
	// interface, or a pattern operand without the interfaces the pattern
	// requires.
	ErrCodeIfaceNotFound ErrorCode = "IFACE_NOT_FOUND"

	// ErrCodeNotAnOutput indicates an edge whose source interface does not
	// drive data.
	ErrCodeNotAnOutput ErrorCode = "NOT_AN_OUTPUT"

	// ErrCodeNotAnInput indicates an edge whose sink interface does not
	// receive data.
	ErrCodeNotAnInput ErrorCode = "NOT_AN_INPUT"

	// ErrCodeAlreadyConnected indicates an endpoint that is already part of
	// an edge. Interfaces are single-assignment on both sides.
	ErrCodeAlreadyConnected ErrorCode = "ALREADY_CONNECTED"

	// ErrCodeTypeMismatch indicates the endpoint types are not structurally
	// equal after inference.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeNoChainPort indicates a chain component without the literal
	// "in" or "out" interface the sugar requires.
	ErrCodeNoChainPort ErrorCode = "NO_CHAIN_PORT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
