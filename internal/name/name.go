package name

import (
	"fmt"
	"regexp"
)

// Reserved identifiers. Clk and Rst are claimed by the back-ends for the
// clock and reset ports of every generated component; This denotes the
// boundary pseudo-node of a structural implementation.
const (
	Clk  = "clk"
	Rst  = "rst"
	This = "this"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Name is a validated identifier.
//
// The zero value is the empty (invalid) name; construct names with New.
type Name string

// New validates s and returns it as a Name.
func New(s string) (Name, error) {
	if !namePattern.MatchString(s) {
		return "", &Error{Code: ErrCodeInvalidName, Name: s}
	}
	return Name(s), nil
}

// MustNew is New for string literals known to be valid. It panics on
// invalid input and is intended for tests and compile-time constants.
func MustNew(s string) Name {
	n, err := New(s)
	if err != nil {
		panic(err)
	}
	return n
}

// NewInterfaceKey validates s as an interface key. Interface keys follow the
// normal name rules but additionally exclude the reserved signal names.
func NewInterfaceKey(s string) (Name, error) {
	n, err := New(s)
	if err != nil {
		return "", err
	}
	if s == Clk || s == Rst {
		return "", &Error{Code: ErrCodeReservedName, Name: s}
	}
	return n, nil
}

// IsValid reports whether s satisfies the name rules.
func IsValid(s string) bool {
	return namePattern.MatchString(s)
}

func (n Name) String() string {
	return string(n)
}

// Error reports an identifier that violates the lexical rules.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Name is the offending input.
	Name string
}

// ErrorCode categorizes name errors.
type ErrorCode string

const (
	// ErrCodeInvalidName indicates the input does not match the name pattern.
	ErrCodeInvalidName ErrorCode = "INVALID_NAME"

	// ErrCodeReservedName indicates a reserved word was used as an interface key.
	ErrCodeReservedName ErrorCode = "RESERVED_NAME"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeReservedName:
		return fmt.Sprintf("%s: name %q is reserved", e.Code, e.Name)
	default:
		return fmt.Sprintf("%s: %q is not a valid name", e.Code, e.Name)
	}
}
