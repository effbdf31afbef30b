package parser

import "fmt"

// ParseError reports a surface-syntax failure with its position.
type ParseError struct {
	// File is the name of the offending file.
	File string

	// Line is the 1-based line number, or 0 when unknown.
	Line int

	// Msg describes the failure.
	Msg string
}

// Error implements the error interface with the single-line
// file:line: message format.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

func newParseError(file string, line int, format string, args ...any) *ParseError {
	return &ParseError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}
