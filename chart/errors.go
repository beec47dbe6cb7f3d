package chart

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotParsed     = errors.New("chart has not been parsed yet, call Parse first")
	ErrAlreadyParsed = errors.New("reader has already parsed a chart")
	ErrClosed        = errors.New("reader is closed")
)

// ParseError is the only error Parse returns for bad chart content. Line is
// 1-based. The underlying cause, when there is one, is kept for diagnostics
// and left out of the message.
type ParseError struct {
	Line    int
	Message string
	cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Cause() error { return e.cause }

func (e *ParseError) Unwrap() error { return e.cause }

func newParseError(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// asParseError passes a ParseError through and turns anything else into the
// generic "invalid <what> format" error at line.
func asParseError(err error, line int, what string) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return &ParseError{Line: line, Message: fmt.Sprintf("invalid %s format", what), cause: err}
}

// Diagnostic is a non-fatal finding made while parsing.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}
