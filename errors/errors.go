package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies sprite build failures.
type ErrorCode string

const (
	// ErrXMLParse indicates a source document is not well-formed XML.
	ErrXMLParse ErrorCode = "xml-parse-error"
	// ErrNoRoot indicates a source document has no root element.
	ErrNoRoot ErrorCode = "xml-no-root"
	// ErrIO indicates a file could not be read or written.
	ErrIO ErrorCode = "io-error"
	// ErrConfig indicates an invalid pipeline configuration.
	ErrConfig ErrorCode = "config-error"
)

// Error describes a sprite build failure with a code, the file it concerns,
// and the line/column position when the failure comes from the XML parser.
//
//nolint:errname // public API name mirrors the package name.
type Error struct {
	Err     error
	Code    ErrorCode
	Message string
	Path    string
	Line    int
	Column  int
}

// Error formats the failure for display, including code, message, and context.
func (e *Error) Error() string {
	if e == nil {
		return "error <nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Line > 0 {
		if e.Column > 0 {
			fmt.Fprintf(&b, " at line %d, column %d", e.Line, e.Column)
		} else {
			fmt.Fprintf(&b, " at line %d", e.Line)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an Error with a code and message.
func New(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf formats a message and builds an Error.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap builds an Error around cause.
func Wrap(code ErrorCode, cause error, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: cause}
}

// AtPosition returns a copy of e carrying the given line and column.
func (e *Error) AtPosition(line, column int) *Error {
	if e == nil {
		return nil
	}
	out := *e
	out.Line = line
	out.Column = column
	return &out
}

// WithPath attaches path to err when err is an *Error without a path.
// Other errors are returned unchanged.
func WithPath(err error, path string) error {
	e, ok := AsError(err)
	if !ok || e.Path != "" {
		return err
	}
	out := *e
	out.Path = path
	return &out
}

// AsError extracts the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err's chain contains an *Error with code.
func HasCode(err error, code ErrorCode) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}
