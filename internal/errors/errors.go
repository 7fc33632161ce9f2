// Package errors defines the categorical error kinds raised by the zone
// parser, per the error handling design: errors are typed, not textual,
// and always carry a file/line/column position so a caller can report
// the exact location of a failure without re-scanning the input.
package errors

import "fmt"

// Kind identifies the category of a parse error.
type Kind int

const (
	// Syntax covers malformed tokens, bad escapes, and wrong field shapes.
	Syntax Kind = iota
	// Semantic covers values out of their declared range (year > 2106,
	// port > 65535, and similar).
	Semantic
	// NotAFile is raised when an input source cannot be opened as a file.
	NotAFile
	// ReadError is raised when the input source fails during a read.
	ReadError
	// OutOfMemory is raised when the RDATA or name buffer would be exceeded.
	OutOfMemory
	// NotPermitted is raised for a disabled capability, such as $INCLUDE
	// when the caller has not enabled it.
	NotPermitted
	// UnsupportedType is raised when a type mnemonic is unknown and the
	// numeric TYPEnn form is disallowed.
	UnsupportedType
	// NestedOpenBrace is raised on an unmatched second '(' in a record.
	NestedOpenBrace
	// UnmatchedCloseBrace is raised on a ')' with no matching '('.
	UnmatchedCloseBrace
)

// String names a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case NotAFile:
		return "not-a-file"
	case ReadError:
		return "read-error"
	case OutOfMemory:
		return "out-of-memory"
	case NotPermitted:
		return "not-permitted"
	case UnsupportedType:
		return "unsupported-type"
	case NestedOpenBrace:
		return "nested-open-brace"
	case UnmatchedCloseBrace:
		return "unmatched-close-brace"
	default:
		return "unknown"
	}
}

// Position locates an error in the input stream.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is the single error type returned by the stages of the
// pipeline that can fail: the lexer, the control parser, the name
// encoder, and the RDATA encoders (the block scanner and the tape
// return no errors). Field is the encoder's name for the
// field being parsed when the error originated there (empty otherwise).
type ParseError struct {
	Kind    Kind
	Pos     Position
	Field   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s (field %q)", e.Pos, e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// New builds a ParseError with no underlying cause.
func New(kind Kind, pos Position, message string) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Message: message}
}

// Newf builds a ParseError from a formatted message.
func Newf(kind Kind, pos Position, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Field annotates a ParseError with the field descriptor name that was
// being decoded when the error occurred.
func Field(kind Kind, pos Position, field, message string) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Field: field, Message: message}
}

// Wrap builds a ParseError around an underlying I/O or system error.
func Wrap(kind Kind, pos Position, message string, err error) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Message: message, Err: err}
}
