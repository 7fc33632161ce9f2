// Package classify holds the 256-entry byte tables that drive the
// zone-file lexer's structural classification: jump maps a byte to its
// Class, consulted by internal/scan.Block in place of a hand-written
// byte switch. forward marks the bytes after which a trailing blank or
// comment-terminator may be dropped without a branch, for a future
// index-skipping fast path. Both tables are immutable and may be
// shared freely across parser instances.
package classify

// Class is the structural class of a single input byte.
type Class uint8

const (
	// Contiguous bytes form the body of an unquoted token.
	Contiguous Class = iota
	// Quote opens or closes a quoted token.
	Quote
	// Newline starts a delimiter run.
	Newline
	// EOF marks the terminator byte appended to every input window.
	EOF
	// OpenParen suspends the newline-as-terminator rule.
	OpenParen
	// CloseParen resumes it.
	CloseParen
	// Blank is unquoted whitespace between tokens.
	Blank
	// Semicolon starts a comment that runs to end of line.
	Semicolon
	// Backslash escapes the following byte inside contiguous or quoted text.
	Backslash
)

// jump classifies every possible input byte. Unlisted bytes default to
// Contiguous, the common case for label and RDATA text.
var jump = buildJump()

// forward marks, for each byte, whether the token reader should advance
// one extra index position past it — used to drop a trailing blank or a
// semicolon's index entry without an explicit branch in lex.
var forward = buildForward()

func buildJump() [256]Class {
	var t [256]Class
	for i := range t {
		t[i] = Contiguous
	}
	t['"'] = Quote
	t['\n'] = Newline
	t['('] = OpenParen
	t[')'] = CloseParen
	t[' '] = Blank
	t['\t'] = Blank
	t[';'] = Semicolon
	t['\\'] = Backslash
	t[0] = EOF
	return t
}

func buildForward() [256]uint8 {
	var t [256]uint8
	t[' '] = 1
	t['\t'] = 1
	t[';'] = 1
	return t
}

// Jump returns the structural class of b.
func Jump(b byte) Class { return jump[b] }

// Forward returns 1 if a token ending at b should have its trailing
// index entry skipped, 0 otherwise.
func Forward(b byte) uint8 { return forward[b] }

// IsContiguous reports whether b belongs to an unquoted token body, i.e.
// it is none of quote, newline, EOF, paren, blank, semicolon, or backslash.
func IsContiguous(b byte) bool { return jump[b] == Contiguous }

// IsBlank reports whether b is unquoted whitespace.
func IsBlank(b byte) bool { return jump[b] == Blank }

// IsStructural reports whether b is one of the bytes the block scanner
// must locate: backslash, quote, semicolon, blank/newline, a paren, or
// the EOF terminator.
func IsStructural(b byte) bool {
	switch jump[b] {
	case Quote, Newline, Blank, Semicolon, Backslash, OpenParen, CloseParen, EOF:
		return true
	default:
		return false
	}
}
