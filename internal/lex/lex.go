// Package lex implements the token reader: it turns the block scanner's
// per-block structural masks (internal/scan) into a stream of
// CONTIGUOUS, QUOTED, DELIMITER and EOF tokens, tracking the
// parenthesized-group state that suspends newline-as-terminator
// (spec.md §4.4, §4.8).
//
// Token boundaries are resolved directly against internal/scan.Masks,
// bit by bit, rather than by first materializing every boundary as an
// internal/tape.Entry: a comment's body and a plain inter-token blank
// never become tokens at all, so there is nothing for a generic
// boundary entry to usefully name there. internal/tape is still used
// here, but only to turn a byte offset into a {line, column} pair for
// diagnostics, which is the role spec.md §4.3 actually assigns it.
package lex

import (
	"math/bits"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/scan"
	"github.com/nlnetlabs/zonescan/internal/tape"
)

// Kind identifies the structural role of a Token.
type Kind uint8

const (
	// Contiguous is an unquoted run of non-structural bytes.
	Contiguous Kind = iota
	// Quoted is the content between a pair of unescaped quotes.
	Quoted
	// Delimiter is a run of one or more newlines outside a group.
	Delimiter
	// EOF is the terminator token; it repeats forever once reached.
	EOF
)

func (k Kind) String() string {
	switch k {
	case Contiguous:
		return "contiguous"
	case Quoted:
		return "quoted"
	case Delimiter:
		return "delimiter"
	case EOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Token is one lexical unit. Text is a slice into the Lexer's own
// buffer — callers that need to keep it past the next Next() call must
// copy it. AtLineStart is true for the first Contiguous or Quoted token
// following a Delimiter (or the start of input), the candidate owner
// field of a resource record.
type Token struct {
	Kind        Kind
	Text        []byte
	Pos         apperrors.Position
	AtLineStart bool
}

// Lexer reads tokens from one input buffer.
type Lexer struct {
	file        string
	buf         []byte // input plus one appended terminator byte
	blocks      []scan.Masks
	tp          *tape.Tape
	pos         int
	grouped     bool
	groupedAt   apperrors.Position
	atLineStart bool
}

// New builds a Lexer over input, identifying it as file in any
// position it reports.
func New(file string, input []byte) *Lexer {
	buf := make([]byte, len(input)+1)
	copy(buf, input)
	// buf's last byte is already zero, the terminator.
	l := &Lexer{
		file:        file,
		buf:         buf,
		blocks:      computeBlocks(buf),
		tp:          tape.Build(input),
		atLineStart: true,
	}
	return l
}

func computeBlocks(buf []byte) []scan.Masks {
	n := (len(buf) + scan.BlockSize - 1) / scan.BlockSize
	if n == 0 {
		n = 1
	}
	blocks := make([]scan.Masks, n)
	var carry scan.Carry
	for i := 0; i < n; i++ {
		var b [scan.BlockSize]byte
		start := i * scan.BlockSize
		end := start + scan.BlockSize
		if end > len(buf) {
			end = len(buf)
		}
		copy(b[:], buf[start:end])
		blocks[i] = scan.Block(b, &carry)
	}
	return blocks
}

func (l *Lexer) bitAt(pos int, get func(scan.Masks) uint64) bool {
	if pos < 0 || pos >= len(l.buf) {
		return false
	}
	blk := pos / scan.BlockSize
	if blk >= len(l.blocks) {
		return false
	}
	return get(l.blocks[blk])>>uint(pos%scan.BlockSize)&1 == 1
}

func (l *Lexer) isQuote(pos int) bool   { return l.bitAt(pos, func(m scan.Masks) uint64 { return m.Quote }) }
func (l *Lexer) isComment(pos int) bool { return l.bitAt(pos, func(m scan.Masks) uint64 { return m.Comment }) }
func (l *Lexer) isBlank(pos int) bool   { return l.bitAt(pos, func(m scan.Masks) uint64 { return m.Blank }) }
func (l *Lexer) isNewline(pos int) bool { return l.bitAt(pos, func(m scan.Masks) uint64 { return m.Newline }) }
func (l *Lexer) isOpen(pos int) bool    { return l.bitAt(pos, func(m scan.Masks) uint64 { return m.Open }) }
func (l *Lexer) isClose(pos int) bool   { return l.bitAt(pos, func(m scan.Masks) uint64 { return m.Close }) }

// nextSet returns the first position >= from where get's mask bit is
// set, or -1 if none exists before the terminator. It walks whole
// blocks with TrailingZeros64 rather than testing every byte.
func (l *Lexer) nextSet(from int, get func(scan.Masks) uint64) int {
	if from < 0 {
		from = 0
	}
	blk := from / scan.BlockSize
	bitOff := uint(from % scan.BlockSize)
	for ; blk < len(l.blocks); blk++ {
		mask := get(l.blocks[blk])
		if bitOff > 0 {
			mask &^= (uint64(1) << bitOff) - 1
		}
		if mask != 0 {
			pos := blk*scan.BlockSize + bits.TrailingZeros64(mask)
			if pos >= len(l.buf) {
				return -1
			}
			return pos
		}
		bitOff = 0
	}
	return -1
}

func (l *Lexer) position(offset int) apperrors.Position {
	return apperrors.Position{File: l.file, Line: l.tp.LineAt(offset), Column: l.tp.ColumnAt(offset)}
}

// Grouped reports whether the lexer is currently inside a '(' ... ')'
// group, where bare newlines no longer terminate a record.
func (l *Lexer) Grouped() bool { return l.grouped }

// Next returns the next token, or an error if the input is malformed
// (an unterminated quoted string, a nested '(', a stray ')', or
// end-of-file reached inside an open group).
func (l *Lexer) Next() (Token, error) {
	for {
		if l.pos >= len(l.buf)-1 {
			if l.grouped {
				return Token{}, apperrors.New(apperrors.Syntax, l.position(l.pos),
					"end of file reached inside a group opened at "+l.groupedAt.String())
			}
			return Token{Kind: EOF, Pos: l.position(l.pos)}, nil
		}

		switch {
		case l.isQuote(l.pos):
			start := l.pos
			contentStart := l.pos + 1
			end := l.nextSet(contentStart, func(m scan.Masks) uint64 { return m.Quote })
			if end < 0 {
				return Token{}, apperrors.New(apperrors.Syntax, l.position(start), "unterminated quoted string")
			}
			text := l.buf[contentStart:end]
			atStart := l.atLineStart
			l.atLineStart = false
			l.pos = end + 1
			return Token{Kind: Quoted, Text: text, Pos: l.position(start), AtLineStart: atStart}, nil

		case l.isOpen(l.pos):
			if l.grouped {
				return Token{}, apperrors.New(apperrors.NestedOpenBrace, l.position(l.pos), "nested '(' within an open group")
			}
			l.grouped = true
			l.groupedAt = l.position(l.pos)
			l.pos++
			continue

		case l.isClose(l.pos):
			if !l.grouped {
				return Token{}, apperrors.New(apperrors.UnmatchedCloseBrace, l.position(l.pos), "')' with no matching '('")
			}
			l.grouped = false
			l.pos++
			continue

		case l.isComment(l.pos):
			p := l.pos
			for p < len(l.buf)-1 && !l.isNewline(p) {
				p++
			}
			l.pos = p
			continue

		case l.isNewline(l.pos):
			start := l.pos
			p := l.pos
			for p < len(l.buf)-1 && l.isNewline(p) {
				p++
			}
			l.pos = p
			if l.grouped {
				// A newline run inside a group is not a delimiter; it is
				// ordinary whitespace between continuation fields.
				continue
			}
			l.atLineStart = true
			return Token{Kind: Delimiter, Pos: l.position(start)}, nil

		case l.isBlank(l.pos):
			l.pos++
			continue

		default:
			start := l.pos
			p := l.pos
			for p < len(l.buf)-1 && !l.isQuote(p) && !l.isComment(p) && !l.isBlank(p) && !l.isOpen(p) && !l.isClose(p) {
				p++
			}
			text := l.buf[start:p]
			atStart := l.atLineStart
			l.atLineStart = false
			l.pos = p
			return Token{Kind: Contiguous, Text: text, Pos: l.position(start), AtLineStart: atStart}, nil
		}
	}
}
