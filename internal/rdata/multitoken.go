package rdata

import (
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/lex"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// gatherTokens concatenates the text of first and every following
// CONTIGUOUS token up to (not including) the first non-CONTIGUOUS one,
// which spec.md §4.6 calls out explicitly for base64 ("the token may
// span multiple contiguous pieces, grouped within parentheses"). The
// field descriptor this serves is always the last in its RR, so the
// terminating token is handed back to the caller instead of re-lexed.
func gatherTokens(l *lex.Lexer, first lex.Token) (concat []byte, terminator lex.Token, err error) {
	tok := first
	for {
		if tok.Kind != lex.Contiguous {
			return concat, tok, nil
		}
		concat = append(concat, tok.Text...)
		next, nerr := l.Next()
		if nerr != nil {
			return concat, tok, nerr
		}
		tok = next
	}
}

// Base64List decodes a (possibly parenthesis-grouped, multi-line)
// base64 key or signature field: DNSKEY/RRSIG/KEY/SIG public-key and
// signature material, and OPENPGPKEY's bare key blob.
func Base64List(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer) (lex.Token, error) {
	concat, term, err := gatherTokens(l, first)
	if err != nil {
		return term, err
	}
	decoded, derr := base64.StdEncoding.DecodeString(string(concat))
	if derr != nil {
		return term, apperrors.Field(apperrors.Syntax, first.Pos, field, "invalid base64 data")
	}
	buf.Raw(decoded, field)
	return term, nil
}

// Base16List decodes a (possibly grouped) hex fingerprint field, e.g.
// SSHFP's fingerprint.
func Base16List(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer) (lex.Token, error) {
	concat, term, err := gatherTokens(l, first)
	if err != nil {
		return term, err
	}
	decoded, derr := hex.DecodeString(string(concat))
	if derr != nil {
		return term, apperrors.Field(apperrors.Syntax, first.Pos, field, "invalid hexadecimal data")
	}
	buf.Raw(decoded, field)
	return term, nil
}

// Base32List decodes a (possibly grouped) base32hex fingerprint field.
func Base32List(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer) (lex.Token, error) {
	concat, term, err := gatherTokens(l, first)
	if err != nil {
		return term, err
	}
	decoded, derr := base32HexDash.DecodeString(string(concat))
	if derr != nil {
		return term, apperrors.Field(apperrors.Syntax, first.Pos, field, "invalid base32 data")
	}
	buf.Raw(decoded, field)
	return term, nil
}

// Base16OrDash decodes a single-token hex field that may instead be a
// bare "-", NSEC3's RFC 5155 §3.2 notation for an empty salt.
func Base16OrDash(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	if len(text) == 1 && text[0] == '-' {
		return
	}
	Base16(text, field, pos, buf)
}
