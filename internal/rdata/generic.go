package rdata

import (
	"encoding/hex"
	"strconv"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/lex"
)

// EncodeGeneric parses the RFC 3597 §3 "unknown RR type" presentation
// form `\# <length> <hex...>`, used for any type the caller's
// accept_unknown_rrtype option allows through without a dedicated
// Descriptor: first must be the literal token `\#`, followed by a
// decimal byte count, followed by zero or more (optionally
// parenthesis-grouped) hex tokens whose decoded length must match
// exactly.
func EncodeGeneric(l *lex.Lexer, first lex.Token, pos apperrors.Position) ([]byte, error) {
	if string(first.Text) != `\#` {
		return nil, apperrors.Field(apperrors.Syntax, first.Pos, "rdlength", `expected the generic-RDATA marker "\#"`)
	}

	lenTok, err := l.Next()
	if err != nil {
		return nil, err
	}
	if lenTok.Kind != lex.Contiguous {
		return nil, apperrors.Field(apperrors.Syntax, lenTok.Pos, "rdlength", "missing field")
	}
	length, perr := strconv.ParseUint(string(lenTok.Text), 10, 16)
	if perr != nil {
		return nil, apperrors.Field(apperrors.Syntax, lenTok.Pos, "rdlength", "expected a 16-bit byte count")
	}

	next, err := l.Next()
	if err != nil {
		return nil, err
	}
	concat, term, err := gatherTokens(l, next)
	if err != nil {
		return nil, err
	}
	decoded, herr := hex.DecodeString(string(concat))
	if herr != nil {
		return nil, apperrors.Field(apperrors.Syntax, next.Pos, "rdata", "invalid hexadecimal data")
	}
	if uint64(len(decoded)) != length {
		return nil, apperrors.Newf(apperrors.Semantic, next.Pos,
			"generic RDATA declared length %d does not match %d decoded bytes", length, len(decoded))
	}
	if term.Kind != lex.Delimiter && term.Kind != lex.EOF {
		return nil, apperrors.New(apperrors.Syntax, term.Pos, "trailing data after generic RDATA")
	}
	return decoded, nil
}
