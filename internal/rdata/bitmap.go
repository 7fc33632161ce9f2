package rdata

import (
	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/lex"
	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// NSECTypeBitmap reads a whitespace-separated sequence of type
// mnemonics (or TYPEnn) starting with first, maintaining a presence
// vector per 256-bit window (RFC 4034 §4.1.2), and emits
// `[window, len, bytes...]` per non-empty window in ascending window
// order once the sequence ends. Bit numbering is MSB-first within each
// byte, per RFC 4034 §4.1.2: type t sets bit `t & 0xff` of window
// `t >> 8`, where bit 0 of a byte is its most significant bit.
//
// The terminating token (the first one that is not a type mnemonic) is
// returned so the control parser can dispatch on it directly instead
// of re-reading a token the field encoder already consumed — this
// field is always last in its RR, so there is nothing after it to
// re-lex.
func NSECTypeBitmap(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer) (lex.Token, error) {
	return typeBitmap(l, first, field, buf, false)
}

// NXTTypeBitmap is NSECTypeBitmap's single-window historical
// predecessor (RFC 2535 §5.2): the presence vector spans exactly
// window 0, long enough to hold the highest type number seen.
func NXTTypeBitmap(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer) (lex.Token, error) {
	return typeBitmap(l, first, field, buf, true)
}

func typeBitmap(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer, singleWindow bool) (lex.Token, error) {
	windows := make(map[int]*[32]byte)
	tok := first
	for {
		if tok.Kind != lex.Contiguous {
			break
		}
		typ, ok := mnemonic.LookupType(string(tok.Text))
		if !ok {
			return tok, apperrors.Field(apperrors.UnsupportedType, tok.Pos, field, "unknown type mnemonic in bitmap")
		}
		t := int(typ)
		window := t >> 8
		if singleWindow {
			window = 0
		}
		bit := t & 0xff
		bm, ok := windows[window]
		if !ok {
			bm = new([32]byte)
			windows[window] = bm
		}
		bm[bit/8] |= 0x80 >> uint(bit%8)

		next, err := l.Next()
		if err != nil {
			return tok, err
		}
		tok = next
	}

	for w := 0; w < 256; w++ {
		bm, ok := windows[w]
		if !ok {
			continue
		}
		length := 0
		for i := 31; i >= 0; i-- {
			if bm[i] != 0 {
				length = i + 1
				break
			}
		}
		if length == 0 {
			continue
		}
		buf.Byte(byte(w), field)
		buf.Byte(byte(length), field)
		buf.Raw(bm[:length], field)
	}
	return tok, nil
}
