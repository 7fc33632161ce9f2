package rdata

import (
	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/lex"
	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// WKSBitmap reads a whitespace-separated sequence of service mnemonics
// (or bare port numbers) starting with first and emits the RFC 1035
// §3.4.2 well-known-services bitmap: bit `p & 0x7` of byte `p >> 3` is
// set for every service port p present, byte 0 holding ports 0-7 with
// bit 0 its most significant bit. The bitmap's length is the number of
// bytes needed to hold the highest port seen; like the NSEC/NXT
// bitmaps this field is always last, so the terminating token is
// returned rather than re-lexed by the caller.
func WKSBitmap(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer) (lex.Token, error) {
	var bits [8192]byte // 65536 ports / 8 bits per byte
	highest := -1
	tok := first
	for {
		if tok.Kind != lex.Contiguous {
			break
		}
		port, ok := mnemonic.LookupService(string(tok.Text))
		if !ok {
			return tok, apperrors.Field(apperrors.UnsupportedType, tok.Pos, field, "unknown service mnemonic in WKS bitmap")
		}
		p := int(port)
		bits[p/8] |= 0x80 >> uint(p%8)
		if p > highest {
			highest = p
		}

		next, err := l.Next()
		if err != nil {
			return tok, err
		}
		tok = next
	}

	if highest >= 0 {
		buf.Raw(bits[:highest/8+1], field)
	}
	return tok, nil
}
