package rdata

import (
	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/lex"
	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// Encode runs typ's field Descriptor against the token stream starting
// at first, appending each field's wire encoding to a fresh
// internal/wire.Buffer and returning the finished RDATA. It implements
// spec.md §4.4's lex_field/lex_delimiter pair directly: a field reached
// at a DELIMITER or EOF token fails as a missing field, and anything
// left over after the last field fails as trailing data (I1's bounds
// check is enforced by internal/wire.Buffer itself as each field is
// written).
func Encode(l *lex.Lexer, first lex.Token, typ mnemonic.Type, origin wire.Name, pos apperrors.Position) ([]byte, error) {
	return EncodeIDNA(l, first, typ, origin, pos, false)
}

// EncodeIDNA is Encode with non-ASCII name fields (NS/CNAME/MX
// exchange, SOA mname/rname, and similar) additionally normalized to
// Punycode via internal/wire.ParseNameIDNA when idna is true.
func EncodeIDNA(l *lex.Lexer, first lex.Token, typ mnemonic.Type, origin wire.Name, pos apperrors.Position, idna bool) ([]byte, error) {
	desc, ok := Descriptors[typ]
	if !ok {
		return nil, apperrors.Newf(apperrors.UnsupportedType, pos, "no RDATA encoder registered for type %s", typ)
	}

	buf := wire.NewBuffer(pos)
	tok := first
	for i, f := range desc.Fields {
		if tok.Kind != lex.Contiguous && tok.Kind != lex.Quoted {
			return nil, apperrors.Field(apperrors.Syntax, tok.Pos, f.Name, "missing field")
		}

		last := i == len(desc.Fields)-1
		if last && f.Kind.unbounded() {
			term, err := encodeUnbounded(l, tok, f, buf)
			if err != nil {
				return nil, err
			}
			tok = term
			break
		}

		encodeBounded(f.Kind, tok.Text, f.Name, tok.Pos, origin, idna, buf)
		if buf.Err() != nil {
			return nil, buf.Err()
		}

		next, err := l.Next()
		if err != nil {
			return nil, err
		}
		tok = next
	}

	if tok.Kind != lex.Delimiter && tok.Kind != lex.EOF {
		return nil, apperrors.Newf(apperrors.Syntax, tok.Pos, "trailing data after %s RDATA", typ)
	}
	return buf.Bytes(), nil
}

func encodeBounded(kind FieldKind, text []byte, field string, pos apperrors.Position, origin wire.Name, idna bool, buf *wire.Buffer) {
	switch kind {
	case FieldUint8:
		Uint8(text, field, pos, buf)
	case FieldUint16:
		Uint16(text, field, pos, buf)
	case FieldUint32:
		Uint32(text, field, pos, buf)
	case FieldIPv4:
		IPv4(text, field, pos, buf)
	case FieldIPv6:
		IPv6(text, field, pos, buf)
	case FieldText:
		Text(text, field, pos, buf)
	case FieldRawText:
		RawText(text, field, pos, buf)
	case FieldBase16:
		Base16(text, field, pos, buf)
	case FieldBase32:
		Base32(text, field, pos, buf)
	case FieldBase64:
		Base64(text, field, pos, buf)
	case FieldTime:
		Time(text, field, pos, buf)
	case FieldEUI48:
		EUI48(text, field, pos, buf)
	case FieldEUI64:
		EUI64(text, field, pos, buf)
	case FieldBase16OrDash:
		Base16OrDash(text, field, pos, buf)
	case FieldRRType:
		RRType(text, field, pos, buf)
	case FieldAlgorithm:
		Algorithm(text, field, pos, buf)
	case FieldCertUsage:
		CertUsage(text, field, pos, buf)
	case FieldProtocol:
		Protocol(text, field, pos, buf)
	case FieldName:
		encodeName(text, field, pos, origin, idna, buf)
	default:
		buf.FailField(apperrors.Syntax, field, pos, "field kind has no bounded encoder")
	}
}

func encodeUnbounded(l *lex.Lexer, first lex.Token, f Field, buf *wire.Buffer) (lex.Token, error) {
	switch f.Kind {
	case FieldTextList:
		return textList(l, first, f.Name, buf)
	case FieldNSECBitmap:
		return NSECTypeBitmap(l, first, f.Name, buf)
	case FieldNXTBitmap:
		return NXTTypeBitmap(l, first, f.Name, buf)
	case FieldSVCBParams:
		return SVCBParams(l, first, f.Name, buf)
	case FieldWKSBitmap:
		return WKSBitmap(l, first, f.Name, buf)
	case FieldBase64List:
		return Base64List(l, first, f.Name, buf)
	case FieldBase32List:
		return Base32List(l, first, f.Name, buf)
	case FieldBase16List:
		return Base16List(l, first, f.Name, buf)
	default:
		return first, apperrors.Field(apperrors.Syntax, first.Pos, f.Name, "field kind has no unbounded encoder")
	}
}

// textList encodes TXT's one-or-more <character-string> fields
// (RFC 1035 §3.3.14): every CONTIGUOUS or QUOTED token up to the
// record delimiter is its own length-prefixed string.
func textList(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer) (lex.Token, error) {
	tok := first
	for {
		if tok.Kind != lex.Contiguous && tok.Kind != lex.Quoted {
			return tok, nil
		}
		Text(tok.Text, field, tok.Pos, buf)
		if buf.Err() != nil {
			return tok, buf.Err()
		}
		next, err := l.Next()
		if err != nil {
			return tok, err
		}
		tok = next
	}
}

// encodeName resolves a presentation-format name field against origin.
func encodeName(text []byte, field string, pos apperrors.Position, origin wire.Name, idna bool, buf *wire.Buffer) {
	var name wire.Name
	var err error
	if idna {
		name, err = wire.ParseNameIDNA(text, origin, pos)
	} else {
		name, err = wire.ParseName(text, origin, pos)
	}
	if err != nil {
		buf.FailError(err)
		return
	}
	buf.Name(name, field)
}
