package rdata

import (
	"net/netip"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/lex"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// SvcParamKey is an RFC 9460 §14.3.2 SvcParamKey code.
type SvcParamKey uint16

const (
	SvcParamMandatory     SvcParamKey = 0
	SvcParamALPN          SvcParamKey = 1
	SvcParamNoDefaultALPN SvcParamKey = 2
	SvcParamPort          SvcParamKey = 3
	SvcParamIPv4Hint      SvcParamKey = 4
	SvcParamECH           SvcParamKey = 5
	SvcParamIPv6Hint      SvcParamKey = 6
)

var svcParamNames = map[string]SvcParamKey{
	"mandatory":       SvcParamMandatory,
	"alpn":            SvcParamALPN,
	"no-default-alpn": SvcParamNoDefaultALPN,
	"port":            SvcParamPort,
	"ipv4hint":        SvcParamIPv4Hint,
	"ech":             SvcParamECH,
	"ipv6hint":        SvcParamIPv6Hint,
}

func lookupSvcParamKey(name string) (SvcParamKey, bool) {
	if k, ok := svcParamNames[name]; ok {
		return k, true
	}
	if rest, ok := strings.CutPrefix(name, "key"); ok {
		n, err := strconv.ParseUint(rest, 10, 16)
		if err == nil {
			return SvcParamKey(n), true
		}
	}
	return 0, false
}

// SVCBParams reads `key` or `key=value` tokens starting with first,
// validates there are no duplicate keys, and emits them as
// `key(2) len(2) value(len)` tuples in ascending key order (spec.md
// §4.6), regardless of the order they appeared in the zone file.
func SVCBParams(l *lex.Lexer, first lex.Token, field string, buf *wire.Buffer) (lex.Token, error) {
	values := make(map[SvcParamKey][]byte)
	order := make([]SvcParamKey, 0, 4)
	tok := first
	for {
		if tok.Kind != lex.Contiguous {
			break
		}
		raw := string(tok.Text)
		name, value, hasValue := strings.Cut(raw, "=")
		key, ok := lookupSvcParamKey(name)
		if !ok {
			return tok, apperrors.Field(apperrors.Syntax, tok.Pos, field, "unknown SvcParamKey")
		}
		if _, dup := values[key]; dup {
			return tok, apperrors.Field(apperrors.Syntax, tok.Pos, field, "duplicate SvcParamKey")
		}
		encoded, err := encodeSvcParamValue(key, value, hasValue, tok.Pos, field)
		if err != nil {
			return tok, err
		}
		values[key] = encoded
		order = append(order, key)

		next, err := l.Next()
		if err != nil {
			return tok, err
		}
		tok = next
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	for _, key := range order {
		v := values[key]
		buf.Uint16(uint16(key), field)
		buf.Uint16(uint16(len(v)), field)
		buf.Raw(v, field)
	}
	return tok, nil
}

func encodeSvcParamValue(key SvcParamKey, value string, hasValue bool, pos apperrors.Position, field string) ([]byte, error) {
	switch key {
	case SvcParamNoDefaultALPN:
		if hasValue {
			return nil, apperrors.Field(apperrors.Syntax, pos, field, "no-default-alpn takes no value")
		}
		return nil, nil

	case SvcParamPort:
		n, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, apperrors.Field(apperrors.Syntax, pos, field, "port value must be a 16-bit integer")
		}
		return []byte{byte(n >> 8), byte(n)}, nil

	case SvcParamMandatory:
		var out []byte
		for _, name := range strings.Split(value, ",") {
			k, ok := lookupSvcParamKey(name)
			if !ok {
				return nil, apperrors.Field(apperrors.Syntax, pos, field, "unknown key in mandatory list")
			}
			out = append(out, byte(k>>8), byte(k))
		}
		return out, nil

	case SvcParamALPN:
		var out []byte
		for _, id := range splitUnescapedComma(value) {
			decoded, err := unescapeText([]byte(id), field, pos)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(len(decoded)))
			out = append(out, decoded...)
		}
		return out, nil

	case SvcParamIPv4Hint:
		var out []byte
		for _, addrText := range strings.Split(value, ",") {
			addr, err := netip.ParseAddr(addrText)
			if err != nil || !addr.Is4() {
				return nil, apperrors.Field(apperrors.Syntax, pos, field, "expected an IPv4 address in ipv4hint")
			}
			b := addr.As4()
			out = append(out, b[:]...)
		}
		return out, nil

	case SvcParamIPv6Hint:
		var out []byte
		for _, addrText := range strings.Split(value, ",") {
			addr, err := netip.ParseAddr(addrText)
			if err != nil || !addr.Is6() {
				return nil, apperrors.Field(apperrors.Syntax, pos, field, "expected an IPv6 address in ipv6hint")
			}
			b := addr.As16()
			out = append(out, b[:]...)
		}
		return out, nil

	case SvcParamECH:
		buf := wire.NewBuffer(pos)
		Base64([]byte(value), field, pos, buf)
		if buf.Err() != nil {
			return nil, buf.Err()
		}
		return buf.Bytes(), nil

	default:
		// Generic/unrecognized numeric key: the value is opaque
		// escaped text, copied through unescaped with no length cap.
		return unescapeRaw([]byte(value), field, pos)
	}
}

func splitUnescapedComma(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == ',' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func unescapeRaw(text []byte, field string, pos apperrors.Position) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		b := text[i]
		if b != '\\' {
			out = append(out, b)
			continue
		}
		if i+3 < len(text) && isDigit(text[i+1]) && isDigit(text[i+2]) && isDigit(text[i+3]) {
			v := int(text[i+1]-'0')*100 + int(text[i+2]-'0')*10 + int(text[i+3]-'0')
			if v > 255 {
				return nil, apperrors.Field(apperrors.Syntax, pos, field, "decimal escape out of byte range")
			}
			out = append(out, byte(v))
			i += 3
			continue
		}
		if i+1 >= len(text) {
			return nil, apperrors.Field(apperrors.Syntax, pos, field, "trailing backslash with nothing to escape")
		}
		out = append(out, text[i+1])
		i++
	}
	return out, nil
}
