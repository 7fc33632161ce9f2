// Package rdata implements the per-type RDATA field encoders. Each
// function consumes already-lexed token text (internal/lex.Token.Text)
// and appends its wire-format encoding to a internal/wire.Buffer, or
// returns a categorical internal/errors.ParseError. Every encoder
// follows the same shape: validate the presentation text, write the
// wire bytes, and carry the field's name through for error messages.
package rdata

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"net/netip"
	"strconv"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// Protocol decodes a WKS protocol token ("tcp", "udp", or a bare
// decimal protocol number) into its one-octet wire form.
func Protocol(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	p, ok := mnemonic.LookupProtocol(string(text))
	if !ok {
		buf.FailField(apperrors.Syntax, field, pos, "unknown protocol mnemonic")
		return
	}
	buf.Byte(byte(p), field)
}

// RawText decodes a CAA-style value field (RFC 6844 §5.1.1): escaped
// presentation text copied to RDATA verbatim, with no length prefix
// (unlike a <character-string>, a CAA value occupies the rest of the
// RDATA and its length is implied by RDLENGTH).
func RawText(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	decoded, err := unescapeRaw(text, field, pos)
	if err != nil {
		buf.FailError(err)
		return
	}
	buf.Raw(decoded, field)
}

// Uint8 parses an unsigned 8-bit decimal field.
func Uint8(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	n, err := strconv.ParseUint(string(text), 10, 8)
	if err != nil {
		buf.FailField(apperrors.Syntax, field, pos, "expected an 8-bit integer")
		return
	}
	buf.Byte(byte(n), field)
}

// Uint16 parses an unsigned 16-bit decimal field.
func Uint16(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	n, err := strconv.ParseUint(string(text), 10, 16)
	if err != nil {
		buf.FailField(apperrors.Syntax, field, pos, "expected a 16-bit integer")
		return
	}
	buf.Uint16(uint16(n), field)
}

// Uint32 parses an unsigned 32-bit decimal field.
func Uint32(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	n, err := strconv.ParseUint(string(text), 10, 32)
	if err != nil {
		buf.FailField(apperrors.Syntax, field, pos, "expected a 32-bit integer")
		return
	}
	buf.Uint32(uint32(n), field)
}

// RRType parses an RR type mnemonic (or TYPEnn numeric form) into its
// 16-bit wire code, for fields like RRSIG's type-covered that name a
// type rather than carrying a bare integer.
func RRType(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	t, ok := mnemonic.LookupType(string(text))
	if !ok {
		buf.FailField(apperrors.UnsupportedType, field, pos, "unknown RR type mnemonic")
		return
	}
	buf.Uint16(uint16(t), field)
}

// Algorithm parses a DNSSEC algorithm mnemonic (or bare number) into
// its one-octet wire form, RFC 4034 appendix A.1.
func Algorithm(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	a, ok := mnemonic.LookupAlgorithm(string(text))
	if !ok {
		buf.FailField(apperrors.Syntax, field, pos, "unknown algorithm mnemonic")
		return
	}
	buf.Byte(byte(a), field)
}

// CertUsage parses a CERT RR certificate/key type mnemonic (or bare
// number) into its two-octet wire form, RFC 4398 §2.1.
func CertUsage(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	c, ok := mnemonic.LookupCertUsage(string(text))
	if !ok {
		buf.FailField(apperrors.Syntax, field, pos, "unknown certificate usage mnemonic")
		return
	}
	buf.Uint16(uint16(c), field)
}

// IPv4 parses a dotted-decimal IPv4 address into its 4-byte wire form.
func IPv4(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	addr, err := netip.ParseAddr(string(text))
	if err != nil || !addr.Is4() {
		buf.FailField(apperrors.Syntax, field, pos, "expected an IPv4 address")
		return
	}
	b := addr.As4()
	buf.Raw(b[:], field)
}

// IPv6 parses an IPv6 address (including the "::" and v4-mapped forms)
// into its 16-byte wire form.
func IPv6(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	addr, err := netip.ParseAddr(string(text))
	if err != nil || !addr.Is6() {
		buf.FailField(apperrors.Syntax, field, pos, "expected an IPv6 address")
		return
	}
	b := addr.As16()
	buf.Raw(b[:], field)
}

// Base16 decodes a hexadecimal token (base16/32/64 field, spec.md §4.6)
// and appends the raw bytes, with no length prefix.
func Base16(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	decoded, err := hex.DecodeString(string(text))
	if err != nil {
		buf.FailField(apperrors.Syntax, field, pos, "invalid hexadecimal data")
		return
	}
	buf.Raw(decoded, field)
}

// base32HexDash is the extended-hex base32 alphabet with '-' as the
// padding character, matching the NSEC3 hashed-owner presentation
// format spec.md §4.6 calls "hexbase32 (`-` pad)".
var base32HexDash = base32.HexEncoding.WithPadding('-')

// Base32 decodes a base32hex token with '-' padding.
func Base32(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	decoded, err := base32HexDash.DecodeString(string(text))
	if err != nil {
		buf.FailField(apperrors.Syntax, field, pos, "invalid base32 data")
		return
	}
	buf.Raw(decoded, field)
}

// Base64 decodes a standard base64 token (the key material format used
// by DNSKEY, RRSIG, TSIG, and similar RRs).
func Base64(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	decoded, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		buf.FailField(apperrors.Syntax, field, pos, "invalid base64 data")
		return
	}
	buf.Raw(decoded, field)
}

// Text decodes a <character-string> (RFC 1035 §3.3): a CONTIGUOUS or
// QUOTED token copied into RDATA preceded by a one-octet length, with
// `\DDD` (three decimal digits, value <= 255) and `\c` (literal
// escaped byte) escapes expanded. Per the decided Open Question
// (DESIGN.md), `\DDD` uses the correct generic formula
// `d0*100 + d1*10 + d2`, not the fallback path's repeated-`d0` bug.
func Text(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	decoded, err := unescapeText(text, field, pos)
	if err != nil {
		buf.FailError(err)
		return
	}
	buf.LengthPrefixed(decoded, field)
}

func unescapeText(text []byte, field string, pos apperrors.Position) ([]byte, error) {
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
	if len(out) > 255 {
		return nil, apperrors.Field(apperrors.Syntax, pos, field, "character-string exceeds 255 bytes")
	}
	return out, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

const (
	secondsPerDay  = 86400
	secondsPerHour = 3600
	secondsPerMin  = 60
)

var daysBeforeMonth = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func leapDaysSince1970(y int) int {
	leaps := 0
	for year := 1970; year < y; year++ {
		if isLeapYear(year) {
			leaps++
		}
	}
	return leaps
}

// Time decodes a YYYYMMDDHHMMSS timestamp (spec.md §4.6) into its
// 32-bit Unix-epoch-seconds wire form, rejecting years outside
// [1970, 2106], any calendar field out of its valid range, and any
// time past the last second a u32 count can hold (2106-02-07T06:28:15Z).
func Time(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	s := string(text)
	if len(s) != 14 {
		buf.FailField(apperrors.Syntax, field, pos, "expected a 14-digit YYYYMMDDHHMMSS timestamp")
		return
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			buf.FailField(apperrors.Syntax, field, pos, "timestamp must be all decimal digits")
			return
		}
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[4:6])
	day, _ := strconv.Atoi(s[6:8])
	hour, _ := strconv.Atoi(s[8:10])
	minute, _ := strconv.Atoi(s[10:12])
	second, _ := strconv.Atoi(s[12:14])

	if year < 1970 || year > 2106 {
		buf.FailField(apperrors.Semantic, field, pos, "year out of range [1970, 2106]")
		return
	}
	if month < 1 || month > 12 {
		buf.FailField(apperrors.Semantic, field, pos, "month out of range [1, 12]")
		return
	}
	maxDay := 31
	switch month {
	case 4, 6, 9, 11:
		maxDay = 30
	case 2:
		maxDay = 28
		if isLeapYear(year) {
			maxDay = 29
		}
	}
	if day < 1 || day > maxDay {
		buf.FailField(apperrors.Semantic, field, pos, "day out of range for month")
		return
	}
	if hour > 23 {
		buf.FailField(apperrors.Semantic, field, pos, "hour out of range [0, 23]")
		return
	}
	if minute > 59 || second > 59 {
		buf.FailField(apperrors.Semantic, field, pos, "minute/second out of range [0, 59]")
		return
	}

	days := 365*(year-1970) + leapDaysSince1970(year) + daysBeforeMonth[month]
	if month > 2 && isLeapYear(year) {
		days++
	}
	days += day - 1
	epoch := ((days*24+hour)*60+minute)*60 + second
	if epoch > 0xFFFFFFFF {
		buf.FailField(apperrors.Semantic, field, pos, "timestamp beyond the 32-bit seconds range")
		return
	}

	buf.Uint32(uint32(epoch), field)
}

func decodeHexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// EUI48 decodes a "xx-xx-xx-xx-xx-xx" hyphenated hex form (RFC 7043 §3.1).
func EUI48(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	decodeEUI(text, 6, field, pos, buf)
}

// EUI64 decodes a "xx-xx-xx-xx-xx-xx-xx-xx" hyphenated hex form (RFC 7043 §4.1).
func EUI64(text []byte, field string, pos apperrors.Position, buf *wire.Buffer) {
	decodeEUI(text, 8, field, pos, buf)
}

func decodeEUI(text []byte, groups int, field string, pos apperrors.Position, buf *wire.Buffer) {
	wantLen := groups*2 + (groups - 1)
	if len(text) != wantLen {
		buf.FailField(apperrors.Syntax, field, pos, "wrong length for EUI form")
		return
	}
	out := make([]byte, 0, groups)
	for g := 0; g < groups; g++ {
		base := g * 3
		if g > 0 && text[base-1] != '-' {
			buf.FailField(apperrors.Syntax, field, pos, "expected '-' between octet groups")
			return
		}
		hi, ok1 := decodeHexNibble(text[base])
		lo, ok2 := decodeHexNibble(text[base+1])
		if !ok1 || !ok2 {
			buf.FailField(apperrors.Syntax, field, pos, "expected two hex digits per octet group")
			return
		}
		out = append(out, hi<<4|lo)
	}
	buf.Raw(out, field)
}
