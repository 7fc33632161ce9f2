package wire

import (
	"golang.org/x/net/idna"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
)

// idnaProfile is the "lookup" profile (RFC 5891 plus the WHATWG/browser
// leniencies): the one suited to turning already-typed zone-file text
// into the ASCII a resolver expects, rather than the stricter
// registration profile a registrar would use.
var idnaProfile = idna.New(idna.MapForLookup(), idna.Transitional(false))

// hasNonASCII reports whether label contains any byte outside the
// 7-bit ASCII range.
func hasNonASCII(label []byte) bool {
	for _, b := range label {
		if b >= 0x80 {
			return true
		}
	}
	return false
}

// normalizeIDNA rewrites any non-ASCII label in labels to its Punycode
// "xn--" form, leaving ASCII labels untouched. Applied only when a
// Parser enables IDNA normalization (spec.md's owner/RDATA names are
// otherwise taken as opaque 8-bit-transparent label bytes, per §6).
func normalizeIDNA(labels [][]byte, pos apperrors.Position) ([][]byte, error) {
	copied := false
	out := labels
	for i, lbl := range labels {
		if !hasNonASCII(lbl) {
			continue
		}
		ascii, err := idnaProfile.ToASCII(string(lbl))
		if err != nil {
			return nil, apperrors.Newf(apperrors.Syntax, pos, "invalid internationalized label %q: %v", lbl, err)
		}
		if !copied {
			out = make([][]byte, len(labels))
			copy(out, labels)
			copied = true
		}
		out[i] = []byte(ascii)
	}
	return out, nil
}

// ParseNameIDNA is ParseName with non-ASCII labels additionally
// normalized to their Punycode ASCII form via golang.org/x/net/idna.
func ParseNameIDNA(text []byte, origin Name, pos apperrors.Position) (Name, error) {
	if len(text) == 1 && text[0] == '@' {
		return origin, nil
	}
	labels, absolute, err := SplitPresentation(text, pos)
	if err != nil {
		return Name{}, err
	}
	labels, err = normalizeIDNA(labels, pos)
	if err != nil {
		return Name{}, err
	}
	return Resolve(labels, absolute, origin), nil
}
