package rdata

import (
	"bytes"
	"testing"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/lex"
	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

func encodeRDATA(t *testing.T, rest string, typ mnemonic.Type, origin wire.Name) ([]byte, error) {
	t.Helper()
	l := lex.New("t", []byte(rest))
	first, err := l.Next()
	if err != nil {
		t.Fatalf("lex first token: %v", err)
	}
	return Encode(l, first, typ, origin, testPos)
}

func TestEncodeA(t *testing.T) {
	got, err := encodeRDATA(t, "192.168.0.1\n", mnemonic.TypeA, wire.Root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(got, []byte{192, 168, 0, 1}) {
		t.Errorf("got %v", got)
	}
}

func TestEncodeMX(t *testing.T) {
	origin := wire.Name{Labels: [][]byte{[]byte("example"), []byte("com")}}
	got, err := encodeRDATA(t, "10 mail\n", mnemonic.TypeMX, origin)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0x00, 0x0a, 4, 'm', 'a', 'i', 'l', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestEncodeTXTMultipleStrings(t *testing.T) {
	got, err := encodeRDATA(t, `"a" "bc"`+"\n", mnemonic.TypeTXT, wire.Root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{1, 'a', 2, 'b', 'c'}
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

// S1: `foo. 1s IN WKS 192.168.0.1 TCP smtp` -> type=11, protocol=6,
// services = 00 00 00 40 (spec.md §8 S1).
func TestEncodeWKSScenarioS1(t *testing.T) {
	got, err := encodeRDATA(t, "192.168.0.1 TCP smtp\n", mnemonic.TypeWKS, wire.Root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{192, 168, 0, 1, 6, 0x00, 0x00, 0x00, 0x40}
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

// S2: `bar.foo. 1s IN NSEC baz.foo. A NSEC` -> rdata after name =
// 00 06 40 00 00 00 00 01 (spec.md §8 S2).
func TestEncodeNSECScenarioS2(t *testing.T) {
	origin := wire.Name{Labels: [][]byte{[]byte("foo")}}
	got, err := encodeRDATA(t, "baz.foo. A NSEC\n", mnemonic.TypeNSEC, origin)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	nameLen := len("baz") + 1 + len("foo") + 1 + 1 // two length-prefixed labels + root
	bitmap := got[nameLen:]
	want := []byte{0x00, 0x06, 0x40, 0x00, 0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(bitmap, want) {
		t.Errorf("bitmap = %x, want %x", bitmap, want)
	}
}

func TestEncodeMissingFieldFails(t *testing.T) {
	_, err := encodeRDATA(t, "\n", mnemonic.TypeA, wire.Root)
	if err == nil {
		t.Fatal("expected missing-field error")
	}
	var perr *apperrors.ParseError
	if pe, ok := err.(*apperrors.ParseError); ok {
		perr = pe
	} else {
		t.Fatalf("error is not *apperrors.ParseError: %v", err)
	}
	if perr.Kind != apperrors.Syntax {
		t.Errorf("Kind = %v, want Syntax", perr.Kind)
	}
}

func TestEncodeTrailingDataFails(t *testing.T) {
	_, err := encodeRDATA(t, "192.168.0.1 extra\n", mnemonic.TypeA, wire.Root)
	if err == nil {
		t.Fatal("expected trailing-data error")
	}
}

func TestEncodeGenericRFC3597(t *testing.T) {
	l := lex.New("t", []byte(`\# 4 c0000201`+"\n"))
	first, err := l.Next()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	got, err := EncodeGeneric(l, first, testPos)
	if err != nil {
		t.Fatalf("EncodeGeneric: %v", err)
	}
	if !bytes.Equal(got, []byte{0xc0, 0x00, 0x02, 0x01}) {
		t.Errorf("got %x", got)
	}
}

func TestEncodeGenericLengthMismatch(t *testing.T) {
	l := lex.New("t", []byte(`\# 3 c0000201`+"\n"))
	first, err := l.Next()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if _, err := EncodeGeneric(l, first, testPos); err == nil {
		t.Fatal("expected length-mismatch error")
	}
}
