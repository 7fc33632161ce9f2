package control

import (
	"bytes"
	"errors"
	"testing"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

type collectSink struct {
	rrs []RR
}

func (s *collectSink) RR(rr RR) error {
	s.rrs = append(s.rrs, rr)
	return nil
}

func rootOrigin() wire.Name {
	return wire.Name{Labels: [][]byte{[]byte("example"), []byte("com")}}
}

func TestOriginAndTTLDirectives(t *testing.T) {
	input := `$ORIGIN example.com.
$TTL 3600
www IN A 192.0.2.1
    IN A 192.0.2.2
`
	p := New(Options{DefaultClass: mnemonic.ClassIN, AcceptUnknownType: true})
	sink := &collectSink{}
	if err := p.Parse("t", []byte(input), sink); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sink.rrs) != 2 {
		t.Fatalf("got %d RRs, want 2", len(sink.rrs))
	}
	for i, rr := range sink.rrs {
		if rr.TTL != 3600 {
			t.Errorf("rr[%d].TTL = %d, want 3600", i, rr.TTL)
		}
		if rr.Owner.String() != "www.example.com." {
			t.Errorf("rr[%d].Owner = %s, want www.example.com.", i, rr.Owner.String())
		}
	}
	if !bytes.Equal(sink.rrs[1].RData, []byte{192, 0, 2, 2}) {
		t.Errorf("continuation rdata = %x", sink.rrs[1].RData)
	}
}

func TestBlankOwnerWithoutPriorOwnerFails(t *testing.T) {
	input := `$ORIGIN example.com.
$TTL 3600
    IN A 192.0.2.1
`
	p := New(Options{DefaultClass: mnemonic.ClassIN})
	if err := p.Parse("t", []byte(input), &collectSink{}); err == nil {
		t.Fatal("expected blank-owner error")
	}
}

func TestMissingTTLWithoutDefaultFails(t *testing.T) {
	input := `$ORIGIN example.com.
www IN A 192.0.2.1
`
	p := New(Options{DefaultClass: mnemonic.ClassIN})
	err := p.Parse("t", []byte(input), &collectSink{})
	if err == nil {
		t.Fatal("expected missing-TTL error")
	}
	var perr *apperrors.ParseError
	if pe, ok := err.(*apperrors.ParseError); ok {
		perr = pe
	} else {
		t.Fatalf("error is not *apperrors.ParseError: %v", err)
	}
	if perr.Kind != apperrors.Semantic {
		t.Errorf("Kind = %v, want Semantic", perr.Kind)
	}
}

func TestClassAndTTLEitherOrder(t *testing.T) {
	input := `$ORIGIN example.com.
a   3600 IN  A 192.0.2.1
b   IN   3600 A 192.0.2.2
`
	p := New(Options{DefaultClass: mnemonic.ClassIN})
	sink := &collectSink{}
	if err := p.Parse("t", []byte(input), sink); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sink.rrs) != 2 {
		t.Fatalf("got %d RRs, want 2", len(sink.rrs))
	}
	for i, rr := range sink.rrs {
		if rr.TTL != 3600 || rr.Class != mnemonic.ClassIN {
			t.Errorf("rr[%d] = ttl %d class %v, want 3600 IN", i, rr.TTL, rr.Class)
		}
	}
}

func TestPrettyTTLDuration(t *testing.T) {
	input := "$ORIGIN example.com.\nwww 1h30m IN A 192.0.2.1\n"
	p := New(Options{DefaultClass: mnemonic.ClassIN, PrettyTTL: true})
	sink := &collectSink{}
	if err := p.Parse("t", []byte(input), sink); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sink.rrs[0].TTL != 5400 {
		t.Errorf("TTL = %d, want 5400", sink.rrs[0].TTL)
	}
}

func TestUnknownTypeRejectedByDefault(t *testing.T) {
	input := "$ORIGIN example.com.\n$TTL 3600\nwww IN TYPE65412 \\# 2 abcd\n"
	p := New(Options{DefaultClass: mnemonic.ClassIN, AcceptUnknownType: false})
	err := p.Parse("t", []byte(input), &collectSink{})
	if err == nil {
		t.Fatal("expected unknown-type error")
	}
}

func TestUnknownTypeAcceptedAsGeneric(t *testing.T) {
	input := "$ORIGIN example.com.\n$TTL 3600\nwww IN TYPE65412 \\# 2 abcd\n"
	p := New(Options{DefaultClass: mnemonic.ClassIN, AcceptUnknownType: true})
	sink := &collectSink{}
	if err := p.Parse("t", []byte(input), sink); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(sink.rrs[0].RData, []byte{0xab, 0xcd}) {
		t.Errorf("rdata = %x, want abcd", sink.rrs[0].RData)
	}
}

type stubInclude struct {
	files map[string][]byte
}

func (s stubInclude) Open(path string) ([]byte, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

func TestIncludeDirective(t *testing.T) {
	included := "sub IN A 192.0.2.9\n"
	input := "$ORIGIN example.com.\n$TTL 3600\n$INCLUDE child.zone\nwww IN A 192.0.2.1\n"
	p := New(Options{
		DefaultClass: mnemonic.ClassIN,
		AllowInclude: true,
		Include:      stubInclude{files: map[string][]byte{"child.zone": []byte(included)}},
	})
	sink := &collectSink{}
	if err := p.Parse("t", []byte(input), sink); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sink.rrs) != 2 {
		t.Fatalf("got %d RRs, want 2", len(sink.rrs))
	}
	if sink.rrs[0].Owner.String() != "sub.example.com." {
		t.Errorf("included owner = %s, want sub.example.com.", sink.rrs[0].Owner.String())
	}
	if sink.rrs[1].Owner.String() != "www.example.com." {
		t.Errorf("second owner = %s, want www.example.com.", sink.rrs[1].Owner.String())
	}
}

func TestIncludeDisabledByDefault(t *testing.T) {
	input := "$ORIGIN example.com.\n$TTL 3600\n$INCLUDE child.zone\n"
	p := New(Options{DefaultClass: mnemonic.ClassIN})
	if err := p.Parse("t", []byte(input), &collectSink{}); err == nil {
		t.Fatal("expected NotPermitted error")
	}
}

func TestAtSignOwnerResolvesToOrigin(t *testing.T) {
	input := "$ORIGIN example.com.\n$TTL 3600\n@ IN A 192.0.2.1\n"
	p := New(Options{DefaultClass: mnemonic.ClassIN})
	sink := &collectSink{}
	if err := p.Parse("t", []byte(input), sink); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sink.rrs[0].Owner.String() != "example.com." {
		t.Errorf("owner = %s, want example.com.", sink.rrs[0].Owner.String())
	}
}
