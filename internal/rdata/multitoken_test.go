package rdata

import (
	"bytes"
	"testing"

	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

func TestEncodeDNSKEYMultiLineBase64(t *testing.T) {
	got, err := encodeRDATA(t, "256 3 8 ( AwEAAb\n ZT9W9w== )\n", mnemonic.TypeDNSKEY, wire.Root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got[0] != 0x01 || got[1] != 0x00 { // flags 256 = 0x0100
		t.Errorf("flags = %x %x", got[0], got[1])
	}
	if got[2] != 3 || got[3] != 8 {
		t.Errorf("protocol/algorithm = %v %v", got[2], got[3])
	}
}

func TestEncodeNSEC3SaltDash(t *testing.T) {
	got, err := encodeRDATA(t, "1 0 12 - 0A1B2C3D ( A NSEC )\n", mnemonic.TypeNSEC3, wire.Root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// hashalgorithm(1) flags(1) iterations(2) salt-length-implied-by-absence(0) ...
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("hashalgorithm/flags = %v %v", got[0], got[1])
	}
}

func TestEncodeCERTWithMnemonics(t *testing.T) {
	got, err := encodeRDATA(t, "PGP 12345 RSASHA256 QUJD\n", mnemonic.TypeCERT, wire.Root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0x00, 0x03, 0x30, 0x39, 8, 'A', 'B', 'C'}
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestWKSBitmapViaDescriptor(t *testing.T) {
	got, err := encodeRDATA(t, "10.0.0.1 tcp ftp smtp\n", mnemonic.TypeWKS, wire.Root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(got[:5], []byte{10, 0, 0, 1, 6}) {
		t.Errorf("address/protocol = %x", got[:5])
	}
}
