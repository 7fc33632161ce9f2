package wire

import (
	"encoding/binary"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
)

// Buffer accumulates one RDATA's wire bytes, rejecting writes that
// would push it past MaxRDataLength (invariant I1: no RDATA encoder
// may silently overflow the 16-bit RDLENGTH field).
type Buffer struct {
	data []byte
	pos  apperrors.Position
	err  error
}

// NewBuffer starts an RDATA buffer for error reporting at pos.
func NewBuffer(pos apperrors.Position) *Buffer {
	return &Buffer{pos: pos, data: make([]byte, 0, 64)}
}

// Err returns the first bounds error encountered, if any. Once set, all
// further Buffer methods are no-ops, so callers may chain writes and
// check Err once at the end.
func (b *Buffer) Err() error { return b.err }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the accumulated RDATA. Callers must check Err first.
func (b *Buffer) Bytes() []byte { return b.data }

// FailField records a categorical error at pos, tagged with field, if
// no error has been recorded yet. Field encoders call this instead of
// returning an error directly so a chain of writes can be checked once.
func (b *Buffer) FailField(kind apperrors.Kind, field string, pos apperrors.Position, message string) {
	if b.err == nil {
		b.err = apperrors.Field(kind, pos, field, message)
	}
}

// FailError records err as the buffer's first error, if none is set yet.
func (b *Buffer) FailError(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Buffer) fail(field string) {
	if b.err == nil {
		b.err = apperrors.Field(apperrors.OutOfMemory, b.pos, field,
			"RDATA would exceed the 65535-byte RDLENGTH limit")
	}
}

func (b *Buffer) reserve(n int, field string) bool {
	if b.err != nil {
		return false
	}
	if len(b.data)+n > MaxRDataLength {
		b.fail(field)
		return false
	}
	return true
}

// Byte appends a single byte.
func (b *Buffer) Byte(v byte, field string) {
	if !b.reserve(1, field) {
		return
	}
	b.data = append(b.data, v)
}

// Uint16 appends v in network byte order.
func (b *Buffer) Uint16(v uint16, field string) {
	if !b.reserve(2, field) {
		return
	}
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// Uint32 appends v in network byte order.
func (b *Buffer) Uint32(v uint32, field string) {
	if !b.reserve(4, field) {
		return
	}
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// Raw appends raw bytes verbatim.
func (b *Buffer) Raw(v []byte, field string) {
	if !b.reserve(len(v), field) {
		return
	}
	b.data = append(b.data, v...)
}

// LengthPrefixed appends a single length byte followed by v, for
// <character-string> fields (RFC 1035 §3.3): v must fit in a byte.
func (b *Buffer) LengthPrefixed(v []byte, field string) {
	if len(v) > 255 {
		if b.err == nil {
			b.err = apperrors.Field(apperrors.Semantic, b.pos, field, "character-string exceeds 255 bytes")
		}
		return
	}
	if !b.reserve(1+len(v), field) {
		return
	}
	b.data = append(b.data, byte(len(v)))
	b.data = append(b.data, v...)
}

// Name appends n's wire encoding.
func (b *Buffer) Name(n Name, field string) {
	if b.err != nil {
		return
	}
	encoded, err := Encode(n, b.pos)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return
	}
	if !b.reserve(len(encoded), field) {
		return
	}
	b.data = append(b.data, encoded...)
}
