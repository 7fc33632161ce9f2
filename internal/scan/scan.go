// Package scan implements the block scanner: it turns each 64-byte
// window of zone-file text into structural bitmasks (backslash, quote,
// comment, blank-or-newline, newline, '(' and ')'), with quotes and
// comments inside escaped or quoted runs resolved out, before the
// indexer ever looks at individual bytes.
//
// There is one code path: Block classifies the window with an ordinary
// byte loop producing uint64 bitmasks. detectISA reads
// golang.org/x/sys/cpu feature bits and records the result in
// Selected, but Block does not consult Selected; no vectorized
// (Westmere/Haswell) variant exists in this package.
package scan

import (
	"math/bits"

	"golang.org/x/sys/cpu"

	"github.com/nlnetlabs/zonescan/internal/classify"
)

// BlockSize is the number of input bytes scanned as one unit, matching
// spec.md's 64-byte block.
const BlockSize = 64

// ISA names the dispatch target chosen at startup.
type ISA int

const (
	// Scalar names a CPU with none of the feature sets below.
	Scalar ISA = iota
	// Westmere names a CPU with SSE4.2, PCLMULQDQ and POPCNT.
	Westmere
	// Haswell names a CPU with AVX2 and BMI2.
	Haswell
)

func (i ISA) String() string {
	switch i {
	case Westmere:
		return "westmere"
	case Haswell:
		return "haswell"
	default:
		return "scalar"
	}
}

// Selected is the ISA detected for this process at startup. It is
// informational only: Block runs the same byte-loop mask generator
// whatever its value.
var Selected = detectISA()

func detectISA() ISA {
	switch {
	case cpu.X86.HasAVX2 && cpu.X86.HasBMI2:
		return Haswell
	case cpu.X86.HasSSE42 && cpu.X86.HasPCLMULQDQ && cpu.X86.HasPOPCNT:
		return Westmere
	default:
		return Scalar
	}
}

// Masks holds the structural bitmasks for one block, bit i
// corresponding to block[i].
type Masks struct {
	Backslash uint64
	Quote     uint64
	Comment   uint64
	Blank     uint64 // blank-or-newline, undifferentiated
	Newline   uint64
	Open      uint64 // '('
	Close     uint64 // ')'
}

// Carry threads escape-run parity and quoted-string state across
// adjacent blocks: a block that ends mid-escape (an odd-length run of
// backslashes reaching the last byte) must tell the next block that its
// first byte is still escaped, and a block that ends inside a quoted
// string must tell the next block that it starts inside one.
type Carry struct {
	escaped  bool
	inString bool
}

// Block computes the structural masks for exactly BlockSize bytes
// of input (callers pad the final short block with zero bytes and mask
// off the invalid tail bits themselves), resolving escaped and quoted
// bytes so that a `;` or `"` inside a string or after a `\` never shows
// up as a structural position.
func Block(data [BlockSize]byte, carry *Carry) Masks {
	var raw Masks
	for i := 0; i < BlockSize; i++ {
		bit := uint64(1) << uint(i)
		switch classify.Jump(data[i]) {
		case classify.Backslash:
			raw.Backslash |= bit
		case classify.Quote:
			raw.Quote |= bit
		case classify.Semicolon:
			raw.Comment |= bit
		case classify.Blank:
			raw.Blank |= bit
		case classify.Newline:
			raw.Blank |= bit
			raw.Newline |= bit
		case classify.OpenParen:
			raw.Open |= bit
		case classify.CloseParen:
			raw.Close |= bit
		}
	}

	escaped, nextCarry := escapedPositions(raw.Backslash, carry.escaped)
	carry.escaped = nextCarry

	// A quote or comment start that is itself escaped is not
	// structural; it is literal text inside an adjacent token.
	raw.Quote &^= escaped
	raw.Comment &^= escaped

	// Nothing inside an (unescaped) quoted string is structural: the
	// lexer reads a QUOTED token whole, from the opening quote to its
	// matching close, so comments, blanks, newlines, and parens found
	// in between must not generate their own tape entries.
	inString := stringBodyMask(raw.Quote)
	if carry.inString {
		inString = ^PrefixXOR(raw.Quote) &^ raw.Quote
	}
	carry.inString = (PrefixXOR(raw.Quote)>>63)&1 == 1 != carry.inString
	raw.Comment &^= inString
	raw.Blank &^= inString
	raw.Newline &^= inString
	raw.Open &^= inString
	raw.Close &^= inString

	return raw
}

// escapedPositions returns, for a block's backslash mask, which byte
// positions are escaped by an immediately preceding run of
// backslashes, and whether the block ends with a "live" backslash run
// that escapes into the next block (an odd-length run reaching bit 63).
//
// Within a run of consecutive backslashes, each backslash is either
// "live" (it escapes the following byte) or "consumed" (it is itself
// the escaped byte of the preceding live backslash); the two states
// strictly alternate along the run. Only the run's parity and its
// incoming carry matter — backslash bytes are never quote or comment
// bytes, so the only bit this function needs to set is the one
// non-backslash byte immediately after the run, if the run's last
// backslash is live. This finds each run's start with TrailingZeros64
// and then clears the whole run's bits, rather than testing every bit.
func escapedPositions(backslash uint64, startsEscaped bool) (escaped uint64, endsEscaped bool) {
	pending := startsEscaped
	if startsEscaped && backslash&1 == 0 {
		// The carried escape consumes this block's first byte
		// directly (whatever it is); since that byte isn't part of a
		// backslash run, the escape does not propagate further.
		escaped |= 1
		pending = false
	}
	work := backslash
	for work != 0 {
		start := bits.TrailingZeros64(work)
		runEnd := start
		for (work>>uint(runEnd))&1 == 1 {
			runEnd++
		}
		length := runEnd - start
		firstLive := !pending
		lastLive := firstLive
		if (length-1)%2 == 1 {
			lastLive = !firstLive
		}
		if runEnd < 64 {
			if lastLive {
				escaped |= uint64(1) << uint(runEnd)
			}
			pending = false
		} else {
			// The run reaches the block boundary; its liveness
			// carries into the next block's first byte.
			pending = lastLive
		}
		work &^= bitRange(start, runEnd)
	}
	return escaped, pending
}

// bitRange returns a mask with bits [lo, hi) set.
func bitRange(lo, hi int) uint64 {
	if hi <= lo || lo >= 64 {
		return 0
	}
	if hi > 64 {
		hi = 64
	}
	return ((uint64(1) << uint(hi-lo)) - 1) << uint(lo)
}

// stringBodyMask turns a mask of quote-start/quote-end positions into
// a mask covering the bytes strictly between each open/close pair,
// using the same prefix-XOR trick as PrefixXOR: each quote flips
// "inside string" state, so the prefix-xor of the quote mask is 1 for
// every byte from an opening quote (inclusive) to its matching closing
// quote (exclusive); excluding the quote bits themselves yields the
// interior. The mask assumes the block starts outside a string; Block
// inverts the prefix-xor when Carry says it starts inside one.
func stringBodyMask(quote uint64) uint64 {
	return PrefixXOR(quote) &^ quote
}

// PrefixXOR computes, for each bit i of mask, the XOR of bits 0..i of
// mask (inclusive) — the bit-parallel equivalent of a carryless
// multiply by all-ones. Spec.md R3 requires this to match a serial
// XOR-prefix bit for bit; the doubling construction below is a
// standard identity (each step XORs in one more power-of-two span of
// already-resolved prefix) and needs no lookup table.
func PrefixXOR(mask uint64) uint64 {
	mask ^= mask << 1
	mask ^= mask << 2
	mask ^= mask << 4
	mask ^= mask << 8
	mask ^= mask << 16
	mask ^= mask << 32
	return mask
}
