// Package zone implements a streaming parser for DNS master-file
// ("zone file") text, RFC 1035 §5 and the accumulated body of
// record-type RFCs (RFC 2782 SRV, RFC 3596 AAAA, RFC 4034/4035 DNSSEC,
// RFC 4043 NSEC, RFC 7043 EUI-48/64, RFC 9460 SVCB/HTTPS, and others).
//
// # Overview
//
// A Parser reads zone-file text and, for each resource record, invokes
// a callback with the owner name, TTL, class, type, and the
// type-specific RDATA already encoded in DNS wire format — the caller
// never sees presentation text for RDATA fields, only finished wire
// bytes.
//
// # Quick Start
//
//	p := zone.New(zone.WithOrigin("example.com."), zone.WithDefaultTTL(3600))
//	err := p.Parse("example.com.zone", strings.NewReader(`
//	@   IN SOA  ns.example.com. hostmaster.example.com. 1 7200 3600 1209600 3600
//	    IN NS   ns.example.com.
//	www IN A    192.0.2.1
//	`), func(rr zone.RR) error {
//	    fmt.Printf("%s %d %s %s %x\n", rr.Owner, rr.TTL, rr.Class, rr.Type, rr.RData)
//	    return nil
//	})
//
// # Error Handling
//
// Parse returns a *zone.Error on the first malformed record; errors
// are categorical (zone.Error.Kind), not just text, so callers can
// branch on them, and always carry a {file, line, column} position.
// The parser does not attempt to resynchronise past a failing record.
//
// # Concurrency
//
// A Parser is not safe for concurrent use by multiple goroutines
// against the same Parse call, but distinct Parser values share no
// state and may run concurrently in separate goroutines.
//
// # Non-goals
//
// This package is not a resolver, not a DNSSEC validator, and not a
// zone-graph validator: it performs only per-record syntactic and
// RDATA-encoding validation, never SOA-at-apex or delegation checks.
package zone

import (
	"io"

	"github.com/nlnetlabs/zonescan/internal/control"
	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// Name is a decoded absolute domain name. It aliases the internal wire
// encoder's representation so that Parser callbacks can be written
// against zone.Name without importing an internal package.
type Name = wire.Name

// Class is a DNS RR class code (RFC 1035 §3.2.4).
type Class = mnemonic.Class

// Type is a DNS RR type code (RFC 1035 §3.2.2 and successors).
type Type = mnemonic.Type

// Well-known classes, re-exported for convenience.
const (
	ClassIN   = mnemonic.ClassIN
	ClassCS   = mnemonic.ClassCS
	ClassCH   = mnemonic.ClassCH
	ClassHS   = mnemonic.ClassHS
	ClassNONE = mnemonic.ClassNONE
	ClassANY  = mnemonic.ClassANY
)

// RR is one fully-decoded resource record (spec.md §3 "RR"): an owner
// name, TTL, class, type, and already wire-encoded RDATA, delivered to
// the caller's callback as a unit — never partially.
type RR struct {
	Owner Name
	TTL   uint32
	Class Class
	Type  Type
	RData []byte
}

// Kind categorizes a parse failure (spec.md §7). It aliases the
// internal categorical error kind for the same reason Name/Class/Type
// do above.
type Kind = apperrors.Kind

// Error kinds, re-exported for caller branching.
const (
	Syntax              = apperrors.Syntax
	Semantic            = apperrors.Semantic
	NotAFile            = apperrors.NotAFile
	ReadError           = apperrors.ReadError
	OutOfMemory         = apperrors.OutOfMemory
	NotPermitted        = apperrors.NotPermitted
	UnsupportedType     = apperrors.UnsupportedType
	NestedOpenBrace     = apperrors.NestedOpenBrace
	UnmatchedCloseBrace = apperrors.UnmatchedCloseBrace
)

// Error is the error type Parse returns for every parse failure: a
// categorical Kind plus the {file, line, column} position of the
// failing token. An error returned by the Callback is passed back
// unchanged.
type Error = apperrors.ParseError

// Callback is invoked once per completed RR, in strict document order.
// Returning a non-nil error aborts the parse after the current
// record's teardown (spec.md §5).
type Callback func(RR) error

// IncludeOpener resolves a $INCLUDE directive's path to its contents.
// It is the only external collaborator the core pipeline calls.
type IncludeOpener = control.IncludeOpener

// Parser parses zone-file text per the configuration established by
// its Options.
type Parser struct {
	opts control.Options
}

// New builds a Parser. Without WithOrigin, the first relative name the
// input requires resolving fails with a Semantic error; without
// WithDefaultTTL (or a $TTL directive before the first record), a
// record omitting its own TTL fails the same way.
func New(opts ...Option) *Parser {
	p := &Parser{opts: control.Options{
		DefaultClass:      mnemonic.ClassIN,
		AcceptUnknownType: true,
		PrettyTTL:         true,
	}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads all of r and delivers each RR to cb in document order.
// file names the input in any error position reported.
func (p *Parser) Parse(file string, r io.Reader, cb Callback) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return apperrors.Wrap(apperrors.ReadError, apperrors.Position{File: file}, "failed to read input", err)
	}
	return p.ParseBytes(file, input, cb)
}

// ParseBytes is Parse without the io.Reader indirection, for callers
// that already hold the zone text in memory.
func (p *Parser) ParseBytes(file string, input []byte, cb Callback) error {
	cp := control.New(p.opts)
	return cp.Parse(file, input, sinkFunc(cb))
}

type sinkFunc Callback

func (f sinkFunc) RR(rr control.RR) error {
	return f(RR{
		Owner: rr.Owner,
		TTL:   rr.TTL,
		Class: rr.Class,
		Type:  rr.Type,
		RData: rr.RData,
	})
}
