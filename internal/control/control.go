// Package control implements the per-record loop of the zone-file
// parser: it recognizes the $ORIGIN, $TTL and $INCLUDE directives,
// applies the blank-owner continuation rule, accepts class and TTL in
// either order before the type mnemonic, and dispatches each record's
// RDATA to internal/rdata.Encode.
package control

import (
	"strconv"
	"strings"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/lex"
	"github.com/nlnetlabs/zonescan/internal/mnemonic"
	"github.com/nlnetlabs/zonescan/internal/rdata"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// RR is one fully-decoded resource record, ready for delivery to the
// caller's Sink (spec.md §3 "RR").
type RR struct {
	Owner wire.Name
	TTL   uint32
	Class mnemonic.Class
	Type  mnemonic.Type
	RData []byte
}

// Sink receives each RR as it is completed. Returning a non-nil error
// aborts the parse after the current record's teardown (spec.md §5's
// cooperative, record-boundary cancellation).
type Sink interface {
	RR(RR) error
}

// IncludeOpener resolves a $INCLUDE directive's filename to its
// contents, the one place the core reaches out to an external
// collaborator (spec.md §1 "out of scope... file-descriptor and mmap
// plumbing" stays the caller's problem; this is just the seam).
type IncludeOpener interface {
	Open(path string) ([]byte, error)
}

// Options configures a Parser, per spec.md §6.
type Options struct {
	// DefaultOrigin is the origin in effect before any $ORIGIN
	// directive. Required before the first relative name is resolved.
	DefaultOrigin wire.Name
	HasOrigin     bool

	// DefaultTTL is used when a record omits TTL and no $TTL directive
	// has appeared yet.
	DefaultTTL uint32
	HasDefaultTTL bool

	// DefaultClass is used when a record omits its class field.
	DefaultClass mnemonic.Class

	// AcceptUnknownType enables the RFC 3597 `\# len hex...` generic
	// RDATA form for any type without a dedicated internal/rdata
	// Descriptor.
	AcceptUnknownType bool

	// PrettyTTL enables BIND-style duration literals ("1h30m") anywhere
	// a TTL value or $TTL argument is expected, in addition to bare
	// decimal seconds.
	PrettyTTL bool

	// AllowInclude enables $INCLUDE; Include resolves the referenced
	// file. A $INCLUDE encountered with AllowInclude false fails with
	// apperrors.NotPermitted.
	AllowInclude bool
	Include      IncludeOpener

	// IDNA normalizes non-ASCII name labels to Punycode ("xn--") before
	// wire encoding, via golang.org/x/net/idna. Zone-file names are
	// otherwise taken as opaque 8-bit-transparent bytes.
	IDNA bool
}

// Parser holds the mutable state spec.md §3 "Parser state" describes:
// current origin, default TTL/class, and the previous owner used by
// the blank-owner continuation rule.
type Parser struct {
	opts Options

	origin    wire.Name
	hasOrigin bool

	defaultTTL    uint32
	hasDefaultTTL bool

	class mnemonic.Class

	prevOwner    wire.Name
	hasPrevOwner bool
}

// New builds a Parser from opts.
func New(opts Options) *Parser {
	p := &Parser{opts: opts}
	p.origin = opts.DefaultOrigin
	p.hasOrigin = opts.HasOrigin
	p.defaultTTL = opts.DefaultTTL
	p.hasDefaultTTL = opts.HasDefaultTTL
	p.class = opts.DefaultClass
	if p.class == 0 {
		p.class = mnemonic.ClassIN
	}
	return p
}

// Parse drives the full pipeline over input, naming it file in any
// error position, delivering each RR to sink in document order.
func (p *Parser) Parse(file string, input []byte, sink Sink) error {
	l := lex.New(file, input)
	tok, err := l.Next()
	for {
		if err != nil {
			return err
		}
		switch tok.Kind {
		case lex.EOF:
			return nil
		case lex.Delimiter:
			tok, err = l.Next()
			continue
		}

		directive := strings.ToUpper(string(tok.Text))
		switch {
		case tok.Pos.Column == 1 && directive == "$ORIGIN":
			tok, err = p.handleOrigin(l)
		case tok.Pos.Column == 1 && directive == "$TTL":
			tok, err = p.handleTTL(l)
		case tok.Pos.Column == 1 && directive == "$INCLUDE":
			tok, err = p.handleInclude(l, sink)
		default:
			tok, err = p.handleRecord(l, tok, sink)
		}
	}
}

func (p *Parser) handleOrigin(l *lex.Lexer) (lex.Token, error) {
	nameTok, err := l.Next()
	if err != nil {
		return lex.Token{}, err
	}
	if nameTok.Kind != lex.Contiguous {
		return lex.Token{}, apperrors.Field(apperrors.Syntax, nameTok.Pos, "origin", "missing field")
	}
	name, err := p.resolveName(nameTok.Text, nameTok.Pos)
	if err != nil {
		return lex.Token{}, err
	}
	end, err := l.Next()
	if err != nil {
		return lex.Token{}, err
	}
	if end.Kind != lex.Delimiter && end.Kind != lex.EOF {
		return lex.Token{}, apperrors.New(apperrors.Syntax, end.Pos, "trailing data after $ORIGIN")
	}
	p.origin = name
	p.hasOrigin = true
	return l.Next()
}

func (p *Parser) handleTTL(l *lex.Lexer) (lex.Token, error) {
	valTok, err := l.Next()
	if err != nil {
		return lex.Token{}, err
	}
	if valTok.Kind != lex.Contiguous {
		return lex.Token{}, apperrors.Field(apperrors.Syntax, valTok.Pos, "ttl", "missing field")
	}
	ttl, ok := parseTTL(string(valTok.Text), p.opts.PrettyTTL)
	if !ok {
		return lex.Token{}, apperrors.Field(apperrors.Syntax, valTok.Pos, "ttl", "expected a TTL value")
	}
	end, err := l.Next()
	if err != nil {
		return lex.Token{}, err
	}
	if end.Kind != lex.Delimiter && end.Kind != lex.EOF {
		return lex.Token{}, apperrors.New(apperrors.Syntax, end.Pos, "trailing data after $TTL")
	}
	p.defaultTTL = ttl
	p.hasDefaultTTL = true
	return l.Next()
}

func (p *Parser) handleInclude(l *lex.Lexer, sink Sink) (lex.Token, error) {
	pathTok, err := l.Next()
	if err != nil {
		return lex.Token{}, err
	}
	if pathTok.Kind != lex.Contiguous && pathTok.Kind != lex.Quoted {
		return lex.Token{}, apperrors.Field(apperrors.Syntax, pathTok.Pos, "include", "missing field")
	}
	if !p.opts.AllowInclude || p.opts.Include == nil {
		return lex.Token{}, apperrors.New(apperrors.NotPermitted, pathTok.Pos, "$INCLUDE is disabled")
	}

	includeOrigin := p.origin
	next, err := l.Next()
	if err != nil {
		return lex.Token{}, err
	}
	if next.Kind == lex.Contiguous {
		name, nerr := p.resolveName(next.Text, next.Pos)
		if nerr != nil {
			return lex.Token{}, nerr
		}
		includeOrigin = name
		next, err = l.Next()
		if err != nil {
			return lex.Token{}, err
		}
	}
	if next.Kind != lex.Delimiter && next.Kind != lex.EOF {
		return lex.Token{}, apperrors.New(apperrors.Syntax, next.Pos, "trailing data after $INCLUDE")
	}

	data, oerr := p.opts.Include.Open(string(pathTok.Text))
	if oerr != nil {
		return lex.Token{}, apperrors.Wrap(apperrors.ReadError, pathTok.Pos, "failed to open $INCLUDE file", oerr)
	}

	child := New(Options{
		DefaultOrigin:     includeOrigin,
		HasOrigin:         true,
		DefaultTTL:        p.defaultTTL,
		HasDefaultTTL:     p.hasDefaultTTL,
		DefaultClass:      p.class,
		AcceptUnknownType: p.opts.AcceptUnknownType,
		PrettyTTL:         p.opts.PrettyTTL,
		AllowInclude:      p.opts.AllowInclude,
		Include:           p.opts.Include,
		IDNA:              p.opts.IDNA,
	})
	if perr := child.Parse(string(pathTok.Text), data, sink); perr != nil {
		return lex.Token{}, perr
	}
	return l.Next()
}

// handleRecord parses one resource record starting at first, which is
// either the owner field (column 1, per invariant I4) or, under the
// blank-owner continuation rule, the first post-owner field of a
// record reusing the previous line's owner.
func (p *Parser) handleRecord(l *lex.Lexer, first lex.Token, sink Sink) (lex.Token, error) {
	var owner wire.Name
	tok := first

	if first.Pos.Column == 1 {
		name, err := p.resolveName(first.Text, first.Pos)
		if err != nil {
			return lex.Token{}, err
		}
		owner = name
		next, err := l.Next()
		if err != nil {
			return lex.Token{}, err
		}
		tok = next
	} else {
		if !p.hasPrevOwner {
			return lex.Token{}, apperrors.New(apperrors.Syntax, first.Pos, "blank owner field with no previous owner")
		}
		owner = p.prevOwner
	}
	p.prevOwner = owner
	p.hasPrevOwner = true

	ttl := p.defaultTTL
	haveTTL := p.hasDefaultTTL
	class := p.class

	for i := 0; i < 2; i++ {
		if tok.Kind != lex.Contiguous {
			break
		}
		if c, ok := mnemonic.LookupClass(string(tok.Text)); ok {
			class = c
			next, err := l.Next()
			if err != nil {
				return lex.Token{}, err
			}
			tok = next
			continue
		}
		if v, ok := parseTTL(string(tok.Text), p.opts.PrettyTTL); ok {
			ttl = v
			haveTTL = true
			next, err := l.Next()
			if err != nil {
				return lex.Token{}, err
			}
			tok = next
			continue
		}
		break
	}

	if !haveTTL {
		return lex.Token{}, apperrors.New(apperrors.Semantic, tok.Pos,
			"record omits TTL and no $TTL default has been set")
	}

	if tok.Kind != lex.Contiguous {
		return lex.Token{}, apperrors.Field(apperrors.Syntax, tok.Pos, "type", "missing field")
	}
	typ, ok := mnemonic.LookupType(string(tok.Text))
	if !ok {
		return lex.Token{}, apperrors.Field(apperrors.UnsupportedType, tok.Pos, "type", "unknown type mnemonic")
	}

	rdataStart, err := l.Next()
	if err != nil {
		return lex.Token{}, err
	}

	var payload []byte
	pos := tok.Pos
	if _, known := rdata.Descriptors[typ]; known {
		payload, err = rdata.EncodeIDNA(l, rdataStart, typ, p.origin, pos, p.opts.IDNA)
	} else {
		if !p.opts.AcceptUnknownType {
			return lex.Token{}, apperrors.Newf(apperrors.UnsupportedType, pos, "no RDATA encoder registered for type %s", typ)
		}
		payload, err = rdata.EncodeGeneric(l, rdataStart, pos)
	}
	if err != nil {
		return lex.Token{}, err
	}

	if serr := sink.RR(RR{Owner: owner, TTL: ttl, Class: class, Type: typ, RData: payload}); serr != nil {
		return lex.Token{}, serr
	}

	return l.Next()
}

func (p *Parser) resolveName(text []byte, pos apperrors.Position) (wire.Name, error) {
	if !p.hasOrigin {
		absolute := false
		if len(text) != 1 || text[0] != '@' {
			_, abs, err := wire.SplitPresentation(text, pos)
			if err != nil {
				return wire.Name{}, err
			}
			absolute = abs
		}
		if !absolute {
			return wire.Name{}, apperrors.New(apperrors.Semantic, pos,
				"relative name used before any $ORIGIN or default origin was set")
		}
	}
	if p.opts.IDNA {
		return wire.ParseNameIDNA(text, p.origin, pos)
	}
	return wire.ParseName(text, p.origin, pos)
}

var ttlUnitSeconds = map[byte]uint64{
	'S': 1, 's': 1,
	'M': 60, 'm': 60,
	'H': 3600, 'h': 3600,
	'D': 86400, 'd': 86400,
	'W': 604800, 'w': 604800,
}

// parseTTL accepts a bare decimal seconds count, always, and, when
// pretty is true, a BIND-style duration literal made of one or more
// <digits><unit> pairs (units W/D/H/M/S, case-insensitive, e.g.
// "1h30m" or "1W2D").
func parseTTL(text string, pretty bool) (uint32, bool) {
	if n, err := strconv.ParseUint(text, 10, 32); err == nil {
		return uint32(n), true
	}
	if !pretty || text == "" {
		return 0, false
	}

	var total uint64
	i := 0
	for i < len(text) {
		start := i
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
		}
		if i == start || i >= len(text) {
			return 0, false
		}
		n, err := strconv.ParseUint(text[start:i], 10, 32)
		if err != nil {
			return 0, false
		}
		unit, ok := ttlUnitSeconds[text[i]]
		if !ok {
			return 0, false
		}
		total += n * unit
		i++
	}
	if total > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(total), true
}
