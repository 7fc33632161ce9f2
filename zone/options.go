package zone

import (
	"github.com/nlnetlabs/zonescan/internal/errors"
	"github.com/nlnetlabs/zonescan/internal/wire"
)

// Option is a functional option for configuring a Parser.
//
// Example:
//
//	p := zone.New(
//	    zone.WithOrigin("example.com."),
//	    zone.WithDefaultTTL(3600),
//	)
type Option func(*Parser)

// WithOrigin sets the origin relative names are resolved against
// before any $ORIGIN directive appears. name must be a well-formed,
// absolute presentation-format domain name (a trailing "." is
// optional; it is treated as absolute either way). An invalid name is
// silently ignored; the Parser then behaves as if WithOrigin had not
// been called.
//
// Default: none — relative names fail to resolve until $ORIGIN or this
// option supplies one.
func WithOrigin(name string) Option {
	return func(p *Parser) {
		pos := errors.Position{File: "zone.WithOrigin"}
		labels, _, err := wire.SplitPresentation([]byte(name), pos)
		if err != nil {
			return
		}
		p.opts.DefaultOrigin = wire.Name{Labels: labels}
		p.opts.HasOrigin = true
	}
}

// WithDefaultTTL sets the TTL used when a record omits its own TTL and
// no $TTL directive has appeared yet.
//
// Default: none — such a record fails with a Semantic error.
func WithDefaultTTL(seconds uint32) Option {
	return func(p *Parser) {
		p.opts.DefaultTTL = seconds
		p.opts.HasDefaultTTL = true
	}
}

// WithDefaultClass sets the class used when a record omits its own
// class field.
//
// Default: ClassIN.
func WithDefaultClass(class Class) Option {
	return func(p *Parser) {
		p.opts.DefaultClass = class
	}
}

// WithAcceptUnknownType enables or disables the RFC 3597 `\# len
// hex...` generic RDATA form for type mnemonics without a dedicated
// encoder.
//
// Default: true.
func WithAcceptUnknownType(accept bool) Option {
	return func(p *Parser) {
		p.opts.AcceptUnknownType = accept
	}
}

// WithPrettyTTL enables or disables BIND-style duration literals
// ("1h30m") anywhere a TTL value is expected, in addition to bare
// decimal seconds.
//
// Default: true.
func WithPrettyTTL(pretty bool) Option {
	return func(p *Parser) {
		p.opts.PrettyTTL = pretty
	}
}

// WithInclude enables $INCLUDE, resolving each referenced path through
// opener.
//
// Default: disabled — a $INCLUDE directive fails with NotPermitted.
func WithInclude(opener IncludeOpener) Option {
	return func(p *Parser) {
		p.opts.AllowInclude = opener != nil
		p.opts.Include = opener
	}
}

// WithIDNA enables Punycode ("xn--") normalization of non-ASCII name
// labels (owner names and name-valued RDATA fields alike) via
// golang.org/x/net/idna. Zone-file names are otherwise taken as opaque
// 8-bit-transparent label bytes.
//
// Default: false.
func WithIDNA(enable bool) Option {
	return func(p *Parser) {
		p.opts.IDNA = enable
	}
}
