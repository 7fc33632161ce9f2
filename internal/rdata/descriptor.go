package rdata

import "github.com/nlnetlabs/zonescan/internal/mnemonic"

// FieldKind names the presentation-to-wire grammar a Descriptor field
// uses. Most are single-token primitives; the handful ending in "List"
// or "Bitmap" or "Params" are unbounded: they consume tokens until the
// record's delimiter and must only appear as a Descriptor's last field.
type FieldKind int

const (
	FieldUint8 FieldKind = iota
	FieldUint16
	FieldUint32
	FieldIPv4
	FieldIPv6
	FieldName
	FieldText
	FieldTextList
	FieldRawText
	FieldBase16
	FieldBase32
	FieldBase64
	FieldTime
	FieldEUI48
	FieldEUI64
	FieldNSECBitmap
	FieldNXTBitmap
	FieldSVCBParams
	FieldWKSBitmap
	FieldBase64List
	FieldBase32List
	FieldBase16List
	FieldBase16OrDash
	FieldRRType
	FieldAlgorithm
	FieldCertUsage
	FieldProtocol
)

func (k FieldKind) unbounded() bool {
	switch k {
	case FieldTextList, FieldNSECBitmap, FieldNXTBitmap, FieldSVCBParams, FieldWKSBitmap,
		FieldBase64List, FieldBase32List, FieldBase16List:
		return true
	default:
		return false
	}
}

// Field is one position in an RR's RDATA, named for error attribution.
type Field struct {
	Kind FieldKind
	Name string
}

// Descriptor is the ordered field list for one RR type's RDATA, per
// spec.md §4.6/§204-208. Only the last Field may be unbounded.
type Descriptor struct {
	Fields []Field
}

// Descriptors is keyed by RR type. A type absent from this table has no
// dedicated encoder; Encode reports it as an unsupported type rather
// than guessing at a generic layout.
var Descriptors = map[mnemonic.Type]Descriptor{
	mnemonic.TypeA: {Fields: []Field{
		{FieldIPv4, "address"},
	}},
	mnemonic.TypeAAAA: {Fields: []Field{
		{FieldIPv6, "address"},
	}},
	mnemonic.TypeNS: {Fields: []Field{
		{FieldName, "nsdname"},
	}},
	mnemonic.TypeCNAME: {Fields: []Field{
		{FieldName, "cname"},
	}},
	mnemonic.TypePTR: {Fields: []Field{
		{FieldName, "ptrdname"},
	}},
	mnemonic.TypeSOA: {Fields: []Field{
		{FieldName, "mname"},
		{FieldName, "rname"},
		{FieldUint32, "serial"},
		{FieldUint32, "refresh"},
		{FieldUint32, "retry"},
		{FieldUint32, "expire"},
		{FieldUint32, "minimum"},
	}},
	mnemonic.TypeMX: {Fields: []Field{
		{FieldUint16, "preference"},
		{FieldName, "exchange"},
	}},
	mnemonic.TypeTXT: {Fields: []Field{
		{FieldTextList, "txt"},
	}},
	mnemonic.TypeSRV: {Fields: []Field{
		{FieldUint16, "priority"},
		{FieldUint16, "weight"},
		{FieldUint16, "port"},
		{FieldName, "target"},
	}},
	mnemonic.TypeWKS: {Fields: []Field{
		{FieldIPv4, "address"},
		{FieldProtocol, "protocol"},
		{FieldWKSBitmap, "bitmap"},
	}},
	mnemonic.TypeNSEC: {Fields: []Field{
		{FieldName, "next"},
		{FieldNSECBitmap, "types"},
	}},
	mnemonic.TypeNXT: {Fields: []Field{
		{FieldName, "next"},
		{FieldNXTBitmap, "types"},
	}},
	mnemonic.TypeEUI48: {Fields: []Field{
		{FieldEUI48, "address"},
	}},
	mnemonic.TypeEUI64: {Fields: []Field{
		{FieldEUI64, "address"},
	}},
	mnemonic.TypeCERT: {Fields: []Field{
		{FieldCertUsage, "type"},
		{FieldUint16, "keytag"},
		{FieldAlgorithm, "algorithm"},
		{FieldBase64, "certificate"},
	}},
	mnemonic.TypeTLSA: {Fields: []Field{
		{FieldUint8, "usage"},
		{FieldUint8, "selector"},
		{FieldUint8, "matchingtype"},
		{FieldBase16, "certificate"},
	}},
	mnemonic.TypeCAA: {Fields: []Field{
		{FieldUint8, "flags"},
		{FieldText, "tag"},
		{FieldRawText, "value"},
	}},
	mnemonic.TypeSVCB: {Fields: []Field{
		{FieldUint16, "priority"},
		{FieldName, "target"},
		{FieldSVCBParams, "params"},
	}},
	mnemonic.TypeHTTPS: {Fields: []Field{
		{FieldUint16, "priority"},
		{FieldName, "target"},
		{FieldSVCBParams, "params"},
	}},
	mnemonic.TypeDNAME: {Fields: []Field{
		{FieldName, "target"},
	}},
	mnemonic.TypeHINFO: {Fields: []Field{
		{FieldText, "cpu"},
		{FieldText, "os"},
	}},
	mnemonic.TypeRP: {Fields: []Field{
		{FieldName, "mbox"},
		{FieldName, "txt"},
	}},
	mnemonic.TypeAFSDB: {Fields: []Field{
		{FieldUint16, "subtype"},
		{FieldName, "hostname"},
	}},
	mnemonic.TypeKX: {Fields: []Field{
		{FieldUint16, "preference"},
		{FieldName, "exchanger"},
	}},
	mnemonic.TypeNAPTR: {Fields: []Field{
		{FieldUint16, "order"},
		{FieldUint16, "preference"},
		{FieldText, "flags"},
		{FieldText, "services"},
		{FieldText, "regexp"},
		{FieldName, "replacement"},
	}},
	mnemonic.TypeDS: {Fields: []Field{
		{FieldUint16, "keytag"},
		{FieldAlgorithm, "algorithm"},
		{FieldUint8, "digesttype"},
		{FieldBase16, "digest"},
	}},
	mnemonic.TypeCDS: {Fields: []Field{
		{FieldUint16, "keytag"},
		{FieldAlgorithm, "algorithm"},
		{FieldUint8, "digesttype"},
		{FieldBase16, "digest"},
	}},
	mnemonic.TypeDNSKEY: {Fields: []Field{
		{FieldUint16, "flags"},
		{FieldUint8, "protocol"},
		{FieldAlgorithm, "algorithm"},
		{FieldBase64List, "publickey"},
	}},
	mnemonic.TypeCDNSKEY: {Fields: []Field{
		{FieldUint16, "flags"},
		{FieldUint8, "protocol"},
		{FieldAlgorithm, "algorithm"},
		{FieldBase64List, "publickey"},
	}},
	mnemonic.TypeKEY: {Fields: []Field{
		{FieldUint16, "flags"},
		{FieldUint8, "protocol"},
		{FieldAlgorithm, "algorithm"},
		{FieldBase64List, "publickey"},
	}},
	mnemonic.TypeRRSIG: {Fields: []Field{
		{FieldRRType, "typecovered"},
		{FieldAlgorithm, "algorithm"},
		{FieldUint8, "labels"},
		{FieldUint32, "originalttl"},
		{FieldTime, "expiration"},
		{FieldTime, "inception"},
		{FieldUint16, "keytag"},
		{FieldName, "signer"},
		{FieldBase64List, "signature"},
	}},
	mnemonic.TypeSIG: {Fields: []Field{
		{FieldRRType, "typecovered"},
		{FieldAlgorithm, "algorithm"},
		{FieldUint8, "labels"},
		{FieldUint32, "originalttl"},
		{FieldTime, "expiration"},
		{FieldTime, "inception"},
		{FieldUint16, "keytag"},
		{FieldName, "signer"},
		{FieldBase64List, "signature"},
	}},
	mnemonic.TypeNSEC3: {Fields: []Field{
		{FieldUint8, "hashalgorithm"},
		{FieldUint8, "flags"},
		{FieldUint16, "iterations"},
		{FieldBase16OrDash, "salt"},
		{FieldBase32, "nexthashedowner"},
		{FieldNSECBitmap, "types"},
	}},
	mnemonic.TypeNSEC3PARAM: {Fields: []Field{
		{FieldUint8, "hashalgorithm"},
		{FieldUint8, "flags"},
		{FieldUint16, "iterations"},
		{FieldBase16OrDash, "salt"},
	}},
	mnemonic.TypeSSHFP: {Fields: []Field{
		{FieldUint8, "algorithm"},
		{FieldUint8, "fptype"},
		{FieldBase16List, "fingerprint"},
	}},
	mnemonic.TypeSMIMEA: {Fields: []Field{
		{FieldUint8, "usage"},
		{FieldUint8, "selector"},
		{FieldUint8, "matchingtype"},
		{FieldBase16, "certificate"},
	}},
	mnemonic.TypeOPENPGPKEY: {Fields: []Field{
		{FieldBase64List, "publickey"},
	}},
	mnemonic.TypeURI: {Fields: []Field{
		{FieldUint16, "priority"},
		{FieldUint16, "weight"},
		{FieldRawText, "target"},
	}},
}
