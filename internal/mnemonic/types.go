// Package mnemonic implements the name→code lookup tables for DNS
// classes, RR types, and the algorithm/usage/protocol/service
// mnemonics a handful of RR types embed in their presentation text.
// Each table pairs a block of typed constants with a String method and
// a case-insensitive lookup map, so a mnemonic typed in any case
// round-trips to its canonical upper-case name; an unrecognized token
// simply misses the map rather than risking a silent wrong match.
package mnemonic

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is a DNS RR type code.
type Type uint16

// RR type codes, RFC 1035 §3.2.2 and successor RFCs.
const (
	TypeA          Type = 1
	TypeNS         Type = 2
	TypeMD         Type = 3
	TypeMF         Type = 4
	TypeCNAME      Type = 5
	TypeSOA        Type = 6
	TypeMB         Type = 7
	TypeMG         Type = 8
	TypeMR         Type = 9
	TypeNULL       Type = 10
	TypeWKS        Type = 11
	TypePTR        Type = 12
	TypeHINFO      Type = 13
	TypeMINFO      Type = 14
	TypeMX         Type = 15
	TypeTXT        Type = 16
	TypeRP         Type = 17
	TypeAFSDB      Type = 18
	TypeX25        Type = 19
	TypeISDN       Type = 20
	TypeRT         Type = 21
	TypeSIG        Type = 24
	TypeKEY        Type = 25
	TypeAAAA       Type = 28
	TypeLOC        Type = 29
	TypeNXT        Type = 30
	TypeSRV        Type = 33
	TypeNAPTR      Type = 35
	TypeKX         Type = 36
	TypeCERT       Type = 37
	TypeDNAME      Type = 39
	TypeAPL        Type = 42
	TypeDS         Type = 43
	TypeSSHFP      Type = 44
	TypeIPSECKEY   Type = 45
	TypeRRSIG      Type = 46
	TypeNSEC       Type = 47
	TypeDNSKEY     Type = 48
	TypeDHCID      Type = 49
	TypeNSEC3      Type = 50
	TypeNSEC3PARAM Type = 51
	TypeTLSA       Type = 52
	TypeSMIMEA     Type = 53
	TypeHIP        Type = 55
	TypeCDS        Type = 59
	TypeCDNSKEY    Type = 60
	TypeOPENPGPKEY Type = 61
	TypeCSYNC      Type = 62
	TypeZONEMD     Type = 63
	TypeSVCB       Type = 64
	TypeHTTPS      Type = 65
	TypeEUI48      Type = 108
	TypeEUI64      Type = 109
	TypeURI        Type = 256
	TypeCAA        Type = 257
	TypeAVC        Type = 258
)

var typeNames = map[string]Type{
	"A": TypeA, "NS": TypeNS, "MD": TypeMD, "MF": TypeMF, "CNAME": TypeCNAME,
	"SOA": TypeSOA, "MB": TypeMB, "MG": TypeMG, "MR": TypeMR, "NULL": TypeNULL,
	"WKS": TypeWKS, "PTR": TypePTR, "HINFO": TypeHINFO, "MINFO": TypeMINFO,
	"MX": TypeMX, "TXT": TypeTXT, "RP": TypeRP, "AFSDB": TypeAFSDB, "X25": TypeX25,
	"ISDN": TypeISDN, "RT": TypeRT, "SIG": TypeSIG, "KEY": TypeKEY, "AAAA": TypeAAAA,
	"LOC": TypeLOC, "NXT": TypeNXT, "SRV": TypeSRV, "NAPTR": TypeNAPTR, "KX": TypeKX,
	"CERT": TypeCERT, "DNAME": TypeDNAME, "APL": TypeAPL, "DS": TypeDS,
	"SSHFP": TypeSSHFP, "IPSECKEY": TypeIPSECKEY, "RRSIG": TypeRRSIG, "NSEC": TypeNSEC,
	"DNSKEY": TypeDNSKEY, "DHCID": TypeDHCID, "NSEC3": TypeNSEC3,
	"NSEC3PARAM": TypeNSEC3PARAM, "TLSA": TypeTLSA, "SMIMEA": TypeSMIMEA, "HIP": TypeHIP,
	"CDS": TypeCDS, "CDNSKEY": TypeCDNSKEY, "OPENPGPKEY": TypeOPENPGPKEY,
	"CSYNC": TypeCSYNC, "ZONEMD": TypeZONEMD, "SVCB": TypeSVCB, "HTTPS": TypeHTTPS,
	"EUI48": TypeEUI48, "EUI64": TypeEUI64, "URI": TypeURI, "CAA": TypeCAA, "AVC": TypeAVC,
}

var typeCodeToName map[Type]string

func init() {
	typeCodeToName = make(map[Type]string, len(typeNames))
	for name, code := range typeNames {
		typeCodeToName[code] = name
	}
}

func (t Type) String() string {
	if name, ok := typeCodeToName[t]; ok {
		return name
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// LookupType resolves a type mnemonic, accepting the RFC 3597
// "TYPEnn" numeric fallback when the name is not in the static table.
// ok is false when the mnemonic is neither a known name nor a
// well-formed TYPEnn in range.
func LookupType(mnemonic string) (Type, bool) {
	upper := strings.ToUpper(mnemonic)
	if code, found := typeNames[upper]; found {
		return code, true
	}
	if rest, found := strings.CutPrefix(upper, "TYPE"); found {
		n, err := strconv.ParseUint(rest, 10, 16)
		if err != nil {
			return 0, false
		}
		return Type(n), true
	}
	return 0, false
}
