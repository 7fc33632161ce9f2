package mnemonic

import (
	"fmt"
	"strconv"
	"strings"
)

// Class is a DNS RR class code.
type Class uint16

// RR class codes, RFC 1035 §3.2.4 and RFC 2136 §2.3 (NONE), §2.5 (ANY).
const (
	ClassIN   Class = 1
	ClassCS   Class = 2
	ClassCH   Class = 3
	ClassHS   Class = 4
	ClassNONE Class = 254
	ClassANY  Class = 255
)

var classNames = map[string]Class{
	"IN": ClassIN, "CS": ClassCS, "CH": ClassCH, "HS": ClassHS,
	"NONE": ClassNONE, "ANY": ClassANY,
}

var classCodeToName map[Class]string

func init() {
	classCodeToName = make(map[Class]string, len(classNames))
	for name, code := range classNames {
		classCodeToName[code] = name
	}
}

func (c Class) String() string {
	if name, ok := classCodeToName[c]; ok {
		return name
	}
	return fmt.Sprintf("CLASS%d", uint16(c))
}

// LookupClass resolves a class mnemonic, accepting the RFC 3597
// "CLASSnn" numeric fallback.
func LookupClass(mnemonic string) (Class, bool) {
	upper := strings.ToUpper(mnemonic)
	if code, found := classNames[upper]; found {
		return code, true
	}
	if rest, found := strings.CutPrefix(upper, "CLASS"); found {
		n, err := strconv.ParseUint(rest, 10, 16)
		if err != nil {
			return 0, false
		}
		return Class(n), true
	}
	return 0, false
}
