package mnemonic

import (
	"strconv"
	"strings"
)

// Protocol is an IP protocol number as used in a WKS RR's protocol field.
type Protocol uint8

const (
	ProtocolTCP Protocol = 6
	ProtocolUDP Protocol = 17
)

var protocolNames = map[string]Protocol{
	"tcp": ProtocolTCP,
	"udp": ProtocolUDP,
}

// LookupProtocol resolves a WKS protocol token ("tcp", "TCP", "udp", or
// a bare decimal protocol number), case-insensitively.
func LookupProtocol(token string) (Protocol, bool) {
	if code, found := protocolNames[strings.ToLower(token)]; found {
		return code, true
	}
	if n, err := strconv.ParseUint(token, 10, 8); err == nil {
		return Protocol(n), true
	}
	return 0, false
}

// Service is a well-known port number as used in a WKS RR's service list.
type Service uint16

// A representative subset of /etc/services-style well-known ports (RFC
// 1010 "Assigned Numbers" and the IANA Service Name and Transport
// Protocol Port Number Registry). "submission" (587) and
// "submissions" (465) share an 8-byte hash prefix under the spec's
// perfect-hash scheme (spec.md §9 Open Questions); a Go map performs a
// full string compare on every lookup, so the two are never confused
// here regardless of any shared prefix.
const (
	ServiceTCPMux      Service = 1
	ServiceEcho        Service = 7
	ServiceDiscard     Service = 9
	ServiceSystat      Service = 11
	ServiceDaytime     Service = 13
	ServiceNetstat     Service = 15
	ServiceQOTD        Service = 17
	ServiceMSP         Service = 18
	ServiceChargen     Service = 19
	ServiceFTPData     Service = 20
	ServiceFTP         Service = 21
	ServiceSSH         Service = 22
	ServiceTelnet      Service = 23
	ServiceSMTP        Service = 25
	ServiceTime        Service = 37
	ServiceRLP         Service = 39
	ServiceNameserver  Service = 42
	ServiceNicname     Service = 43
	ServiceDomain      Service = 53
	ServiceBootps      Service = 67
	ServiceBootpc      Service = 68
	ServiceTFTP        Service = 69
	ServiceGopher      Service = 70
	ServiceFinger      Service = 79
	ServiceHTTP        Service = 80
	ServiceKerberos    Service = 88
	ServicePOP2        Service = 109
	ServicePOP3        Service = 110
	ServiceSunRPC      Service = 111
	ServiceAuth        Service = 113
	ServiceNNTP        Service = 119
	ServiceNTP         Service = 123
	ServiceEpmap       Service = 135
	ServiceNetbiosNS   Service = 137
	ServiceNetbiosDGM  Service = 138
	ServiceNetbiosSSN  Service = 139
	ServiceIMAP        Service = 143
	ServiceSNMP        Service = 161
	ServiceSNMPTrap    Service = 162
	ServiceBGP         Service = 179
	ServiceIRC         Service = 194
	ServiceLDAP        Service = 389
	ServiceHTTPS       Service = 443
	ServiceSubmissions Service = 465
	ServiceRTSP        Service = 554
	ServiceSubmission  Service = 587
	ServiceLDAPS       Service = 636
	ServiceIMAPS       Service = 993
	ServicePOP3S       Service = 995
)

var serviceNames = map[string]Service{
	"tcpmux": ServiceTCPMux, "echo": ServiceEcho, "discard": ServiceDiscard,
	"systat": ServiceSystat, "daytime": ServiceDaytime, "netstat": ServiceNetstat,
	"qotd": ServiceQOTD, "msp": ServiceMSP, "chargen": ServiceChargen,
	"ftp-data": ServiceFTPData, "ftp": ServiceFTP, "ssh": ServiceSSH,
	"telnet": ServiceTelnet, "smtp": ServiceSMTP, "time": ServiceTime,
	"rlp": ServiceRLP, "nameserver": ServiceNameserver, "nicname": ServiceNicname,
	"domain": ServiceDomain, "bootps": ServiceBootps, "bootpc": ServiceBootpc,
	"tftp": ServiceTFTP, "gopher": ServiceGopher, "finger": ServiceFinger,
	"http": ServiceHTTP, "kerberos": ServiceKerberos, "pop2": ServicePOP2,
	"pop3": ServicePOP3, "sunrpc": ServiceSunRPC, "auth": ServiceAuth,
	"nntp": ServiceNNTP, "ntp": ServiceNTP, "epmap": ServiceEpmap,
	"netbios-ns": ServiceNetbiosNS, "netbios-dgm": ServiceNetbiosDGM,
	"netbios-ssn": ServiceNetbiosSSN, "imap": ServiceIMAP, "snmp": ServiceSNMP,
	"snmptrap": ServiceSNMPTrap, "bgp": ServiceBGP, "irc": ServiceIRC,
	"ldap": ServiceLDAP, "https": ServiceHTTPS, "submissions": ServiceSubmissions,
	"rtsp": ServiceRTSP, "submission": ServiceSubmission, "ldaps": ServiceLDAPS,
	"imaps": ServiceIMAPS, "pop3s": ServicePOP3S,
}

// LookupService resolves a WKS service token ("smtp", "submission", ...
// or a bare decimal port number), case-insensitively. The full-string
// map lookup guarantees "submission" and "submissions" never collide.
func LookupService(token string) (Service, bool) {
	if code, found := serviceNames[strings.ToLower(token)]; found {
		return code, true
	}
	if n, err := strconv.ParseUint(token, 10, 16); err == nil {
		return Service(n), true
	}
	return 0, false
}
