package domain

import "net/netip"

// RData is the type-specific payload of a resource record. The concrete
// types below form a closed variant set keyed by RRType, plus UnknownData
// for types outside the supported set.
type RData interface {
	// RRType returns the record type this payload belongs to.
	RRType() RRType
}

// AData maps a domain to an IPv4 address.
type AData struct {
	Addr netip.Addr
}

// NSData names a server authoritative for the record's domain.
type NSData struct {
	Host string
}

// CNAMEData aliases the record's domain to another domain.
type CNAMEData struct {
	Host string
}

// SOAData carries the administrative fields of a zone's start of authority.
type SOAData struct {
	PrimaryNS  string
	Mailbox    string
	Serial     uint32
	Refresh    uint32
	Retry      uint32
	Expire     uint32
	MinimumTTL uint32
}

// PTRData maps an address back to a hostname (reverse DNS).
type PTRData struct {
	Host string
}

// MXData names a mail exchange and its priority.
type MXData struct {
	Priority uint16
	Host     string
}

// TXTData carries free-form text. Bytes that are not valid UTF-8 are
// replaced during decode rather than failing the record.
type TXTData struct {
	Text string
}

// AAAAData maps a domain to an IPv6 address.
type AAAAData struct {
	Addr netip.Addr
}

// SRVData locates a service endpoint.
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

// UnknownData preserves the raw RDATA of an unsupported record type.
type UnknownData struct {
	Code uint16
	Raw  []byte
}

func (AData) RRType() RRType     { return RRTypeA }
func (NSData) RRType() RRType    { return RRTypeNS }
func (CNAMEData) RRType() RRType { return RRTypeCNAME }
func (SOAData) RRType() RRType   { return RRTypeSOA }
func (PTRData) RRType() RRType   { return RRTypePTR }
func (MXData) RRType() RRType    { return RRTypeMX }
func (TXTData) RRType() RRType   { return RRTypeTXT }
func (AAAAData) RRType() RRType  { return RRTypeAAAA }
func (SRVData) RRType() RRType   { return RRTypeSRV }

func (d UnknownData) RRType() RRType { return RRType(d.Code) }
