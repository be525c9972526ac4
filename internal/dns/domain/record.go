package domain

import (
	"fmt"
	"net/netip"
)

// ResourceRecord represents one answer/authority/additional entry in a
// DNS message. The payload is a tagged union over the supported record
// kinds; Type always agrees with Data.RRType().
type ResourceRecord struct {
	Name string
	Type RRType
	TTL  uint32
	Data RData
}

// NewResourceRecord constructs a ResourceRecord from a payload variant,
// deriving the type tag from the payload.
func NewResourceRecord(name string, ttl uint32, data RData) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name: name,
		Type: data.RRType(),
		TTL:  ttl,
		Data: data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks that the record is internally consistent.
func (rr ResourceRecord) Validate() error {
	if rr.Data == nil {
		return fmt.Errorf("record payload must not be nil")
	}
	if rr.Type != rr.Data.RRType() {
		return fmt.Errorf("record type %s disagrees with payload type %s", rr.Type, rr.Data.RRType())
	}
	return nil
}

// Addr projects the record to an IP address if it is an A or AAAA record.
func (rr ResourceRecord) Addr() (netip.Addr, bool) {
	switch d := rr.Data.(type) {
	case AData:
		return d.Addr, true
	case AAAAData:
		return d.Addr, true
	}
	return netip.Addr{}, false
}
