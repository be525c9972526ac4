package domain

import (
	"net/netip"

	"github.com/haukened/pingdns/internal/common/utils"
)

// Message represents a complete DNS message: header plus the question,
// answer, authority, and additional sections.
type Message struct {
	Header     Header
	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// NewQueryMessage builds a single-question query message. Recursion
// desired is left unset: the resolver performs iteration itself.
func NewQueryMessage(id uint16, q Question) Message {
	return Message{
		Header: Header{
			ID:            id,
			QuestionCount: 1,
		},
		Questions: []Question{q},
	}
}

// Delegation pairs a delegated zone with the hostname of a server
// authoritative for it, taken from an NS record.
type Delegation struct {
	Zone string
	Host string
}

// Nameservers yields every delegation in the authority section whose zone
// covers name. The comparison is label-boundary aware, so a delegation
// for "example.com" never matches "evilexample.com".
func (m Message) Nameservers(name string) []Delegation {
	var out []Delegation
	for _, rr := range m.Authority {
		ns, ok := rr.Data.(NSData)
		if !ok {
			continue
		}
		if utils.WithinZone(name, rr.Name) {
			out = append(out, Delegation{Zone: rr.Name, Host: ns.Host})
		}
	}
	return out
}

// ResolvedNameserver returns the address of the first delegated
// nameserver for name that has a glue record in the additional section
// matching the requested query type. Section order decides ties.
func (m Message) ResolvedNameserver(name string, qtype RRType) (netip.Addr, bool) {
	for _, d := range m.Nameservers(name) {
		for _, rr := range m.Additional {
			if rr.Type != qtype {
				continue
			}
			if !utils.Equal(rr.Name, d.Host) {
				continue
			}
			if addr, ok := rr.Addr(); ok {
				return addr, true
			}
		}
	}
	return netip.Addr{}, false
}

// UnresolvedNameserver returns the hostname of the first delegated
// nameserver for name, used when no glue record is present.
func (m Message) UnresolvedNameserver(name string) (string, bool) {
	for _, d := range m.Nameservers(name) {
		return d.Host, true
	}
	return "", false
}

// FirstAnswer returns the address of the first answer-section record
// matching the query type, if it is an A or AAAA record.
func (m Message) FirstAnswer(qtype RRType) (netip.Addr, bool) {
	for _, rr := range m.Answers {
		if rr.Type != qtype {
			continue
		}
		if addr, ok := rr.Addr(); ok {
			return addr, true
		}
	}
	return netip.Addr{}, false
}
