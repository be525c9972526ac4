package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
// Any 4-bit value decodes without failure; codes outside the recognized
// set report IsValid() == false so callers can treat them as malformed
// input instead of aborting.
type RCode uint8

// DNS response code constants
const (
	RCodeNoError  RCode = 0 // NOERROR - no error condition
	RCodeFormErr  RCode = 1 // FORMERR - format error
	RCodeServFail RCode = 2 // SERVFAIL - server failure
	RCodeNxDomain RCode = 3 // NXDOMAIN - name does not exist
	RCodeNotImp   RCode = 4 // NOTIMP - not implemented
	RCodeRefused  RCode = 5 // REFUSED - query refused
)

// IsValid returns true if the RCode is within the recognized response code set.
func (r RCode) IsValid() bool {
	return r <= RCodeRefused
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNxDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}
