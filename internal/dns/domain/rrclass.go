package domain

import "fmt"

// RRClass represents a DNS class (usually IN for Internet).
type RRClass uint16

// DNS Resource Record Class constants
const (
	RRClassReserved RRClass = 0   // Reserved for future use
	RRClassIN       RRClass = 1   // IN - Internet
	RRClassCH       RRClass = 3   // CH - Chaos
	RRClassHS       RRClass = 4   // HS - Hesiod
	RRClassNONE     RRClass = 254 // NONE - No class
	RRClassANY      RRClass = 255 // ANY - Any class (query only)
)

// IsValid returns true if the RRClass is one of the discrete assigned classes.
func (c RRClass) IsValid() bool {
	switch c {
	case RRClassIN, RRClassCH, RRClassHS, RRClassNONE, RRClassANY:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRClass.
// The private-use range 0xFF00-0xFFFF and all other unassigned values
// print as such rather than failing.
func (c RRClass) String() string {
	switch c {
	case RRClassReserved:
		return "RESERVED"
	case RRClassIN:
		return "IN"
	case RRClassCH:
		return "CH"
	case RRClassHS:
		return "HS"
	case RRClassNONE:
		return "NONE"
	case RRClassANY:
		return "ANY"
	}
	if c >= 0xFF00 {
		return fmt.Sprintf("RESERVED-PRIVATE(%d)", uint16(c))
	}
	return fmt.Sprintf("UNASSIGNED(%d)", uint16(c))
}
