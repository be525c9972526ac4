package domain

// Header represents the fixed 12-byte DNS message header per RFC 1035 §4.1.1.
type Header struct {
	ID uint16

	// flags
	Response           bool  // QR, 1 bit
	Opcode             uint8 // 4 bits
	Authoritative      bool  // AA, 1 bit
	Truncated          bool  // TC, 1 bit
	RecursionDesired   bool  // RD, 1 bit
	RecursionAvailable bool  // RA, 1 bit
	Reserved           uint8 // Z, 3 bits
	RCode              RCode // 4 bits

	// section counts
	QuestionCount   uint16
	AnswerCount     uint16
	AuthorityCount  uint16
	AdditionalCount uint16
}

// Header flag word bit masks.
const (
	maskQR       uint16 = 0b1000_0000_0000_0000
	maskOpcode   uint16 = 0b0111_1000_0000_0000
	maskAA       uint16 = 0b0000_0100_0000_0000
	maskTC       uint16 = 0b0000_0010_0000_0000
	maskRD       uint16 = 0b0000_0001_0000_0000
	maskRA       uint16 = 0b0000_0000_1000_0000
	maskReserved uint16 = 0b0000_0000_0111_0000
	maskRCode    uint16 = 0b0000_0000_0000_1111
)

// SetFlags unpacks a 16-bit flag word into the structured header fields.
// Every possible word unpacks; unrecognized response codes are carried
// as-is and surface through RCode.IsValid.
func (h *Header) SetFlags(flags uint16) {
	h.Response = flags&maskQR != 0
	h.Opcode = uint8((flags & maskOpcode) >> 11)
	h.Authoritative = flags&maskAA != 0
	h.Truncated = flags&maskTC != 0
	h.RecursionDesired = flags&maskRD != 0
	h.RecursionAvailable = flags&maskRA != 0
	h.Reserved = uint8((flags & maskReserved) >> 4)
	h.RCode = RCode(flags & maskRCode)
}

// Flags repacks the structured header fields into a 16-bit flag word.
// It is the exact inverse of SetFlags.
func (h Header) Flags() uint16 {
	var flags uint16
	if h.Response {
		flags |= maskQR
	}
	flags |= (uint16(h.Opcode) << 11) & maskOpcode
	if h.Authoritative {
		flags |= maskAA
	}
	if h.Truncated {
		flags |= maskTC
	}
	if h.RecursionDesired {
		flags |= maskRD
	}
	if h.RecursionAvailable {
		flags |= maskRA
	}
	flags |= (uint16(h.Reserved) << 4) & maskReserved
	flags |= uint16(h.RCode) & maskRCode
	return flags
}
