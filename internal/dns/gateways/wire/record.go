package wire

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/haukened/pingdns/internal/dns/domain"
)

// ReadRecord decodes one resource record at the buffer cursor. The class
// field is parsed but not retained; resolution logic keys on type. For
// fixed-shape kinds the declared RDATA length is ignored in favor of the
// variant's own layout; TXT and unknown kinds consume it verbatim.
func ReadRecord(b *PacketBuffer) (domain.ResourceRecord, error) {
	name, err := b.ReadName()
	if err != nil {
		return domain.ResourceRecord{}, fmt.Errorf("record name: %w", err)
	}
	qtype, err := b.ReadUint16()
	if err != nil {
		return domain.ResourceRecord{}, err
	}
	if _, err := b.ReadUint16(); err != nil { // class
		return domain.ResourceRecord{}, err
	}
	ttl, err := b.ReadUint32()
	if err != nil {
		return domain.ResourceRecord{}, err
	}
	rdLen, err := b.ReadUint16()
	if err != nil {
		return domain.ResourceRecord{}, err
	}

	data, err := readRData(b, domain.RRType(qtype), rdLen)
	if err != nil {
		return domain.ResourceRecord{}, fmt.Errorf("%s rdata: %w", domain.RRType(qtype), err)
	}

	return domain.ResourceRecord{
		Name: name,
		Type: domain.RRType(qtype),
		TTL:  ttl,
		Data: data,
	}, nil
}

// readRData decodes the type-directed payload variant.
func readRData(b *PacketBuffer, qtype domain.RRType, rdLen uint16) (domain.RData, error) {
	switch qtype {
	case domain.RRTypeA:
		v, err := b.ReadUint32()
		if err != nil {
			return nil, err
		}
		addr := netip.AddrFrom4([4]byte{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)})
		return domain.AData{Addr: addr}, nil

	case domain.RRTypeNS:
		host, err := b.ReadName()
		if err != nil {
			return nil, err
		}
		return domain.NSData{Host: host}, nil

	case domain.RRTypeCNAME:
		host, err := b.ReadName()
		if err != nil {
			return nil, err
		}
		return domain.CNAMEData{Host: host}, nil

	case domain.RRTypeSOA:
		primary, err := b.ReadName()
		if err != nil {
			return nil, err
		}
		mailbox, err := b.ReadName()
		if err != nil {
			return nil, err
		}
		var soa domain.SOAData
		soa.PrimaryNS = primary
		soa.Mailbox = mailbox
		for _, field := range []*uint32{&soa.Serial, &soa.Refresh, &soa.Retry, &soa.Expire, &soa.MinimumTTL} {
			v, err := b.ReadUint32()
			if err != nil {
				return nil, err
			}
			*field = v
		}
		return soa, nil

	case domain.RRTypePTR:
		host, err := b.ReadName()
		if err != nil {
			return nil, err
		}
		return domain.PTRData{Host: host}, nil

	case domain.RRTypeMX:
		priority, err := b.ReadUint16()
		if err != nil {
			return nil, err
		}
		host, err := b.ReadName()
		if err != nil {
			return nil, err
		}
		return domain.MXData{Priority: priority, Host: host}, nil

	case domain.RRTypeTXT:
		raw, err := b.ReadBytes(int(rdLen))
		if err != nil {
			return nil, err
		}
		// Lossy UTF-8: invalid sequences become replacement runes.
		return domain.TXTData{Text: strings.ToValidUTF8(string(raw), "�")}, nil

	case domain.RRTypeAAAA:
		a16, err := b.ReadUint128()
		if err != nil {
			return nil, err
		}
		return domain.AAAAData{Addr: netip.AddrFrom16(a16)}, nil

	case domain.RRTypeSRV:
		var priority, weight, port uint16
		for _, field := range []*uint16{&priority, &weight, &port} {
			v, err := b.ReadUint16()
			if err != nil {
				return nil, err
			}
			*field = v
		}
		target, err := b.ReadName()
		if err != nil {
			return nil, err
		}
		return domain.SRVData{Priority: priority, Weight: weight, Port: port, Target: target}, nil

	default:
		raw, err := b.ReadBytes(int(rdLen))
		if err != nil {
			return nil, err
		}
		data := make([]byte, len(raw))
		copy(data, raw)
		return domain.UnknownData{Code: uint16(qtype), Raw: data}, nil
	}
}

// WriteRecord encodes one resource record at the buffer cursor. The class
// is fixed at IN. RDLENGTH is patched from the actual encoded payload, and
// every domain-valued payload field goes through the name encoder, so the
// output is always decodable.
func WriteRecord(b *PacketBuffer, rr domain.ResourceRecord) error {
	if err := rr.Validate(); err != nil {
		return err
	}
	if err := b.WriteName(rr.Name); err != nil {
		return err
	}
	if err := b.WriteUint16(uint16(rr.Type)); err != nil {
		return err
	}
	if err := b.WriteUint16(uint16(domain.RRClassIN)); err != nil {
		return err
	}
	if err := b.WriteUint32(rr.TTL); err != nil {
		return err
	}

	// Reserve RDLENGTH, write the payload, then patch the real size in.
	lenPos := b.Pos()
	if err := b.WriteUint16(0); err != nil {
		return err
	}
	if err := writeRData(b, rr.Data); err != nil {
		return err
	}
	size := b.Pos() - lenPos - 2
	return b.SetUint16(lenPos, uint16(size))
}

// writeRData encodes the payload fields in wire order for each variant.
func writeRData(b *PacketBuffer, data domain.RData) error {
	switch d := data.(type) {
	case domain.AData:
		a4 := d.Addr.As4()
		return b.WriteUint32(uint32(a4[0])<<24 | uint32(a4[1])<<16 | uint32(a4[2])<<8 | uint32(a4[3]))

	case domain.NSData:
		return b.WriteName(d.Host)

	case domain.CNAMEData:
		return b.WriteName(d.Host)

	case domain.SOAData:
		if err := b.WriteName(d.PrimaryNS); err != nil {
			return err
		}
		if err := b.WriteName(d.Mailbox); err != nil {
			return err
		}
		for _, v := range []uint32{d.Serial, d.Refresh, d.Retry, d.Expire, d.MinimumTTL} {
			if err := b.WriteUint32(v); err != nil {
				return err
			}
		}
		return nil

	case domain.PTRData:
		return b.WriteName(d.Host)

	case domain.MXData:
		if err := b.WriteUint16(d.Priority); err != nil {
			return err
		}
		return b.WriteName(d.Host)

	case domain.TXTData:
		return b.WriteBytes([]byte(d.Text))

	case domain.AAAAData:
		return b.WriteUint128(d.Addr.As16())

	case domain.SRVData:
		for _, v := range []uint16{d.Priority, d.Weight, d.Port} {
			if err := b.WriteUint16(v); err != nil {
				return err
			}
		}
		return b.WriteName(d.Target)

	case domain.UnknownData:
		return b.WriteBytes(d.Raw)

	default:
		return fmt.Errorf("unsupported rdata variant %T", data)
	}
}
