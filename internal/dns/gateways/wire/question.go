package wire

import (
	"github.com/haukened/pingdns/internal/dns/domain"
)

// ReadQuestion decodes one query entry: name, type, class.
func ReadQuestion(b *PacketBuffer) (domain.Question, error) {
	name, err := b.ReadName()
	if err != nil {
		return domain.Question{}, err
	}
	qtype, err := b.ReadUint16()
	if err != nil {
		return domain.Question{}, err
	}
	qclass, err := b.ReadUint16()
	if err != nil {
		return domain.Question{}, err
	}
	return domain.Question{
		Name:  name,
		Type:  domain.RRType(qtype),
		Class: domain.RRClass(qclass),
	}, nil
}

// WriteQuestion encodes one query entry: name, type, class.
func WriteQuestion(b *PacketBuffer, q domain.Question) error {
	if err := b.WriteName(q.Name); err != nil {
		return err
	}
	if err := b.WriteUint16(uint16(q.Type)); err != nil {
		return err
	}
	return b.WriteUint16(uint16(q.Class))
}
