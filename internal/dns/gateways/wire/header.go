package wire

import (
	"github.com/haukened/pingdns/internal/dns/domain"
)

// ReadHeader decodes the fixed 12-byte header at the buffer cursor.
func ReadHeader(b *PacketBuffer) (domain.Header, error) {
	var h domain.Header

	id, err := b.ReadUint16()
	if err != nil {
		return domain.Header{}, err
	}
	h.ID = id

	flags, err := b.ReadUint16()
	if err != nil {
		return domain.Header{}, err
	}
	h.SetFlags(flags)

	counts := []*uint16{&h.QuestionCount, &h.AnswerCount, &h.AuthorityCount, &h.AdditionalCount}
	for _, c := range counts {
		v, err := b.ReadUint16()
		if err != nil {
			return domain.Header{}, err
		}
		*c = v
	}

	return h, nil
}

// WriteHeader encodes the fixed 12-byte header at the buffer cursor.
func WriteHeader(b *PacketBuffer, h domain.Header) error {
	if err := b.WriteUint16(h.ID); err != nil {
		return err
	}
	if err := b.WriteUint16(h.Flags()); err != nil {
		return err
	}
	for _, c := range []uint16{h.QuestionCount, h.AnswerCount, h.AuthorityCount, h.AdditionalCount} {
		if err := b.WriteUint16(c); err != nil {
			return err
		}
	}
	return nil
}
