package wire

import (
	"fmt"

	"github.com/haukened/pingdns/internal/dns/domain"
)

// ReadMessage decodes a complete DNS message: header, then exactly the
// number of questions and records each header count declares, in section
// order. The first failure aborts the parse.
func ReadMessage(b *PacketBuffer) (domain.Message, error) {
	header, err := ReadHeader(b)
	if err != nil {
		return domain.Message{}, fmt.Errorf("header: %w", err)
	}

	m := domain.Message{Header: header}

	for i := uint16(0); i < header.QuestionCount; i++ {
		q, err := ReadQuestion(b)
		if err != nil {
			return domain.Message{}, fmt.Errorf("question %d: %w", i, err)
		}
		m.Questions = append(m.Questions, q)
	}

	sections := []struct {
		name  string
		count uint16
		dst   *[]domain.ResourceRecord
	}{
		{"answer", header.AnswerCount, &m.Answers},
		{"authority", header.AuthorityCount, &m.Authority},
		{"additional", header.AdditionalCount, &m.Additional},
	}
	for _, s := range sections {
		for i := uint16(0); i < s.count; i++ {
			rr, err := ReadRecord(b)
			if err != nil {
				return domain.Message{}, fmt.Errorf("%s record %d: %w", s.name, i, err)
			}
			*s.dst = append(*s.dst, rr)
		}
	}

	return m, nil
}

// WriteMessage encodes a complete DNS message. The emitted header counts
// always equal the actual section lengths regardless of what the caller
// set on the header.
func WriteMessage(b *PacketBuffer, m domain.Message) error {
	h := m.Header
	h.QuestionCount = uint16(len(m.Questions))
	h.AnswerCount = uint16(len(m.Answers))
	h.AuthorityCount = uint16(len(m.Authority))
	h.AdditionalCount = uint16(len(m.Additional))

	if err := WriteHeader(b, h); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	for i, q := range m.Questions {
		if err := WriteQuestion(b, q); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	for _, section := range [][]domain.ResourceRecord{m.Answers, m.Authority, m.Additional} {
		for _, rr := range section {
			if err := WriteRecord(b, rr); err != nil {
				return fmt.Errorf("record %s: %w", rr.Name, err)
			}
		}
	}
	return nil
}

// EncodeMessage serializes a message into a fresh buffer and returns the
// written bytes.
func EncodeMessage(m domain.Message) ([]byte, error) {
	b := NewPacketBuffer()
	if err := WriteMessage(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// DecodeMessage parses a received datagram into a message.
func DecodeMessage(data []byte) (domain.Message, error) {
	b, err := PacketBufferFrom(data)
	if err != nil {
		return domain.Message{}, err
	}
	return ReadMessage(b)
}
