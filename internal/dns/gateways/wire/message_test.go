package wire

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/pingdns/internal/dns/domain"
)

func TestMessageRoundTrip_Query(t *testing.T) {
	query := domain.NewQueryMessage(0xABCD, domain.NewQuestion("www.example.com", domain.RRTypeA))

	raw, err := EncodeMessage(query)
	require.NoError(t, err)
	// Header (12) + name (17) + type (2) + class (2).
	assert.Len(t, raw, 33)

	got, err := DecodeMessage(raw)
	require.NoError(t, err)

	assert.Equal(t, uint16(0xABCD), got.Header.ID)
	assert.False(t, got.Header.Response)
	assert.False(t, got.Header.RecursionDesired)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "www.example.com", got.Questions[0].Name)
	assert.Equal(t, domain.RRTypeA, got.Questions[0].Type)
	assert.Equal(t, domain.RRClassIN, got.Questions[0].Class)
}

func TestMessageRoundTrip_AllSections(t *testing.T) {
	m := domain.Message{
		Header: domain.Header{
			ID:                 0x1001,
			Response:           true,
			Authoritative:      true,
			RecursionAvailable: true,
		},
		Questions: []domain.Question{domain.NewQuestion("example.com", domain.RRTypeA)},
		Answers: []domain.ResourceRecord{
			{Name: "example.com", Type: domain.RRTypeA, TTL: 300,
				Data: domain.AData{Addr: netip.MustParseAddr("93.184.216.34")}},
		},
		Authority: []domain.ResourceRecord{
			{Name: "example.com", Type: domain.RRTypeNS, TTL: 172800,
				Data: domain.NSData{Host: "ns1.example.com"}},
		},
		Additional: []domain.ResourceRecord{
			{Name: "ns1.example.com", Type: domain.RRTypeA, TTL: 172800,
				Data: domain.AData{Addr: netip.MustParseAddr("198.51.100.53")}},
		},
	}

	raw, err := EncodeMessage(m)
	require.NoError(t, err)
	got, err := DecodeMessage(raw)
	require.NoError(t, err)

	assert.Equal(t, m.Questions, got.Questions)
	assert.Equal(t, m.Answers, got.Answers)
	assert.Equal(t, m.Authority, got.Authority)
	assert.Equal(t, m.Additional, got.Additional)
	assert.True(t, got.Header.Response)
	assert.True(t, got.Header.Authoritative)
}

func TestWriteMessage_DerivesCountsFromSections(t *testing.T) {
	m := domain.Message{
		// Lying header counts must be ignored in favor of reality.
		Header:    domain.Header{ID: 1, QuestionCount: 9, AnswerCount: 9},
		Questions: []domain.Question{domain.NewQuestion("example.com", domain.RRTypeA)},
	}

	raw, err := EncodeMessage(m)
	require.NoError(t, err)

	got, err := DecodeMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), got.Header.QuestionCount)
	assert.Equal(t, uint16(0), got.Header.AnswerCount)
	assert.Len(t, got.Questions, 1)
	assert.Empty(t, got.Answers)
}

func TestDecodeMessage_CountOverrunFails(t *testing.T) {
	// A question count promising more entries than 512 bytes can hold
	// must run off the end of the buffer and fail the parse.
	m := domain.NewQueryMessage(7, domain.NewQuestion("example.com", domain.RRTypeA))
	raw, err := EncodeMessage(m)
	require.NoError(t, err)

	// Corrupt the question count to an impossible value.
	raw[4], raw[5] = 0xFF, 0xFF
	_, err = DecodeMessage(raw)
	assert.Error(t, err)
}

func TestDecodeMessage_RejectsOversizedDatagram(t *testing.T) {
	_, err := DecodeMessage(make([]byte, MaxMessageSize+1))
	assert.ErrorIs(t, err, ErrEndOfBuffer)
}

func TestMessageRoundTrip_UnrecognizedRCodeCarried(t *testing.T) {
	m := domain.Message{
		Header: domain.Header{ID: 2, Response: true, RCode: domain.RCode(11)},
	}

	raw, err := EncodeMessage(m)
	require.NoError(t, err)
	got, err := DecodeMessage(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.RCode(11), got.Header.RCode)
	assert.False(t, got.Header.RCode.IsValid())
}
