// Package wire implements the DNS wire format per RFC 1035: a fixed-size
// packet buffer with bounds-checked primitives, domain name compression
// decoding, and codecs for headers, questions, records, and whole messages.
package wire

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxMessageSize is the conventional ceiling for a non-extended UDP DNS
// message.
const MaxMessageSize = 512

// maxNameJumps bounds compression pointer chains during name decoding,
// protecting against cycles and unbounded decompression.
const maxNameJumps = 5

// Typed codec failures. Decoding stops at the first failure; callers must
// treat a failed record decode as fatal to the whole message parse.
var (
	ErrPositionOutOfBounds = errors.New("position exceeds buffer capacity")
	ErrEndOfBuffer         = errors.New("read or write beyond the end of the buffer")
	ErrInvalidLabelLength  = errors.New("invalid label length in DNS name")
	ErrJumpLimitExceeded   = errors.New("limit of DNS name pointer jumps exceeded")
	ErrInvalidLabel        = errors.New("DNS label is not valid UTF-8")
)

// PacketBuffer is a fixed-capacity octet store with a cursor. It is the
// sole owner of its bytes; codecs borrow it for one read or write pass.
// Reads are bounded by the written or received extent, not the raw
// capacity, so header counts promising more content than the datagram
// holds fail instead of parsing zero fill.
type PacketBuffer struct {
	buf [MaxMessageSize]byte
	pos int
	// end is the readable extent: the datagram length for received
	// buffers, the high-water mark of writes otherwise.
	end int
}

// NewPacketBuffer returns an empty buffer with the cursor at zero.
func NewPacketBuffer() *PacketBuffer {
	return &PacketBuffer{}
}

// PacketBufferFrom returns a buffer preloaded with a received datagram,
// cursor at zero. Datagrams larger than MaxMessageSize are rejected.
func PacketBufferFrom(data []byte) (*PacketBuffer, error) {
	if len(data) > MaxMessageSize {
		return nil, fmt.Errorf("%w: datagram of %d bytes", ErrEndOfBuffer, len(data))
	}
	b := &PacketBuffer{end: len(data)}
	copy(b.buf[:], data)
	return b, nil
}

// Pos returns the current cursor position.
func (b *PacketBuffer) Pos() int {
	return b.pos
}

// Bytes returns the written portion of the buffer.
func (b *PacketBuffer) Bytes() []byte {
	return b.buf[:b.end]
}

// Seek moves the cursor to pos.
func (b *PacketBuffer) Seek(pos int) error {
	if pos >= len(b.buf) {
		return fmt.Errorf("%w: %d", ErrPositionOutOfBounds, pos)
	}
	b.pos = pos
	return nil
}

// Get returns the byte at pos without moving the cursor.
func (b *PacketBuffer) Get(pos int) (byte, error) {
	if pos >= b.end {
		return 0, ErrEndOfBuffer
	}
	return b.buf[pos], nil
}

// GetBytes returns n bytes starting at pos without moving the cursor.
func (b *PacketBuffer) GetBytes(pos, n int) ([]byte, error) {
	if pos+n > b.end {
		return nil, ErrEndOfBuffer
	}
	return b.buf[pos : pos+n], nil
}

// ReadUint8 consumes one byte.
func (b *PacketBuffer) ReadUint8() (uint8, error) {
	v, err := b.Get(b.pos)
	if err != nil {
		return 0, err
	}
	b.pos++
	return v, nil
}

// ReadUint16 consumes two bytes, big-endian.
func (b *PacketBuffer) ReadUint16() (uint16, error) {
	hi, err := b.ReadUint8()
	if err != nil {
		return 0, err
	}
	lo, err := b.ReadUint8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// ReadUint32 consumes four bytes, big-endian.
func (b *PacketBuffer) ReadUint32() (uint32, error) {
	hi, err := b.ReadUint16()
	if err != nil {
		return 0, err
	}
	lo, err := b.ReadUint16()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// ReadUint64 consumes eight bytes, big-endian.
func (b *PacketBuffer) ReadUint64() (uint64, error) {
	hi, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	lo, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// ReadUint128 consumes sixteen bytes, big-endian, as a fixed array since
// Go has no 128-bit integer. This is the AAAA address layout.
func (b *PacketBuffer) ReadUint128() ([16]byte, error) {
	raw, err := b.ReadBytes(16)
	if err != nil {
		return [16]byte{}, err
	}
	var out [16]byte
	copy(out[:], raw)
	return out, nil
}

// ReadBytes consumes n bytes. The returned slice aliases the buffer and
// is only valid until the next write.
func (b *PacketBuffer) ReadBytes(n int) ([]byte, error) {
	if b.pos+n > b.end {
		return nil, ErrEndOfBuffer
	}
	out := b.buf[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

// WriteUint8 appends one byte at the cursor.
func (b *PacketBuffer) WriteUint8(v uint8) error {
	if b.pos >= len(b.buf) {
		return ErrEndOfBuffer
	}
	b.buf[b.pos] = v
	b.pos++
	if b.pos > b.end {
		b.end = b.pos
	}
	return nil
}

// WriteUint16 appends two bytes, big-endian.
func (b *PacketBuffer) WriteUint16(v uint16) error {
	if err := b.WriteUint8(uint8(v >> 8)); err != nil {
		return err
	}
	return b.WriteUint8(uint8(v))
}

// WriteUint32 appends four bytes, big-endian.
func (b *PacketBuffer) WriteUint32(v uint32) error {
	if err := b.WriteUint16(uint16(v >> 16)); err != nil {
		return err
	}
	return b.WriteUint16(uint16(v))
}

// WriteUint64 appends eight bytes, big-endian.
func (b *PacketBuffer) WriteUint64(v uint64) error {
	if err := b.WriteUint32(uint32(v >> 32)); err != nil {
		return err
	}
	return b.WriteUint32(uint32(v))
}

// WriteUint128 appends sixteen bytes, big-endian.
func (b *PacketBuffer) WriteUint128(v [16]byte) error {
	return b.WriteBytes(v[:])
}

// WriteBytes appends a slice of bytes.
func (b *PacketBuffer) WriteBytes(data []byte) error {
	if b.pos+len(data) > len(b.buf) {
		return ErrEndOfBuffer
	}
	copy(b.buf[b.pos:], data)
	b.pos += len(data)
	if b.pos > b.end {
		b.end = b.pos
	}
	return nil
}

// SetUint16 overwrites two bytes at pos without moving the cursor. Used
// to patch length fields once a variable payload has been written.
func (b *PacketBuffer) SetUint16(pos int, v uint16) error {
	if pos+2 > b.end {
		return ErrEndOfBuffer
	}
	b.buf[pos] = uint8(v >> 8)
	b.buf[pos+1] = uint8(v)
	return nil
}

// ReadName decodes a domain name at the cursor, following compression
// pointers. The cursor advances past the name's first occurrence only:
// after the first jump it stays just past the 2-byte pointer, since the
// remaining labels live elsewhere in the message. Pointer chains longer
// than maxNameJumps fail with ErrJumpLimitExceeded.
func (b *PacketBuffer) ReadName() (string, error) {
	pos := b.pos
	var labels []string
	jumped := false
	jumps := 0

	for {
		if jumps > maxNameJumps {
			return "", ErrJumpLimitExceeded
		}

		length, err := b.Get(pos)
		if err != nil {
			return "", err
		}

		// A length octet with the top two bits set is a 14-bit pointer
		// to an earlier occurrence of the remaining name.
		if length&0xC0 == 0xC0 {
			if !jumped {
				if err := b.Seek(pos + 2); err != nil {
					return "", err
				}
			}
			b2, err := b.Get(pos + 1)
			if err != nil {
				return "", err
			}
			pos = int(uint16(length^0xC0)<<8 | uint16(b2))
			jumped = true
			jumps++
			continue
		}

		pos++
		if length == 0 {
			break
		}

		raw, err := b.GetBytes(pos, int(length))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(raw) {
			return "", ErrInvalidLabel
		}
		labels = append(labels, string(raw))
		pos += int(length)
	}

	if !jumped {
		if err := b.Seek(pos); err != nil {
			return "", err
		}
	}

	return strings.Join(labels, "."), nil
}

// WriteName encodes a domain name as length-prefixed labels with a zero
// terminator. Compression pointers are never emitted. On a label longer
// than 63 bytes the cursor is restored to its pre-call position.
func (b *PacketBuffer) WriteName(name string) error {
	start := b.pos
	for _, label := range strings.Split(name, ".") {
		if len(label) > 63 {
			b.pos = start
			return ErrInvalidLabelLength
		}
		if len(label) == 0 {
			continue
		}
		if err := b.WriteUint8(uint8(len(label))); err != nil {
			return err
		}
		if err := b.WriteBytes([]byte(label)); err != nil {
			return err
		}
	}
	return b.WriteUint8(0)
}
