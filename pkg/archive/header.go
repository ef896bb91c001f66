// Package archive stores decompressed scenario payloads in a zstd container.
//
// Scenario files deflate their payload and keep no record of its size, which
// makes them awkward to diff or patch. An archive keeps the payload together
// with the envelope fields needed to rebuild the scenario, compressed with
// zstd and sized up front.
package archive

import (
	"encoding/binary"
	"fmt"
)

// Magic bytes identifying a payload archive.
var Magic = [4]byte{'S', 'C', 'X', 'Z'}

// HeaderSize is the fixed binary size of an archive header.
const HeaderSize = 32 // 4 + 4 + 4 + 4 + 8 + 8 bytes

// headerLength is the value of Header.HeaderLength: the bytes that follow it.
const headerLength = HeaderSize - 8

// Header describes the payload stored in an archive.
type Header struct {
	Magic            [4]byte
	HeaderLength     uint32
	Version          [4]byte // scenario version tag
	Revision         int32   // scenario format revision
	Length           uint64  // uncompressed payload size
	CompressedLength uint64
}

// Size returns the binary size of the header.
func (h *Header) Size() int {
	return HeaderSize
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.HeaderLength != headerLength {
		return fmt.Errorf("invalid header length: expected %d, got %d", headerLength, h.HeaderLength)
	}
	if h.Length == 0 {
		return fmt.Errorf("payload size is zero")
	}
	if h.CompressedLength == 0 {
		return fmt.Errorf("compressed size is zero")
	}
	return nil
}

// MarshalBinary encodes the header to binary format.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to the given buffer.
// The buffer must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.HeaderLength)
	copy(buf[8:12], h.Version[:])
	binary.LittleEndian.PutUint32(buf[12:16], uint32(h.Revision))
	binary.LittleEndian.PutUint64(buf[16:24], h.Length)
	binary.LittleEndian.PutUint64(buf[24:32], h.CompressedLength)
}

// UnmarshalBinary decodes and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("header data too short: need %d, got %d", HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from the given buffer.
// Does not validate - use UnmarshalBinary for validation.
func (h *Header) DecodeFrom(data []byte) {
	copy(h.Magic[:], data[0:4])
	h.HeaderLength = binary.LittleEndian.Uint32(data[4:8])
	copy(h.Version[:], data[8:12])
	h.Revision = int32(binary.LittleEndian.Uint32(data[12:16]))
	h.Length = binary.LittleEndian.Uint64(data[16:24])
	h.CompressedLength = binary.LittleEndian.Uint64(data[24:32])
}

// NewHeader creates a header for a payload of the given scenario version.
func NewHeader(version [4]byte, revision int32, length uint64) *Header {
	return &Header{
		Magic:        Magic,
		HeaderLength: headerLength,
		Version:      version,
		Revision:     revision,
		Length:       length,
	}
}
