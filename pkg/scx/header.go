package scx

import (
	"fmt"
)

const (
	// MaxPlayers is the number of player slots in every scenario.
	MaxPlayers = 16

	// revisionExtended is the format revision that carries the trailing
	// opaque value list.
	revisionExtended = 3

	// Markers written ahead of the opaque list by the reference writer.
	extendedMarker1 = 1000
	extendedMarker2 = 1

	// headerLengthBase is added to the instruction length to form the
	// header length field.
	headerLengthBase = 20
)

// Header is the uncompressed envelope in front of the deflated payload.
type Header struct {
	Version      [4]byte // ASCII tag such as "1.21"
	Length       int32   // as read; recomputed on encode
	Revision     int32
	LastSave     int32 // unix timestamp
	Instructions []byte
	PlayerCount  int32 // advisory; the roster always has MaxPlayers slots

	// Extra holds the opaque values that follow the header when Revision is 3.
	Extra []int32
}

// VersionString returns the version tag as text.
func (h *Header) VersionString() string {
	return string(h.Version[:])
}

// Validate checks the header fields that must be consistent before the
// payload can be trusted.
func (h *Header) Validate() error {
	if h.Version[1] != '.' {
		return fmt.Errorf("%w: version tag %q", ErrHeader, h.Version[:])
	}
	if h.Revision <= 0 {
		return fmt.Errorf("%w: format revision %d", ErrHeader, h.Revision)
	}
	// The count is advisory; only a negative value cannot describe a roster.
	if h.PlayerCount < 0 {
		return fmt.Errorf("%w: player count %d", ErrHeader, h.PlayerCount)
	}
	return nil
}

// readHeader decodes the envelope and returns it with the number of bytes
// it occupied.
func readHeader(data []byte) (*Header, int, error) {
	r := newReader(data, "header")
	h := &Header{}

	copy(h.Version[:], r.next(4))
	h.Length = r.i32()
	h.Revision = r.i32()
	h.LastSave = r.i32()
	h.Instructions = r.blob32()
	r.i32() // reserved
	h.PlayerCount = r.i32()
	if r.err != nil {
		return nil, 0, r.err
	}

	if err := h.Validate(); err != nil {
		return nil, 0, &FormatError{Stage: "header", Trigger: -1, Offset: int64(r.off), Err: err}
	}

	if h.Revision == revisionExtended {
		r.skip(8)
		n := r.count("extra values", 4)
		h.Extra = r.int32s(n)
		if r.err != nil {
			return nil, 0, r.err
		}
	}

	return h, r.off, nil
}

// encodeTo appends the envelope to w.
func (h *Header) encodeTo(w *writer) {
	w.bytes(h.Version[:])
	w.i32(int32(len(h.Instructions)) + headerLengthBase)
	w.i32(h.Revision)
	w.i32(h.LastSave)
	w.blob32("instructions", h.Instructions)
	w.i32(0)
	w.i32(h.PlayerCount)
	if h.Revision == revisionExtended {
		w.i32(extendedMarker1)
		w.i32(extendedMarker2)
		w.i32(int32(len(h.Extra)))
		w.int32s(h.Extra)
	}
}

// ParseHeader decodes the envelope at the start of data and returns it with
// the number of bytes it occupied.
func ParseHeader(data []byte) (*Header, int, error) {
	return readHeader(data)
}

// MarshalBinary encodes the envelope. The length field is recomputed.
func (h *Header) MarshalBinary() ([]byte, error) {
	w := newWriter("header")
	h.encodeTo(w)
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

// UnmarshalBinary decodes and validates the envelope.
func (h *Header) UnmarshalBinary(data []byte) error {
	decoded, _, err := readHeader(data)
	if err != nil {
		return err
	}
	*h = *decoded
	return nil
}
