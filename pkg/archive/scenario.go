package archive

import (
	"fmt"
	"io"

	"github.com/EchoTools/scxFileTools/pkg/scx"
)

// Pack stores the scenario envelope and its re-encoded payload in an
// archive written to dst.
func Pack(dst io.WriteSeeker, s *scx.Scenario, opts ...WriterOption) error {
	payload, err := s.Payload()
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return PackPayload(dst, &s.Header, payload, opts...)
}

// PackPayload stores an envelope and an already decompressed payload, as
// returned by scx.Inflate, without decoding it.
func PackPayload(dst io.WriteSeeker, h *scx.Header, payload []byte, opts ...WriterOption) error {
	head, err := h.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal scenario header: %w", err)
	}

	content := make([]byte, 0, len(head)+len(payload))
	content = append(content, head...)
	content = append(content, payload...)

	return Encode(dst, h.Version, h.Revision, content, opts...)
}

// Unpack reads an archive written by Pack and decodes the scenario in it.
func Unpack(r io.Reader, opts ...scx.Option) (*scx.Scenario, error) {
	content, err := ReadAll(r)
	if err != nil {
		return nil, err
	}

	h, n, err := scx.ParseHeader(content)
	if err != nil {
		return nil, fmt.Errorf("parse scenario header: %w", err)
	}
	return scx.DecodePayload(h, content[n:], opts...)
}

// Repack converts an archive back into a scenario file.
func Repack(dst io.Writer, r io.Reader, opts ...scx.Option) error {
	s, err := Unpack(r, opts...)
	if err != nil {
		return err
	}
	return scx.Write(dst, s, opts...)
}
