package archive

import (
	"bytes"
	"errors"
	"testing"

	"github.com/EchoTools/scxFileTools/pkg/scx"
)

var testVersion = [4]byte{'1', '.', '2', '1'}

func TestHeader(t *testing.T) {
	t.Run("MarshalUnmarshal", func(t *testing.T) {
		original := NewHeader(testVersion, 2, 1024)
		original.CompressedLength = 512

		data, err := original.MarshalBinary()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if len(data) != HeaderSize {
			t.Fatalf("header size: got %d, want %d", len(data), HeaderSize)
		}

		decoded := &Header{}
		if err := decoded.UnmarshalBinary(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if *decoded != *original {
			t.Errorf("mismatch: got %+v, want %+v", decoded, original)
		}
	})

	t.Run("InvalidMagic", func(t *testing.T) {
		h := NewHeader(testVersion, 2, 1024)
		h.Magic = [4]byte{'Z', 'S', 'T', 'D'}
		h.CompressedLength = 512
		if err := h.Validate(); err == nil {
			t.Error("expected error for invalid magic")
		}
	})

	t.Run("InvalidHeaderLength", func(t *testing.T) {
		h := NewHeader(testVersion, 2, 1024)
		h.HeaderLength = 16
		h.CompressedLength = 512
		if err := h.Validate(); err == nil {
			t.Error("expected error for header length")
		}
	})

	t.Run("ZeroLength", func(t *testing.T) {
		h := NewHeader(testVersion, 2, 0)
		h.CompressedLength = 512
		if err := h.Validate(); err == nil {
			t.Error("expected error for zero length")
		}
	})

	t.Run("Short", func(t *testing.T) {
		if err := (&Header{}).UnmarshalBinary(make([]byte, HeaderSize-1)); err == nil {
			t.Error("expected error for short header")
		}
	})
}

func TestReadWrite(t *testing.T) {
	original := []byte("Hello, World! This is test data for compression.")

	t.Run("EncodeDecodeRoundTrip", func(t *testing.T) {
		var buf bytes.Buffer
		ws := &seekableBuffer{Buffer: &buf}

		if err := Encode(ws, testVersion, 2, original); err != nil {
			t.Fatalf("encode: %v", err)
		}

		r, err := NewReader(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		defer r.Close()

		h := r.Header()
		if h.Version != testVersion || h.Revision != 2 {
			t.Errorf("header identity: got %q rev %d", h.Version[:], h.Revision)
		}
		if r.Length() != len(original) {
			t.Errorf("length: got %d, want %d", r.Length(), len(original))
		}
		if r.CompressedLength() != buf.Len()-HeaderSize {
			t.Errorf("compressed length: got %d, want %d", r.CompressedLength(), buf.Len()-HeaderSize)
		}

		decoded, err := ReadAll(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !bytes.Equal(decoded, original) {
			t.Errorf("data mismatch: got %q, want %q", decoded, original)
		}
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := NewWriter(&seekableBuffer{Buffer: &buf}, testVersion, 2, uint64(len(original)+1))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if _, err := w.Write(original); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := w.Close(); err == nil {
			t.Error("expected error for short content")
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Encode(&seekableBuffer{Buffer: &buf}, testVersion, 2, original); err != nil {
			t.Fatalf("encode: %v", err)
		}
		if _, err := ReadAll(bytes.NewReader(buf.Bytes()[:HeaderSize+4])); err == nil {
			t.Error("expected error for truncated content")
		}
	})
}

func TestPackUnpack(t *testing.T) {
	s := scx.NewScenario()
	s.Header.Instructions = []byte("hold the ford\x00")
	s.OriginalFilename = []byte("ford.scx")
	s.Players[0].SetName([]byte("Ragnar"))

	var buf bytes.Buffer
	if err := Pack(&seekableBuffer{Buffer: &buf}, s); err != nil {
		t.Fatalf("pack: %v", err)
	}

	var h Header
	if err := h.UnmarshalBinary(buf.Bytes()); err != nil {
		t.Fatalf("archive header: %v", err)
	}
	if h.Version != s.Header.Version || h.Revision != s.Header.Revision {
		t.Errorf("header identity: got %q rev %d", h.Version[:], h.Revision)
	}

	decoded, err := Unpack(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if string(decoded.Players[0].NameBytes()) != "Ragnar" {
		t.Errorf("player name: got %q", decoded.Players[0].NameBytes())
	}
	if !bytes.Equal(decoded.OriginalFilename, s.OriginalFilename) {
		t.Errorf("filename: got %q", decoded.OriginalFilename)
	}

	t.Run("Repack", func(t *testing.T) {
		want, err := s.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}

		var out bytes.Buffer
		if err := Repack(&out, bytes.NewReader(buf.Bytes())); err != nil {
			t.Fatalf("repack: %v", err)
		}
		if !bytes.Equal(out.Bytes(), want) {
			t.Error("repacked scenario differs from a direct encode")
		}
	})

	t.Run("RawPayload", func(t *testing.T) {
		data, err := s.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		h, payload, err := scx.Inflate(data)
		if err != nil {
			t.Fatalf("inflate: %v", err)
		}

		var raw bytes.Buffer
		if err := PackPayload(&seekableBuffer{Buffer: &raw}, h, payload); err != nil {
			t.Fatalf("pack payload: %v", err)
		}
		content, err := ReadAll(bytes.NewReader(raw.Bytes()))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !bytes.HasSuffix(content, payload) {
			t.Error("archive content does not end with the payload")
		}
		if !bytes.HasPrefix(data, content[:len(content)-len(payload)]) {
			t.Error("archive content does not start with the scenario header")
		}
	})

	t.Run("BadPayload", func(t *testing.T) {
		head, _ := s.Header.MarshalBinary()
		var bad bytes.Buffer
		content := append(head, 1, 2, 3)
		if err := Encode(&seekableBuffer{Buffer: &bad}, s.Header.Version, s.Header.Revision, content); err != nil {
			t.Fatalf("encode: %v", err)
		}
		_, err := Unpack(bytes.NewReader(bad.Bytes()))
		if !errors.Is(err, scx.ErrTruncated) {
			t.Errorf("expected truncation error, got %v", err)
		}
	})
}

type seekableBuffer struct {
	*bytes.Buffer
	pos int64
}

func (s *seekableBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case 0:
		newPos = offset
	case 1:
		newPos = s.pos + offset
	case 2:
		newPos = int64(s.Buffer.Len()) + offset
	}
	s.pos = newPos
	return newPos, nil
}

func (s *seekableBuffer) Write(p []byte) (n int, err error) {
	for int64(s.Buffer.Len()) < s.pos {
		s.Buffer.WriteByte(0)
	}
	if s.pos < int64(s.Buffer.Len()) {
		data := s.Buffer.Bytes()
		n = copy(data[s.pos:], p)
		if n < len(p) {
			m, err := s.Buffer.Write(p[n:])
			n += m
			if err != nil {
				return n, err
			}
		}
	} else {
		n, err = s.Buffer.Write(p)
	}
	s.pos += int64(n)
	return n, err
}
