package scx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// DefaultCompressionLevel is the deflate level used when encoding.
const DefaultCompressionLevel = flate.DefaultCompression

// inflate decompresses the raw deflate stream that follows the header.
func inflate(compressed []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()

	data, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	return data, nil
}

// deflate compresses the encoded payload in a single pass.
func deflate(dst io.Writer, payload []byte, level int) error {
	fw, err := flate.NewWriter(dst, level)
	if err != nil {
		return fmt.Errorf("create compressor: %w", err)
	}
	if _, err := fw.Write(payload); err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("close compressor: %w", err)
	}
	return nil
}
