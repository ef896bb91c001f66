// Package export renders decoded scenarios as JSON, YAML or CBOR documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/EchoTools/scxFileTools/pkg/scx"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	switch f {
	case FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown dump format %q", name)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// cborMode encodes with sorted keys so equal documents produce equal bytes.
var cborMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339
	var err error
	cborMode, err = opts.EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

// Marshal builds the document view of s and encodes it in format f.
func Marshal(s *scx.Scenario, f Format, opts ...Option) ([]byte, error) {
	doc, err := NewDocument(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("build document: %w", err)
	}
	if o := newOptions(opts); o.fingerprint != nil {
		doc.Summary.Fingerprint = *o.fingerprint
	}
	return MarshalDocument(doc, f, opts...)
}

// MarshalDocument encodes an already built document.
func MarshalDocument(doc *Document, f Format, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	var (
		out []byte
		err error
	)
	switch f {
	case FormatJSON:
		out, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	case FormatYAML:
		out, err = yaml.Marshal(doc)
	case FormatCBOR:
		out, err = cborMode.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown dump format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}

	if o.zstd {
		return compress(out, o.zstdLevel)
	}
	return out, nil
}

// Write encodes the document view of s to w.
func Write(w io.Writer, s *scx.Scenario, f Format, opts ...Option) error {
	out, err := Marshal(s, f, opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

func compress(data []byte, level zstd.EncoderLevel) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
}

// Decompress reverses WithZstd.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress dump: %w", err)
	}
	return out, nil
}
