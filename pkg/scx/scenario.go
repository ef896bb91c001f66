// Package scx decodes and encodes scenario files.
//
// A scenario file is a small uncompressed header followed by a raw deflate
// stream. The decompressed payload has no section table: every field offset
// follows from the fields before it, from the body layout selected by
// ResolveVersion, and from checkpoint values that must match exactly. The
// codec therefore reads the payload in one forward pass and writes it back
// in the same order, so that Encode(Decode(b)) reproduces b apart from a few
// reserved fields that are always written with fixed values.
package scx

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Scenario is a decoded scenario file. It owns all of its data.
type Scenario struct {
	Header Header

	NextUnitID   int32
	VersionFloat float32

	Players [MaxPlayers]Player

	OriginalFilename []byte
	StringTableInfos []int32
	StringInfos      [][]byte

	BitmapFlag   int32
	BitmapWidth  int32
	BitmapHeight int32
	Bitmap       *Bitmap // nil unless both dimensions are positive

	Victory  Victory
	Teams    TeamSettings // present from 1.23
	AllTechs int32

	CameraX int32
	CameraY int32
	MapType MapType // present from 1.22
	Map     Map

	Resources   [ResourceCount]Resource
	Units       [GroupCount][]Unit
	PlayerMiscs [GroupCount]PlayerMisc

	Triggers TriggerSection
	AI       AISection
}

// NewScenario returns an empty 1.22 scenario with the extended trigger
// format, ready to be filled in and encoded.
func NewScenario() *Scenario {
	s := &Scenario{
		Header: Header{
			Version:     [4]byte{'1', '.', '2', '1'},
			Revision:    2,
			PlayerCount: 2,
		},
		VersionFloat: 1.22,
		Triggers:     TriggerSection{Format: TriggerFormatExtended},
	}
	for i := range s.Players {
		s.Players[i].StartAge = StartAgeNone
	}
	return s
}

// Version returns the body layout used by this scenario.
func (s *Scenario) Version() Version {
	return ResolveVersion(s.Header.Version, s.VersionFloat)
}

type section struct {
	name  string
	read  func(*Scenario, *reader)
	write func(*Scenario, *writer)
}

// sections lists the payload codecs in stream order.
var sections = []section{
	{"players", (*Scenario).readRoster, (*Scenario).writeRoster},
	{"presentation", (*Scenario).readPresentation, (*Scenario).writePresentation},
	{"players", (*Scenario).readPlayerSetup, (*Scenario).writePlayerSetup},
	{"victory", (*Scenario).readVictory, (*Scenario).writeVictory},
	{"diplomacy", (*Scenario).readDiplomacy, (*Scenario).writeDiplomacy},
	{"players", (*Scenario).readDisables, (*Scenario).writeDisables},
	{"map", (*Scenario).readMap, (*Scenario).writeMap},
	{"units", (*Scenario).readUnits, (*Scenario).writeUnits},
	{"player misc", (*Scenario).readPlayerMiscs, (*Scenario).writePlayerMiscs},
	{"triggers", (*Scenario).readTriggers, (*Scenario).writeTriggers},
	{"ai files", (*Scenario).readAIFiles, (*Scenario).writeAIFiles},
}

// Decode parses a complete scenario file.
func Decode(data []byte, opts ...Option) (*Scenario, error) {
	h, payload, err := Inflate(data)
	if err != nil {
		return nil, err
	}
	return DecodePayload(h, payload, opts...)
}

// Inflate splits a scenario file into its header and decompressed payload
// without decoding the payload.
func Inflate(data []byte) (*Header, []byte, error) {
	h, n, err := readHeader(data)
	if err != nil {
		return nil, nil, err
	}

	payload, err := inflate(data[n:])
	if err != nil {
		return nil, nil, &FormatError{Stage: "payload", Trigger: -1, Offset: int64(n), Err: err}
	}
	return h, payload, nil
}

// DecodePayload parses an already decompressed payload under header h.
func DecodePayload(h *Header, payload []byte, opts ...Option) (*Scenario, error) {
	o := newOptions(opts)
	s := &Scenario{Header: *h}

	r := newReader(payload, "payload")
	s.NextUnitID = r.i32()
	s.VersionFloat = r.f32()
	if r.err != nil {
		return nil, r.err
	}
	r.version = s.Version()

	log := o.logger.With().Str("version", r.version.String()).Logger()
	for _, sec := range sections {
		r.stage = sec.name
		log.Debug().Str("section", sec.name).Int("offset", r.off).Msg("decode section")
		sec.read(s, r)
		if r.err != nil {
			return nil, r.err
		}
	}

	if rest := r.remaining(); rest > 0 {
		log.Warn().Int("bytes", rest).Msg("unread payload bytes")
	}
	return s, nil
}

// Payload encodes the uncompressed body.
func (s *Scenario) Payload(opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	w := newWriter("payload")
	w.version = s.Version()
	w.legacyStartAge = o.legacyStartAge
	w.i32(s.NextUnitID)
	w.f32(s.VersionFloat)

	log := o.logger.With().Str("version", w.version.String()).Logger()
	for _, sec := range sections {
		w.stage = sec.name
		log.Debug().Str("section", sec.name).Int("offset", len(w.buf)).Msg("encode section")
		sec.write(s, w)
		if w.err != nil {
			return nil, w.err
		}
	}
	return w.buf, nil
}

// Encode produces a complete scenario file.
func (s *Scenario) Encode(opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	payload, err := s.Payload(opts...)
	if err != nil {
		return nil, err
	}

	head, err := s.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(head)
	if err := deflate(out, payload, o.level); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MarshalBinary encodes the scenario with default options.
func (s *Scenario) MarshalBinary() ([]byte, error) {
	return s.Encode()
}

// UnmarshalBinary decodes data into s with default options.
func (s *Scenario) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// Read decodes a scenario from r.
func Read(r io.Reader, opts ...Option) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Decode(data, opts...)
}

// Write encodes s to w.
func Write(w io.Writer, s *Scenario, opts ...Option) error {
	data, err := s.Encode(opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

// ReadFile reads and decodes a scenario file.
func ReadFile(path string, opts ...Option) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	return Read(f, opts...)
}

// WriteFile encodes a scenario and writes it to path.
func WriteFile(path string, s *Scenario, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := Write(f, s, opts...); err != nil {
		return err
	}
	return f.Close()
}
