package archive

import (
	"bytes"
	"io"
	"testing"

	"github.com/DataDog/zstd"

	"github.com/EchoTools/scxFileTools/pkg/scx"
)

// benchScenario returns a scenario with a full-size map, a few hundred units
// and a handful of triggers.
func benchScenario() *scx.Scenario {
	s := scx.NewScenario()
	s.Header.Instructions = []byte("Defend the river crossings until the relief army arrives.\x00")
	s.OriginalFilename = []byte("crossings.scx")
	s.Players[0].SetName([]byte("Ragnar"))
	s.Players[1].SetName([]byte("Harald"))

	s.Map = scx.Map{Width: 144, Height: 144, Tiles: make([]scx.Terrain, 144*144)}
	for i := range s.Map.Tiles {
		s.Map.Tiles[i] = scx.Terrain{ID: uint8(i % 41), Elevation: int16(i % 7)}
	}

	for g := 1; g < 3; g++ {
		units := make([]scx.Unit, 200)
		for i := range units {
			units[i] = scx.Unit{X: float32(i % 144), Y: float32(i / 144), ID: int32(g*1000 + i), Class: 83, State: 2, Garrison: -1}
		}
		s.Units[g] = units
	}

	for i := 0; i < 8; i++ {
		e := scx.Effect{Type: scx.EffectCreateObject, Text: []byte("reinforcements")}
		e.SetField(scx.EffectAmount, int32(i))
		c := scx.Condition{Type: scx.ConditionTimer}
		c.SetField(scx.ConditionTimerValue, int32(60*i))
		s.Triggers.Triggers = append(s.Triggers.Triggers, scx.Trigger{
			Enabled:         1,
			Name:            []byte("wave"),
			Effects:         []scx.Effect{e},
			EffectsOrder:    []int32{0},
			Conditions:      []scx.Condition{c},
			ConditionsOrder: []int32{0},
		})
		s.Triggers.Order = append(s.Triggers.Order, int32(i))
	}
	return s
}

func packedScenario(b *testing.B, s *scx.Scenario) []byte {
	b.Helper()
	var buf bytes.Buffer
	if err := Pack(&seekableBuffer{Buffer: &buf}, s); err != nil {
		b.Fatal(err)
	}
	return buf.Bytes()
}

// BenchmarkPackPayload measures archiving a decompressed payload at the
// levels offered by the CLI.
func BenchmarkPackPayload(b *testing.B) {
	s := benchScenario()
	payload, err := s.Payload()
	if err != nil {
		b.Fatal(err)
	}

	levels := []struct {
		name  string
		level int
	}{
		{"BestSpeed", zstd.BestSpeed},
		{"Default", zstd.DefaultCompression},
	}
	for _, l := range levels {
		b.Run(l.name, func(b *testing.B) {
			var buf bytes.Buffer
			b.SetBytes(int64(len(payload)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf.Reset()
				if err := PackPayload(&seekableBuffer{Buffer: &buf}, &s.Header, payload, WithCompressionLevel(l.level)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkUnpack measures reading an archive back into a scenario.
func BenchmarkUnpack(b *testing.B) {
	data := packedScenario(b, benchScenario())

	b.Run("Content", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := ReadAll(bytes.NewReader(data)); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Scenario", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := Unpack(bytes.NewReader(data)); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkRepack measures converting an archive into a scenario file.
func BenchmarkRepack(b *testing.B) {
	data := packedScenario(b, benchScenario())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Repack(io.Discard, bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
