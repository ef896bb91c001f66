package scx

const (
	miscReserved    = 9  // value written into the reserved 16-bit field
	trailerMarker   = 2.0
	trailerFiller   = 17
	trailerEndValue = -1
)

// PlayerMisc is the secondary per-player record that follows the unit
// groups. Its camera, diplomacy and color fields are independent of the
// main roster and only loosely consistent with it.
type PlayerMisc struct {
	Name          []byte
	CameraX       float32
	CameraY       float32
	Unknown1      int16
	Unknown2      int16
	AlliedVictory uint8
	Diplomacy     [GroupCount]uint8
	Diplomacy2    [GroupCount]int32
	Color         PlayerColor

	// Trailer holds the raw variable-length block that ends the record,
	// starting at its float marker. A nil trailer is written as the minimal
	// block: marker 2.0, 17 zero bytes, then -1.
	Trailer []byte
}

// trailerLength computes the size of the trailing block from its float
// marker and 16-bit entry count.
func trailerLength(marker float32, entries int16) int {
	n := int(entries)*44 + 11
	if marker == trailerMarker {
		n += 8
	}
	return n
}

func (s *Scenario) readPlayerMiscs(r *reader) {
	for i := range s.PlayerMiscs {
		m := &s.PlayerMiscs[i]
		m.Name = r.blob16()
		m.CameraX = r.f32()
		m.CameraY = r.f32()
		m.Unknown1 = r.i16()
		m.Unknown2 = r.i16()
		m.AlliedVictory = r.u8()
		r.skip(2)
		for j := range m.Diplomacy {
			m.Diplomacy[j] = r.u8()
		}
		for j := range m.Diplomacy2 {
			m.Diplomacy2[j] = r.i32()
		}
		m.Color = PlayerColor(r.i32())

		start := r.off
		marker := r.f32()
		entries := r.i16()
		r.skip(trailerLength(marker, entries))
		if r.err != nil {
			return
		}
		m.Trailer = make([]byte, r.off-start)
		copy(m.Trailer, r.buf[start:r.off])
	}
}

func (s *Scenario) writePlayerMiscs(w *writer) {
	for i := range s.PlayerMiscs {
		m := &s.PlayerMiscs[i]
		w.blob16("player misc name", m.Name)
		w.f32(m.CameraX)
		w.f32(m.CameraY)
		w.i16(m.Unknown1)
		w.i16(m.Unknown2)
		w.u8(m.AlliedVictory)
		w.i16(miscReserved)
		for _, d := range m.Diplomacy {
			w.u8(d)
		}
		for _, d := range m.Diplomacy2 {
			w.i32(d)
		}
		w.i32(int32(m.Color))

		if m.Trailer != nil {
			w.bytes(m.Trailer)
			continue
		}
		w.f32(trailerMarker)
		w.zeros(trailerFiller)
		w.i32(trailerEndValue)
	}
}
