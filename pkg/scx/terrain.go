package scx

import "fmt"

const (
	mapReserved = 16
	// sectionMarker is the checkpoint written after the terrain grid and
	// after the resource records.
	sectionMarker = 9
)

// Terrain is one map cell.
type Terrain struct {
	ID        uint8
	Elevation int16
}

// Map is the terrain grid. Tiles are kept in stream order: x outer, y inner.
type Map struct {
	Width  int32
	Height int32
	Tiles  []Terrain
}

// At returns the cell at (x, y). It reports false when the coordinates are
// outside the grid or the grid is short of cells.
func (m *Map) At(x, y int) (Terrain, bool) {
	if x < 0 || y < 0 || x >= int(m.Width) || y >= int(m.Height) {
		return Terrain{}, false
	}
	i := x*int(m.Height) + y
	if i >= len(m.Tiles) {
		return Terrain{}, false
	}
	return m.Tiles[i], true
}

// Victory holds the scenario-wide victory settings.
type Victory struct {
	Conquest    int64
	Relics      int64
	Explored    int64
	AllMustMeet int32
	Mode        VictoryMode
	Score       int32
	Time        int32
}

func (s *Scenario) readVictory(r *reader) {
	s.Victory = Victory{
		Conquest:    r.i64(),
		Relics:      r.i64(),
		Explored:    r.i64(),
		AllMustMeet: r.i32(),
		Mode:        VictoryMode(r.i32()),
		Score:       r.i32(),
		Time:        r.i32(),
	}
}

func (s *Scenario) writeVictory(w *writer) {
	w.i64(s.Victory.Conquest)
	w.i64(s.Victory.Relics)
	w.i64(s.Victory.Explored)
	w.i32(s.Victory.AllMustMeet)
	w.i32(int32(s.Victory.Mode))
	w.i32(s.Victory.Score)
	w.i32(s.Victory.Time)
}

// terrainSize is the on-disk size of one cell.
const terrainSize = 3

func errTerrain(width, height int32, have int) error {
	return fmt.Errorf("%w: %dx%d grid, have %d bytes", ErrTruncated, width, height, have)
}

func (s *Scenario) readMap(r *reader) {
	s.CameraX = r.i32()
	s.CameraY = r.i32()
	if r.version.HasMapType() {
		s.MapType = MapType(r.i32())
	}
	if r.version.HasMapReserved() {
		r.skip(mapReserved)
	}

	off := r.off
	s.Map.Width = r.i32()
	s.Map.Height = r.i32()
	if r.err != nil {
		return
	}
	// Bound each dimension before multiplying so huge sizes cannot overflow.
	if s.Map.Width < 0 || s.Map.Height < 0 ||
		(s.Map.Height > 0 && int(s.Map.Width) > r.remaining()/terrainSize/int(s.Map.Height)) {
		r.fail("map size", off, errTerrain(s.Map.Width, s.Map.Height, r.remaining()))
		return
	}
	cells := int(s.Map.Width) * int(s.Map.Height)
	s.Map.Tiles = make([]Terrain, cells)
	for i := range s.Map.Tiles {
		s.Map.Tiles[i] = Terrain{ID: r.u8(), Elevation: r.i16()}
	}
	r.expect("terrain", sectionMarker)
}

func (s *Scenario) writeMap(w *writer) {
	w.i32(s.CameraX)
	w.i32(s.CameraY)
	if w.version.HasMapType() {
		w.i32(int32(s.MapType))
	}
	if w.version.HasMapReserved() {
		w.zeros(mapReserved)
	}

	w.i32(s.Map.Width)
	w.i32(s.Map.Height)
	cells := int(s.Map.Width) * int(s.Map.Height)
	for i := 0; i < cells; i++ {
		var t Terrain
		if i < len(s.Map.Tiles) {
			t = s.Map.Tiles[i]
		}
		w.u8(t.ID)
		w.i16(t.Elevation)
	}
	w.i32(sectionMarker)
}
