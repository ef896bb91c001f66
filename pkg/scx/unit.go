package scx

const (
	// ResourceCount is the number of global resource records.
	ResourceCount = 8
	// GroupCount is the number of unit ownership groups and player-misc
	// records. Group 0 belongs to gaia.
	GroupCount = 9

	unitSize = 29
)

// Resource is a global starting stockpile record.
type Resource struct {
	Food            float32
	Wood            float32
	Gold            float32
	Stone           float32
	Ore             float32
	Reserved        int32
	PopulationLimit float32 // present from 1.22
}

// Unit is a placed object.
type Unit struct {
	X        float32
	Y        float32
	Z        float32
	ID       int32
	Class    int16
	State    uint8
	Rotation float32
	Frame    int16
	Garrison int32 // id of the containing unit, -1 when not garrisoned
}

// UnitCount returns the number of placed units across all groups.
func (s *Scenario) UnitCount() int {
	n := 0
	for _, g := range s.Units {
		n += len(g)
	}
	return n
}

func (s *Scenario) readUnits(r *reader) {
	for i := range s.Resources {
		res := &s.Resources[i]
		res.Food = r.f32()
		res.Wood = r.f32()
		res.Gold = r.f32()
		res.Stone = r.f32()
		res.Ore = r.f32()
		res.Reserved = r.i32()
		if r.version.HasPopulationLimit() {
			res.PopulationLimit = r.f32()
		}
	}
	r.expect("units", sectionMarker)

	for i := range s.Units {
		n := r.count("unit count", unitSize)
		if r.err != nil {
			return
		}
		group := make([]Unit, n)
		for j := range group {
			group[j] = Unit{
				X:        r.f32(),
				Y:        r.f32(),
				Z:        r.f32(),
				ID:       r.i32(),
				Class:    r.i16(),
				State:    r.u8(),
				Rotation: r.f32(),
				Frame:    r.i16(),
				Garrison: r.i32(),
			}
		}
		s.Units[i] = group
	}
}

func (s *Scenario) writeUnits(w *writer) {
	for _, res := range s.Resources {
		w.f32(res.Food)
		w.f32(res.Wood)
		w.f32(res.Gold)
		w.f32(res.Stone)
		w.f32(res.Ore)
		w.i32(res.Reserved)
		if w.version.HasPopulationLimit() {
			w.f32(res.PopulationLimit)
		}
	}
	w.i32(sectionMarker)

	for _, group := range s.Units {
		w.i32(int32(len(group)))
		for _, u := range group {
			w.f32(u.X)
			w.f32(u.Y)
			w.f32(u.Z)
			w.i32(u.ID)
			w.i16(u.Class)
			w.u8(u.State)
			w.f32(u.Rotation)
			w.i16(u.Frame)
			w.i32(u.Garrison)
		}
	}
}
