package scx

import "bytes"

const (
	// NameSize is the fixed width of a player name in the roster.
	NameSize = 256

	// DisabledSlots is the fixed length of the disabled tech and unit lists.
	DisabledSlots = 30

	civilizationMarker = 4
	checkpoint         = -99
	diplomacyReserved  = 11520
)

// Player is one of the 16 roster slots.
type Player struct {
	Name         [NameSize]byte
	NameStringID int32
	Active       int32
	Human        int32
	Civilization int32

	AI          []byte // AI name
	AIFile      []byte // embedded per-player AI script
	Personality Personality

	Gold         int32
	Wood         int32
	Food         int32
	Stone        int32
	Ore          int32
	PlayerNumber int32 // present from 1.24

	Diplomacy     [MaxPlayers]Stance
	AlliedVictory int32

	// The counts are stored separately from the lists and are kept as read,
	// even when they disagree with the number of meaningful entries.
	NumDisabledTechs     int32
	DisabledTechs        []int32
	NumDisabledUnits     int32
	DisabledUnits        []int32
	NumDisabledBuildings int32
	DisabledBuildings    []int32

	StartAge StartAge
}

// NameBytes returns the name up to the first NUL.
func (p *Player) NameBytes() []byte {
	if i := bytes.IndexByte(p.Name[:], 0); i >= 0 {
		return p.Name[:i]
	}
	return p.Name[:]
}

// SetName stores name, truncating it to NameSize bytes.
func (p *Player) SetName(name []byte) {
	p.Name = [NameSize]byte{}
	copy(p.Name[:], name)
}

// TeamSettings is the lobby team block present from 1.23.
type TeamSettings struct {
	LockTeams         uint8
	PlayerChooseTeams uint8
	RandomStartPoints uint8
	MaxTeams          uint8
}

func (s *Scenario) readRoster(r *reader) {
	for i := range s.Players {
		copy(s.Players[i].Name[:], r.next(NameSize))
	}
	for i := range s.Players {
		s.Players[i].NameStringID = r.i32()
	}
	for i := range s.Players {
		p := &s.Players[i]
		p.Active = r.i32()
		p.Human = r.i32()
		p.Civilization = r.i32()
		r.expect("civilization marker", civilizationMarker)
	}
	r.skip(9)
}

func (s *Scenario) writeRoster(w *writer) {
	for i := range s.Players {
		w.bytes(s.Players[i].Name[:])
	}
	for i := range s.Players {
		w.i32(s.Players[i].NameStringID)
	}
	for i := range s.Players {
		p := &s.Players[i]
		w.i32(p.Active)
		w.i32(p.Human)
		w.i32(p.Civilization)
		w.i32(civilizationMarker)
	}
	w.i32(1)
	w.u8(0)
	w.f32(-1)
}

// readPlayerSetup covers AI names, AI files, personalities and stockpiles.
func (s *Scenario) readPlayerSetup(r *reader) {
	for i := range s.Players {
		s.Players[i].AI = r.blob16()
	}
	for i := range s.Players {
		r.skip(8)
		s.Players[i].AIFile = r.blob32()
	}
	for i := range s.Players {
		s.Players[i].Personality = Personality(r.u8())
	}
	r.expect("ai personality", checkpoint)

	for i := range s.Players {
		p := &s.Players[i]
		p.Gold = r.i32()
		p.Wood = r.i32()
		p.Food = r.i32()
		p.Stone = r.i32()
		p.Ore = r.i32()
		r.skip(4)
		if r.version.HasPlayerNumber() {
			p.PlayerNumber = r.i32()
		}
	}
	r.expect("resources", checkpoint)
}

func (s *Scenario) writePlayerSetup(w *writer) {
	for i := range s.Players {
		w.blob16("ai name", s.Players[i].AI)
	}
	for i := range s.Players {
		w.i64(0)
		w.blob32("ai file", s.Players[i].AIFile)
	}
	for i := range s.Players {
		w.u8(uint8(s.Players[i].Personality))
	}
	w.i32(checkpoint)

	for i := range s.Players {
		p := &s.Players[i]
		w.i32(p.Gold)
		w.i32(p.Wood)
		w.i32(p.Food)
		w.i32(p.Stone)
		w.i32(p.Ore)
		w.i32(0)
		if w.version.HasPlayerNumber() {
			w.i32(p.PlayerNumber)
		}
	}
	w.i32(checkpoint)
}

// readDiplomacy covers the diplomacy matrix, allied victory flags and team
// settings.
func (s *Scenario) readDiplomacy(r *reader) {
	for i := range s.Players {
		for j := range s.Players[i].Diplomacy {
			s.Players[i].Diplomacy[j] = Stance(r.i32())
		}
	}
	r.skip(diplomacyReserved)
	r.expect("diplomacy", checkpoint)

	for i := range s.Players {
		s.Players[i].AlliedVictory = r.i32()
	}
	if r.version.HasTeamSettings() {
		s.Teams.LockTeams = r.u8()
		s.Teams.PlayerChooseTeams = r.u8()
		s.Teams.RandomStartPoints = r.u8()
		s.Teams.MaxTeams = r.u8()
	}
}

func (s *Scenario) writeDiplomacy(w *writer) {
	for i := range s.Players {
		for _, d := range s.Players[i].Diplomacy {
			w.i32(int32(d))
		}
	}
	w.zeros(diplomacyReserved)
	w.i32(checkpoint)

	for i := range s.Players {
		w.i32(s.Players[i].AlliedVictory)
	}
	if w.version.HasTeamSettings() {
		w.u8(s.Teams.LockTeams)
		w.u8(s.Teams.PlayerChooseTeams)
		w.u8(s.Teams.RandomStartPoints)
		w.u8(s.Teams.MaxTeams)
	}
}

// readDisables covers the disabled tech/unit/building tables and start ages.
func (s *Scenario) readDisables(r *reader) {
	for i := range s.Players {
		s.Players[i].NumDisabledTechs = r.i32()
	}
	for i := range s.Players {
		s.Players[i].DisabledTechs = r.int32s(DisabledSlots)
	}
	for i := range s.Players {
		s.Players[i].NumDisabledUnits = r.i32()
	}
	for i := range s.Players {
		s.Players[i].DisabledUnits = r.int32s(DisabledSlots)
	}
	for i := range s.Players {
		s.Players[i].NumDisabledBuildings = r.i32()
	}
	slots := r.version.DisabledBuildingSlots()
	for i := range s.Players {
		s.Players[i].DisabledBuildings = r.int32s(slots)
	}
	r.skip(8)
	s.AllTechs = r.i32()

	for i := range s.Players {
		age := StartAge(r.i32())
		if r.version.ShiftsStartAge() {
			age -= 2
		}
		s.Players[i].StartAge = age
	}
	r.expect("start age", checkpoint)
}

func (s *Scenario) writeDisables(w *writer) {
	for i := range s.Players {
		w.i32(s.Players[i].NumDisabledTechs)
	}
	for i := range s.Players {
		w.slots(s.Players[i].DisabledTechs, DisabledSlots)
	}
	for i := range s.Players {
		w.i32(s.Players[i].NumDisabledUnits)
	}
	for i := range s.Players {
		w.slots(s.Players[i].DisabledUnits, DisabledSlots)
	}
	for i := range s.Players {
		w.i32(s.Players[i].NumDisabledBuildings)
	}
	slots := w.version.DisabledBuildingSlots()
	for i := range s.Players {
		w.slots(s.Players[i].DisabledBuildings, slots)
	}
	w.i64(0)
	w.i32(s.AllTechs)

	for i := range s.Players {
		age := s.Players[i].StartAge
		if w.version.ShiftsStartAge() && !w.legacyStartAge {
			age += 2
		}
		w.i32(int32(age))
	}
	w.i32(checkpoint)
}
