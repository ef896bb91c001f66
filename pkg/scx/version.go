package scx

// Version identifies one of the body layouts. The layouts are ordered, so
// later versions can be compared with >=.
type Version int

const (
	Version118 Version = iota
	Version122
	Version123
	Version124
	Version126
)

// Upper bounds of the payload version float for each layout. The float is
// stored as a float32 so the bounds sit slightly above the nominal value.
const (
	threshold122 = 1.2201
	threshold123 = 1.2301
	threshold124 = 1.2401
)

// ResolveVersion derives the body layout from the header version tag and the
// version float stored at the start of the payload.
//
// Tags whose third byte is '1' ("1.18") use the oldest layout regardless of
// the float. Otherwise the float selects among the newer layouts, and values
// beyond every known threshold fall through to the newest one.
func ResolveVersion(tag [4]byte, f float32) Version {
	switch {
	case tag[2] == '1':
		return Version118
	case f < threshold122:
		return Version122
	case f < threshold123:
		return Version123
	case f < threshold124:
		return Version124
	default:
		return Version126
	}
}

func (v Version) String() string {
	switch v {
	case Version118:
		return "1.18"
	case Version122:
		return "1.22"
	case Version123:
		return "1.23"
	case Version124:
		return "1.24"
	case Version126:
		return "1.26"
	default:
		return "unknown"
	}
}

// StringTableInfoCount is the number of string table ids stored after the
// original filename.
func (v Version) StringTableInfoCount() int {
	if v >= Version122 {
		return 6
	}
	return 5
}

// StringInfoCount is the number of length-prefixed message strings.
func (v Version) StringInfoCount() int {
	if v >= Version122 {
		return 10
	}
	return 9
}

// HasMapType reports whether the map type id follows the camera position.
func (v Version) HasMapType() bool { return v >= Version122 }

// HasPopulationLimit reports whether resource records carry a population cap.
func (v Version) HasPopulationLimit() bool { return v >= Version122 }

// HasTeamSettings reports whether the 4-byte team settings block is present.
func (v Version) HasTeamSettings() bool { return v >= Version123 }

// HasPlayerNumber reports whether each resource quintuple is followed by a
// player number.
func (v Version) HasPlayerNumber() bool { return v >= Version124 }

// HasMapReserved reports whether 16 reserved bytes precede the map size.
func (v Version) HasMapReserved() bool { return v >= Version124 }

// DisabledBuildingSlots is the fixed length of each disabled building list.
func (v Version) DisabledBuildingSlots() int {
	if v >= Version126 {
		return 30
	}
	return 20
}

// ShiftsStartAge reports whether stored start ages are offset by two.
func (v Version) ShiftsStartAge() bool { return v >= Version126 }
