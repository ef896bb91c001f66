package scx

import "strconv"

// Personality selects the AI personality of a player slot.
type Personality uint8

const (
	PersonalityCustom Personality = iota
	PersonalityStandard
	PersonalityNone
)

func (p Personality) String() string {
	switch p {
	case PersonalityCustom:
		return "custom"
	case PersonalityStandard:
		return "standard"
	case PersonalityNone:
		return "none"
	}
	return "personality(" + strconv.Itoa(int(p)) + ")"
}

// VictoryMode is the scenario-wide victory condition.
type VictoryMode int32

const (
	VictoryStandard VictoryMode = iota
	VictoryConquest
	VictoryScore
	VictoryTime
	VictoryCustom
)

func (m VictoryMode) String() string {
	switch m {
	case VictoryStandard:
		return "standard"
	case VictoryConquest:
		return "conquest"
	case VictoryScore:
		return "score"
	case VictoryTime:
		return "time"
	case VictoryCustom:
		return "custom"
	}
	return "victory(" + strconv.Itoa(int(m)) + ")"
}

// Stance is a diplomacy value in the player table.
type Stance int32

const (
	StanceAllied  Stance = 0
	StanceNeutral Stance = 1
	StanceEnemy   Stance = 3
)

func (s Stance) String() string {
	switch s {
	case StanceAllied:
		return "allied"
	case StanceNeutral:
		return "neutral"
	case StanceEnemy:
		return "enemy"
	}
	return "stance(" + strconv.Itoa(int(s)) + ")"
}

// StartAge is the age a player begins in, after version adjustment.
type StartAge int32

const (
	StartAgeNone StartAge = iota - 1
	StartAgeDark
	StartAgeFeudal
	StartAgeCastle
	StartAgeImperial
	StartAgePostImperial
)

func (a StartAge) String() string {
	switch a {
	case StartAgeNone:
		return "none"
	case StartAgeDark:
		return "dark"
	case StartAgeFeudal:
		return "feudal"
	case StartAgeCastle:
		return "castle"
	case StartAgeImperial:
		return "imperial"
	case StartAgePostImperial:
		return "post-imperial"
	}
	return "age(" + strconv.Itoa(int(a)) + ")"
}

// MapType is the random map script a scenario was generated from.
type MapType int32

var mapTypeNames = map[MapType]string{
	9:    "arabia",
	10:   "archipelago",
	11:   "baltic",
	12:   "black forest",
	13:   "coastal",
	14:   "continental",
	15:   "crater lake",
	16:   "fortress",
	17:   "gold rush",
	18:   "highland",
	19:   "islands",
	20:   "mediterranean",
	21:   "migration",
	22:   "rivers",
	23:   "team islands",
	0x19: "scandinavia",
	0x1b: "yucatan",
	0x1c: "salt marsh",
	0x1e: "king of the hill",
	0x1f: "oasis",
	0x21: "nomad",
}

func (m MapType) String() string {
	if name, ok := mapTypeNames[m]; ok {
		return name
	}
	return "map(" + strconv.Itoa(int(m)) + ")"
}

// PlayerColor is the display color of a player.
type PlayerColor int32

var playerColorNames = [...]string{"blue", "red", "green", "yellow", "cyan", "purple", "gray", "orange"}

func (c PlayerColor) String() string {
	if c >= 0 && int(c) < len(playerColorNames) {
		return playerColorNames[c]
	}
	return "color(" + strconv.Itoa(int(c)) + ")"
}
