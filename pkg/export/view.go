package export

import (
	"time"

	"github.com/EchoTools/scxFileTools/pkg/scx"
)

// Document is the dump view of a scenario. Blobs are rendered as text in
// the configured code page; enumerations carry their names.
type Document struct {
	Summary  Summary       `json:"summary" yaml:"summary" cbor:"summary"`
	Players  []PlayerView  `json:"players" yaml:"players" cbor:"players"`
	Victory  VictoryView   `json:"victory" yaml:"victory" cbor:"victory"`
	Map      MapView       `json:"map" yaml:"map" cbor:"map"`
	Units    [][]scx.Unit  `json:"units" yaml:"units" cbor:"units"`
	Triggers []TriggerView `json:"triggers" yaml:"triggers" cbor:"triggers"`
	AIFiles  []AIFileView  `json:"aiFiles,omitempty" yaml:"aiFiles,omitempty" cbor:"aiFiles,omitempty"`
}

// Summary holds the headline facts about a scenario.
type Summary struct {
	Version          string    `json:"version" yaml:"version" cbor:"version"`
	Layout           string    `json:"layout" yaml:"layout" cbor:"layout"`
	Revision         int32     `json:"revision" yaml:"revision" cbor:"revision"`
	LastSave         time.Time `json:"lastSave" yaml:"lastSave" cbor:"lastSave"`
	Instructions     string    `json:"instructions" yaml:"instructions" cbor:"instructions"`
	OriginalFilename string    `json:"originalFilename" yaml:"originalFilename" cbor:"originalFilename"`
	PlayerCount      int32     `json:"playerCount" yaml:"playerCount" cbor:"playerCount"`
	NextUnitID       int32     `json:"nextUnitId" yaml:"nextUnitId" cbor:"nextUnitId"`
	MapWidth         int32     `json:"mapWidth" yaml:"mapWidth" cbor:"mapWidth"`
	MapHeight        int32     `json:"mapHeight" yaml:"mapHeight" cbor:"mapHeight"`
	MapType          string    `json:"mapType" yaml:"mapType" cbor:"mapType"`
	Units            int       `json:"units" yaml:"units" cbor:"units"`
	Triggers         int       `json:"triggers" yaml:"triggers" cbor:"triggers"`
	ExtendedTriggers bool      `json:"extendedTriggers" yaml:"extendedTriggers" cbor:"extendedTriggers"`
	HasBitmap        bool      `json:"hasBitmap" yaml:"hasBitmap" cbor:"hasBitmap"`
	Fingerprint      string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty" cbor:"fingerprint,omitempty"`
}

// PlayerView describes one roster slot.
type PlayerView struct {
	Slot         int      `json:"slot" yaml:"slot" cbor:"slot"`
	Name         string   `json:"name" yaml:"name" cbor:"name"`
	Active       bool     `json:"active" yaml:"active" cbor:"active"`
	Human        bool     `json:"human" yaml:"human" cbor:"human"`
	Civilization int32    `json:"civilization" yaml:"civilization" cbor:"civilization"`
	AI           string   `json:"ai,omitempty" yaml:"ai,omitempty" cbor:"ai,omitempty"`
	Personality  string   `json:"personality" yaml:"personality" cbor:"personality"`
	Resources    [5]int32 `json:"resources" yaml:"resources" cbor:"resources"` // gold wood food stone ore
	StartAge     string   `json:"startAge" yaml:"startAge" cbor:"startAge"`
	Diplomacy    []string `json:"diplomacy" yaml:"diplomacy" cbor:"diplomacy"`
	Disabled     Disabled `json:"disabled" yaml:"disabled" cbor:"disabled"`
}

// Disabled lists the meaningful disabled ids of a player.
type Disabled struct {
	Techs     []int32 `json:"techs,omitempty" yaml:"techs,omitempty" cbor:"techs,omitempty"`
	Units     []int32 `json:"units,omitempty" yaml:"units,omitempty" cbor:"units,omitempty"`
	Buildings []int32 `json:"buildings,omitempty" yaml:"buildings,omitempty" cbor:"buildings,omitempty"`
}

// VictoryView is the global victory configuration.
type VictoryView struct {
	Mode        string `json:"mode" yaml:"mode" cbor:"mode"`
	Conquest    bool   `json:"conquest" yaml:"conquest" cbor:"conquest"`
	Relics      int64  `json:"relics" yaml:"relics" cbor:"relics"`
	Explored    int64  `json:"explored" yaml:"explored" cbor:"explored"`
	AllMustMeet bool   `json:"allMustMeet" yaml:"allMustMeet" cbor:"allMustMeet"`
	Score       int32  `json:"score" yaml:"score" cbor:"score"`
	Time        int32  `json:"time" yaml:"time" cbor:"time"`
}

// MapView summarizes the terrain grid. Tiles are omitted unless requested.
type MapView struct {
	CameraX int32         `json:"cameraX" yaml:"cameraX" cbor:"cameraX"`
	CameraY int32         `json:"cameraY" yaml:"cameraY" cbor:"cameraY"`
	Width   int32         `json:"width" yaml:"width" cbor:"width"`
	Height  int32         `json:"height" yaml:"height" cbor:"height"`
	Tiles   []scx.Terrain `json:"tiles,omitempty" yaml:"tiles,omitempty" cbor:"tiles,omitempty"`
}

// TriggerView is one trigger with its effects and conditions.
type TriggerView struct {
	Index       int             `json:"index" yaml:"index" cbor:"index"`
	Name        string          `json:"name" yaml:"name" cbor:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty" cbor:"description,omitempty"`
	Enabled     bool            `json:"enabled" yaml:"enabled" cbor:"enabled"`
	Looping     bool            `json:"looping" yaml:"looping" cbor:"looping"`
	Objective   bool            `json:"objective" yaml:"objective" cbor:"objective"`
	Effects     []EffectView    `json:"effects" yaml:"effects" cbor:"effects"`
	Conditions  []ConditionView `json:"conditions" yaml:"conditions" cbor:"conditions"`
}

// EffectView is one trigger effect in display order of its fields.
type EffectView struct {
	Type      string  `json:"type" yaml:"type" cbor:"type"`
	Fields    []int32 `json:"fields" yaml:"fields" cbor:"fields"`
	Text      string  `json:"text,omitempty" yaml:"text,omitempty" cbor:"text,omitempty"`
	SoundFile string  `json:"soundFile,omitempty" yaml:"soundFile,omitempty" cbor:"soundFile,omitempty"`
	UnitIDs   []int32 `json:"unitIds,omitempty" yaml:"unitIds,omitempty" cbor:"unitIds,omitempty"`
}

// ConditionView is one trigger condition.
type ConditionView struct {
	Type   string  `json:"type" yaml:"type" cbor:"type"`
	Fields []int32 `json:"fields" yaml:"fields" cbor:"fields"`
}

// AIFileView is an embedded AI script.
type AIFileView struct {
	Name   string `json:"name" yaml:"name" cbor:"name"`
	Size   int    `json:"size" yaml:"size" cbor:"size"`
	Script string `json:"script,omitempty" yaml:"script,omitempty" cbor:"script,omitempty"`
}

// NewDocument builds the dump view of s.
func NewDocument(s *scx.Scenario, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	t := texter{codePage: o.codePage}

	doc := &Document{
		Summary: Summary{
			Version:          s.Header.VersionString(),
			Layout:           s.Version().String(),
			Revision:         s.Header.Revision,
			LastSave:         time.Unix(int64(s.Header.LastSave), 0).UTC(),
			Instructions:     t.text(s.Header.Instructions),
			OriginalFilename: t.text(s.OriginalFilename),
			PlayerCount:      s.Header.PlayerCount,
			NextUnitID:       s.NextUnitID,
			MapWidth:         s.Map.Width,
			MapHeight:        s.Map.Height,
			MapType:          s.MapType.String(),
			Units:            s.UnitCount(),
			Triggers:         len(s.Triggers.Triggers),
			ExtendedTriggers: s.Triggers.Extended(),
			HasBitmap:        s.HasBitmap(),
		},
		Victory: VictoryView{
			Mode:        s.Victory.Mode.String(),
			Conquest:    s.Victory.Conquest != 0,
			Relics:      s.Victory.Relics,
			Explored:    s.Victory.Explored,
			AllMustMeet: s.Victory.AllMustMeet != 0,
			Score:       s.Victory.Score,
			Time:        s.Victory.Time,
		},
		Map: MapView{
			CameraX: s.CameraX,
			CameraY: s.CameraY,
			Width:   s.Map.Width,
			Height:  s.Map.Height,
		},
		Units: s.Units[:],
	}
	if o.tiles {
		doc.Map.Tiles = s.Map.Tiles
	}

	players := int(s.Header.PlayerCount)
	if o.allPlayers {
		players = scx.MaxPlayers
	}
	for i := 0; i < players && i < scx.MaxPlayers; i++ {
		doc.Players = append(doc.Players, t.player(i, &s.Players[i], players))
	}

	for i := range s.Triggers.Triggers {
		doc.Triggers = append(doc.Triggers, t.trigger(i, &s.Triggers.Triggers[i]))
	}

	for _, f := range s.AI.Files {
		v := AIFileView{Name: t.text(f.Name), Size: len(f.Content)}
		if o.scripts {
			v.Script = t.text(f.Content)
		}
		doc.AIFiles = append(doc.AIFiles, v)
	}

	if t.err != nil {
		return nil, t.err
	}
	return doc, nil
}

// texter decodes blobs in one code page and keeps the first error.
type texter struct {
	codePage string
	err      error
}

func (t *texter) text(b []byte) string {
	if t.err != nil {
		return ""
	}
	s, err := scx.DecodeText(b, t.codePage)
	if err != nil {
		t.err = err
	}
	return s
}

func (t *texter) player(slot int, p *scx.Player, players int) PlayerView {
	v := PlayerView{
		Slot:         slot,
		Name:         t.text(p.NameBytes()),
		Active:       p.Active != 0,
		Human:        p.Human != 0,
		Civilization: p.Civilization,
		AI:           t.text(p.AI),
		Personality:  p.Personality.String(),
		Resources:    [5]int32{p.Gold, p.Wood, p.Food, p.Stone, p.Ore},
		StartAge:     p.StartAge.String(),
		Disabled: Disabled{
			Techs:     leading(p.DisabledTechs, p.NumDisabledTechs),
			Units:     leading(p.DisabledUnits, p.NumDisabledUnits),
			Buildings: leading(p.DisabledBuildings, p.NumDisabledBuildings),
		},
	}
	for j := 0; j < players && j < scx.MaxPlayers; j++ {
		v.Diplomacy = append(v.Diplomacy, p.Diplomacy[j].String())
	}
	return v
}

func (t *texter) trigger(i int, tr *scx.Trigger) TriggerView {
	v := TriggerView{
		Index:       i,
		Name:        t.text(tr.Name),
		Description: t.text(tr.Description),
		Enabled:     tr.Enabled != 0,
		Looping:     tr.Looping != 0,
		Objective:   tr.Objective != 0,
		Effects:     make([]EffectView, 0, len(tr.Effects)),
		Conditions:  make([]ConditionView, 0, len(tr.Conditions)),
	}
	for _, e := range tr.Effects {
		v.Effects = append(v.Effects, EffectView{
			Type:      e.Type.String(),
			Fields:    e.Fields,
			Text:      t.text(e.Text),
			SoundFile: t.text(e.SoundFile),
			UnitIDs:   e.UnitIDs,
		})
	}
	for _, c := range tr.Conditions {
		v.Conditions = append(v.Conditions, ConditionView{
			Type:   c.Type.String(),
			Fields: c.Fields,
		})
	}
	return v
}

// leading returns the first n ids, clamped to the list.
func leading(ids []int32, n int32) []int32 {
	if n <= 0 {
		return nil
	}
	if int(n) > len(ids) {
		n = int32(len(ids))
	}
	return ids[:n]
}
