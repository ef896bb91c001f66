package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/EchoTools/scxFileTools/pkg/scx"
)

func testScenario(t *testing.T) *scx.Scenario {
	t.Helper()

	instructions, err := scx.EncodeText("Défendez le pont", "windows-1252")
	require.NoError(t, err)

	s := scx.NewScenario()
	s.Header.Instructions = instructions
	s.Header.LastSave = 1000000000
	s.Players[0].SetName([]byte("Ragnar"))
	s.Players[0].Active = 1
	s.Players[0].Human = 1
	s.Players[0].Gold = 200
	s.Players[0].NumDisabledTechs = 1
	s.Players[0].DisabledTechs = []int32{22, 23}
	s.Players[1].Diplomacy[0] = scx.StanceEnemy
	s.Map = scx.Map{Width: 2, Height: 2, Tiles: make([]scx.Terrain, 4)}
	s.Units[1] = []scx.Unit{{X: 1.5, Y: 2.5, ID: 7, Class: 83, Garrison: -1}}

	e := scx.Effect{Type: scx.EffectType(20), Text: []byte("hello\x00")}
	e.SetField(scx.EffectField(0), 3)
	s.Triggers.Triggers = []scx.Trigger{{
		Enabled:    1,
		Name:       []byte("intro\x00"),
		Effects:    []scx.Effect{e},
		Conditions: []scx.Condition{{Type: scx.ConditionType(10), Fields: []int32{1}}},
	}}
	s.AI.HasFiles = 1
	s.AI.Files = []scx.AIFile{{Name: []byte("rush.ai"), Content: []byte("(defrule)")}}
	return s
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"json": FormatJSON,
		"YAML": FormatYAML,
		"yml":  FormatYAML,
		"cbor": FormatCBOR,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, ".cbor", FormatCBOR.Ext())
}

func TestNewDocument(t *testing.T) {
	s := testScenario(t)
	doc, err := NewDocument(s)
	require.NoError(t, err)

	assert.Equal(t, "1.21", doc.Summary.Version)
	assert.Equal(t, "Défendez le pont", doc.Summary.Instructions)
	assert.Equal(t, 2001, doc.Summary.LastSave.Year())
	assert.Equal(t, 1, doc.Summary.Units)
	assert.Equal(t, 1, doc.Summary.Triggers)
	assert.True(t, doc.Summary.ExtendedTriggers)

	require.Len(t, doc.Players, 2)
	assert.Equal(t, "Ragnar", doc.Players[0].Name)
	assert.True(t, doc.Players[0].Human)
	assert.Equal(t, int32(200), doc.Players[0].Resources[0])
	assert.Equal(t, []int32{22}, doc.Players[0].Disabled.Techs)
	assert.Len(t, doc.Players[1].Diplomacy, 2)
	assert.Equal(t, scx.StanceEnemy.String(), doc.Players[1].Diplomacy[0])

	require.Len(t, doc.Triggers, 1)
	assert.Equal(t, "intro", doc.Triggers[0].Name)
	assert.Equal(t, "hello", doc.Triggers[0].Effects[0].Text)
	assert.Equal(t, int32(3), doc.Triggers[0].Effects[0].Fields[0])
	assert.Len(t, doc.Triggers[0].Conditions, 1)

	assert.Nil(t, doc.Map.Tiles)
	require.Len(t, doc.AIFiles, 1)
	assert.Empty(t, doc.AIFiles[0].Script)

	t.Run("Options", func(t *testing.T) {
		doc, err := NewDocument(s, WithTiles(), WithScripts(), WithAllPlayers())
		require.NoError(t, err)
		assert.Len(t, doc.Map.Tiles, 4)
		assert.Len(t, doc.Players, scx.MaxPlayers)
		assert.Equal(t, "(defrule)", doc.AIFiles[0].Script)
	})

	t.Run("UnknownCodePage", func(t *testing.T) {
		_, err := NewDocument(s, WithCodePage("ebcdic"))
		assert.Error(t, err)
	})
}

func TestMarshal(t *testing.T) {
	s := testScenario(t)

	t.Run("JSON", func(t *testing.T) {
		out, err := Marshal(s, FormatJSON, WithFingerprint("abc"))
		require.NoError(t, err)

		var doc Document
		require.NoError(t, json.Unmarshal(out, &doc))
		assert.Equal(t, "abc", doc.Summary.Fingerprint)
		assert.Equal(t, "Ragnar", doc.Players[0].Name)
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := Marshal(s, FormatYAML)
		require.NoError(t, err)

		var doc Document
		require.NoError(t, yaml.Unmarshal(out, &doc))
		assert.Equal(t, "intro", doc.Triggers[0].Name)
	})

	t.Run("CBOR", func(t *testing.T) {
		out, err := Marshal(s, FormatCBOR)
		require.NoError(t, err)

		var doc Document
		require.NoError(t, cbor.Unmarshal(out, &doc))
		assert.Equal(t, "1.21", doc.Summary.Version)

		again, err := Marshal(s, FormatCBOR)
		require.NoError(t, err)
		assert.Equal(t, out, again)
	})

	t.Run("Zstd", func(t *testing.T) {
		plain, err := Marshal(s, FormatJSON)
		require.NoError(t, err)
		packed, err := Marshal(s, FormatJSON, WithZstd(zstd.SpeedDefault))
		require.NoError(t, err)
		assert.NotEqual(t, plain, packed)

		out, err := Decompress(packed)
		require.NoError(t, err)
		assert.Equal(t, plain, out)
	})

	t.Run("Write", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, s, FormatYAML))
		assert.Contains(t, buf.String(), "Ragnar")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := Marshal(s, Format("toml"))
		assert.Error(t, err)
	})
}

func TestFingerprint(t *testing.T) {
	s := testScenario(t)
	a, err := ScenarioFingerprint(s)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	// Fingerprints ignore the deflate level.
	data, err := s.Encode(scx.WithCompressionLevel(1))
	require.NoError(t, err)
	decoded, err := scx.Decode(data)
	require.NoError(t, err)
	b, err := ScenarioFingerprint(decoded)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	s.NextUnitID++
	c, err := ScenarioFingerprint(s)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	assert.Equal(t, Fingerprint([]byte("x")), Fingerprint([]byte("x")))
}
