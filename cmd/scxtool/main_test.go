package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EchoTools/scxFileTools/internal/config"
	"github.com/EchoTools/scxFileTools/pkg/scx"
	"github.com/EchoTools/scxFileTools/pkg/thumbnail"
)

func TestFirstDifference(t *testing.T) {
	assert.Equal(t, -1, firstDifference([]byte("abc"), []byte("abc")))
	assert.Equal(t, 1, firstDifference([]byte("abc"), []byte("axc")))
	assert.Equal(t, 2, firstDifference([]byte("ab"), []byte("abc")))
	assert.Equal(t, -1, firstDifference(nil, nil))
}

func TestProcessFiles(t *testing.T) {
	paths := make([]string, 20)
	for i := range paths {
		paths[i] = fmt.Sprintf("file%02d", i)
	}

	results := processFiles(paths, 3, func(path string) (string, error) {
		if path == "file07" {
			return "", errors.New("broken")
		}
		return strings.ToUpper(path), nil
	})

	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.path)
		if i == 7 {
			assert.Error(t, r.err)
			continue
		}
		assert.NoError(t, r.err)
		assert.Equal(t, strings.ToUpper(paths[i]), r.line)
	}
}

func TestWriteTriggers(t *testing.T) {
	s := scx.NewScenario()
	s.Triggers.Triggers = []scx.Trigger{{
		Enabled:    1,
		Looping:    1,
		Name:       []byte("reinforcements\x00"),
		Effects:    []scx.Effect{{Type: scx.EffectType(1)}},
		Conditions: []scx.Condition{{Type: scx.ConditionType(10)}, {Type: scx.ConditionType(10)}},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeTriggers(&buf, s, "windows-1252"))

	out := buf.String()
	assert.Contains(t, out, "reinforcements")
	assert.Contains(t, out, "conditions=2 effects=1 enabled,looping")
	assert.Equal(t, 4, strings.Count(out, "\n"))

	assert.Error(t, writeTriggers(&buf, s, "klingon"))
}

func TestRenderThumbnail(t *testing.T) {
	s := scx.NewScenario()

	var buf bytes.Buffer
	assert.ErrorIs(t, renderThumbnail(&buf, s, "thumb.png", 1), thumbnail.ErrNoBitmap)

	s.BitmapWidth, s.BitmapHeight = 4, 2
	s.Bitmap = &scx.Bitmap{BitCount: 8, Pixels: make([]byte, scx.ImageDataLength(4, 2))}

	require.NoError(t, renderThumbnail(&buf, s, "thumb.png", 2))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	buf.Reset()
	require.NoError(t, renderThumbnail(&buf, s, "thumb.BMP", 1))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("BM")))

	assert.Error(t, renderThumbnail(&buf, s, "thumb.gif", 1))
}

func TestValidateFlags(t *testing.T) {
	defer func(m, o string) { mode, outputPath = m, o }(mode, outputPath)

	mode, outputPath = "", ""
	assert.Error(t, validateFlags([]string{"a.scx"}))

	mode = "info"
	assert.Error(t, validateFlags(nil))
	assert.NoError(t, validateFlags([]string{"a.scx", "b.scx"}))

	mode = "dump"
	assert.Error(t, validateFlags([]string{"a.scx", "b.scx"}))

	mode = "thumbnail"
	err := validateFlags([]string{"a.scx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")

	mode = "rename"
	assert.Error(t, validateFlags([]string{"a.scx"}))

	t.Run("ExistingOutput", func(t *testing.T) {
		defer func(o string, f bool) { outputPath, force = o, f }(outputPath, force)

		out := filepath.Join(t.TempDir(), "thumb.bmp")
		require.NoError(t, os.WriteFile(out, []byte("BM"), 0o644))
		mode, outputPath, force = "thumbnail", out, false
		err := validateFlags([]string{"a.scx"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--force")

		force = true
		assert.NoError(t, validateFlags([]string{"a.scx"}))
	})
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(config.LogConfig{Level: "debug", Format: "json"})
	assert.NoError(t, err)

	_, err = newLogger(config.LogConfig{Level: "chatty", Format: "console"})
	assert.Error(t, err)
}
