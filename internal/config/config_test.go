package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, -1, cfg.Codec.CompressionLevel)
	assert.False(t, cfg.Codec.LegacyStartAge)
	assert.Equal(t, "windows-1252", cfg.Text.CodePage)
	assert.Equal(t, "json", cfg.Dump.Format)
	assert.False(t, cfg.Dump.Zstd)
	assert.Equal(t, 3, cfg.Archive.Level)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_WithConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "scxtool.yaml")
	cfg := `
log:
  level: debug
codec:
  legacyStartAge: true
text:
  codePage: windows-1251
workers: 8
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	got, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", got.Log.Level)
	assert.True(t, got.Codec.LegacyStartAge)
	assert.Equal(t, "windows-1251", got.Text.CodePage)
	assert.Equal(t, 8, got.Workers)
	assert.Equal(t, "json", got.Dump.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load("/nonexistent/scxtool.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Environment(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SCXTOOL_DUMP_FORMAT", "cbor")
	t.Setenv("SCXTOOL_WORKERS", "2")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "cbor", cfg.Dump.Format)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_Flags(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SCXTOOL_TEXT_CODEPAGE", "gbk")

	fs := pflag.NewFlagSet("scxtool", pflag.ContinueOnError)
	fs.String("codepage", "windows-1252", "")
	fs.Int("workers", 4, "")
	fs.Bool("zstd", false, "")
	require.NoError(t, fs.Parse([]string{"--codepage", "shift-jis", "--zstd"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "shift-jis", cfg.Text.CodePage)
	assert.True(t, cfg.Dump.Zstd)
	assert.Equal(t, 4, cfg.Workers)
}

func TestValidate(t *testing.T) {
	valid := Config{Log: LogConfig{Format: "json"}, Workers: 1}
	assert.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*Config){
		"Workers":   func(c *Config) { c.Workers = 0 },
		"Level":     func(c *Config) { c.Codec.CompressionLevel = 12 },
		"LogFormat": func(c *Config) { c.Log.Format = "xml" },
	} {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
