// Package config resolves scxtool settings from defaults, a config file,
// the environment and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. SCXTOOL_LOG_LEVEL.
const EnvPrefix = "SCXTOOL"

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"` // console or json
}

// CodecConfig holds scenario encoder settings.
type CodecConfig struct {
	CompressionLevel int  `json:"compressionLevel" mapstructure:"compressionLevel"`
	LegacyStartAge   bool `json:"legacyStartAge" mapstructure:"legacyStartAge"`
}

// TextConfig holds text rendering settings.
type TextConfig struct {
	CodePage string `json:"codePage" mapstructure:"codePage"`
}

// DumpConfig holds export settings.
type DumpConfig struct {
	Format  string `json:"format" mapstructure:"format"`
	Zstd    bool   `json:"zstd" mapstructure:"zstd"`
	Tiles   bool   `json:"tiles" mapstructure:"tiles"`
	Scripts bool   `json:"scripts" mapstructure:"scripts"`
}

// ArchiveConfig holds payload archive settings.
type ArchiveConfig struct {
	Level int `json:"level" mapstructure:"level"`
}

// Config is the resolved tool configuration.
type Config struct {
	Log     LogConfig     `json:"log" mapstructure:"log"`
	Codec   CodecConfig   `json:"codec" mapstructure:"codec"`
	Text    TextConfig    `json:"text" mapstructure:"text"`
	Dump    DumpConfig    `json:"dump" mapstructure:"dump"`
	Archive ArchiveConfig `json:"archive" mapstructure:"archive"`
	Workers int           `json:"workers" mapstructure:"workers"`
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"log-level":     "log.level",
	"log-format":    "log.format",
	"level":         "codec.compressionLevel",
	"legacy-age":    "codec.legacyStartAge",
	"codepage":      "text.codePage",
	"format":        "dump.format",
	"zstd":          "dump.zstd",
	"tiles":         "dump.tiles",
	"scripts":       "dump.scripts",
	"archive-level": "archive.level",
	"workers":       "workers",
}

// SetDefaults registers default values.
func SetDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	viper.SetDefault("codec.compressionLevel", -1)
	viper.SetDefault("codec.legacyStartAge", false)

	viper.SetDefault("text.codePage", "windows-1252")

	viper.SetDefault("dump.format", "json")
	viper.SetDefault("dump.zstd", false)
	viper.SetDefault("dump.tiles", false)
	viper.SetDefault("dump.scripts", false)

	viper.SetDefault("archive.level", 3)

	viper.SetDefault("workers", 4)
}

// Load resolves configuration from defaults, an optional config file,
// SCXTOOL_* environment variables and any flags set on fs, in increasing
// precedence. An empty configFile skips the file.
func Load(configFile string, fs *pflag.FlagSet) (*Config, error) {
	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range FlagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := viper.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Codec.CompressionLevel < -2 || c.Codec.CompressionLevel > 9 {
		return fmt.Errorf("compression level %d out of range [-2, 9]", c.Codec.CompressionLevel)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
