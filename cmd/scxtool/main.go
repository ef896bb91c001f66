// Package main provides a command-line tool for inspecting and converting
// scenario files.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/EchoTools/scxFileTools/internal/config"
	"github.com/EchoTools/scxFileTools/pkg/scx"
)

var (
	mode       string
	outputPath string
	configFile string
	packMode   bool
	scale      int
	force      bool
)

func init() {
	pflag.StringVarP(&mode, "mode", "m", "", "Operation mode: info, verify, dump, thumbnail, payload, triggers")
	pflag.StringVarP(&outputPath, "output", "o", "", "Output file (dump, thumbnail, payload); dump defaults to stdout")
	pflag.StringVar(&configFile, "config", "", "Optional config file (yaml, json or toml)")
	pflag.BoolVar(&packMode, "pack", false, "Payload mode: rebuild a scenario from an archive instead of extracting one")
	pflag.IntVar(&scale, "scale", 1, "Thumbnail mode: integer scale factor")
	pflag.BoolVar(&force, "force", false, "Overwrite an existing output file")

	pflag.String("log-level", "info", "Log level: debug, info, warn, error")
	pflag.String("log-format", "console", "Log format: console or json")
	pflag.Int("level", scx.DefaultCompressionLevel, "Deflate level for rebuilt scenarios (-2..9)")
	pflag.Bool("legacy-age", false, "Write 1.26 start ages without the +2 offset")
	pflag.String("codepage", "windows-1252", "Code page for text blobs: "+strings.Join(scx.CodePages(), ", "))
	pflag.String("format", "json", "Dump format: json, yaml or cbor")
	pflag.Bool("zstd", false, "Compress dump output with zstd")
	pflag.Bool("tiles", false, "Include terrain tiles in dumps")
	pflag.Bool("scripts", false, "Include AI script text in dumps")
	pflag.Int("archive-level", 3, "zstd level for payload archives")
	pflag.Int("workers", 4, "Files processed in parallel by info and verify")
}

func main() {
	pflag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configFile, pflag.CommandLine)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	inputs := pflag.Args()
	if err := validateFlags(inputs); err != nil {
		pflag.Usage()
		return err
	}

	t := &tool{cfg: cfg, log: logger}
	switch mode {
	case "info":
		return t.runInfo(inputs)
	case "verify":
		return t.runVerify(inputs)
	case "dump":
		return t.runDump(inputs[0])
	case "thumbnail":
		return t.runThumbnail(inputs[0])
	case "payload":
		return t.runPayload(inputs[0])
	case "triggers":
		return t.runTriggers(inputs[0])
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

func validateFlags(inputs []string) error {
	if mode == "" {
		return fmt.Errorf("mode is required")
	}
	if len(inputs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	switch mode {
	case "info", "verify":
	case "dump", "triggers":
		if len(inputs) != 1 {
			return fmt.Errorf("%s mode takes exactly one input", mode)
		}
	case "thumbnail", "payload":
		if len(inputs) != 1 {
			return fmt.Errorf("%s mode takes exactly one input", mode)
		}
		if outputPath == "" {
			return fmt.Errorf("%s mode requires --output", mode)
		}
	default:
		return fmt.Errorf("mode must be one of info, verify, dump, thumbnail, payload, triggers")
	}

	if scale < 1 {
		return fmt.Errorf("scale must be at least 1")
	}
	if outputPath != "" && !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("output file %s exists (use --force to override)", outputPath)
		}
	}
	return nil
}

func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
