package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/EchoTools/scxFileTools/internal/config"
	"github.com/EchoTools/scxFileTools/pkg/archive"
	"github.com/EchoTools/scxFileTools/pkg/export"
	"github.com/EchoTools/scxFileTools/pkg/scx"
	"github.com/EchoTools/scxFileTools/pkg/thumbnail"
)

type tool struct {
	cfg *config.Config
	log zerolog.Logger
}

func (t *tool) codecOptions() []scx.Option {
	return []scx.Option{
		scx.WithLogger(t.log),
		scx.WithCompressionLevel(t.cfg.Codec.CompressionLevel),
		scx.WithLegacyStartAge(t.cfg.Codec.LegacyStartAge),
	}
}

func (t *tool) readScenario(path string) (*scx.Scenario, error) {
	s, err := scx.ReadFile(path, t.codecOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// reportAll logs per-file failures and prints successful lines.
func (t *tool) reportAll(results []fileResult) error {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			t.log.Error().Err(r.err).Str("file", r.path).Msg("failed")
			continue
		}
		fmt.Println(r.line)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func (t *tool) runInfo(paths []string) error {
	results := processFiles(paths, t.cfg.Workers, func(path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		h, payload, err := scx.Inflate(data)
		if err != nil {
			return "", err
		}
		s, err := scx.DecodePayload(h, payload, t.codecOptions()...)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s\tversion=%s layout=%s revision=%d players=%d map=%dx%d units=%d triggers=%d ai=%d blake3=%s",
			path,
			h.VersionString(),
			s.Version(),
			h.Revision,
			h.PlayerCount,
			s.Map.Width, s.Map.Height,
			s.UnitCount(),
			len(s.Triggers.Triggers),
			len(s.AI.Files),
			export.Fingerprint(payload),
		), nil
	})
	return t.reportAll(results)
}

func (t *tool) runVerify(paths []string) error {
	results := processFiles(paths, t.cfg.Workers, func(path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		h, payload, err := scx.Inflate(data)
		if err != nil {
			return "", err
		}
		s, err := scx.DecodePayload(h, payload, t.codecOptions()...)
		if err != nil {
			return "", err
		}
		again, err := s.Payload(t.codecOptions()...)
		if err != nil {
			return "", fmt.Errorf("re-encode: %w", err)
		}

		if off := firstDifference(payload, again); off >= 0 {
			return "", fmt.Errorf("payload differs at offset %d (original %d bytes, re-encoded %d bytes)", off, len(payload), len(again))
		}
		return fmt.Sprintf("%s\tok (%d bytes)", path, len(payload)), nil
	})
	return t.reportAll(results)
}

// firstDifference returns the first offset at which a and b differ, or -1.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

func (t *tool) runDump(path string) error {
	s, err := t.readScenario(path)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(t.cfg.Dump.Format)
	if err != nil {
		return err
	}

	fp, err := export.ScenarioFingerprint(s)
	if err != nil {
		return err
	}
	opts := []export.Option{
		export.WithCodePage(t.cfg.Text.CodePage),
		export.WithFingerprint(fp),
	}
	if t.cfg.Dump.Tiles {
		opts = append(opts, export.WithTiles())
	}
	if t.cfg.Dump.Scripts {
		opts = append(opts, export.WithScripts())
	}
	if t.cfg.Dump.Zstd {
		opts = append(opts, export.WithZstd(zstd.SpeedDefault))
	}

	out, err := export.Marshal(s, format, opts...)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	t.log.Info().Str("file", outputPath).Str("format", string(format)).Int("bytes", len(out)).Msg("dump written")
	return nil
}

func (t *tool) runThumbnail(path string) error {
	s, err := t.readScenario(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderThumbnail(&buf, s, outputPath, scale); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write thumbnail: %w", err)
	}
	t.log.Info().Str("file", outputPath).Int("scale", scale).Msg("thumbnail written")
	return nil
}

// renderThumbnail writes the embedded bitmap of s, choosing PNG or BMP from
// the output extension.
func renderThumbnail(w io.Writer, s *scx.Scenario, name string, factor int) error {
	img, err := thumbnail.FromScenario(s)
	if err != nil {
		return err
	}
	scaled := thumbnail.Scale(img, factor)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return thumbnail.WritePNG(w, scaled)
	case ".bmp":
		return thumbnail.WriteBMP(w, scaled)
	default:
		return fmt.Errorf("unsupported image type %q (use .png or .bmp)", filepath.Ext(name))
	}
}

func (t *tool) runPayload(path string) error {
	if packMode {
		return t.packPayload(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	h, payload, err := scx.Inflate(data)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	if err := archive.PackPayload(f, h, payload, archive.WithCompressionLevel(t.cfg.Archive.Level)); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	t.log.Info().Str("file", outputPath).Int("payload", len(payload)).Msg("payload extracted")
	return f.Close()
}

func (t *tool) packPayload(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer in.Close()

	var out bytes.Buffer
	if err := archive.Repack(&out, in, t.codecOptions()...); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	t.log.Info().Str("file", outputPath).Msg("scenario rebuilt")
	return nil
}

func (t *tool) runTriggers(path string) error {
	s, err := t.readScenario(path)
	if err != nil {
		return err
	}
	return writeTriggers(os.Stdout, s, t.cfg.Text.CodePage)
}

func writeTriggers(w io.Writer, s *scx.Scenario, codePage string) error {
	for i, tr := range s.Triggers.Triggers {
		name, err := scx.DecodeText(tr.Name, codePage)
		if err != nil {
			return err
		}
		flags := []string{}
		if tr.Enabled != 0 {
			flags = append(flags, "enabled")
		}
		if tr.Looping != 0 {
			flags = append(flags, "looping")
		}
		if tr.Objective != 0 {
			flags = append(flags, "objective")
		}
		fmt.Fprintf(w, "%3d %-32s conditions=%d effects=%d %s\n",
			i, name, len(tr.Conditions), len(tr.Effects), strings.Join(flags, ","))

		for _, c := range tr.Conditions {
			fmt.Fprintf(w, "      if   %s\n", c.Type)
		}
		for _, e := range tr.Effects {
			fmt.Fprintf(w, "      then %s\n", e.Type)
		}
	}
	return nil
}
