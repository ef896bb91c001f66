package export

import "github.com/klauspost/compress/zstd"

// DefaultCodePage is used for text blobs when no code page is configured.
const DefaultCodePage = "windows-1252"

type options struct {
	codePage    string
	tiles       bool
	scripts     bool
	allPlayers  bool
	zstd        bool
	zstdLevel   zstd.EncoderLevel
	fingerprint *string
}

// Option configures a dump.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{codePage: DefaultCodePage}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCodePage sets the code page used to render text blobs.
func WithCodePage(name string) Option {
	return func(o *options) {
		if name != "" {
			o.codePage = name
		}
	}
}

// WithTiles includes every terrain tile in the map view.
func WithTiles() Option {
	return func(o *options) { o.tiles = true }
}

// WithScripts includes embedded AI script text.
func WithScripts() Option {
	return func(o *options) { o.scripts = true }
}

// WithAllPlayers lists all sixteen roster slots instead of PlayerCount.
func WithAllPlayers() Option {
	return func(o *options) { o.allPlayers = true }
}

// WithZstd compresses the encoded document.
func WithZstd(level zstd.EncoderLevel) Option {
	return func(o *options) {
		o.zstd = true
		o.zstdLevel = level
	}
}

// WithFingerprint records a payload fingerprint in the summary.
func WithFingerprint(fp string) Option {
	return func(o *options) { o.fingerprint = &fp }
}
