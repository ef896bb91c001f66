package scx

import "github.com/rs/zerolog"

type options struct {
	logger         zerolog.Logger
	level          int
	legacyStartAge bool
}

// Option configures decoding and encoding.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		logger: zerolog.Nop(),
		level:  DefaultCompressionLevel,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger traces section boundaries and payload offsets at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCompressionLevel sets the deflate level used by Encode.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithLegacyStartAge makes Encode write start ages without re-adding the
// 1.26 offset, matching files produced by older editors that subtract the
// offset on load but never restore it on save.
func WithLegacyStartAge(legacy bool) Option {
	return func(o *options) {
		o.legacyStartAge = legacy
	}
}
