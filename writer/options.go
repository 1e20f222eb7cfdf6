package writer

import (
	"go.uber.org/zap"

	"github.com/mvlformat/mvl/format"
)

// config collects the values Open's functional options may adjust
// before the preamble is written.
type config struct {
	alignment       uint32
	legacyDirectory bool
	logger          *zap.SugaredLogger
}

// Option configures a Writer at Open time.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		alignment: format.DefaultAlignment,
		logger:    zap.NewNop().Sugar(),
	}
}

// WithAlignment overrides the default vector payload alignment. Must be
// a power of two; Open returns errs.ErrInvalidParameter otherwise.
func WithAlignment(alignment uint32) Option {
	return func(c *config) { c.alignment = alignment }
}

// WithLegacyDirectory makes Close emit the directory in the legacy,
// parallel-offset-array encoding (postamble type 1000) instead of the
// current named-list encoding (postamble type 1001).
func WithLegacyDirectory() Option {
	return func(c *config) { c.legacyDirectory = true }
}

// WithLogger injects a structured logger for diagnostic output. The
// default is a no-op logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
