package html

import "log/slog"

// DefaultMaxDepth is the element nesting limit used unless WithMaxDepth
// overrides it.
const DefaultMaxDepth = 512

// Option configures parsing.
type Option func(*config)

type config struct {
	maxDepth int
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{maxDepth: DefaultMaxDepth}
}

// WithMaxDepth limits element nesting. n <= 0 removes the limit.
func WithMaxDepth(n int) Option {
	return func(cfg *config) {
		cfg.maxDepth = n
	}
}

// WithLogger sets the logger used for debug events. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func resolveConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}
