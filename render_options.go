package htree

import "pkt.systems/htree/html"

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	osc8     bool
	noGuides bool
	parse    []html.Option
}

// WithOSC8 enables or disables OSC 8 hyperlinks on href and src values.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// WithGuides toggles box-drawing guides. Disabled guides indent each level
// by two spaces instead.
func WithGuides(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.noGuides = !enabled
	}
}

// WithParseOptions forwards options to the parser used by Render.
func WithParseOptions(opts ...html.Option) RenderOption {
	return func(cfg *renderConfig) {
		cfg.parse = append(cfg.parse, opts...)
	}
}

func resolveRenderConfig(opts []RenderOption) renderConfig {
	var cfg renderConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
