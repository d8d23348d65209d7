package hypergraph

import (
	"io"
	"log/slog"
)

// Option configures a Hypergraph.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	metrics bool
}

func defaultConfig() config {
	return config{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: true,
	}
}

// WithLogger sets the logger used for debug records about cascades and
// edge migrations. A nil logger keeps the default, which discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables or disables prometheus instrumentation.
// Enabled by default.
func WithMetrics(enabled bool) Option {
	return func(c *config) {
		c.metrics = enabled
	}
}

// EdgeOption configures a single AddEdge call.
type EdgeOption func(*edgeConfig)

type edgeConfig struct {
	weight *float64
	meta   Meta
}

// WithWeight sets the edge weight. Only valid on weighted hypergraphs.
func WithWeight(w float64) EdgeOption {
	return func(c *edgeConfig) {
		c.weight = &w
	}
}

// WithMeta attaches metadata to the edge, replacing any existing metadata.
func WithMeta(meta Meta) EdgeOption {
	return func(c *edgeConfig) {
		c.meta = meta
	}
}
