package docidx

import (
	"log/slog"

	"github.com/hupe1980/docidx/codec"
)

type options struct {
	codec            codec.Codec
	compression      Compression
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Collection.
type Option func(*options)

// WithCodec configures the codec used by MarshalBinary.
//
// If nil is passed, codec.Default is used. UnmarshalBinary always decodes with
// the codec recorded in the envelope.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the block compression used by MarshalBinary.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &docidx.BasicMetricsCollector{}
//	c, _ := docidx.New(fields, docidx.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Finds: %d, Avg latency: %dns\n", stats.FindCount, stats.FindAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := docidx.NewJSONLogger(slog.LevelInfo)
//	c, _ := docidx.New(fields, docidx.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		compression:      CompressionNone,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
