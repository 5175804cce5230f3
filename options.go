package umbf

import "log/slog"

type encodeConfig struct {
	registry  *Registry
	logger    *slog.Logger
	level     int
	method    Compression
	methodSet bool
}

// EncodeOption customizes Encode and File.Save.
type EncodeOption func(*encodeConfig)

// WithCompression overrides the header's compression method for this
// encode. The written header carries the new method.
func WithCompression(method Compression) EncodeOption {
	return func(c *encodeConfig) {
		c.method = method
		c.methodSet = true
	}
}

// WithCompressionLevel sets the codec-neutral compression level,
// 1 (fastest) to 11 (densest).
func WithCompressionLevel(level int) EncodeOption {
	return func(c *encodeConfig) { c.level = level }
}

// WithRegistry selects the block codec registry used during encode.
func WithRegistry(r *Registry) EncodeOption {
	return func(c *encodeConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLogger selects the logger for encode-side diagnostics.
func WithLogger(l *slog.Logger) EncodeOption {
	return func(c *encodeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

type decodeConfig struct {
	registry *Registry
	logger   *slog.Logger
	limits   Limits
}

// DecodeOption customizes Decode and Load.
type DecodeOption func(*decodeConfig)

// WithDecodeRegistry selects the block codec registry used during
// decode. Frames whose signature is absent from the registry are
// skipped.
func WithDecodeRegistry(r *Registry) DecodeOption {
	return func(c *decodeConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithDecodeLogger selects the logger for decode-side diagnostics.
func WithDecodeLogger(l *slog.Logger) DecodeOption {
	return func(c *decodeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLimits replaces the default decode limits. Zero-valued fields
// keep their defaults.
func WithLimits(l Limits) DecodeOption {
	return func(c *decodeConfig) { c.limits = l }
}
