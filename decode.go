package umbf

import (
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
)

// Decode reads a UMBF container from r. The entire container is
// materialized in memory before block decoding; there is no streaming
// path.
//
// File-level failures (bad magic, unknown or failing decompression,
// truncated block frames) abort the load with a typed error. Frames
// with unregistered signatures are skipped, which is how unknown
// extension blocks are tolerated. An empty resulting block list is a
// warning, not an error.
func Decode(r io.Reader, opts ...DecodeOption) (*File, error) {
	cfg := decodeConfig{
		registry: DefaultRegistry(),
		logger:   slog.Default(),
		limits:   defaultLimits(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	data, err := io.ReadAll(io.LimitReader(r, int64(cfg.limits.MaxFileSize)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > cfg.limits.MaxFileSize {
		return nil, fmt.Errorf("%w: container exceeds %d bytes", ErrLimitExceeded, cfg.limits.MaxFileSize)
	}

	src := NewReader(data)
	magic := src.Uint32()
	h := src.header()
	if err := src.Err(); err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	payload, err := decompressPayload(h.Compression, data[src.off:], cfg.limits.MaxDecompressedSize)
	if err != nil {
		return nil, err
	}

	dc := &DecodeContext{Registry: cfg.registry, Logger: cfg.logger, Limits: cfg.limits}
	blocks, err := decodeBlocks(dc, NewReader(payload))
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		cfg.logger.Warn("container holds no decodable blocks", "type", fmt.Sprintf("0x%04X", h.TypeSign))
	}
	return &File{
		Header:   h,
		Blocks:   blocks,
		Checksum: crc32.ChecksumIEEE(payload),
	}, nil
}

// Load reads the container stored at path.
func Load(path string, opts ...DecodeOption) (*File, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return Decode(src, opts...)
}
