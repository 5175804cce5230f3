package umbf

import (
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
)

// Encode writes f to w in the UMBF container format: magic number,
// 12-byte packed header, then the block stream, compressed with the
// header's method when set.
//
// Blocks whose signature has no codec in the registry are skipped
// silently. The container checksum (CRC32 of the uncompressed block
// stream) is stored on f; it is never written to the file.
//
// WithCompression overrides the header's method; the override is
// reflected both on the wire and on f.Header so the in-memory container
// stays consistent with what was written.
func Encode(w io.Writer, f *File, opts ...EncodeOption) error {
	cfg := encodeConfig{
		registry: DefaultRegistry(),
		logger:   slog.Default(),
		level:    DefaultCompressionLevel,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if f == nil {
		return fmt.Errorf("%w: file is nil", ErrInvalidBlock)
	}
	if cfg.methodSet {
		f.Header.Compression = cfg.method
	}

	staging := NewWriter()
	ec := &EncodeContext{Registry: cfg.registry, Logger: cfg.logger}
	if err := encodeBlocks(ec, staging, f.Blocks); err != nil {
		return err
	}
	if err := staging.Err(); err != nil {
		return err
	}
	payload := staging.Bytes()
	f.Checksum = crc32.ChecksumIEEE(payload)

	stored, err := compressPayload(f.Header.Compression, cfg.level, payload)
	if err != nil {
		return err
	}

	out := NewWriter()
	out.Uint32(Magic)
	out.header(f.Header)
	out.Raw(stored)
	_, err = w.Write(out.Bytes())
	return err
}

// Save writes the container to path. An existing file is replaced.
func (f *File) Save(path string, opts ...EncodeOption) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(dst, f, opts...); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
