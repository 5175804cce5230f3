package umbf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// DefaultCompressionLevel is the codec-neutral level used when no
// explicit level is configured. Levels run 1 (fastest) to 11 (densest)
// and are mapped onto each codec's native scale.
const DefaultCompressionLevel = 5

// compressPayload compresses the staging bytes with the given method.
// CompNone returns the input unchanged.
func compressPayload(method Compression, level int, raw []byte) ([]byte, error) {
	if level <= 0 {
		level = DefaultCompressionLevel
	}
	switch method {
	case CompNone:
		return raw, nil
	case CompZSTD:
		return zstdCompress(raw, level)
	case CompLZ4:
		return lz4Compress(raw, level)
	case CompBR:
		return brotliCompress(raw, level)
	default:
		return nil, fmt.Errorf("%w: unknown compression method %d", ErrDecompress, method)
	}
}

// decompressPayload inflates a stored payload. The format does not
// persist the uncompressed size, so maxSize caps expansion to guard
// against decompression bombs.
func decompressPayload(method Compression, data []byte, maxSize uint64) ([]byte, error) {
	var src io.Reader
	switch method {
	case CompNone:
		return data, nil
	case CompZSTD:
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
		}
		defer dec.Close()
		src = dec
	case CompLZ4:
		src = lz4.NewReader(bytes.NewReader(data))
	case CompBR:
		src = brotli.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: unknown compression method %d", ErrDecompress, method)
	}
	out, err := io.ReadAll(io.LimitReader(src, int64(maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	if uint64(len(out)) > maxSize {
		return nil, fmt.Errorf("%w: decompressed payload exceeds %d bytes", ErrLimitExceeded, maxSize)
	}
	return out, nil
}

func zstdCompress(in []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(level)))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 2:
		return zstd.SpeedFastest
	case level <= 5:
		return zstd.SpeedDefault
	case level <= 8:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

func lz4Compress(in []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4Level(level))); err != nil {
		return nil, err
	}
	if _, err := zw.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4Level(level int) lz4.CompressionLevel {
	switch {
	case level <= 1:
		return lz4.Fast
	case level <= 3:
		return lz4.Level1
	case level <= 5:
		return lz4.Level3
	case level <= 7:
		return lz4.Level5
	case level <= 9:
		return lz4.Level7
	default:
		return lz4.Level9
	}
}

func brotliCompress(in []byte, level int) ([]byte, error) {
	if level > brotli.BestCompression {
		level = brotli.BestCompression
	}
	var buf bytes.Buffer
	bw := brotli.NewWriterLevel(&buf, level)
	if _, err := bw.Write(in); err != nil {
		_ = bw.Close()
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
