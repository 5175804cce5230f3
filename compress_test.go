package umbf

import (
	"bytes"
	"errors"
	"testing"
)

func TestCompressPayloadRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte("umbf payload "), 512)
	for _, method := range []Compression{CompNone, CompZSTD, CompLZ4, CompBR} {
		stored, err := compressPayload(method, DefaultCompressionLevel, raw)
		if err != nil {
			t.Fatalf("method %d: %v", method, err)
		}
		if method != CompNone && len(stored) >= len(raw) {
			t.Errorf("method %d: stored %d bytes, raw %d", method, len(stored), len(raw))
		}
		got, err := decompressPayload(method, stored, uint64(len(raw)))
		if err != nil {
			t.Fatalf("method %d: %v", method, err)
		}
		if !bytes.Equal(got, raw) {
			t.Errorf("method %d: payload corrupted", method)
		}
	}
}

func TestCompressPayloadLevels(t *testing.T) {
	raw := bytes.Repeat([]byte("abcdefgh"), 4096)
	for _, level := range []int{1, 5, 9, 11} {
		for _, method := range []Compression{CompZSTD, CompLZ4, CompBR} {
			stored, err := compressPayload(method, level, raw)
			if err != nil {
				t.Fatalf("method %d level %d: %v", method, level, err)
			}
			got, err := decompressPayload(method, stored, uint64(len(raw)))
			if err != nil {
				t.Fatalf("method %d level %d: %v", method, level, err)
			}
			if !bytes.Equal(got, raw) {
				t.Errorf("method %d level %d: payload corrupted", method, level)
			}
		}
	}
}

func TestDecompressPayloadSizeLimit(t *testing.T) {
	raw := make([]byte, 1<<16)
	for _, method := range []Compression{CompZSTD, CompLZ4, CompBR} {
		stored, err := compressPayload(method, DefaultCompressionLevel, raw)
		if err != nil {
			t.Fatal(err)
		}
		_, err = decompressPayload(method, stored, 1024)
		if !errors.Is(err, ErrLimitExceeded) {
			t.Errorf("method %d: expected ErrLimitExceeded, got %v", method, err)
		}
	}
}

func TestDecompressPayloadGarbage(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0x00, 0x01}
	for _, method := range []Compression{CompZSTD, CompLZ4} {
		if _, err := decompressPayload(method, garbage, 1<<20); !errors.Is(err, ErrDecompress) {
			t.Errorf("method %d: expected ErrDecompress, got %v", method, err)
		}
	}
}

func TestUnknownCompressionMethod(t *testing.T) {
	if _, err := compressPayload(Compression(99), DefaultCompressionLevel, []byte{1}); err == nil {
		t.Error("compress accepted an unknown method")
	}
	if _, err := decompressPayload(Compression(99), []byte{1}, 1<<20); err == nil {
		t.Error("decompress accepted an unknown method")
	}
}
