package umbf

// Limits bounds decode-time allocations. All limits apply to Decode and
// Load only; Encode trusts its caller. The zero value of any field is
// replaced by the corresponding default.
type Limits struct {
	// MaxFileSize caps the stored container size read from a source.
	MaxFileSize uint64
	// MaxDecompressedSize caps the payload after decompression,
	// guarding against decompression bombs.
	MaxDecompressedSize uint64
	// MaxBlockSize caps a single block frame's declared payload size.
	MaxBlockSize uint64
	// MaxBlocks caps the number of decoded blocks per container,
	// counting nested containers separately.
	MaxBlocks int
	// MaxTreeDepth caps container nesting (library trees, material
	// textures, scene assets).
	MaxTreeDepth int
}

func defaultLimits() Limits {
	return Limits{
		MaxFileSize:         1 << 32, // 4 GiB
		MaxDecompressedSize: 1 << 32,
		MaxBlockSize:        1 << 30, // 1 GiB
		MaxBlocks:           100_000,
		MaxTreeDepth:        64,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxFileSize == 0 {
		l.MaxFileSize = d.MaxFileSize
	}
	if l.MaxDecompressedSize == 0 {
		l.MaxDecompressedSize = d.MaxDecompressedSize
	}
	if l.MaxBlockSize == 0 {
		l.MaxBlockSize = d.MaxBlockSize
	}
	if l.MaxBlocks == 0 {
		l.MaxBlocks = d.MaxBlocks
	}
	if l.MaxTreeDepth == 0 {
		l.MaxTreeDepth = d.MaxTreeDepth
	}
	return l
}
