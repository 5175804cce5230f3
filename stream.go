package umbf

import (
	"fmt"
	"log/slog"
)

// EncodeContext carries the shared state block encoders need, notably
// for blocks that embed nested containers (materials, scenes, library
// trees).
type EncodeContext struct {
	Registry *Registry
	Logger   *slog.Logger
}

// DecodeContext is the decode-side counterpart of EncodeContext. It
// additionally tracks recursion depth for nested containers so a
// malformed tree cannot recurse without bound.
type DecodeContext struct {
	Registry *Registry
	Logger   *slog.Logger
	Limits   Limits
	depth    int
}

// descend returns a child context one nesting level deeper, or an error
// once the tree depth limit is reached.
func (dc *DecodeContext) descend() (*DecodeContext, error) {
	if dc.depth+1 > dc.Limits.MaxTreeDepth {
		return nil, fmt.Errorf("%w: tree depth %d", ErrLimitExceeded, dc.depth+1)
	}
	child := *dc
	child.depth++
	return &child, nil
}

func sigString(sig uint32) string { return fmt.Sprintf("0x%08X", sig) }

// encodeBlocks writes blocks as a sequence of
// [size:u64][signature:u32][payload] frames terminated by a zero size.
// Blocks with no registered codec are skipped silently; this keeps
// round-tripping of unknown extension blocks an explicit opt-in via the
// Raw block rather than a hard failure.
func encodeBlocks(ec *EncodeContext, w *Writer, blocks []Block) error {
	for _, b := range blocks {
		if b == nil {
			continue
		}
		codec, ok := ec.Registry.Lookup(b.Signature())
		if !ok {
			continue
		}
		tmp := NewWriter()
		if err := codec.Encode(ec, tmp, b); err != nil {
			return fmt.Errorf("encode block %s: %w", sigString(b.Signature()), err)
		}
		if err := tmp.Err(); err != nil {
			return fmt.Errorf("encode block %s: %w", sigString(b.Signature()), err)
		}
		payload := tmp.Bytes()
		w.Uint64(uint64(len(payload)))
		w.Uint32(b.Signature())
		w.Raw(payload)
	}
	w.Uint64(0)
	return nil
}

// decodeBlocks reads frames until the zero-size terminator or the end
// of the buffer. Frames with unregistered signatures are skipped in
// full, preserving position for subsequent frames. A frame larger than
// the remaining bytes is a fatal decode error; a codec returning a nil
// block drops the frame with a warning.
func decodeBlocks(dc *DecodeContext, r *Reader) ([]Block, error) {
	var blocks []Block
	for r.Remaining() > 0 {
		size := r.Uint64()
		if err := r.Err(); err != nil {
			return nil, err
		}
		if size == 0 {
			break
		}
		signature := r.Uint32()
		if err := r.Err(); err != nil {
			return nil, err
		}
		if size > dc.Limits.MaxBlockSize {
			return nil, fmt.Errorf("%w: block %s size %d", ErrLimitExceeded, sigString(signature), size)
		}
		if uint64(r.Remaining()) < size {
			return nil, fmt.Errorf("%w: block %s declares %d bytes, %d remain",
				ErrTruncated, sigString(signature), size, r.Remaining())
		}
		codec, ok := dc.Registry.Lookup(signature)
		if !ok {
			r.Skip(int(size))
			continue
		}
		frame := NewReader(r.Bytes(int(size)))
		block, err := codec.Decode(dc, frame)
		if err != nil {
			return nil, fmt.Errorf("decode block %s: %w", sigString(signature), err)
		}
		if block == nil {
			dc.Logger.Warn("block codec returned no block", "signature", sigString(signature))
			continue
		}
		blocks = append(blocks, block)
		if len(blocks) > dc.Limits.MaxBlocks {
			return nil, fmt.Errorf("%w: more than %d blocks", ErrLimitExceeded, dc.Limits.MaxBlocks)
		}
	}
	return blocks, nil
}

// writeFile serializes a nested container: packed header followed by
// its block stream. Nested files carry no magic number and are never
// individually compressed; the outer payload compression covers them.
func writeFile(ec *EncodeContext, w *Writer, f File) error {
	w.header(f.Header)
	return encodeBlocks(ec, w, f.Blocks)
}

// readFile is the inverse of writeFile.
func readFile(dc *DecodeContext, r *Reader) (File, error) {
	child, err := dc.descend()
	if err != nil {
		return File{}, err
	}
	h := r.header()
	if err := r.Err(); err != nil {
		return File{}, err
	}
	blocks, err := decodeBlocks(child, r)
	if err != nil {
		return File{}, err
	}
	return File{Header: h, Blocks: blocks}, nil
}

// writeFiles writes a uint16-counted vector of nested containers.
func writeFiles(ec *EncodeContext, w *Writer, files []File) error {
	w.count16(len(files))
	for _, f := range files {
		if err := writeFile(ec, w, f); err != nil {
			return err
		}
	}
	return nil
}

func readFiles(dc *DecodeContext, r *Reader) ([]File, error) {
	n := int(r.Uint16())
	if err := r.Err(); err != nil {
		return nil, err
	}
	files := make([]File, 0, n)
	for i := 0; i < n; i++ {
		f, err := readFile(dc, r)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
