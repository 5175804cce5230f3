package umbf

import "fmt"

// BaryVertex is a mesh vertex carrying barycentric coordinates. Only
// the zero/nonzero pattern of Bary survives serialization; see
// PackBarycentric.
type BaryVertex struct {
	Pos  Vec3
	Bary Vec3
}

// baryWordCount returns the packed length for n vertices: ceil(3n/64).
func baryWordCount(n int) int {
	return (3*n + 63) / 64
}

// baryCode collapses a barycentric triple to its 3-bit wire form, one
// "is nonzero" bit per axis, X in the high bit.
func baryCode(v Vec3) uint64 {
	var code uint64
	if v.X != 0 {
		code |= 4
	}
	if v.Y != 0 {
		code |= 2
	}
	if v.Z != 0 {
		code |= 1
	}
	return code
}

// PackBarycentric packs one 3-bit code per vertex into a dense stream
// of 64-bit words with no padding between elements; a code whose bits
// do not fit the current word straddles into the next one. The result
// holds ceil(3n/64) words. Packing is lossy by design: only the
// zero/nonzero pattern of each barycentric component is kept.
func PackBarycentric(verts []BaryVertex) []uint64 {
	if len(verts) == 0 {
		return nil
	}
	words := make([]uint64, baryWordCount(len(verts)))
	wi, offset := 0, 0 // offset counts bits from the word's high end
	for _, v := range verts {
		code := baryCode(v.Bary)
		if offset <= 61 {
			words[wi] |= code << (61 - offset)
			offset += 3
			if offset == 64 {
				wi++
				offset = 0
			}
		} else {
			// High bits fill the tail of this word, low bits start the next.
			rem := 64 - offset
			low := 3 - rem
			words[wi] |= code >> low
			wi++
			words[wi] |= (code & (1<<low - 1)) << (64 - low)
			offset = low
		}
	}
	return words
}

// UnpackBarycentric extracts n barycentric triples from words, the
// mirror image of PackBarycentric. Each axis is reconstructed as 1.0
// if its bit is set and 0.0 otherwise.
func UnpackBarycentric(words []uint64, n int) ([]Vec3, error) {
	if len(words) < baryWordCount(n) {
		return nil, fmt.Errorf("%w: %d packed words hold fewer than %d barycentric entries",
			ErrTruncated, len(words), n)
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]Vec3, 0, n)
	wi, offset := 0, 0
	for i := 0; i < n; i++ {
		var code uint64
		if offset <= 61 {
			code = (words[wi] >> (61 - offset)) & 0x7
			offset += 3
			if offset == 64 {
				wi++
				offset = 0
			}
		} else {
			rem := 64 - offset
			low := 3 - rem
			code = (words[wi] & (1<<rem - 1)) << low
			wi++
			code |= words[wi] >> (64 - low)
			offset = low
		}
		out = append(out, Vec3{X: baryBit(code & 4), Y: baryBit(code & 2), Z: baryBit(code & 1)})
	}
	return out, nil
}

func baryBit(b uint64) float32 {
	if b != 0 {
		return 1
	}
	return 0
}
