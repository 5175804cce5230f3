// Package rectpack places axis-aligned rectangles into a square bin
// using best-area free-rectangle insertion with guillotine splits. It
// implements the packing-search contract the umbf atlas blocks consume:
// given source sizes, a maximum bin size, a granularity step and a
// shared padding, it returns one placement per source in input order,
// or fails when the bin cannot hold them.
package rectpack

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoFit is returned when at least one rectangle cannot be placed
// within the maximum bin size.
var ErrNoFit = errors.New("rectpack: rectangles do not fit")

// Size is a source rectangle's dimensions in pixels.
type Size struct {
	W, H int
}

// Placement locates one padded source cell inside the bin. W and H
// include the padding margin on every side; Flipped reports a 90°
// rotation of the source.
type Placement struct {
	X, Y, W, H int
	Flipped    bool
}

// Options configures a packing search.
type Options struct {
	// MaxSize is the bin's width and height. Required.
	MaxSize int
	// DiscardStep rounds each padded cell up to a multiple of this
	// granularity. Zero or one disables rounding.
	DiscardStep int
	// Padding is the margin added around every rectangle.
	Padding int
	// AllowFlip permits 90° rotation when the unrotated cell does not
	// fit.
	AllowFlip bool
}

type freeRect struct {
	x, y, w, h int
}

// Pack places every size into a MaxSize×MaxSize bin and returns the
// placements in input order. The search inserts rectangles largest
// area first into the smallest free rectangle that holds them, then
// splits the remainder guillotine-style, mirroring how the reference
// packer consumes space.
func Pack(sizes []Size, opt Options) ([]Placement, error) {
	if opt.MaxSize <= 0 {
		return nil, fmt.Errorf("rectpack: max size %d", opt.MaxSize)
	}
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := sizes[order[a]], sizes[order[b]]
		return sa.W*sa.H > sb.W*sb.H
	})

	free := []freeRect{{0, 0, opt.MaxSize, opt.MaxSize}}
	placements := make([]Placement, len(sizes))
	for _, idx := range order {
		cellW := roundUp(sizes[idx].W+2*opt.Padding, opt.DiscardStep)
		cellH := roundUp(sizes[idx].H+2*opt.Padding, opt.DiscardStep)

		best, flipped := findBest(free, cellW, cellH, opt.AllowFlip)
		if best < 0 {
			return nil, fmt.Errorf("%w: %dx%d in bin %d", ErrNoFit, cellW, cellH, opt.MaxSize)
		}
		if flipped {
			cellW, cellH = cellH, cellW
		}
		cell := free[best]
		placements[idx] = Placement{X: cell.x, Y: cell.y, W: cellW, H: cellH, Flipped: flipped}

		// Guillotine split: the space right of the cell keeps the cell's
		// height, the space below keeps the full width.
		free = append(free[:best], free[best+1:]...)
		if cell.w-cellW > 0 {
			free = append(free, freeRect{cell.x + cellW, cell.y, cell.w - cellW, cellH})
		}
		if cell.h-cellH > 0 {
			free = append(free, freeRect{cell.x, cell.y + cellH, cell.w, cell.h - cellH})
		}
	}
	return placements, nil
}

// MinSize returns the smallest power-of-two bin that packs all sizes,
// up to maxSize, or an error when even maxSize fails.
func MinSize(sizes []Size, opt Options, maxSize int) (int, error) {
	for size := 1; size <= maxSize; size *= 2 {
		opt.MaxSize = size
		if _, err := Pack(sizes, opt); err == nil {
			return size, nil
		}
	}
	return 0, fmt.Errorf("%w: even %d is too small", ErrNoFit, maxSize)
}

func findBest(free []freeRect, w, h int, allowFlip bool) (idx int, flipped bool) {
	idx = -1
	bestArea := 0
	for i, fr := range free {
		fits := w <= fr.w && h <= fr.h
		flip := false
		if !fits && allowFlip && h <= fr.w && w <= fr.h {
			fits, flip = true, true
		}
		if !fits {
			continue
		}
		area := fr.w * fr.h
		if idx < 0 || area < bestArea {
			idx, bestArea, flipped = i, area, flip
		}
	}
	return idx, flipped
}

func roundUp(v, step int) int {
	if step <= 1 {
		return v
	}
	return (v + step - 1) / step * step
}
