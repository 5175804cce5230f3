package umbf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayImage(w, h uint16, value byte) *Image2D {
	img := &Image2D{
		Width:    w,
		Height:   h,
		Channels: []string{"L"},
		Format:   PixelFormat{Type: PixelUint, BytesPerChannel: 1},
	}
	img.Pixels = bytes.Repeat([]byte{value}, img.ByteSize())
	return img
}

func TestFillColorPixels(t *testing.T) {
	img := &Image2D{
		Width:    2,
		Height:   2,
		Channels: []string{"R", "G"},
		Format:   PixelFormat{Type: PixelUint, BytesPerChannel: 1},
	}
	require.NoError(t, FillColorPixels(img, []byte{7, 9}))
	assert.Equal(t, []byte{7, 9, 7, 9, 7, 9, 7, 9}, img.Pixels)

	require.NoError(t, FillColorPixels(img, nil))
	assert.Equal(t, make([]byte, 8), img.Pixels)

	err := FillColorPixels(img, []byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrInvalidBlock))
}

func TestCopyPixelsToArea(t *testing.T) {
	dst := grayImage(4, 4, 0)
	src := grayImage(2, 2, 9)

	require.NoError(t, CopyPixelsToArea(src, dst, Rect{X: 1, Y: 1, W: 2, H: 2}))
	want := []byte{
		0, 0, 0, 0,
		0, 9, 9, 0,
		0, 9, 9, 0,
		0, 0, 0, 0,
	}
	assert.Equal(t, want, dst.Pixels)
}

func TestCopyPixelsToAreaErrors(t *testing.T) {
	dst := grayImage(4, 4, 0)
	src := grayImage(2, 2, 9)

	err := CopyPixelsToArea(src, dst, Rect{X: 3, Y: 3, W: 2, H: 2})
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	err = CopyPixelsToArea(src, dst, Rect{X: -1, Y: 0, W: 2, H: 2})
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	wide := grayImage(2, 2, 9)
	wide.Format.BytesPerChannel = 2
	wide.Pixels = make([]byte, wide.ByteSize())
	err = CopyPixelsToArea(wide, dst, Rect{X: 0, Y: 0, W: 2, H: 2})
	assert.True(t, errors.Is(err, ErrFormatMismatch))
}

func TestFillAtlasPixels(t *testing.T) {
	// Two 2x2 sources placed with padding 1: each placement is 4x4 on
	// the sheet and the source lands in its 2x2 center.
	atlas := &Atlas{
		Padding: 1,
		Rects: []Rect{
			{X: 0, Y: 0, W: 4, H: 4},
			{X: 4, Y: 0, W: 4, H: 4},
		},
	}
	sources := []*Image2D{grayImage(2, 2, 1), grayImage(2, 2, 2)}
	sheet := &Image2D{
		Width:    8,
		Height:   4,
		Channels: []string{"L"},
		Format:   PixelFormat{Type: PixelUint, BytesPerChannel: 1},
	}

	require.NoError(t, FillAtlasPixels(sheet, atlas, sources, []byte{0xEE}))

	want := []byte{
		0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE,
		0xEE, 1, 1, 0xEE, 0xEE, 2, 2, 0xEE,
		0xEE, 1, 1, 0xEE, 0xEE, 2, 2, 0xEE,
		0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE,
	}
	assert.Equal(t, want, sheet.Pixels)
}

func TestFillAtlasPixelsNoPadding(t *testing.T) {
	atlas := &Atlas{
		Rects: []Rect{{X: 0, Y: 0, W: 2, H: 2}},
	}
	sheet := grayImage(2, 2, 0)
	require.NoError(t, FillAtlasPixels(sheet, atlas, []*Image2D{grayImage(2, 2, 5)}, nil))
	assert.Equal(t, bytes.Repeat([]byte{5}, 4), sheet.Pixels)
}

func TestFillAtlasPixelsMissingSource(t *testing.T) {
	atlas := &Atlas{Rects: []Rect{{W: 2, H: 2}}}
	sheet := grayImage(2, 2, 0)

	err := FillAtlasPixels(sheet, atlas, nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidBlock))

	err = FillAtlasPixels(sheet, atlas, []*Image2D{{Width: 2, Height: 2, Channels: []string{"L"}, Format: sheet.Format}}, nil)
	assert.True(t, errors.Is(err, ErrInvalidBlock))
}
