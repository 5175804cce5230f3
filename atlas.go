package umbf

import "fmt"

// FillColorPixels allocates the image's pixel buffer and fills it by
// replicating pixel, which must be exactly one pixel stride long. A nil
// pixel fills with zeroes.
func FillColorPixels(img *Image2D, pixel []byte) error {
	stride := img.PixelSize()
	if stride == 0 {
		return fmt.Errorf("%w: image has no channels", ErrInvalidBlock)
	}
	if pixel != nil && len(pixel) != stride {
		return fmt.Errorf("%w: fill pixel is %d bytes, stride is %d", ErrInvalidBlock, len(pixel), stride)
	}
	buf := make([]byte, img.ByteSize())
	if pixel != nil {
		for off := 0; off < len(buf); off += stride {
			copy(buf[off:off+stride], pixel)
		}
	}
	img.Pixels = buf
	return nil
}

// CopyPixelsToArea copies the source image into dst at rect, row by
// row. The source must share dst's pixel format and channel layout, and
// rect must lie fully inside dst.
func CopyPixelsToArea(src, dst *Image2D, rect Rect) error {
	if src.Format != dst.Format || len(src.Channels) != len(dst.Channels) {
		return ErrFormatMismatch
	}
	if rect.X < 0 || rect.Y < 0 || rect.W < 0 || rect.H < 0 ||
		int(rect.X)+int(rect.W) > int(dst.Width) || int(rect.Y)+int(rect.H) > int(dst.Height) {
		return fmt.Errorf("%w: rect (%d,%d %dx%d) in %dx%d image",
			ErrOutOfBounds, rect.X, rect.Y, rect.W, rect.H, dst.Width, dst.Height)
	}
	if len(src.Pixels) != src.ByteSize() || len(dst.Pixels) != dst.ByteSize() {
		return fmt.Errorf("%w: pixel buffer does not match image dimensions", ErrInvalidBlock)
	}

	stride := dst.PixelSize()
	srcRow := int(src.Width) * stride
	copyRow := int(rect.W) * stride
	if copyRow > srcRow {
		return fmt.Errorf("%w: rect wider than source image", ErrOutOfBounds)
	}
	dstRow := int(dst.Width) * stride
	for y := 0; y < int(rect.H); y++ {
		from := y * srcRow
		to := (int(rect.Y)+y)*dstRow + int(rect.X)*stride
		copy(dst.Pixels[to:to+copyRow], src.Pixels[from:from+copyRow])
	}
	return nil
}

// FillAtlasPixels composites the source images into dst at the atlas
// placements. dst must be pre-sized to the atlas bounds; its pixel
// buffer is cleared to fill (zero pixel when nil) before compositing.
// Each placement rectangle is shrunk by the atlas padding on all sides,
// then the matching source is row-copied into place. Any format
// mismatch, out-of-bounds rectangle or missing source buffer aborts the
// whole operation.
func FillAtlasPixels(dst *Image2D, atlas *Atlas, sources []*Image2D, fill []byte) error {
	if len(sources) < len(atlas.Rects) {
		return fmt.Errorf("%w: %d placements but %d source images",
			ErrInvalidBlock, len(atlas.Rects), len(sources))
	}
	if err := FillColorPixels(dst, fill); err != nil {
		return err
	}
	pad := int32(atlas.Padding)
	for i, rect := range atlas.Rects {
		src := sources[i]
		if src == nil || src.Pixels == nil {
			return fmt.Errorf("%w: source image %d has no pixels", ErrInvalidBlock, i)
		}
		rect.X += pad
		rect.Y += pad
		rect.W -= 2 * pad
		rect.H -= 2 * pad
		if err := CopyPixelsToArea(src, dst, rect); err != nil {
			return fmt.Errorf("source %d: %w", i, err)
		}
	}
	return nil
}
