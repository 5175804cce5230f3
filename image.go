package umbf

import "fmt"

// Image2D is a raster image block. Channels holds the ordered channel
// names parallel to the pixel layout; Pixels is the raw buffer of
// Width*Height*len(Channels) elements at Format.BytesPerChannel each.
type Image2D struct {
	Width    uint16
	Height   uint16
	Channels []string
	Format   PixelFormat
	Pixels   []byte
}

func (img *Image2D) Signature() uint32 { return SigImage2D }

// PixelSize returns the byte stride of one pixel.
func (img *Image2D) PixelSize() int {
	return len(img.Channels) * int(img.Format.BytesPerChannel)
}

// ByteSize returns the expected length of the pixel buffer.
func (img *Image2D) ByteSize() int {
	return int(img.Width) * int(img.Height) * img.PixelSize()
}

// Atlas describes how independently packed source images are laid out
// inside a companion Image2D. Rects are placement rectangles in source
// order, each still including the shared Padding margin on every side.
// DiscardStep is the packing granularity the external search used.
type Atlas struct {
	DiscardStep uint16
	Padding     int16
	Rects       []Rect
}

func (a *Atlas) Signature() uint32 { return SigImageAtlas }

var image2DCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		img, ok := b.(*Image2D)
		if !ok {
			return fmt.Errorf("%w: expected *Image2D", ErrInvalidBlock)
		}
		if img.Pixels == nil {
			return fmt.Errorf("%w: image pixels are nil", ErrInvalidBlock)
		}
		if len(img.Pixels) != img.ByteSize() {
			return fmt.Errorf("%w: pixel buffer is %d bytes, dimensions require %d",
				ErrInvalidBlock, len(img.Pixels), img.ByteSize())
		}
		writeImageInfo(w, img)
		w.Raw(img.Pixels)
		return nil
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		img, err := readImageInfo(r)
		if err != nil {
			return nil, err
		}
		img.Pixels = r.Bytes(img.ByteSize())
		if err := r.Err(); err != nil {
			return nil, err
		}
		return img, nil
	},
}

var atlasCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		a, ok := b.(*Atlas)
		if !ok {
			return fmt.Errorf("%w: expected *Atlas", ErrInvalidBlock)
		}
		w.Uint16(a.DiscardStep)
		w.Int16(a.Padding)
		w.count16(len(a.Rects))
		for _, rect := range a.Rects {
			w.Int32(rect.W)
			w.Int32(rect.H)
			w.Int32(rect.X)
			w.Int32(rect.Y)
		}
		return nil
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		a := &Atlas{
			DiscardStep: r.Uint16(),
			Padding:     r.Int16(),
		}
		n := int(r.Uint16())
		if err := r.Err(); err != nil {
			return nil, err
		}
		a.Rects = make([]Rect, n)
		for i := range a.Rects {
			a.Rects[i].W = r.Int32()
			a.Rects[i].H = r.Int32()
			a.Rects[i].X = r.Int32()
			a.Rects[i].Y = r.Int32()
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		return a, nil
	},
}

func writeImageInfo(w *Writer, img *Image2D) {
	w.Uint16(img.Width)
	w.Uint16(img.Height)
	w.count16(len(img.Channels))
	w.Uint8(uint8(len(img.Channels)))
	for _, name := range img.Channels {
		w.String(name)
	}
	w.Uint16(img.Format.BytesPerChannel)
	w.Uint8(uint8(img.Format.Type))
}

func readImageInfo(r *Reader) (*Image2D, error) {
	img := &Image2D{
		Width:  r.Uint16(),
		Height: r.Uint16(),
	}
	channelCount := int(r.Uint16())
	nameCount := int(r.Uint8())
	if err := r.Err(); err != nil {
		return nil, err
	}
	if nameCount != channelCount {
		return nil, fmt.Errorf("%w: channel count %d does not match %d channel names",
			ErrInvalidBlock, channelCount, nameCount)
	}
	img.Channels = make([]string, nameCount)
	for i := range img.Channels {
		img.Channels[i] = r.String()
	}
	img.Format.BytesPerChannel = r.Uint16()
	img.Format.Type = PixelType(r.Uint8())
	if err := r.Err(); err != nil {
		return nil, err
	}
	return img, nil
}
