package umbf

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/x448/float16"
)

// sampler reads and writes one pixel channel element through a float64
// intermediate. max is the largest representable value for integer
// types and 1.0 for floats; it doubles as the fill value for channels
// synthesized in the destination.
type sampler struct {
	size    int
	isFloat bool
	max     float64
	load    func([]byte) float64
	store   func([]byte, float64)
}

func formatSampler(f PixelFormat) (sampler, bool) {
	switch f.Type {
	case PixelUint:
		switch f.BytesPerChannel {
		case 1:
			return sampler{
				size: 1, max: math.MaxUint8,
				load:  func(b []byte) float64 { return float64(b[0]) },
				store: func(b []byte, v float64) { b[0] = uint8(clamp(v, 0, math.MaxUint8)) },
			}, true
		case 2:
			return sampler{
				size: 2, max: math.MaxUint16,
				load:  func(b []byte) float64 { return float64(binary.LittleEndian.Uint16(b)) },
				store: func(b []byte, v float64) { binary.LittleEndian.PutUint16(b, uint16(clamp(v, 0, math.MaxUint16))) },
			}, true
		case 4:
			return sampler{
				size: 4, max: math.MaxUint32,
				load:  func(b []byte) float64 { return float64(binary.LittleEndian.Uint32(b)) },
				store: func(b []byte, v float64) { binary.LittleEndian.PutUint32(b, uint32(clamp(v, 0, math.MaxUint32))) },
			}, true
		}
	case PixelSint:
		switch f.BytesPerChannel {
		case 1:
			return sampler{
				size: 1, max: math.MaxInt8,
				load:  func(b []byte) float64 { return float64(int8(b[0])) },
				store: func(b []byte, v float64) { b[0] = uint8(int8(clamp(v, math.MinInt8, math.MaxInt8))) },
			}, true
		case 2:
			return sampler{
				size: 2, max: math.MaxInt16,
				load: func(b []byte) float64 { return float64(int16(binary.LittleEndian.Uint16(b))) },
				store: func(b []byte, v float64) {
					binary.LittleEndian.PutUint16(b, uint16(int16(clamp(v, math.MinInt16, math.MaxInt16))))
				},
			}, true
		case 4:
			return sampler{
				size: 4, max: math.MaxInt32,
				load: func(b []byte) float64 { return float64(int32(binary.LittleEndian.Uint32(b))) },
				store: func(b []byte, v float64) {
					binary.LittleEndian.PutUint32(b, uint32(int32(clamp(v, math.MinInt32, math.MaxInt32))))
				},
			}, true
		}
	case PixelFloat:
		switch f.BytesPerChannel {
		case 2:
			return sampler{
				size: 2, isFloat: true, max: 1,
				load: func(b []byte) float64 {
					return float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32())
				},
				store: func(b []byte, v float64) {
					binary.LittleEndian.PutUint16(b, float16.Fromfloat32(float32(v)).Bits())
				},
			}, true
		case 4:
			return sampler{
				size: 4, isFloat: true, max: 1,
				load: func(b []byte) float64 {
					return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
				},
				store: func(b []byte, v float64) {
					binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
				},
			}, true
		}
	}
	return sampler{}, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ConvertImage converts the image's pixel buffer to the requested
// element format and channel count, returning a freshly allocated
// buffer. Channels missing from the source are filled with the
// destination's maximum representable value (1.0 for floats), the
// full-opacity default for synthesized alpha.
//
// Rescaling follows the source and destination kinds: float to float is
// a direct cast, float to integer multiplies by the destination
// maximum, integer to float divides by the source maximum, and integer
// to integer renormalizes through the [0,1] range.
//
// The conversion has no cross-pixel dependency and runs in parallel
// over disjoint pixel ranges.
func ConvertImage(img *Image2D, dst PixelFormat, dstChannels int) ([]byte, error) {
	src, ok := formatSampler(img.Format)
	if !ok {
		return nil, fmt.Errorf("%w: source %v/%d bytes", ErrUnsupportedConversion,
			img.Format.Type, img.Format.BytesPerChannel)
	}
	out, ok := formatSampler(dst)
	if !ok {
		return nil, fmt.Errorf("%w: destination %v/%d bytes", ErrUnsupportedConversion,
			dst.Type, dst.BytesPerChannel)
	}
	if dstChannels <= 0 {
		return nil, fmt.Errorf("%w: destination channel count %d", ErrUnsupportedConversion, dstChannels)
	}
	srcChannels := len(img.Channels)
	if srcChannels == 0 || len(img.Pixels) != img.ByteSize() {
		return nil, fmt.Errorf("%w: pixel buffer does not match image dimensions", ErrInvalidBlock)
	}

	pixelCount := int(img.Width) * int(img.Height)
	buffer := make([]byte, pixelCount*dstChannels*out.size)

	convert := func(first, last int) {
		for pixel := first; pixel < last; pixel++ {
			srcOff := pixel * srcChannels * src.size
			dstOff := pixel * dstChannels * out.size
			for ch := 0; ch < dstChannels; ch++ {
				d := buffer[dstOff+ch*out.size:]
				if ch >= srcChannels {
					out.store(d, out.max)
					continue
				}
				v := src.load(img.Pixels[srcOff+ch*src.size:])
				switch {
				case src.isFloat && out.isFloat:
					out.store(d, v)
				case src.isFloat:
					out.store(d, v*out.max)
				case out.isFloat:
					out.store(d, v/src.max)
				default:
					out.store(d, v/src.max*out.max)
				}
			}
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > pixelCount {
		workers = pixelCount
	}
	if workers <= 1 {
		convert(0, pixelCount)
		return buffer, nil
	}
	var wg sync.WaitGroup
	chunk := (pixelCount + workers - 1) / workers
	for first := 0; first < pixelCount; first += chunk {
		last := first + chunk
		if last > pixelCount {
			last = pixelCount
		}
		wg.Add(1)
		go func(first, last int) {
			defer wg.Done()
			convert(first, last)
		}(first, last)
	}
	wg.Wait()
	return buffer, nil
}
