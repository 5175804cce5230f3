package umbf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// headerWireSize is the packed header length: 24+8+24+8+8+24 bits.
const headerWireSize = 12

// packHeader encodes h into its 12-byte wire form. The 24-bit fields
// are masked to width; out-of-range values are silently truncated.
func packHeader(h Header) [headerWireSize]byte {
	var b [headerWireSize]byte
	putUint24(b[0:3], h.VendorSign)
	b[3] = byte(h.Compression)
	putUint24(b[4:7], h.VendorVersion)
	b[7] = byte(h.TypeSign & 0x00FF)
	b[8] = byte(h.TypeSign >> 8)
	putUint24(b[9:12], h.SpecVersion)
	return b
}

// unpackHeader is the inverse of packHeader, reassembling the 16-bit
// type signature from its two byte halves.
func unpackHeader(b [headerWireSize]byte) Header {
	return Header{
		VendorSign:    uint24(b[0:3]),
		Compression:   Compression(b[3]),
		VendorVersion: uint24(b[4:7]),
		TypeSign:      uint16(b[7]) | uint16(b[8])<<8,
		SpecVersion:   uint24(b[9:12]),
	}
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

func uint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// Reader decodes little-endian wire data from an in-memory buffer.
// It is sticky on error: after the first failed read every subsequent
// read returns the zero value, and Err reports the first failure.
// Block codecs receive a Reader bound to exactly their frame's payload.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader returns a Reader over b.
func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Err returns the first read failure, or nil.
func (r *Reader) Err() error { return r.err }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Remaining() < n {
		r.err = fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, r.Remaining())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// Skip advances past n bytes without decoding them.
func (r *Reader) Skip(n int) { r.take(n) }

// Bytes reads n raw bytes into a fresh slice.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) Uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *Reader) Int16() int16 { return int16(r.Uint16()) }
func (r *Reader) Int32() int32 { return int32(r.Uint32()) }
func (r *Reader) Bool() bool   { return r.Uint8() != 0 }

func (r *Reader) Float32() float32 { return math.Float32frombits(r.Uint32()) }

// String reads a uint16 length prefix followed by UTF-8 bytes.
func (r *Reader) String() string {
	n := int(r.Uint16())
	b := r.take(n)
	if b == nil {
		return ""
	}
	return string(b)
}

func (r *Reader) Vec2() Vec2 {
	return Vec2{X: r.Float32(), Y: r.Float32()}
}

func (r *Reader) Vec3() Vec3 {
	return Vec3{X: r.Float32(), Y: r.Float32(), Z: r.Float32()}
}

func (r *Reader) header() Header {
	var b [headerWireSize]byte
	raw := r.take(headerWireSize)
	if raw == nil {
		return Header{}
	}
	copy(b[:], raw)
	return unpackHeader(b)
}

// Writer encodes little-endian wire data into an in-memory buffer.
// Writes are infallible except for fields whose width cannot represent
// the value (oversized strings and counts); those latch an error
// reported by Err.
type Writer struct {
	buf bytes.Buffer
	err error
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Err returns the first write failure, or nil.
func (w *Writer) Err() error { return w.err }

// Bytes returns the accumulated wire bytes.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

func (w *Writer) Raw(b []byte) { w.buf.Write(b) }

func (w *Writer) Uint8(v uint8) { w.buf.WriteByte(v) }

func (w *Writer) Uint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) Uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) Int16(v int16) { w.Uint16(uint16(v)) }
func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

func (w *Writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }

// String writes a uint16 length prefix followed by UTF-8 bytes.
func (w *Writer) String(s string) {
	if len(s) > math.MaxUint16 {
		w.fail(fmt.Errorf("%w: string length %d exceeds uint16", ErrInvalidBlock, len(s)))
		return
	}
	w.Uint16(uint16(len(s)))
	w.buf.WriteString(s)
}

func (w *Writer) Vec2(v Vec2) {
	w.Float32(v.X)
	w.Float32(v.Y)
}

func (w *Writer) Vec3(v Vec3) {
	w.Float32(v.X)
	w.Float32(v.Y)
	w.Float32(v.Z)
}

func (w *Writer) header(h Header) {
	b := packHeader(h)
	w.buf.Write(b[:])
}

// count16 writes n as uint16, failing if it does not fit.
func (w *Writer) count16(n int) {
	if n > math.MaxUint16 {
		w.fail(fmt.Errorf("%w: count %d exceeds uint16", ErrInvalidBlock, n))
		return
	}
	w.Uint16(uint16(n))
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}
