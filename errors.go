package umbf

import "errors"

var (
	// ErrInvalidMagic is returned when the file does not start with the
	// UMBF magic number.
	ErrInvalidMagic = errors.New("umbf: invalid magic")
	// ErrTruncated is returned when a buffer ends before a declared
	// field or block frame is complete.
	ErrTruncated = errors.New("umbf: truncated data")
	// ErrDecompress is returned when the payload cannot be decompressed
	// with the method named in the header.
	ErrDecompress = errors.New("umbf: decompression failed")
	// ErrCorruptTree is returned when a library tree leaf carries no
	// valid embedded asset.
	ErrCorruptTree = errors.New("umbf: corrupted file structure")
	// ErrUnsupportedConversion is returned for a pixel format pairing
	// the conversion engine cannot handle.
	ErrUnsupportedConversion = errors.New("umbf: unsupported pixel conversion")
	// ErrFormatMismatch is returned when atlas composition is given a
	// source whose pixel format differs from the destination.
	ErrFormatMismatch = errors.New("umbf: image format mismatch")
	// ErrOutOfBounds is returned when a copy rectangle falls outside the
	// destination image.
	ErrOutOfBounds = errors.New("umbf: area out of image bounds")
	// ErrInvalidBlock is returned when a block's own fields are
	// inconsistent with its wire form.
	ErrInvalidBlock = errors.New("umbf: invalid block")
	// ErrLimitExceeded is returned when a decode-time limit is hit.
	ErrLimitExceeded = errors.New("umbf: limit exceeded")
)
