package umbf

// Magic is the 4-byte UMBF file signature, stored little-endian.
const Magic uint32 = 0xCA9FB393

// VendorID is the canonical vendor signature of the reference toolchain.
const VendorID uint32 = 0xBC037D

// SpecVersion is the container specification version written by this
// package, encoded as one byte per component (major.minor.patch) in the
// header's 24-bit field.
const SpecVersion uint32 = 0x010000

// Format signatures identify an asset's primary type in the container
// header (16-bit field).
const (
	FormatNone     uint16 = 0x0
	FormatImage    uint16 = 0x0490
	FormatScene    uint16 = 0xD20C
	FormatMaterial uint16 = 0x78DB
	FormatTarget   uint16 = 0x613E
	FormatLibrary  uint16 = 0x1A2C
	FormatRaw      uint16 = 0x4D4D
)

// Block signatures are the 32-bit wire discriminators for the built-in
// block kinds. Extension blocks register their own signatures.
const (
	SigImage2D       uint32 = 0x7684573F
	SigImageAtlas    uint32 = 0xA3903A92
	SigMaterial      uint32 = 0xA8D0C51E
	SigScene         uint32 = 0xB7A3EE80
	SigMesh          uint32 = 0xF224B521
	SigMaterialRange uint32 = 0xC441E54D
	SigMaterialInfo  uint32 = 0x6112A229
	SigTarget        uint32 = 0x0491F4E9
	SigLibrary       uint32 = 0x8D7824FA
)

// Compression selects the whole-payload compression method carried in
// the header's 8-bit compressed field. Zero means uncompressed; any
// nonzero value marks the payload as compressed with that method.
type Compression uint8

const (
	CompNone Compression = 0
	CompZSTD Compression = 1
	CompLZ4  Compression = 2
	CompBR   Compression = 3
)

// Header is the logical form of the container header. Field widths on
// the wire are narrower than the Go types: VendorSign, VendorVersion and
// SpecVersion occupy 24 bits each and are masked, not validated, when
// packed. See Header.Validate.
type Header struct {
	VendorSign    uint32
	VendorVersion uint32
	TypeSign      uint16
	SpecVersion   uint32
	Compression   Compression
}

// Compressed reports whether the payload is stored compressed.
func (h Header) Compressed() bool { return h.Compression != CompNone }

// Block is a typed unit of container data. Every block exposes a stable
// 32-bit signature used both as a registry key and as the wire
// discriminator of its frame.
type Block interface {
	Signature() uint32
}

// File is an in-memory UMBF container: a header plus an ordered list of
// owned blocks. By convention Blocks[0] identifies the asset's primary
// subtype and the remaining blocks carry auxiliary metadata.
//
// Checksum is the CRC32 of the decompressed payload bytes. It is
// computed on Encode and Decode and is never persisted in the file.
type File struct {
	Header   Header
	Blocks   []Block
	Checksum uint32
}

// Vec2 is a 2-component float vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3-component float vector.
type Vec3 struct {
	X, Y, Z float32
}

// PixelType classifies the element type of a pixel channel.
type PixelType uint8

const (
	PixelUint PixelType = iota
	PixelSint
	PixelFloat
)

// PixelFormat describes the per-channel element layout of an image.
// The supported combinations are uint/sint at 1, 2 or 4 bytes and
// float at 2 or 4 bytes.
type PixelFormat struct {
	Type            PixelType
	BytesPerChannel uint16
}

// Rect is a placement rectangle inside an atlas, in pixels.
type Rect struct {
	X, Y, W, H int32
}
