// Package umbf implements the UMBF extensible binary container format
// for typed assets: images, texture atlases, materials, scenes, meshes,
// target references and asset libraries.
//
// # File Format Overview
//
// A UMBF file consists of:
//   - A 4-byte magic number
//   - A 12-byte bit-packed header (vendor signature and version, asset
//     type signature, specification version, compression method)
//   - A payload holding the block stream, optionally compressed with
//     Zstandard, LZ4 or Brotli
//
// The block stream is a sequence of [size:u64][signature:u32][payload]
// frames terminated by a zero size. Each signature selects a codec from
// a [Registry]; frames with unknown signatures are skipped, so readers
// tolerate extension blocks they were not built for.
//
// # Basic Usage
//
// To build and write a container:
//
//	img := &umbf.Image2D{
//		Width: 2, Height: 2,
//		Channels: []string{"L"},
//		Format:   umbf.PixelFormat{Type: umbf.PixelUint, BytesPerChannel: 1},
//		Pixels:   []byte{1, 2, 3, 4},
//	}
//	f := &umbf.File{
//		Header: umbf.Header{
//			VendorSign:  umbf.VendorID,
//			TypeSign:    umbf.FormatImage,
//			SpecVersion: umbf.SpecVersion,
//			Compression: umbf.CompZSTD,
//		},
//		Blocks: []umbf.Block{img},
//	}
//	err := f.Save("texture.umbf")
//
// To read one back:
//
//	f, err := umbf.Load("texture.umbf")
//
// Codecs for third-party block kinds are added to a registry without
// touching this package:
//
//	reg := umbf.DefaultRegistry()
//	reg.Register(mySignature, myCodec)
//	f, err := umbf.Load(path, umbf.WithDecodeRegistry(reg))
//
// # Embedded Codecs
//
// Beyond the container pipeline the package carries the format's
// numeric codecs: sub-byte barycentric bit packing ([PackBarycentric]),
// an any-to-any pixel channel and bit-depth converter ([ConvertImage]),
// and the atlas compositor ([FillAtlasPixels]) that pairs with the
// rectpack packing search.
//
// # Security Considerations
//
// Decoding is guarded by configurable [Limits] against oversized
// allocations, decompression bombs and unbounded tree recursion.
package umbf
