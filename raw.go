package umbf

import "fmt"

// Raw is the open-extension block: opaque payload bytes under a
// third-party signature. Registering RawCodec(sig) lets a container
// round-trip blocks whose layout this package does not know, instead of
// the default skip-on-decode behavior.
type Raw struct {
	Sig  uint32
	Data []byte
}

func (b *Raw) Signature() uint32 { return b.Sig }

// RawCodec returns a codec that carries a block's payload verbatim
// under the given signature.
func RawCodec(signature uint32) BlockCodec {
	return BlockCodec{
		Encode: func(ec *EncodeContext, w *Writer, b Block) error {
			raw, ok := b.(*Raw)
			if !ok {
				return fmt.Errorf("%w: expected *Raw", ErrInvalidBlock)
			}
			w.Raw(raw.Data)
			return nil
		},
		Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
			return &Raw{Sig: signature, Data: r.Bytes(r.Remaining())}, nil
		},
	}
}
