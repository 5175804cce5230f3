package umbf

import "log/slog"

// BlockCodec is a pair of functions that move one block kind across the
// wire. Decode receives a Reader bound to exactly the frame's payload
// bytes; Encode serializes the block into w.
type BlockCodec struct {
	Decode func(dc *DecodeContext, r *Reader) (Block, error)
	Encode func(ec *EncodeContext, w *Writer, b Block) error
}

// Registry maps 32-bit block signatures to codecs. A Registry is an
// explicit value passed into Encode and Decode; there is no ambient
// global table. Populate it fully before sharing it across goroutines:
// concurrent Lookup is safe once registration is done, concurrent
// Register is not.
type Registry struct {
	codecs map[uint32]BlockCodec
	logger *slog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[uint32]BlockCodec), logger: slog.Default()}
}

// DefaultRegistry returns a registry with all built-in block codecs
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SigImage2D, image2DCodec)
	r.Register(SigImageAtlas, atlasCodec)
	r.Register(SigMaterial, materialCodec)
	r.Register(SigMaterialInfo, materialInfoCodec)
	r.Register(SigMaterialRange, materialRangeCodec)
	r.Register(SigScene, sceneCodec)
	r.Register(SigMesh, meshCodec)
	r.Register(SigTarget, targetCodec)
	r.Register(SigLibrary, libraryCodec)
	return r
}

// SetLogger replaces the logger used for registration conflicts.
func (r *Registry) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Register inserts a codec for signature. If the signature is already
// present the first registration wins: the new codec is discarded and a
// warning is logged. Duplicate registration is never an error.
func (r *Registry) Register(signature uint32, codec BlockCodec) {
	if _, ok := r.codecs[signature]; ok {
		r.logger.Warn("block codec already registered", "signature", sigString(signature))
		return
	}
	r.codecs[signature] = codec
}

// Lookup returns the codec for signature, if any.
func (r *Registry) Lookup(signature uint32) (BlockCodec, bool) {
	c, ok := r.codecs[signature]
	return c, ok
}

// Clear removes all registered codecs.
func (r *Registry) Clear() {
	clear(r.codecs)
}

// Len returns the number of registered codecs.
func (r *Registry) Len() int { return len(r.codecs) }
