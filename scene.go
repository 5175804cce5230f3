package umbf

import "fmt"

// Object is a named entity within a scene. Meta holds the object's
// metadata blocks, serialized as a nested block stream; unknown meta
// kinds survive the same skip semantics as top-level blocks.
type Object struct {
	ID   uint64
	Name string
	Meta []Block
}

// Scene groups objects with the texture and material assets they
// reference. The nested Files are owned by the scene.
type Scene struct {
	Objects   []Object
	Textures  []File
	Materials []File
}

func (s *Scene) Signature() uint32 { return SigScene }

var sceneCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		s, ok := b.(*Scene)
		if !ok {
			return fmt.Errorf("%w: expected *Scene", ErrInvalidBlock)
		}
		w.count16(len(s.Objects))
		for _, obj := range s.Objects {
			w.Uint64(obj.ID)
			w.String(obj.Name)
			if err := encodeBlocks(ec, w, obj.Meta); err != nil {
				return err
			}
		}
		if err := writeFiles(ec, w, s.Textures); err != nil {
			return err
		}
		return writeFiles(ec, w, s.Materials)
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		objectCount := int(r.Uint16())
		if err := r.Err(); err != nil {
			return nil, err
		}
		s := &Scene{Objects: make([]Object, objectCount)}
		for i := range s.Objects {
			s.Objects[i].ID = r.Uint64()
			s.Objects[i].Name = r.String()
			if err := r.Err(); err != nil {
				return nil, err
			}
			meta, err := decodeBlocks(dc, r)
			if err != nil {
				return nil, err
			}
			s.Objects[i].Meta = meta
		}
		var err error
		if s.Textures, err = readFiles(dc, r); err != nil {
			return nil, err
		}
		if s.Materials, err = readFiles(dc, r); err != nil {
			return nil, err
		}
		return s, nil
	},
}
