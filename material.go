package umbf

import (
	"fmt"

	"github.com/samber/lo"
)

// MaterialNode is one shading property slot: a flat RGB value and an
// optional texture reference. On the wire the textured flag and the
// texture index share one uint16 (high bit = textured, low 15 bits =
// index).
type MaterialNode struct {
	RGB       Vec3
	Textured  bool
	TextureID int16
}

// Material is a material asset block. Textures are nested containers
// owned by the material.
type Material struct {
	Textures []File
	Albedo   MaterialNode
}

func (m *Material) Signature() uint32 { return SigMaterial }

// MaterialInfo names a material and lists the object IDs it is
// assigned to.
type MaterialInfo struct {
	ID          uint64
	Name        string
	Assignments []uint64
}

func (m *MaterialInfo) Signature() uint32 { return SigMaterialInfo }

// MaterialRange assigns one material to a set of face indices of a
// mesh.
type MaterialRange struct {
	MaterialID uint64
	Faces      []uint32
}

func (m *MaterialRange) Signature() uint32 { return SigMaterialRange }

var materialCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		m, ok := b.(*Material)
		if !ok {
			return fmt.Errorf("%w: expected *Material", ErrInvalidBlock)
		}
		if err := writeFiles(ec, w, m.Textures); err != nil {
			return err
		}
		writeMaterialNode(w, m.Albedo)
		return nil
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		textures, err := readFiles(dc, r)
		if err != nil {
			return nil, err
		}
		albedo := readMaterialNode(r)
		if err := r.Err(); err != nil {
			return nil, err
		}
		return &Material{Textures: textures, Albedo: albedo}, nil
	},
}

func writeMaterialNode(w *Writer, n MaterialNode) {
	w.Vec3(n.RGB)
	var data uint16
	if n.Textured {
		data = 1<<15 | uint16(n.TextureID)&0x7FFF
	}
	w.Uint16(data)
}

func readMaterialNode(r *Reader) MaterialNode {
	n := MaterialNode{RGB: r.Vec3()}
	data := r.Uint16()
	n.Textured = data>>15 != 0
	if n.Textured {
		n.TextureID = int16(data & 0x7FFF)
	}
	return n
}

var materialInfoCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		m, ok := b.(*MaterialInfo)
		if !ok {
			return fmt.Errorf("%w: expected *MaterialInfo", ErrInvalidBlock)
		}
		w.Uint64(m.ID)
		w.String(m.Name)
		w.Uint32(uint32(len(m.Assignments)))
		for _, id := range m.Assignments {
			w.Uint64(id)
		}
		return nil
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		m := &MaterialInfo{
			ID:   r.Uint64(),
			Name: r.String(),
		}
		n := int(r.Uint32())
		if err := r.Err(); err != nil {
			return nil, err
		}
		m.Assignments = make([]uint64, n)
		for i := range m.Assignments {
			m.Assignments[i] = r.Uint64()
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		return m, nil
	},
}

var materialRangeCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		m, ok := b.(*MaterialRange)
		if !ok {
			return fmt.Errorf("%w: expected *MaterialRange", ErrInvalidBlock)
		}
		w.Uint64(m.MaterialID)
		w.Uint32(uint32(len(m.Faces)))
		for _, f := range m.Faces {
			w.Uint32(f)
		}
		return nil
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		m := &MaterialRange{MaterialID: r.Uint64()}
		n := int(r.Uint32())
		if err := r.Err(); err != nil {
			return nil, err
		}
		m.Faces = make([]uint32, n)
		for i := range m.Faces {
			m.Faces[i] = r.Uint32()
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		return m, nil
	},
}

// FilterMaterialRanges completes a set of explicit material range
// assignments over a mesh with faceCount faces. Faces not covered by
// any explicit range are collected into a synthetic range under
// defaultID, emitted first; the explicit ranges follow in their
// original order. Every face index in [0,faceCount) appears in at
// least one emitted range.
func FilterMaterialRanges(ranges []*MaterialRange, faceCount int, defaultID uint64) []*MaterialRange {
	if len(ranges) == 0 {
		all := lo.Map(lo.Range(faceCount), func(i int, _ int) uint32 { return uint32(i) })
		return []*MaterialRange{{MaterialID: defaultID, Faces: all}}
	}

	covered := make([]bool, faceCount)
	for _, rg := range ranges {
		for _, face := range rg.Faces {
			if int(face) < faceCount {
				covered[face] = true
			}
		}
	}
	remaining := lo.FilterMap(lo.Range(faceCount), func(i int, _ int) (uint32, bool) {
		return uint32(i), !covered[i]
	})

	out := make([]*MaterialRange, 0, len(ranges)+1)
	if len(remaining) > 0 {
		out = append(out, &MaterialRange{MaterialID: defaultID, Faces: remaining})
	}
	return append(out, ranges...)
}
