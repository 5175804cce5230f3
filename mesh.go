package umbf

import "fmt"

// Vertex is one render vertex: position, UV and normal.
type Vertex struct {
	Pos    Vec3
	UV     Vec2
	Normal Vec3
}

// VertexRef points at a vertex through its vertex group: Group indexes
// the group, Vertex indexes the global vertex buffer.
type VertexRef struct {
	Group  uint32
	Vertex uint32
}

// Face is one polygon: its vertex references, face normal, and the
// contiguous span it owns inside the mesh's global index buffer.
type Face struct {
	Vertices   []VertexRef
	Normal     Vec3
	StartIndex uint32
	IndexCount uint16
}

// VertexGroup collects the vertex and face indices that reference one
// group. Groups are derived, not stored; see Mesh.VertexGroups.
type VertexGroup struct {
	Vertices []uint32
	Faces    []uint32
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Transform is an object-space transform.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// Mesh is a 3D model block. BaryVertices carries one barycentric
// vertex per entry of the expanded index buffer; on the wire the
// barycentric components are bit-packed and only their zero/nonzero
// pattern survives (see PackBarycentric). NormalsAngle of zero means
// hard normals, any other value is the soft-normal threshold angle.
type Mesh struct {
	Vertices     []Vertex
	GroupCount   uint32
	Faces        []Face
	Indices      []uint32
	Bounds       AABB
	BaryVertices []BaryVertex
	Transform    Transform
	NormalsAngle float32
}

func (m *Mesh) Signature() uint32 { return SigMesh }

// VertexGroups derives the per-group vertex and face index lists from
// the face topology.
func (m *Mesh) VertexGroups() []VertexGroup {
	groups := make([]VertexGroup, m.GroupCount)
	for f, face := range m.Faces {
		for _, ref := range face.Vertices {
			if int(ref.Group) >= len(groups) {
				continue
			}
			groups[ref.Group].Faces = append(groups[ref.Group].Faces, uint32(f))
			groups[ref.Group].Vertices = append(groups[ref.Group].Vertices, ref.Vertex)
		}
	}
	return groups
}

var meshCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		m, ok := b.(*Mesh)
		if !ok {
			return fmt.Errorf("%w: expected *Mesh", ErrInvalidBlock)
		}
		w.Uint32(uint32(len(m.Vertices)))
		w.Uint32(m.GroupCount)
		w.Uint32(uint32(len(m.Faces)))
		w.Uint32(uint32(len(m.Indices)))

		for _, v := range m.Vertices {
			w.Vec3(v.Pos)
			w.Vec2(v.UV)
			w.Vec3(v.Normal)
		}

		for _, face := range m.Faces {
			w.Uint32(uint32(len(face.Vertices)))
			for _, ref := range face.Vertices {
				w.Uint32(ref.Group)
				w.Uint32(ref.Vertex)
			}
			w.Vec3(face.Normal)
			w.Uint16(face.IndexCount)
			span := int(face.StartIndex) + int(face.IndexCount)
			if span > len(m.Indices) {
				return fmt.Errorf("%w: face span [%d,%d) exceeds %d indices",
					ErrInvalidBlock, face.StartIndex, span, len(m.Indices))
			}
			for _, idx := range m.Indices[face.StartIndex:span] {
				w.Uint32(idx)
			}
		}

		w.Vec3(m.Bounds.Min)
		w.Vec3(m.Bounds.Max)
		w.Vec3(m.Transform.Position)
		w.Vec3(m.Transform.Rotation)
		w.Vec3(m.Transform.Scale)
		w.Float32(m.NormalsAngle)

		w.Uint32(uint32(len(m.BaryVertices)))
		for _, bv := range m.BaryVertices {
			w.Vec3(bv.Pos)
		}
		for _, word := range PackBarycentric(m.BaryVertices) {
			w.Uint64(word)
		}
		return nil
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		vertexCount := int(r.Uint32())
		groupCount := r.Uint32()
		faceCount := int(r.Uint32())
		indexCount := int(r.Uint32())
		if err := r.Err(); err != nil {
			return nil, err
		}
		// Vertices are 32 wire bytes each; reject counts the frame
		// cannot possibly hold before allocating.
		if vertexCount*32 > r.Remaining() || faceCount > r.Remaining() || indexCount*4 > r.Remaining() {
			return nil, fmt.Errorf("%w: mesh counts exceed frame size", ErrTruncated)
		}

		m := &Mesh{
			GroupCount: groupCount,
			Vertices:   make([]Vertex, vertexCount),
			Faces:      make([]Face, faceCount),
			Indices:    make([]uint32, indexCount),
		}
		for i := range m.Vertices {
			m.Vertices[i].Pos = r.Vec3()
			m.Vertices[i].UV = r.Vec2()
			m.Vertices[i].Normal = r.Vec3()
		}
		if err := r.Err(); err != nil {
			return nil, err
		}

		indexOffset := 0
		for i := range m.Faces {
			refCount := int(r.Uint32())
			if err := r.Err(); err != nil {
				return nil, err
			}
			refs := make([]VertexRef, refCount)
			for j := range refs {
				refs[j].Group = r.Uint32()
				refs[j].Vertex = r.Uint32()
			}
			m.Faces[i].Vertices = refs
			m.Faces[i].Normal = r.Vec3()
			m.Faces[i].IndexCount = r.Uint16()
			if err := r.Err(); err != nil {
				return nil, err
			}
			span := indexOffset + int(m.Faces[i].IndexCount)
			if span > indexCount {
				return nil, fmt.Errorf("%w: face spans beyond index buffer", ErrInvalidBlock)
			}
			for k := indexOffset; k < span; k++ {
				m.Indices[k] = r.Uint32()
			}
			m.Faces[i].StartIndex = uint32(indexOffset)
			indexOffset = span
		}

		m.Bounds.Min = r.Vec3()
		m.Bounds.Max = r.Vec3()
		m.Transform.Position = r.Vec3()
		m.Transform.Rotation = r.Vec3()
		m.Transform.Scale = r.Vec3()
		m.NormalsAngle = r.Float32()

		baryCount := int(r.Uint32())
		if err := r.Err(); err != nil {
			return nil, err
		}
		if baryCount*12 > r.Remaining() {
			return nil, fmt.Errorf("%w: barycentric count exceeds frame size", ErrTruncated)
		}
		m.BaryVertices = make([]BaryVertex, baryCount)
		for i := range m.BaryVertices {
			m.BaryVertices[i].Pos = r.Vec3()
		}
		words := make([]uint64, baryWordCount(baryCount))
		for i := range words {
			words[i] = r.Uint64()
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		bary, err := UnpackBarycentric(words, baryCount)
		if err != nil {
			return nil, err
		}
		for i := range m.BaryVertices {
			m.BaryVertices[i].Bary = bary[i]
		}
		return m, nil
	},
}
