package umbf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMesh() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Pos: Vec3{0, 0, 0}, UV: Vec2{0, 0}, Normal: Vec3{0, 0, 1}},
			{Pos: Vec3{1, 0, 0}, UV: Vec2{1, 0}, Normal: Vec3{0, 0, 1}},
			{Pos: Vec3{1, 1, 0}, UV: Vec2{1, 1}, Normal: Vec3{0, 0, 1}},
			{Pos: Vec3{0, 1, 0}, UV: Vec2{0, 1}, Normal: Vec3{0, 0, 1}},
		},
		GroupCount: 2,
		Faces: []Face{
			{
				Vertices:   []VertexRef{{Group: 0, Vertex: 0}, {Group: 0, Vertex: 1}, {Group: 1, Vertex: 2}},
				Normal:     Vec3{0, 0, 1},
				StartIndex: 0,
				IndexCount: 3,
			},
			{
				Vertices:   []VertexRef{{Group: 1, Vertex: 0}, {Group: 1, Vertex: 2}, {Group: 1, Vertex: 3}},
				Normal:     Vec3{0, 0, 1},
				StartIndex: 3,
				IndexCount: 3,
			},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Bounds:  AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 0}},
		BaryVertices: []BaryVertex{
			{Pos: Vec3{0, 0, 0}, Bary: Vec3{1, 0, 0}},
			{Pos: Vec3{1, 0, 0}, Bary: Vec3{0, 1, 0}},
			{Pos: Vec3{1, 1, 0}, Bary: Vec3{0, 0, 1}},
		},
		Transform:    Transform{Position: Vec3{1, 2, 3}, Scale: Vec3{1, 1, 1}},
		NormalsAngle: 30,
	}
}

func TestMeshRoundTrip(t *testing.T) {
	mesh := testMesh()
	got := encodeDecodeBlocks(t, FormatScene, mesh)
	require.Len(t, got, 1)
	dec, ok := got[0].(*Mesh)
	require.True(t, ok)

	assert.Equal(t, mesh.Vertices, dec.Vertices)
	assert.Equal(t, mesh.GroupCount, dec.GroupCount)
	assert.Equal(t, mesh.Faces, dec.Faces)
	assert.Equal(t, mesh.Indices, dec.Indices)
	assert.Equal(t, mesh.Bounds, dec.Bounds)
	assert.Equal(t, mesh.Transform, dec.Transform)
	assert.Equal(t, mesh.NormalsAngle, dec.NormalsAngle)
	assert.Equal(t, mesh.BaryVertices, dec.BaryVertices)
}

func TestMeshEmptyRoundTrip(t *testing.T) {
	got := encodeDecodeBlocks(t, FormatScene, &Mesh{})
	require.Len(t, got, 1)
	dec, ok := got[0].(*Mesh)
	require.True(t, ok)
	assert.Empty(t, dec.Vertices)
	assert.Empty(t, dec.Faces)
	assert.Empty(t, dec.BaryVertices)
}

func TestMeshVertexGroups(t *testing.T) {
	groups := testMesh().VertexGroups()
	require.Len(t, groups, 2)

	assert.Equal(t, []uint32{0, 1}, groups[0].Vertices)
	assert.Equal(t, []uint32{0, 0}, groups[0].Faces)
	assert.Equal(t, []uint32{2, 0, 2, 3}, groups[1].Vertices)
	assert.Equal(t, []uint32{0, 1, 1, 1}, groups[1].Faces)
}

func TestMeshEncodeRejectsBadSpan(t *testing.T) {
	mesh := &Mesh{
		Faces:   []Face{{StartIndex: 0, IndexCount: 4}},
		Indices: []uint32{0, 1},
	}
	w := NewWriter()
	err := meshCodec.Encode(&EncodeContext{Registry: DefaultRegistry()}, w, mesh)
	assert.True(t, errors.Is(err, ErrInvalidBlock))
}

func TestMeshDecodeRejectsBogusCounts(t *testing.T) {
	// A tiny frame claiming four billion vertices must fail before any
	// allocation, not while reading.
	w := NewWriter()
	w.Uint32(0xFFFFFFF0) // vertex count
	w.Uint32(0)
	w.Uint32(0)
	w.Uint32(0)
	require.NoError(t, w.Err())

	dc := &DecodeContext{Registry: DefaultRegistry(), Logger: discardLogger(), Limits: Limits{}.withDefaults()}
	_, err := meshCodec.Decode(dc, NewReader(w.Bytes()))
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestSceneRoundTrip(t *testing.T) {
	scene := &Scene{
		Objects: []Object{
			{
				ID:   1,
				Name: "plane",
				Meta: []Block{testMesh()},
			},
			{ID: 2, Name: "empty"},
		},
		Textures: []File{{
			Header: Header{VendorSign: VendorID, TypeSign: FormatImage},
			Blocks: []Block{testImage()},
		}},
		Materials: []File{{
			Header: Header{VendorSign: VendorID, TypeSign: FormatMaterial},
			Blocks: []Block{&Material{Albedo: MaterialNode{RGB: Vec3{X: 1}}}},
		}},
	}

	got := encodeDecodeBlocks(t, FormatScene, scene)
	require.Len(t, got, 1)
	dec, ok := got[0].(*Scene)
	require.True(t, ok)

	require.Len(t, dec.Objects, 2)
	assert.Equal(t, uint64(1), dec.Objects[0].ID)
	assert.Equal(t, "plane", dec.Objects[0].Name)
	require.Len(t, dec.Objects[0].Meta, 1)
	mesh, ok := dec.Objects[0].Meta[0].(*Mesh)
	require.True(t, ok)
	assert.Equal(t, testMesh().Vertices, mesh.Vertices)
	assert.Empty(t, dec.Objects[1].Meta)

	require.Len(t, dec.Textures, 1)
	img, ok := dec.Textures[0].Blocks[0].(*Image2D)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4}, img.Pixels)

	require.Len(t, dec.Materials, 1)
	mat, ok := dec.Materials[0].Blocks[0].(*Material)
	require.True(t, ok)
	assert.Equal(t, float32(1), mat.Albedo.RGB.X)
}

func TestSceneInFileWithCompression(t *testing.T) {
	f := &File{
		Header: Header{VendorSign: VendorID, TypeSign: FormatScene},
		Blocks: []Block{&Scene{Objects: []Object{{ID: 7, Name: "cube", Meta: []Block{testMesh()}}}}},
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f, WithCompression(CompBR)))

	got, err := Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	scene, ok := got.Blocks[0].(*Scene)
	require.True(t, ok)
	require.Len(t, scene.Objects, 1)
	assert.Equal(t, "cube", scene.Objects[0].Name)
}
