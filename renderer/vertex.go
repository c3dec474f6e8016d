package renderer

import (
	"github.com/bloeys/gglm/gglm"
)

const (
	// FillVertexFloats is position(3) + color(4)
	FillVertexFloats = 7
	// TexVertexFloats is position(3) + color(4) + texCoord(2)
	TexVertexFloats = 9
)

var (
	FillLayout    = []int32{3, 4}
	TextureLayout = []int32{3, 4, 2}

	// QuadElements draws a quad as two triangles sharing the 0-2 diagonal
	QuadElements     = []uint32{0, 1, 2, 2, 3, 0}
	TriangleElements = []uint32{0, 1, 2}
)

type FillVertex2D struct {
	Pos   gglm.Vec2
	Z     float32
	Color Color
}

type TexVertex2D struct {
	Pos      gglm.Vec2
	Z        float32
	Color    Color
	TexCoord gglm.Vec2
}

func V2(x, y float32) gglm.Vec2 {
	return gglm.Vec2{Data: [2]float32{x, y}}
}

func appendFillVertex(out []float32, pos gglm.Vec2, z float32, c Color) []float32 {
	return append(out, pos.Data[0], pos.Data[1], z, c.R, c.G, c.B, c.A)
}

func appendTexVertex(out []float32, pos gglm.Vec2, z float32, c Color, uv gglm.Vec2) []float32 {
	return append(out, pos.Data[0], pos.Data[1], z, c.R, c.G, c.B, c.A, uv.Data[0], uv.Data[1])
}

// FlattenFillVertices interleaves vertices into the float layout of the solid fill batch
func FlattenFillVertices(verts []FillVertex2D) []float32 {

	out := make([]float32, 0, len(verts)*FillVertexFloats)
	for i := 0; i < len(verts); i++ {
		out = appendFillVertex(out, verts[i].Pos, verts[i].Z, verts[i].Color)
	}

	return out
}

// FlattenTexVertices interleaves vertices into the float layout of the texture batches
func FlattenTexVertices(verts []TexVertex2D) []float32 {

	out := make([]float32, 0, len(verts)*TexVertexFloats)
	for i := 0; i < len(verts); i++ {
		out = appendTexVertex(out, verts[i].Pos, verts[i].Z, verts[i].Color, verts[i].TexCoord)
	}

	return out
}
