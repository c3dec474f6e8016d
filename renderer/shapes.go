package renderer

import (
	"github.com/bloeys/gglm/gglm"
)

var (
	defaultTriUVs  = [3]gglm.Vec2{V2(0, 0), V2(1, 0), V2(0, 1)}
	defaultQuadUVs = [4]gglm.Vec2{V2(0, 0), V2(1, 0), V2(1, 1), V2(0, 1)}
)

// FillTriangle adds a triangle in DrawColor to the current solid fill batch
func (r *Renderer) FillTriangle(p1, p2, p3 gglm.Vec2, z float32) error {

	c := r.DrawColor
	data := make([]float32, 0, 3*FillVertexFloats)
	data = appendFillVertex(data, p1, z, c)
	data = appendFillVertex(data, p2, z, c)
	data = appendFillVertex(data, p3, z, c)

	return r.batches[r.SolidGroup.Target()].AddVertices(data, TriangleElements)
}

// FillQuad adds a quad in DrawColor. Points go around the quad, p1-p3 is the shared diagonal.
func (r *Renderer) FillQuad(p1, p2, p3, p4 gglm.Vec2, z float32) error {

	c := r.DrawColor
	data := make([]float32, 0, 4*FillVertexFloats)
	data = appendFillVertex(data, p1, z, c)
	data = appendFillVertex(data, p2, z, c)
	data = appendFillVertex(data, p3, z, c)
	data = appendFillVertex(data, p4, z, c)

	return r.batches[r.SolidGroup.Target()].AddVertices(data, QuadElements)
}

func (r *Renderer) FillRect(x, y, w, h, z float32) error {
	return r.FillQuad(V2(x, y), V2(x+w, y), V2(x+w, y+h), V2(x, y+h), z)
}

// FillShape adds arbitrary vertices with elements local to verts
func (r *Renderer) FillShape(verts []FillVertex2D, elements []uint32) error {
	return r.batches[r.SolidGroup.Target()].AddVertices(FlattenFillVertices(verts), elements)
}

// TexturedTriangle adds a triangle to the current texture batch with texture coordinates (0,0), (1,0), (0,1)
func (r *Renderer) TexturedTriangle(p1, p2, p3 gglm.Vec2, z float32) error {
	return r.TexturedTriangleUV(p1, p2, p3, z, defaultTriUVs[0], defaultTriUVs[1], defaultTriUVs[2])
}

func (r *Renderer) TexturedTriangleUV(p1, p2, p3 gglm.Vec2, z float32, t1, t2, t3 gglm.Vec2) error {

	c := r.DrawColor
	data := make([]float32, 0, 3*TexVertexFloats)
	data = appendTexVertex(data, p1, z, c, t1)
	data = appendTexVertex(data, p2, z, c, t2)
	data = appendTexVertex(data, p3, z, c, t3)

	return r.batches[r.TextureGroup.Target()].AddVertices(data, TriangleElements)
}

// TexturedQuad adds a quad to the current texture batch with the whole texture mapped onto it
func (r *Renderer) TexturedQuad(p1, p2, p3, p4 gglm.Vec2, z float32) error {
	return r.TexturedQuadUV(p1, p2, p3, p4, z, defaultQuadUVs[0], defaultQuadUVs[1], defaultQuadUVs[2], defaultQuadUVs[3])
}

func (r *Renderer) TexturedQuadUV(p1, p2, p3, p4 gglm.Vec2, z float32, t1, t2, t3, t4 gglm.Vec2) error {

	c := r.DrawColor
	data := make([]float32, 0, 4*TexVertexFloats)
	data = appendTexVertex(data, p1, z, c, t1)
	data = appendTexVertex(data, p2, z, c, t2)
	data = appendTexVertex(data, p3, z, c, t3)
	data = appendTexVertex(data, p4, z, c, t4)

	return r.batches[r.TextureGroup.Target()].AddVertices(data, QuadElements)
}

func (r *Renderer) TexturedRect(x, y, w, h, z float32) error {
	return r.TexturedQuad(V2(x, y), V2(x+w, y), V2(x+w, y+h), V2(x, y+h), z)
}

func (r *Renderer) TexturedRectUV(x, y, w, h, z float32, t1, t2, t3, t4 gglm.Vec2) error {
	return r.TexturedQuadUV(V2(x, y), V2(x+w, y), V2(x+w, y+h), V2(x, y+h), z, t1, t2, t3, t4)
}

func (r *Renderer) TexturedShape(verts []TexVertex2D, elements []uint32) error {
	return r.batches[r.TextureGroup.Target()].AddVertices(FlattenTexVertices(verts), elements)
}
