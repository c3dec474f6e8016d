// Package meshes imports model files with assimp and turns them into 2D shapes for the renderer.
//
// Every mesh of a file ends up in one shape. X and Y are the shape position and Z is its depth.
package meshes

import (
	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/pkg/errors"
	"github.com/voiengine/voi/assert"
	"github.com/voiengine/voi/logging"
	"github.com/voiengine/voi/renderer"
)

var (
	// DefaultShapeLoadFlags are always applied when loading a shape, on top of the caller's flags
	DefaultShapeLoadFlags asig.PostProcess = asig.PostProcessTriangulate
)

type Shape struct {
	Name     string
	Verts    []renderer.TexVertex2D
	Elements []uint32
}

// subMesh is the part of an imported mesh a shape needs
type subMesh struct {
	Positions []gglm.Vec3
	// Optional, same length as Positions when set
	Colors []gglm.Vec4
	UVs    []gglm.Vec3
	Faces  [][3]uint32
}

func LoadShape(name, modelPath string, postProcessFlags asig.PostProcess) (Shape, error) {

	scene, release, err := asig.ImportFile(modelPath, DefaultShapeLoadFlags|postProcessFlags)
	if err != nil {
		return Shape{}, errors.Wrapf(err, "failed to load model %s", modelPath)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return Shape{}, errors.New("No meshes found in file: " + modelPath)
	}

	subMeshes := make([]subMesh, 0, len(scene.Meshes))
	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]

		sm := subMesh{
			Positions: sceneMesh.Vertices,
			Colors:    sceneMesh.ColorSets[0],
			UVs:       sceneMesh.TexCoords[0],
			Faces:     make([][3]uint32, 0, len(sceneMesh.Faces)),
		}

		for j := 0; j < len(sceneMesh.Faces); j++ {

			f := sceneMesh.Faces[j]

			// Triangulation leaves points and lines as they are
			if len(f.Indices) != 3 {
				continue
			}

			sm.Faces = append(sm.Faces, [3]uint32{uint32(f.Indices[0]), uint32(f.Indices[1]), uint32(f.Indices[2])})
		}

		subMeshes = append(subMeshes, sm)
	}

	shape := buildShape(name, subMeshes)
	logging.InfoLog.Printf("Loaded shape '%s' from '%s' with %d vertices and %d triangles\n", name, modelPath, len(shape.Verts), len(shape.Elements)/3)
	return shape, nil
}

func buildShape(name string, subMeshes []subMesh) Shape {

	vertCount, elemCount := 0, 0
	for i := 0; i < len(subMeshes); i++ {
		vertCount += len(subMeshes[i].Positions)
		elemCount += len(subMeshes[i].Faces) * 3
	}

	shape := Shape{
		Name:     name,
		Verts:    make([]renderer.TexVertex2D, 0, vertCount),
		Elements: make([]uint32, 0, elemCount),
	}

	for i := 0; i < len(subMeshes); i++ {

		sm := &subMeshes[i]
		baseVertex := uint32(len(shape.Verts))

		hasColors := len(sm.Colors) > 0
		hasUVs := len(sm.UVs) > 0
		assert.T(!hasColors || len(sm.Colors) == len(sm.Positions), "Mesh %d of shape '%s' has %d colors for %d vertices", i, name, len(sm.Colors), len(sm.Positions))
		assert.T(!hasUVs || len(sm.UVs) == len(sm.Positions), "Mesh %d of shape '%s' has %d texture coordinates for %d vertices", i, name, len(sm.UVs), len(sm.Positions))

		for j := 0; j < len(sm.Positions); j++ {

			p := &sm.Positions[j]
			v := renderer.TexVertex2D{
				Pos:   renderer.V2(p.Data[0], p.Data[1]),
				Z:     p.Data[2],
				Color: renderer.White,
			}

			if hasColors {
				c := &sm.Colors[j]
				v.Color = renderer.Color{R: c.Data[0], G: c.Data[1], B: c.Data[2], A: c.Data[3]}
			}

			if hasUVs {
				v.TexCoord = renderer.V2(sm.UVs[j].Data[0], sm.UVs[j].Data[1])
			}

			shape.Verts = append(shape.Verts, v)
		}

		for j := 0; j < len(sm.Faces); j++ {
			f := sm.Faces[j]
			shape.Elements = append(shape.Elements, baseVertex+f[0], baseVertex+f[1], baseVertex+f[2])
		}
	}

	return shape
}

// FillVerts drops the texture coordinates
func (s *Shape) FillVerts() []renderer.FillVertex2D {

	out := make([]renderer.FillVertex2D, len(s.Verts))
	for i := 0; i < len(s.Verts); i++ {
		out[i] = renderer.FillVertex2D{Pos: s.Verts[i].Pos, Z: s.Verts[i].Z, Color: s.Verts[i].Color}
	}

	return out
}

// Transformed returns a copy scaled around the origin and then moved by offset
func (s *Shape) Transformed(offset gglm.Vec2, scale float32) Shape {

	out := Shape{
		Name:     s.Name,
		Verts:    make([]renderer.TexVertex2D, len(s.Verts)),
		Elements: s.Elements,
	}

	for i := 0; i < len(s.Verts); i++ {
		v := s.Verts[i]
		v.Pos = renderer.V2(v.Pos.Data[0]*scale+offset.Data[0], v.Pos.Data[1]*scale+offset.Data[1])
		out.Verts[i] = v
	}

	return out
}

// DrawFilled adds the shape to the current solid fill batch
func (s *Shape) DrawFilled(r *renderer.Renderer) error {
	return r.FillShape(s.FillVerts(), s.Elements)
}

// DrawTextured adds the shape to the current texture batch
func (s *Shape) DrawTextured(r *renderer.Renderer) error {
	return r.TexturedShape(s.Verts, s.Elements)
}
