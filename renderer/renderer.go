// Package renderer is the 2D drawing front end. It owns the batch list, splits it into a solid fill group
// and a single texture group, routes shape calls to the current batch of a group and drives clear/submit.
package renderer

import (
	"github.com/voiengine/voi/assert"
	"github.com/voiengine/voi/batch"
	"github.com/voiengine/voi/buffers"
	"github.com/voiengine/voi/gpu"
	"github.com/voiengine/voi/gpuerr"
	"github.com/voiengine/voi/logging"
)

const (
	SolidGroupSize   = 1
	TextureGroupSize = gpu.MaxTextureUnits

	DefaultReserveVertices = 1000
)

type Options struct {
	SolidProgramId   uint32
	TextureProgramId uint32

	// Reserves are in vertices per batch
	SolidReserve   int
	TextureReserve int
	VertexUsage    gpu.BufUsage

	DepthTest  bool
	ClearColor Color
}

func DefaultOptions() Options {
	return Options{
		SolidReserve:   DefaultReserveVertices,
		TextureReserve: DefaultReserveVertices,
		VertexUsage:    gpu.BufUsage_Dynamic_Draw,
		DepthTest:      true,
		ClearColor:     Color{0.2, 0.3, 0.3, 1},
	}
}

type Renderer struct {
	dev     gpu.Device
	bufs    *buffers.BufferSet
	batches []*batch.DrawBatch

	SolidGroup   BatchGroup
	TextureGroup BatchGroup

	// textureIds[i] is the texture object of texture group batch i
	textureIds       [TextureGroupSize]uint32
	textureAssigned  [TextureGroupSize]bool
	nextTextureBatch int

	// DrawColor tints every vertex of the shape calls
	DrawColor  Color
	clearColor Color

	programIds []uint32
	destroyed  bool
}

// New creates the buffer set, the texture objects and every batch. The programs are owned by the
// renderer from here on and deleted by Destroy.
func New(dev gpu.Device, opts Options) (*Renderer, error) {

	if opts.VertexUsage == gpu.BufUsage_Unknown {
		opts.VertexUsage = gpu.BufUsage_Dynamic_Draw
	}

	assert.T(opts.SolidReserve > 0 && opts.TextureReserve > 0, "Renderer vertex reserves must be positive, got solid=%d texture=%d", opts.SolidReserve, opts.TextureReserve)

	for _, id := range []uint32{opts.SolidProgramId, opts.TextureProgramId} {
		if !dev.IsProgram(id) {
			logging.WarnLog.Printf("Renderer got program id %d which is not a valid shader program\n", id)
		}
	}

	r := &Renderer{
		dev:          dev,
		SolidGroup:   BatchGroup{Name: "solid fill", Start: 0, Count: SolidGroupSize},
		TextureGroup: BatchGroup{Name: "single texture", Start: SolidGroupSize, Count: TextureGroupSize},
		DrawColor:    White,
	}

	assert.T(r.SolidGroup.End() == r.TextureGroup.Start, "Batch groups must be contiguous")

	bufs, err := buffers.NewBufferSet(dev, r.TextureGroup.End())
	if err != nil {
		return nil, err
	}
	r.bufs = bufs

	dev.GenTextures(r.textureIds[:])
	for _, id := range r.textureIds {
		if id == 0 {
			dev.DeleteTextures(nonZero(r.textureIds[:]))
			bufs.Destroy()
			return nil, gpuerr.ResourceCreation("texture objects", nil)
		}
	}

	r.batches = make([]*batch.DrawBatch, 0, r.TextureGroup.End())

	for i := r.SolidGroup.Start; i < r.SolidGroup.End(); i++ {
		b := batch.NewDrawBatch(dev, bufs, i, opts.SolidProgramId)
		b.DefineVertexLayout(FillLayout, opts.VertexUsage, opts.SolidReserve, nil)
		r.batches = append(r.batches, b)
	}

	for i := r.TextureGroup.Start; i < r.TextureGroup.End(); i++ {
		b := batch.NewDrawBatch(dev, bufs, i, opts.TextureProgramId)
		b.DefineVertexLayout(TextureLayout, opts.VertexUsage, opts.TextureReserve, nil)
		r.batches = append(r.batches, b)
	}

	r.programIds = uniqueIds(opts.SolidProgramId, opts.TextureProgramId)

	dev.SetDepthTest(opts.DepthTest)
	r.SetClearColor(opts.ClearColor)
	dev.Clear(gpu.ClearMask_Color | gpu.ClearMask_Depth)

	logging.InfoLog.Printf("Renderer created with %d batches (%s: %d, %s: %d)\n", len(r.batches), r.SolidGroup.Name, r.SolidGroup.Count, r.TextureGroup.Name, r.TextureGroup.Count)
	return r, nil
}

func (r *Renderer) BufferSet() *buffers.BufferSet {
	return r.bufs
}

// Batches returns the batches in submission order
func (r *Renderer) Batches() []*batch.DrawBatch {
	return append([]*batch.DrawBatch(nil), r.batches...)
}

func (r *Renderer) Batch(i int) *batch.DrawBatch {
	gpuerr.CheckIndex("batch", i, len(r.batches))
	return r.batches[i]
}

// EnableAttributes enables the vertex attributes of every batch. Call once before the first frame.
func (r *Renderer) EnableAttributes() {
	for _, b := range r.batches {
		b.EnableAttributes()
	}
}

// Clear clears the color and depth buffers and empties every batch
func (r *Renderer) Clear() {

	r.ClearTargets()
	for _, b := range r.batches {
		b.Clear()
	}
}

// ClearTargets clears the color and depth buffers but keeps the batches
func (r *Renderer) ClearTargets() {
	r.dev.Clear(gpu.ClearMask_Color | gpu.ClearMask_Depth)
}

// Submit draws every batch, solid fill group first. With redraw set nothing is uploaded and the last frame is repeated.
func (r *Renderer) Submit(redraw bool) {
	for _, b := range r.batches {
		b.Submit(gpu.PrimitiveMode_Triangles, redraw)
	}
}

func (r *Renderer) ClearColor() Color {
	return r.clearColor
}

func (r *Renderer) SetClearColor(c Color) {
	r.clearColor = c
	r.dev.ClearColor(c.R, c.G, c.B, c.A)
}

// SetViewport is meant to be called when the drawable size changes
func (r *Renderer) SetViewport(width, height int32) {

	if width <= 0 || height <= 0 {
		return
	}

	r.dev.Viewport(0, 0, width, height)
}

// Destroy deletes the textures, programs and buffers of the renderer. Calling it more than once is a no-op.
func (r *Renderer) Destroy() {

	if r.destroyed {
		return
	}
	r.destroyed = true

	r.dev.DeleteTextures(r.textureIds[:])
	for _, id := range r.programIds {
		r.dev.DeleteProgram(id)
	}

	r.bufs.Destroy()
	r.batches = nil
}

func uniqueIds(ids ...uint32) []uint32 {

	out := make([]uint32, 0, len(ids))
	for _, id := range ids {

		if id == 0 {
			continue
		}

		dup := false
		for _, o := range out {
			if o == id {
				dup = true
				break
			}
		}

		if !dup {
			out = append(out, id)
		}
	}

	return out
}

func nonZero(ids []uint32) []uint32 {

	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if id != 0 {
			out = append(out, id)
		}
	}

	return out
}
