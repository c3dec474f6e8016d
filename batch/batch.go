// Package batch accumulates one frame of geometry for a single shader program and texture set,
// and submits it with one indexed draw call.
package batch

import (
	"github.com/voiengine/voi/assert"
	"github.com/voiengine/voi/buffers"
	"github.com/voiengine/voi/gpu"
)

// DrawBatch draws from one slot of a shared BufferSet. The BufferSet owns the GPU buffers and
// must outlive every batch that uses it.
type DrawBatch struct {
	dev  gpu.Device
	bufs *buffers.BufferSet
	slot int

	ProgramId uint32
	// IndexUsage is the usage hint used when uploading the element list on Submit
	IndexUsage gpu.BufUsage

	elements []uint32
	// elementBase is one past the largest element emitted this frame
	elementBase uint32
	attribCount int

	textureIds []uint32
}

func NewDrawBatch(dev gpu.Device, bufs *buffers.BufferSet, slot int, programId uint32) *DrawBatch {

	assert.T(slot >= 0 && slot < bufs.Len(), "Draw batch slot %d is outside buffer set of size %d", slot, bufs.Len())

	return &DrawBatch{
		dev:        dev,
		bufs:       bufs,
		slot:       slot,
		ProgramId:  programId,
		IndexUsage: gpu.BufUsage_Dynamic_Draw,
		elements:   make([]uint32, 0, 64),
		textureIds: make([]uint32, 0, 1),
	}
}

func (b *DrawBatch) Slot() int {
	return b.slot
}

func (b *DrawBatch) AttribCount() int {
	return b.attribCount
}

// Elements returns a copy of the element list accumulated this frame
func (b *DrawBatch) Elements() []uint32 {
	return append([]uint32(nil), b.elements...)
}

func (b *DrawBatch) ElementCount() int {
	return len(b.elements)
}

// TextureIds returns a copy of the texture ids bound per unit (index i is unit i)
func (b *DrawBatch) TextureIds() []uint32 {
	return append([]uint32(nil), b.textureIds...)
}

func (b *DrawBatch) DefineVertexLayout(attribSizes []int32, usage gpu.BufUsage, reserveCount int, initialData []float32) {
	b.bufs.DefineVertexLayout(b.slot, attribSizes, usage, reserveCount, initialData)
	b.attribCount = len(attribSizes)
}

// EnableAttributes enables the given attribute indices, or 0..AttribCount-1 when none are given.
// Call once after DefineVertexLayout and before drawing.
func (b *DrawBatch) EnableAttributes(attribs ...uint32) {

	if len(attribs) == 0 {
		attribs = make([]uint32, b.attribCount)
		for i := 0; i < b.attribCount; i++ {
			attribs[i] = uint32(i)
		}
	}

	b.bufs.EnableAttributes(b.slot, attribs...)
}

// Clear empties the element list and the vertex buffer, ready for a new frame
func (b *DrawBatch) Clear() {
	b.bufs.ResetVertexSize(b.slot)
	b.elements = b.elements[:0]
	b.elementBase = 0
}

// AddVertices appends vertex data and its elements. Elements are local to vertexData (i.e. start at zero)
// and are shifted past everything added earlier this frame.
//
// If the vertex buffer can't hold the data a *gpuerr.CapacityExhaustedError is returned and the batch is unchanged.
func (b *DrawBatch) AddVertices(vertexData []float32, localElements []uint32) error {

	err := b.bufs.AppendVertexData(b.slot, vertexData)
	if err != nil {
		return err
	}

	if len(localElements) == 0 {
		return nil
	}

	var maxElem uint32
	for _, e := range localElements {

		elem := b.elementBase + e
		if elem > maxElem {
			maxElem = elem
		}

		b.elements = append(b.elements, elem)
	}

	b.elementBase = maxElem + 1
	return nil
}

// AddTexture binds textureId to unit. If unit is an occupied unit its texture is replaced, otherwise the
// texture takes the next free unit. Returns the unit used, or -1 if all gpu.MaxTextureUnits are taken.
func (b *DrawBatch) AddTexture(textureId uint32, unit int) int {

	if unit >= 0 && unit < len(b.textureIds) {
		b.textureIds[unit] = textureId
		return unit
	}

	if len(b.textureIds) < gpu.MaxTextureUnits {
		b.textureIds = append(b.textureIds, textureId)
		return len(b.textureIds) - 1
	}

	return -1
}

// Submit draws everything accumulated this frame.
//
// With redraw set the element list is not uploaded again, which is enough to repeat the last frame unchanged.
// Nothing is drawn for an empty batch.
func (b *DrawBatch) Submit(mode gpu.PrimitiveMode, redraw bool) {

	if len(b.elements) == 0 {
		return
	}

	b.dev.UseProgram(b.ProgramId)

	if redraw {
		b.bufs.BindArray(b.slot)
	} else {
		// Also binds the vertex array
		b.bufs.SetIndexData(b.slot, b.elements, b.IndexUsage, false)
	}

	for i := 0; i < len(b.textureIds); i++ {
		b.dev.ActiveTexture(uint32(i))
		b.dev.BindTexture2D(b.textureIds[i])
	}

	b.dev.DrawElements(mode, int32(len(b.elements)))
}

// Redraw draws the last submitted triangles again without uploading anything
func (b *DrawBatch) Redraw() {
	b.Submit(gpu.PrimitiveMode_Triangles, true)
}
