package buffers

import (
	"github.com/voiengine/voi/assert"
	"github.com/voiengine/voi/gpu"
	"github.com/voiengine/voi/gpuerr"
	"github.com/voiengine/voi/logging"
)

// MinIndexBufCount is the smallest number of indices an index buffer is allocated for,
// so small shapes don't reallocate the buffer every time their index count changes
const MinIndexBufCount = 1000

// BufferInfo tracks the storage of one GPU buffer. Capacity and Size are in bytes.
type BufferInfo struct {
	Capacity int
	Size     int
	Usage    gpu.BufUsage
}

// BufferSlot is one vertex array with its vertex and index buffers
type BufferSlot struct {
	VaoId uint32
	VboId uint32
	IboId uint32

	Layout     Layout
	VertexInfo BufferInfo
	IndexInfo  BufferInfo
}

// Binding is the vertex array and array buffer most recently bound through a BufferSet
type Binding struct {
	VaoId uint32
	VboId uint32
}

// BufferSet owns a fixed number of buffer slots. All slots are created together in NewBufferSet
// and deleted together in Destroy.
//
// Every method binds what it needs right before using it, and never relies on
// state left bound by an earlier call.
type BufferSet struct {
	dev       gpu.Device
	slots     []BufferSlot
	bound     Binding
	destroyed bool
}

func NewBufferSet(dev gpu.Device, count int) (*BufferSet, error) {

	assert.T(count > 0, "Buffer set must have at least one slot, but got count=%d", count)

	vaos := make([]uint32, count)
	vbos := make([]uint32, count)
	ibos := make([]uint32, count)

	dev.GenVertexArrays(vaos)
	dev.GenBuffers(vbos)
	dev.GenBuffers(ibos)

	if hasZeroId(vaos) || hasZeroId(vbos) || hasZeroId(ibos) {

		dev.DeleteVertexArrays(nonZeroIds(vaos))
		dev.DeleteBuffers(nonZeroIds(vbos))
		dev.DeleteBuffers(nonZeroIds(ibos))

		logging.ErrLog.Printf("Failed to create %d buffer slots\n", count)
		return nil, gpuerr.ResourceCreation("buffer set vertex arrays/buffers", nil)
	}

	bs := &BufferSet{
		dev:   dev,
		slots: make([]BufferSlot, count),
	}

	for i := 0; i < count; i++ {

		bs.slots[i] = BufferSlot{
			VaoId:      vaos[i],
			VboId:      vbos[i],
			IboId:      ibos[i],
			VertexInfo: BufferInfo{Usage: gpu.BufUsage_Dynamic_Draw},
			IndexInfo:  BufferInfo{Usage: gpu.BufUsage_Dynamic_Draw},
		}

		// The element buffer binding is vertex array state, so this only has to happen once
		bs.BindArray(i)
		dev.BindBuffer(gpu.BufferTarget_ElementArray, ibos[i])
	}

	// So later element buffer binds don't land in the last slot's vertex array
	dev.BindVertexArray(0)
	bs.bound.VaoId = 0

	return bs, nil
}

func (bs *BufferSet) Len() int {
	return len(bs.slots)
}

func (bs *BufferSet) checkSlot(i int) {
	assert.T(!bs.destroyed, "Buffer set used after Destroy")
	gpuerr.CheckIndex("buffer slot", i, len(bs.slots))
}

// Slot returns a copy of slot i
func (bs *BufferSet) Slot(i int) BufferSlot {
	bs.checkSlot(i)
	return bs.slots[i]
}

func (bs *BufferSet) VertexInfo(i int) BufferInfo {
	bs.checkSlot(i)
	return bs.slots[i].VertexInfo
}

func (bs *BufferSet) IndexInfo(i int) BufferInfo {
	bs.checkSlot(i)
	return bs.slots[i].IndexInfo
}

// Bound returns what this set last bound
func (bs *BufferSet) Bound() Binding {
	return bs.bound
}

// Bind binds both the vertex array and the vertex buffer of slot i
func (bs *BufferSet) Bind(i int) {
	bs.BindArray(i)
	bs.BindVertexStore(i)
}

func (bs *BufferSet) BindArray(i int) {

	bs.checkSlot(i)

	bs.dev.BindVertexArray(bs.slots[i].VaoId)
	bs.bound.VaoId = bs.slots[i].VaoId
}

func (bs *BufferSet) BindVertexStore(i int) {

	bs.checkSlot(i)

	bs.dev.BindBuffer(gpu.BufferTarget_Array, bs.slots[i].VboId)
	bs.bound.VboId = bs.slots[i].VboId
}

// EnableAttributes enables the given vertex attribute indices on the vertex array of slot i
func (bs *BufferSet) EnableAttributes(i int, attribs ...uint32) {

	bs.BindArray(i)
	for _, a := range attribs {
		bs.dev.EnableVertexAttribArray(a)
	}
}

// DefineVertexLayout declares the interleaved float layout of slot i (e.g. {3,4,2} for position/color/uv).
//
// If initialData is not empty it is uploaded and both size and capacity become its byte size,
// otherwise reserveCount vertices worth of empty storage is allocated and size is zero.
func (bs *BufferSet) DefineVertexLayout(i int, attribSizes []int32, usage gpu.BufUsage, reserveCount int, initialData []float32) {

	assert.T(len(attribSizes) > 0, "DefineVertexLayout of slot %d needs at least one attribute", i)
	assert.T(reserveCount >= 0, "DefineVertexLayout of slot %d got negative reserve count %d", i, reserveCount)

	bs.Bind(i)

	s := &bs.slots[i]
	s.Layout = NewLayout(attribSizes...)

	for j := 0; j < len(s.Layout.Elements); j++ {
		e := &s.Layout.Elements[j]
		bs.dev.VertexAttribPointer(uint32(j), e.CompCount(), s.Layout.Stride, e.Offset)
	}

	if len(initialData) > 0 {
		sizeBytes := len(initialData) * 4
		s.VertexInfo = BufferInfo{Capacity: sizeBytes, Size: sizeBytes, Usage: usage}
		bs.dev.BufferDataFloat32(gpu.BufferTarget_Array, sizeBytes, initialData, usage)
		return
	}

	s.VertexInfo = BufferInfo{Capacity: reserveCount * int(s.Layout.Stride), Size: 0, Usage: usage}
	bs.dev.BufferDataFloat32(gpu.BufferTarget_Array, s.VertexInfo.Capacity, nil, usage)
}

// SetIndexData replaces the index data of slot i.
//
// Uploading the same number of indices as last time is a sub-range write. Any other size, or forceResize,
// reallocates the buffer with room for at least MinIndexBufCount indices. Capacity only shrinks on forceResize.
func (bs *BufferSet) SetIndexData(i int, indices []uint32, usage gpu.BufUsage, forceResize bool) {

	bs.BindArray(i)

	s := &bs.slots[i]
	bs.dev.BindBuffer(gpu.BufferTarget_ElementArray, s.IboId)

	newSize := len(indices) * 4
	if !forceResize && newSize == s.IndexInfo.Size && s.IndexInfo.Capacity > 0 {
		bs.dev.BufferSubDataUint32(gpu.BufferTarget_ElementArray, 0, indices)
		return
	}

	newCap := max(newSize, MinIndexBufCount*4)
	if !forceResize {
		newCap = max(newCap, s.IndexInfo.Capacity)
	}

	bs.dev.BufferDataUint32(gpu.BufferTarget_ElementArray, newCap, indices, usage)
	s.IndexInfo = BufferInfo{Capacity: newCap, Size: newSize, Usage: usage}
}

// SetVertexData replaces the vertex data of slot i. Storage is only reallocated if forceResize is set or
// the data doesn't fit, in which case capacity becomes exactly the data size.
func (bs *BufferSet) SetVertexData(i int, data []float32, forceResize bool) {

	bs.BindVertexStore(i)

	s := &bs.slots[i]
	newSize := len(data) * 4

	if forceResize || newSize > s.VertexInfo.Capacity {
		bs.dev.BufferDataFloat32(gpu.BufferTarget_Array, newSize, data, s.VertexInfo.Usage)
		s.VertexInfo.Capacity = newSize
		s.VertexInfo.Size = newSize
		return
	}

	bs.dev.BufferSubDataFloat32(gpu.BufferTarget_Array, 0, data)
	s.VertexInfo.Size = newSize
}

// AppendVertexData writes data right after the used part of slot i's vertex buffer.
//
// It never grows the buffer: if the data doesn't fit a *gpuerr.CapacityExhaustedError is returned
// and nothing is written.
func (bs *BufferSet) AppendVertexData(i int, data []float32) error {

	bs.checkSlot(i)

	s := &bs.slots[i]
	addedSize := len(data) * 4

	if s.VertexInfo.Size+addedSize > s.VertexInfo.Capacity {
		return &gpuerr.CapacityExhaustedError{
			Slot:     i,
			Size:     s.VertexInfo.Size,
			Added:    addedSize,
			Capacity: s.VertexInfo.Capacity,
		}
	}

	if addedSize == 0 {
		return nil
	}

	bs.BindVertexStore(i)
	bs.dev.BufferSubDataFloat32(gpu.BufferTarget_Array, s.VertexInfo.Size, data)
	s.VertexInfo.Size += addedSize

	assert.T(s.VertexInfo.Size <= s.VertexInfo.Capacity, "Vertex size %d of slot %d is over capacity %d", s.VertexInfo.Size, i, s.VertexInfo.Capacity)
	return nil
}

// ResetVertexSize marks slot i's vertex buffer as empty. Capacity and GPU contents are untouched.
func (bs *BufferSet) ResetVertexSize(i int) {
	bs.checkSlot(i)
	bs.slots[i].VertexInfo.Size = 0
}

// Destroy deletes all GPU resources of the set. Calling it more than once is a no-op.
func (bs *BufferSet) Destroy() {

	if bs.destroyed {
		return
	}
	bs.destroyed = true

	vaos := make([]uint32, len(bs.slots))
	bufs := make([]uint32, 0, len(bs.slots)*2)
	for i := 0; i < len(bs.slots); i++ {
		vaos[i] = bs.slots[i].VaoId
		bufs = append(bufs, bs.slots[i].VboId, bs.slots[i].IboId)
	}

	bs.dev.BindVertexArray(0)
	bs.dev.DeleteVertexArrays(vaos)
	bs.dev.DeleteBuffers(bufs)

	bs.bound = Binding{}
	bs.slots = nil
}

func hasZeroId(ids []uint32) bool {

	for _, id := range ids {
		if id == 0 {
			return true
		}
	}

	return false
}

func nonZeroIds(ids []uint32) []uint32 {

	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if id != 0 {
			out = append(out, id)
		}
	}

	return out
}
