// Package gputest provides a gpu.Device that runs without a graphics context.
//
// It hands out increasing ids, keeps buffer and texture contents in memory, follows the binding
// rules of OpenGL (the element buffer binding belongs to the bound vertex array) and records every
// call, so tests can check both resulting GPU state and the exact call sequence.
package gputest

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/voiengine/voi/gpu"
)

var _ gpu.Device = &Device{}

type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

type Buffer struct {
	Data  []byte
	Usage gpu.BufUsage
	// Reallocs counts BufferData calls, SubWrites counts BufferSubData calls
	Reallocs  int
	SubWrites int
}

type VertexArray struct {
	ElementBuffer uint32
	Attribs       map[uint32]Attrib
	Enabled       map[uint32]bool
}

type Attrib struct {
	CompCount   int32
	StrideBytes int32
	OffsetBytes int
	Buffer      uint32
}

type Texture struct {
	Width, Height int32
	Format        gpu.PixelFormat
	Pixels        []byte
	Mipmapped     bool
	Wrap          gpu.TextureWrap
	MinFilter     gpu.TextureFilter
	MagFilter     gpu.TextureFilter
}

// DrawCall is a snapshot of the state an indexed draw consumed
type DrawCall struct {
	Mode     gpu.PrimitiveMode
	Count    int32
	Vao      uint32
	Program  uint32
	Elements []uint32
	Textures map[uint32]uint32
}

type Device struct {
	Calls  []Call
	Errors []string
	Draws  []DrawCall

	Buffers      map[uint32]*Buffer
	VertexArrays map[uint32]*VertexArray
	Textures     map[uint32]*Texture
	Programs     map[uint32]bool

	BoundVao         uint32
	BoundArrayBuffer uint32
	BoundProgram     uint32
	ActiveUnit       uint32
	UnitTextures     map[uint32]uint32

	ClearColorValue [4]float32
	Clears          []gpu.ClearMask
	ViewportValue   [4]int32
	DepthTest       bool

	// FailGen makes every Gen* call return zero ids
	FailGen bool

	lastId uint32
}

func NewDevice() *Device {
	return &Device{
		Buffers:      map[uint32]*Buffer{},
		VertexArrays: map[uint32]*VertexArray{},
		Textures:     map[uint32]*Texture{},
		Programs:     map[uint32]bool{},
		UnitTextures: map[uint32]uint32{},
	}
}

// NewProgram registers a program id that IsProgram will report as valid
func (d *Device) NewProgram() uint32 {
	d.lastId++
	d.Programs[d.lastId] = true
	return d.lastId
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

// CallCount returns how many times the named method was called
func (d *Device) CallCount(name string) int {

	count := 0
	for i := 0; i < len(d.Calls); i++ {
		if d.Calls[i].Name == name {
			count++
		}
	}

	return count
}

// ResetCalls forgets recorded calls and draws but keeps all GPU state
func (d *Device) ResetCalls() {
	d.Calls = d.Calls[:0]
	d.Draws = d.Draws[:0]
}

func (d *Device) gen(ids []uint32) {

	for i := range ids {

		if d.FailGen {
			ids[i] = 0
			continue
		}

		d.lastId++
		ids[i] = d.lastId
	}
}

func (d *Device) GenVertexArrays(ids []uint32) {

	d.record("GenVertexArrays", len(ids))
	d.gen(ids)
	for _, id := range ids {
		if id != 0 {
			d.VertexArrays[id] = &VertexArray{Attribs: map[uint32]Attrib{}, Enabled: map[uint32]bool{}}
		}
	}
}

func (d *Device) GenBuffers(ids []uint32) {

	d.record("GenBuffers", len(ids))
	d.gen(ids)
	for _, id := range ids {
		if id != 0 {
			d.Buffers[id] = &Buffer{}
		}
	}
}

func (d *Device) GenTextures(ids []uint32) {

	d.record("GenTextures", len(ids))
	d.gen(ids)
	for _, id := range ids {
		if id != 0 {
			d.Textures[id] = &Texture{}
		}
	}
}

func (d *Device) DeleteVertexArrays(ids []uint32) {

	d.record("DeleteVertexArrays", len(ids))
	for _, id := range ids {
		delete(d.VertexArrays, id)
	}
}

func (d *Device) DeleteBuffers(ids []uint32) {

	d.record("DeleteBuffers", len(ids))
	for _, id := range ids {
		delete(d.Buffers, id)
	}
}

func (d *Device) DeleteTextures(ids []uint32) {

	d.record("DeleteTextures", len(ids))
	for _, id := range ids {
		delete(d.Textures, id)
	}
}

func (d *Device) DeleteProgram(id uint32) {
	d.record("DeleteProgram", id)
	delete(d.Programs, id)
}

func (d *Device) BindVertexArray(id uint32) {

	d.record("BindVertexArray", id)
	if id != 0 && d.VertexArrays[id] == nil {
		d.errorf("BindVertexArray: unknown vertex array %d", id)
	}

	d.BoundVao = id
}

func (d *Device) BindBuffer(target gpu.BufferTarget, id uint32) {

	d.record("BindBuffer", target, id)
	if id != 0 && d.Buffers[id] == nil {
		d.errorf("BindBuffer: unknown buffer %d", id)
	}

	switch target {
	case gpu.BufferTarget_Array:
		d.BoundArrayBuffer = id
	case gpu.BufferTarget_ElementArray:
		vao := d.VertexArrays[d.BoundVao]
		if vao == nil {
			d.errorf("BindBuffer: element buffer %d bound with no vertex array bound", id)
			return
		}
		vao.ElementBuffer = id
	default:
		d.errorf("BindBuffer: unknown target %d", target)
	}
}

// BoundElementBuffer returns the element buffer of the bound vertex array
func (d *Device) BoundElementBuffer() uint32 {

	vao := d.VertexArrays[d.BoundVao]
	if vao == nil {
		return 0
	}

	return vao.ElementBuffer
}

func (d *Device) targetBuffer(fn string, target gpu.BufferTarget) *Buffer {

	var id uint32
	switch target {
	case gpu.BufferTarget_Array:
		id = d.BoundArrayBuffer
	case gpu.BufferTarget_ElementArray:
		id = d.BoundElementBuffer()
	}

	b := d.Buffers[id]
	if b == nil {
		d.errorf("%s: no buffer bound to target %d", fn, target)
	}

	return b
}

func (d *Device) bufferData(fn string, target gpu.BufferTarget, sizeBytes int, data []byte, usage gpu.BufUsage) {

	b := d.targetBuffer(fn, target)
	if b == nil {
		return
	}

	if len(data) > sizeBytes {
		d.errorf("%s: %d bytes of data for a %d byte buffer", fn, len(data), sizeBytes)
		data = data[:sizeBytes]
	}

	b.Data = make([]byte, sizeBytes)
	copy(b.Data, data)
	b.Usage = usage
	b.Reallocs++
}

func (d *Device) bufferSubData(fn string, target gpu.BufferTarget, offsetBytes int, data []byte) {

	b := d.targetBuffer(fn, target)
	if b == nil {
		return
	}

	if offsetBytes < 0 || offsetBytes+len(data) > len(b.Data) {
		d.errorf("%s: write of %d bytes at offset %d overflows %d byte buffer", fn, len(data), offsetBytes, len(b.Data))
		return
	}

	copy(b.Data[offsetBytes:], data)
	b.SubWrites++
}

func (d *Device) BufferDataFloat32(target gpu.BufferTarget, sizeBytes int, data []float32, usage gpu.BufUsage) {
	d.record("BufferDataFloat32", target, sizeBytes, len(data), usage)
	d.bufferData("BufferDataFloat32", target, sizeBytes, float32sToBytes(data), usage)
}

func (d *Device) BufferDataUint32(target gpu.BufferTarget, sizeBytes int, data []uint32, usage gpu.BufUsage) {
	d.record("BufferDataUint32", target, sizeBytes, len(data), usage)
	d.bufferData("BufferDataUint32", target, sizeBytes, uint32sToBytes(data), usage)
}

func (d *Device) BufferSubDataFloat32(target gpu.BufferTarget, offsetBytes int, data []float32) {
	d.record("BufferSubDataFloat32", target, offsetBytes, len(data))
	d.bufferSubData("BufferSubDataFloat32", target, offsetBytes, float32sToBytes(data))
}

func (d *Device) BufferSubDataUint32(target gpu.BufferTarget, offsetBytes int, data []uint32) {
	d.record("BufferSubDataUint32", target, offsetBytes, len(data))
	d.bufferSubData("BufferSubDataUint32", target, offsetBytes, uint32sToBytes(data))
}

func (d *Device) VertexAttribPointer(index uint32, compCount int32, strideBytes int32, offsetBytes int) {

	d.record("VertexAttribPointer", index, compCount, strideBytes, offsetBytes)

	vao := d.VertexArrays[d.BoundVao]
	if vao == nil {
		d.errorf("VertexAttribPointer: no vertex array bound")
		return
	}

	if d.BoundArrayBuffer == 0 {
		d.errorf("VertexAttribPointer: no array buffer bound")
	}

	vao.Attribs[index] = Attrib{CompCount: compCount, StrideBytes: strideBytes, OffsetBytes: offsetBytes, Buffer: d.BoundArrayBuffer}
}

func (d *Device) EnableVertexAttribArray(index uint32) {

	d.record("EnableVertexAttribArray", index)

	vao := d.VertexArrays[d.BoundVao]
	if vao == nil {
		d.errorf("EnableVertexAttribArray: no vertex array bound")
		return
	}

	vao.Enabled[index] = true
}

func (d *Device) UseProgram(id uint32) {
	d.record("UseProgram", id)
	d.BoundProgram = id
}

func (d *Device) IsProgram(id uint32) bool {
	return d.Programs[id]
}

func (d *Device) ActiveTexture(unit uint32) {

	d.record("ActiveTexture", unit)
	if unit >= gpu.MaxTextureUnits {
		d.errorf("ActiveTexture: unit %d out of range", unit)
	}

	d.ActiveUnit = unit
}

func (d *Device) BindTexture2D(id uint32) {

	d.record("BindTexture2D", id)
	if id != 0 && d.Textures[id] == nil {
		d.errorf("BindTexture2D: unknown texture %d", id)
	}

	d.UnitTextures[d.ActiveUnit] = id
}

func (d *Device) boundTexture(fn string) *Texture {

	t := d.Textures[d.UnitTextures[d.ActiveUnit]]
	if t == nil {
		d.errorf("%s: no texture bound to unit %d", fn, d.ActiveUnit)
	}

	return t
}

func (d *Device) TexParams2D(wrap gpu.TextureWrap, minFilter, magFilter gpu.TextureFilter) {

	d.record("TexParams2D", wrap, minFilter, magFilter)
	if t := d.boundTexture("TexParams2D"); t != nil {
		t.Wrap = wrap
		t.MinFilter = minFilter
		t.MagFilter = magFilter
	}
}

func (d *Device) TexImage2D(width, height int32, format gpu.PixelFormat, pixels []byte) {

	d.record("TexImage2D", width, height, format, len(pixels))

	t := d.boundTexture("TexImage2D")
	if t == nil {
		return
	}

	if pixels != nil && len(pixels) < int(width*height)*format.Channels() {
		d.errorf("TexImage2D: %d bytes is too small for %dx%d", len(pixels), width, height)
	}

	t.Width = width
	t.Height = height
	t.Format = format
	t.Pixels = append([]byte(nil), pixels...)
	t.Mipmapped = false
}

func (d *Device) GenerateMipmap2D() {

	d.record("GenerateMipmap2D")
	if t := d.boundTexture("GenerateMipmap2D"); t != nil {
		t.Mipmapped = true
	}
}

func (d *Device) DrawElements(mode gpu.PrimitiveMode, count int32) {

	d.record("DrawElements", mode, count)

	vao := d.VertexArrays[d.BoundVao]
	if vao == nil {
		d.errorf("DrawElements: no vertex array bound")
		return
	}

	if d.BoundProgram == 0 {
		d.errorf("DrawElements: no program in use")
	}

	dc := DrawCall{
		Mode:     mode,
		Count:    count,
		Vao:      d.BoundVao,
		Program:  d.BoundProgram,
		Textures: map[uint32]uint32{},
	}

	if b := d.Buffers[vao.ElementBuffer]; b != nil {

		elems := bytesToUint32s(b.Data)
		if int(count) > len(elems) {
			d.errorf("DrawElements: %d indices requested but element buffer holds %d", count, len(elems))
			count = int32(len(elems))
		}

		dc.Elements = elems[:count]

	} else if count > 0 {
		d.errorf("DrawElements: bound vertex array has no element buffer")
	}

	for unit, tex := range d.UnitTextures {
		dc.Textures[unit] = tex
	}

	d.Draws = append(d.Draws, dc)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
	d.ClearColorValue = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask gpu.ClearMask) {
	d.record("Clear", mask)
	d.Clears = append(d.Clears, mask)
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
	d.ViewportValue = [4]int32{x, y, width, height}
}

func (d *Device) SetDepthTest(enabled bool) {
	d.record("SetDepthTest", enabled)
	d.DepthTest = enabled
}

// BufferFloats returns the contents of a buffer as float32 values
func (d *Device) BufferFloats(id uint32) []float32 {

	b := d.Buffers[id]
	if b == nil {
		return nil
	}

	out := make([]float32, len(b.Data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b.Data[i*4:]))
	}

	return out
}

// BufferUints returns the contents of a buffer as uint32 values
func (d *Device) BufferUints(id uint32) []uint32 {

	b := d.Buffers[id]
	if b == nil {
		return nil
	}

	return bytesToUint32s(b.Data)
}

func float32sToBytes(data []float32) []byte {

	out := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}

	return out
}

func uint32sToBytes(data []uint32) []byte {

	out := make([]byte, len(data)*4)
	for i, u := range data {
		binary.LittleEndian.PutUint32(out[i*4:], u)
	}

	return out
}

func bytesToUint32s(data []byte) []uint32 {

	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	return out
}
