// Package gpugl implements gpu.Device on top of OpenGL 4.1 core.
package gpugl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/voiengine/voi/assert"
	"github.com/voiengine/voi/gpu"
	"github.com/voiengine/voi/gpuerr"
	"github.com/voiengine/voi/logging"
)

var _ gpu.Device = &GLDevice{}

type GLDevice struct{}

// Init loads the OpenGL function pointers. A context must be current on the calling thread.
func Init() (*GLDevice, error) {

	if err := gl.Init(); err != nil {
		return nil, gpuerr.ResourceCreation("opengl function loader", err)
	}

	logging.InfoLog.Printf("OpenGL version: %s; renderer: %s\n", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthFunc(gl.LEQUAL)

	return &GLDevice{}, nil
}

func (d *GLDevice) GenVertexArrays(ids []uint32) {
	if len(ids) > 0 {
		gl.GenVertexArrays(int32(len(ids)), &ids[0])
	}
}

func (d *GLDevice) GenBuffers(ids []uint32) {
	if len(ids) > 0 {
		gl.GenBuffers(int32(len(ids)), &ids[0])
	}
}

func (d *GLDevice) GenTextures(ids []uint32) {
	if len(ids) > 0 {
		gl.GenTextures(int32(len(ids)), &ids[0])
	}
}

func (d *GLDevice) DeleteVertexArrays(ids []uint32) {
	if len(ids) > 0 {
		gl.DeleteVertexArrays(int32(len(ids)), &ids[0])
	}
}

func (d *GLDevice) DeleteBuffers(ids []uint32) {
	if len(ids) > 0 {
		gl.DeleteBuffers(int32(len(ids)), &ids[0])
	}
}

func (d *GLDevice) DeleteTextures(ids []uint32) {
	if len(ids) > 0 {
		gl.DeleteTextures(int32(len(ids)), &ids[0])
	}
}

func (d *GLDevice) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (d *GLDevice) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *GLDevice) BindBuffer(target gpu.BufferTarget, id uint32) {
	gl.BindBuffer(bufferTargetToGL(target), id)
}

func (d *GLDevice) BufferDataFloat32(target gpu.BufferTarget, sizeBytes int, data []float32, usage gpu.BufUsage) {

	glTarget := bufferTargetToGL(target)

	// glBufferData reads sizeBytes from the pointer, so shorter data is allocated first and written after
	if len(data)*4 < sizeBytes || len(data) == 0 {
		gl.BufferData(glTarget, sizeBytes, nil, bufUsageToGL(usage))
		if len(data) > 0 {
			gl.BufferSubData(glTarget, 0, len(data)*4, gl.Ptr(&data[0]))
		}
		return
	}

	gl.BufferData(glTarget, sizeBytes, gl.Ptr(&data[0]), bufUsageToGL(usage))
}

func (d *GLDevice) BufferDataUint32(target gpu.BufferTarget, sizeBytes int, data []uint32, usage gpu.BufUsage) {

	glTarget := bufferTargetToGL(target)

	if len(data)*4 < sizeBytes || len(data) == 0 {
		gl.BufferData(glTarget, sizeBytes, nil, bufUsageToGL(usage))
		if len(data) > 0 {
			gl.BufferSubData(glTarget, 0, len(data)*4, gl.Ptr(&data[0]))
		}
		return
	}

	gl.BufferData(glTarget, sizeBytes, gl.Ptr(&data[0]), bufUsageToGL(usage))
}

func (d *GLDevice) BufferSubDataFloat32(target gpu.BufferTarget, offsetBytes int, data []float32) {
	if len(data) > 0 {
		gl.BufferSubData(bufferTargetToGL(target), offsetBytes, len(data)*4, gl.Ptr(&data[0]))
	}
}

func (d *GLDevice) BufferSubDataUint32(target gpu.BufferTarget, offsetBytes int, data []uint32) {
	if len(data) > 0 {
		gl.BufferSubData(bufferTargetToGL(target), offsetBytes, len(data)*4, gl.Ptr(&data[0]))
	}
}

func (d *GLDevice) VertexAttribPointer(index uint32, compCount int32, strideBytes int32, offsetBytes int) {
	gl.VertexAttribPointerWithOffset(index, compCount, gl.FLOAT, false, strideBytes, uintptr(offsetBytes))
}

func (d *GLDevice) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *GLDevice) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (d *GLDevice) IsProgram(id uint32) bool {
	return gl.IsProgram(id)
}

func (d *GLDevice) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *GLDevice) BindTexture2D(id uint32) {
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (d *GLDevice) TexParams2D(wrap gpu.TextureWrap, minFilter, magFilter gpu.TextureFilter) {

	glWrap := textureWrapToGL(wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, textureFilterToGL(minFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, textureFilterToGL(magFilter))
}

func (d *GLDevice) TexImage2D(width, height int32, format gpu.PixelFormat, pixels []byte) {

	// Rows of RGB/Red data are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	if len(pixels) == 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, pixelFormatToGL(format), gl.UNSIGNED_BYTE, nil)
		return
	}

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, pixelFormatToGL(format), gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
}

func (d *GLDevice) GenerateMipmap2D() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (d *GLDevice) DrawElements(mode gpu.PrimitiveMode, count int32) {
	gl.DrawElementsWithOffset(primitiveModeToGL(mode), count, gl.UNSIGNED_INT, 0)
}

func (d *GLDevice) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *GLDevice) Clear(mask gpu.ClearMask) {

	var glMask uint32
	if mask.Has(gpu.ClearMask_Color) {
		glMask |= gl.COLOR_BUFFER_BIT
	}

	if mask.Has(gpu.ClearMask_Depth) {
		glMask |= gl.DEPTH_BUFFER_BIT
	}

	if mask.Has(gpu.ClearMask_Stencil) {
		glMask |= gl.STENCIL_BUFFER_BIT
	}

	gl.Clear(glMask)
}

func (d *GLDevice) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *GLDevice) SetDepthTest(enabled bool) {

	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func bufUsageToGL(b gpu.BufUsage) uint32 {

	switch b {
	case gpu.BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case gpu.BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case gpu.BufUsage_Stream_Draw:
		return gl.STREAM_DRAW

	case gpu.BufUsage_Static_Read:
		return gl.STATIC_READ
	case gpu.BufUsage_Dynamic_Read:
		return gl.DYNAMIC_READ
	case gpu.BufUsage_Stream_Read:
		return gl.STREAM_READ

	case gpu.BufUsage_Static_Copy:
		return gl.STATIC_COPY
	case gpu.BufUsage_Dynamic_Copy:
		return gl.DYNAMIC_COPY
	case gpu.BufUsage_Stream_Copy:
		return gl.STREAM_COPY
	}

	assert.T(false, fmt.Sprintf("Unexpected BufUsage value '%v'", b))
	return 0
}

func bufferTargetToGL(t gpu.BufferTarget) uint32 {

	switch t {
	case gpu.BufferTarget_Array:
		return gl.ARRAY_BUFFER
	case gpu.BufferTarget_ElementArray:
		return gl.ELEMENT_ARRAY_BUFFER
	default:
		logging.ErrLog.Fatalf("Unknown buffer target '%d'\n", t)
		return 0
	}
}

func primitiveModeToGL(m gpu.PrimitiveMode) uint32 {

	switch m {
	case gpu.PrimitiveMode_Triangles:
		return gl.TRIANGLES
	case gpu.PrimitiveMode_TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gpu.PrimitiveMode_TriangleFan:
		return gl.TRIANGLE_FAN
	case gpu.PrimitiveMode_Lines:
		return gl.LINES
	case gpu.PrimitiveMode_LineStrip:
		return gl.LINE_STRIP
	case gpu.PrimitiveMode_LineLoop:
		return gl.LINE_LOOP
	case gpu.PrimitiveMode_Points:
		return gl.POINTS
	default:
		logging.ErrLog.Fatalf("Unknown primitive mode '%d'\n", m)
		return 0
	}
}

func pixelFormatToGL(p gpu.PixelFormat) uint32 {

	switch p {
	case gpu.PixelFormat_RGBA:
		return gl.RGBA
	case gpu.PixelFormat_RGB:
		return gl.RGB
	case gpu.PixelFormat_BGRA:
		return gl.BGRA
	case gpu.PixelFormat_Red:
		return gl.RED
	default:
		logging.ErrLog.Fatalf("Unknown pixel format '%d'\n", p)
		return 0
	}
}

func textureFilterToGL(f gpu.TextureFilter) int32 {

	switch f {
	case gpu.TextureFilter_Linear:
		return gl.LINEAR
	case gpu.TextureFilter_Nearest:
		return gl.NEAREST
	case gpu.TextureFilter_LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		logging.ErrLog.Fatalf("Unknown texture filter '%d'\n", f)
		return 0
	}
}

func textureWrapToGL(w gpu.TextureWrap) int32 {

	switch w {
	case gpu.TextureWrap_Repeat:
		return gl.REPEAT
	case gpu.TextureWrap_ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gpu.TextureWrap_MirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		logging.ErrLog.Fatalf("Unknown texture wrap '%d'\n", w)
		return 0
	}
}
