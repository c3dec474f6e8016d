// Package gpu is the narrow view of the graphics API that the buffer, batch and renderer packages are written against.
//
// Nothing here caches bound state: every Device call acts on whatever the previous Bind* call selected, so callers
// must bind immediately before use. The OpenGL implementation lives in gpu/gpugl.
package gpu

// Device is the set of graphics API operations used by the renderer. All calls must happen on the
// thread that owns the current graphics context.
type Device interface {
	GenVertexArrays(ids []uint32)
	GenBuffers(ids []uint32)
	GenTextures(ids []uint32)
	DeleteVertexArrays(ids []uint32)
	DeleteBuffers(ids []uint32)
	DeleteTextures(ids []uint32)
	DeleteProgram(id uint32)

	BindVertexArray(id uint32)
	BindBuffer(target BufferTarget, id uint32)

	// BufferDataFloat32 (re)allocates sizeBytes of storage for the buffer bound to target and fills the start
	// of it with data. len(data)*4 may be smaller than sizeBytes, in which case the rest is undefined.
	BufferDataFloat32(target BufferTarget, sizeBytes int, data []float32, usage BufUsage)
	BufferDataUint32(target BufferTarget, sizeBytes int, data []uint32, usage BufUsage)
	BufferSubDataFloat32(target BufferTarget, offsetBytes int, data []float32)
	BufferSubDataUint32(target BufferTarget, offsetBytes int, data []uint32)

	// VertexAttribPointer describes a float attribute of the bound vertex array, sourced from the bound array buffer
	VertexAttribPointer(index uint32, compCount int32, strideBytes int32, offsetBytes int)
	EnableVertexAttribArray(index uint32)

	UseProgram(id uint32)
	IsProgram(id uint32) bool

	ActiveTexture(unit uint32)
	BindTexture2D(id uint32)
	TexParams2D(wrap TextureWrap, minFilter, magFilter TextureFilter)
	TexImage2D(width, height int32, format PixelFormat, pixels []byte)
	GenerateMipmap2D()

	// DrawElements draws count uint32 indices of the element buffer of the bound vertex array
	DrawElements(mode PrimitiveMode, count int32)

	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)
	SetDepthTest(enabled bool)
}

// MaxTextureUnits is the number of texture units a draw batch can bind
const MaxTextureUnits = 32
