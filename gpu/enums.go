package gpu

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	//Buffer is set only once and used many times
	BufUsage_Static_Draw
	//Buffer is changed a lot and used many times
	BufUsage_Dynamic_Draw
	//Buffer is set only once and used by the GPU at most a few times
	BufUsage_Stream_Draw

	BufUsage_Static_Read
	BufUsage_Dynamic_Read
	BufUsage_Stream_Read

	BufUsage_Static_Copy
	BufUsage_Dynamic_Copy
	BufUsage_Stream_Copy
)

func (b BufUsage) String() string {

	switch b {
	case BufUsage_Static_Draw:
		return "StaticDraw"
	case BufUsage_Dynamic_Draw:
		return "DynamicDraw"
	case BufUsage_Stream_Draw:
		return "StreamDraw"
	case BufUsage_Static_Read:
		return "StaticRead"
	case BufUsage_Dynamic_Read:
		return "DynamicRead"
	case BufUsage_Stream_Read:
		return "StreamRead"
	case BufUsage_Static_Copy:
		return "StaticCopy"
	case BufUsage_Dynamic_Copy:
		return "DynamicCopy"
	case BufUsage_Stream_Copy:
		return "StreamCopy"
	default:
		return "Unknown"
	}
}

type BufferTarget int32

const (
	BufferTarget_Unknown BufferTarget = iota
	BufferTarget_Array
	BufferTarget_ElementArray
)

type PrimitiveMode int32

const (
	PrimitiveMode_Triangles PrimitiveMode = iota
	PrimitiveMode_TriangleStrip
	PrimitiveMode_TriangleFan
	PrimitiveMode_Lines
	PrimitiveMode_LineStrip
	PrimitiveMode_LineLoop
	PrimitiveMode_Points
)

// PixelFormat is the layout of the pixel data handed to TexImage2D. Textures are always stored as RGBA.
type PixelFormat int32

const (
	PixelFormat_Unknown PixelFormat = iota
	PixelFormat_RGBA
	PixelFormat_RGB
	PixelFormat_BGRA
	PixelFormat_Red
)

// Channels returns the bytes per pixel of the format
func (p PixelFormat) Channels() int {

	switch p {
	case PixelFormat_RGBA:
		fallthrough
	case PixelFormat_BGRA:
		return 4
	case PixelFormat_RGB:
		return 3
	case PixelFormat_Red:
		return 1
	default:
		return 0
	}
}

type TextureFilter int32

const (
	TextureFilter_Linear TextureFilter = iota
	TextureFilter_Nearest
	TextureFilter_LinearMipmapLinear
)

type TextureWrap int32

const (
	TextureWrap_Repeat TextureWrap = iota
	TextureWrap_ClampToEdge
	TextureWrap_MirroredRepeat
)

type ClearMask uint32

const (
	ClearMask_Color ClearMask = 1 << iota
	ClearMask_Depth
	ClearMask_Stencil
)

func (c ClearMask) Has(flags ClearMask) bool {
	return c&flags == flags
}
