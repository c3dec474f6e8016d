package shaders

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/voiengine/voi/logging"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return gl.GEOMETRY_SHADER

	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d'\n", s)
		return 0
	}
}

// String returns the tag used for s in combined sources
func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

func ShaderTypeFromTag(tag string) ShaderType {

	switch tag {
	case "vertex":
		return ShaderType_Vertex
	case "fragment":
		return ShaderType_Fragment
	case "geometry":
		return ShaderType_Geometry
	default:
		return ShaderType_Unknown
	}
}
