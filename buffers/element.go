package buffers

import (
	"github.com/voiengine/voi/assert"
)

// Element is one float attribute of an interleaved vertex (e.g. a Vec3 position at an offset of 0 bytes)
type Element struct {
	Offset int
	ElementType
}

// ElementType is the type of an element that makes up a vertex (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeFloat32
	DataTypeVec2
	DataTypeVec3
	DataTypeVec4
)

// ElementTypeForCompCount returns the float element type with the given number of components (1 to 4)
func ElementTypeForCompCount(compCount int32) ElementType {

	switch compCount {
	case 1:
		return DataTypeFloat32
	case 2:
		return DataTypeVec2
	case 3:
		return DataTypeVec3
	case 4:
		return DataTypeVec4
	default:
		assert.T(false, "Vertex attributes must have 1 to 4 components, but got '%d'", compCount)
		return DataTypeUnknown
	}
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeFloat32:
		return 1
	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// Size returns the total size in bytes (e.g. for vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {
	return dt.CompCount() * 4
}

func (dt ElementType) String() string {

	switch dt {
	case DataTypeFloat32:
		return "float32"
	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"

	default:
		return "Unknown"
	}
}

// Layout is an interleaved vertex layout. Offsets and Stride are in bytes.
type Layout struct {
	Elements []Element
	Stride   int32
}

// NewLayout builds an interleaved layout from per-attribute component counts (e.g. {3,4,2} for position/color/uv)
func NewLayout(attribSizes ...int32) Layout {

	l := Layout{
		Elements: make([]Element, len(attribSizes)),
	}

	for i := 0; i < len(attribSizes); i++ {

		l.Elements[i] = Element{
			Offset:      int(l.Stride),
			ElementType: ElementTypeForCompCount(attribSizes[i]),
		}

		l.Stride += l.Elements[i].Size()
	}

	return l
}

// FloatsPerVertex returns the stride in float32s
func (l *Layout) FloatsPerVertex() int {
	return int(l.Stride / 4)
}
