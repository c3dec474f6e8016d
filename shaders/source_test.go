package shaders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voiengine/voi/shaders"
)

func TestSplitCombinedSource(t *testing.T) {

	src := []byte("// header comment\n//shader:vertex\nvoid main() {}\n//shader:fragment\nvoid main() { frag(); }\n")

	stages, err := shaders.SplitCombinedSource(src)
	require.NoError(t, err)
	require.Len(t, stages, 2)

	assert.Equal(t, shaders.ShaderType_Vertex, stages[0].Type)
	assert.Equal(t, "void main() {}\n", string(stages[0].Src))
	assert.Equal(t, shaders.ShaderType_Fragment, stages[1].Type)
	assert.Equal(t, "void main() { frag(); }\n", string(stages[1].Src))
}

func TestSplitCombinedSourceErrors(t *testing.T) {

	tests := map[string]string{
		"no tags":        "void main() {}",
		"no fragment":    "//shader:vertex\nvoid main() {}",
		"no vertex":      "//shader:fragment\nvoid main() {}",
		"unknown stage":  "//shader:vertex\n//shader:tessellation\n//shader:fragment\n",
		"repeated stage": "//shader:vertex\n//shader:vertex\n//shader:fragment\n",
	}

	for name, src := range tests {
		_, err := shaders.SplitCombinedSource([]byte(src))
		assert.Error(t, err, name)
	}
}

func TestSplitWithGeometry(t *testing.T) {

	stages, err := shaders.SplitCombinedSource([]byte("//shader:vertex\na\n//shader:geometry\nb\n//shader:fragment\nc\n"))
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, shaders.ShaderType_Geometry, stages[1].Type)
}

func TestBuiltinSources(t *testing.T) {

	for _, src := range [][]byte{shaders.SolidFillSrc, shaders.SingleTextureSrc} {
		stages, err := shaders.SplitCombinedSource(src)
		require.NoError(t, err)
		assert.Len(t, stages, 2)
	}

	assert.Contains(t, string(shaders.SingleTextureSrc), "uniform sampler2D "+shaders.TextureSamplerUniform)
}

func TestShaderTypeTags(t *testing.T) {

	for _, st := range []shaders.ShaderType{shaders.ShaderType_Vertex, shaders.ShaderType_Fragment, shaders.ShaderType_Geometry} {
		assert.Equal(t, st, shaders.ShaderTypeFromTag(st.String()))
	}

	assert.Equal(t, shaders.ShaderType_Unknown, shaders.ShaderTypeFromTag("compute"))
}
