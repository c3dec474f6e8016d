package shaders

import (
	"bytes"

	"github.com/pkg/errors"
)

const CombinedTagPrefix = "//shader:"

// Stage is the source of one shader stage
type Stage struct {
	Type ShaderType
	Src  []byte
}

// SplitCombinedSource splits a combined source into its stages. Each stage starts with a line like
// '//shader:vertex' and runs until the next tag. A vertex and a fragment stage are required.
func SplitCombinedSource(src []byte) ([]Stage, error) {

	parts := bytes.Split(src, []byte(CombinedTagPrefix))
	if len(parts) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	stages := make([]Stage, 0, len(parts)-1)
	seen := map[ShaderType]bool{}

	// Anything before the first tag is ignored
	for _, part := range parts[1:] {

		tag, body, _ := bytes.Cut(part, []byte("\n"))
		shdrType := ShaderTypeFromTag(string(bytes.TrimSpace(tag)))
		if shdrType == ShaderType_Unknown {
			return nil, errors.Errorf("unknown shader type '%s'. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'", bytes.TrimSpace(tag))
		}

		if seen[shdrType] {
			return nil, errors.Errorf("combined shader has more than one %s stage", shdrType)
		}
		seen[shdrType] = true

		stages = append(stages, Stage{Type: shdrType, Src: body})
	}

	if !seen[ShaderType_Vertex] {
		return nil, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if !seen[ShaderType_Fragment] {
		return nil, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return stages, nil
}
