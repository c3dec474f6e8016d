package shaders

import (
	_ "embed"
)

var (
	//go:embed glsl/solid.glsl
	SolidFillSrc []byte

	// Samples 'tex0' and multiplies by the vertex color
	//go:embed glsl/texture.glsl
	SingleTextureSrc []byte
)

// TextureSamplerUniform is the sampler of SingleTextureSrc, it reads texture unit 0
const TextureSamplerUniform = "tex0"
