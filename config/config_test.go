package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voiengine/voi/config"
)

func writeFile(t *testing.T, name, content string) string {

	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {

	c := config.Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, "VoiOGLEngine", c.Window.Title)
	assert.Equal(t, int32(800), c.Window.Width)
	assert.Equal(t, int32(600), c.Window.Height)
	assert.Equal(t, [4]float32{0.2, 0.3, 0.3, 1}, c.Render.ClearColor)
	assert.True(t, c.Render.SolidShader.IsBuiltin())
}

func TestLoadTOML(t *testing.T) {

	path := writeFile(t, "voi.toml", `
[window]
title = "Demo"
width = 1280
backend = "glfw"

[render]
clear_color = [0.0, 0.0, 0.0, 1.0]
texture_reserve = 4000

[render.texture_shader]
combined = "res/texture.glsl"
`)

	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Demo", c.Window.Title)
	assert.Equal(t, int32(1280), c.Window.Width)
	assert.Equal(t, int32(600), c.Window.Height)
	assert.Equal(t, config.Backend_GLFW, c.Window.Backend)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, c.Render.ClearColor)
	assert.Equal(t, 1000, c.Render.SolidReserve)
	assert.Equal(t, 4000, c.Render.TextureReserve)
	assert.Equal(t, "res/texture.glsl", c.Render.TextureShader.Combined)
}

func TestLoadYAML(t *testing.T) {

	path := writeFile(t, "voi.yml", `
window:
  height: 720
  vsync: true
render:
  depth_test: false
  solid_shader:
    vertex: solid.vert
    fragment: solid.frag
`)

	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int32(800), c.Window.Width)
	assert.Equal(t, int32(720), c.Window.Height)
	assert.True(t, c.Window.VSync)
	assert.False(t, c.Render.DepthTest)
	assert.Equal(t, "solid.vert", c.Render.SolidShader.Vertex)
	assert.False(t, c.Render.SolidShader.IsBuiltin())
}

func TestLoadEmptyYAML(t *testing.T) {

	c, err := config.Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestLoadErrors(t *testing.T) {

	tests := map[string]struct{ name, content string }{
		"unknown extension": {"voi.json", "{}"},
		"unknown field":     {"voi.toml", "[window]\nfullscreen = true\n"},
		"bad backend":       {"voi.toml", "[window]\nbackend = \"vulkan\"\n"},
		"zero width":        {"voi.yaml", "window:\n  width: 0\n"},
		"negative reserve":  {"voi.yaml", "render:\n  solid_reserve: -1\n"},
		"half a shader":     {"voi.yaml", "render:\n  solid_shader:\n    vertex: a.vert\n"},
		"both shader kinds": {"voi.toml", "[render.solid_shader]\ncombined = \"a.glsl\"\nvertex = \"a.vert\"\nfragment = \"a.frag\"\n"},
		"bad toml":          {"voi.toml", "[window\n"},
	}

	for name, tc := range tests {
		_, err := config.Load(writeFile(t, tc.name, tc.content))
		assert.Error(t, err, name)
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestTOMLRoundTrip(t *testing.T) {

	c := config.Default()
	c.Window.Title = "Round"

	data, err := c.WriteTOML()
	require.NoError(t, err)

	got, err := config.ParseTOML(data)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
