// Package config holds the window and renderer settings of an engine run. Files are TOML or YAML.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	Backend_SDL  = "sdl"
	Backend_GLFW = "glfw"
)

type Config struct {
	Window Window `toml:"window" yaml:"window"`
	Render Render `toml:"render" yaml:"render"`
}

type Window struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int32  `toml:"width" yaml:"width"`
	Height    int32  `toml:"height" yaml:"height"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
	VSync     bool   `toml:"vsync" yaml:"vsync"`
	// Backend is "sdl" or "glfw"
	Backend string `toml:"backend" yaml:"backend"`
}

type Render struct {
	ClearColor [4]float32 `toml:"clear_color" yaml:"clear_color"`
	DepthTest  bool       `toml:"depth_test" yaml:"depth_test"`
	// Reserves are vertices per batch
	SolidReserve   int `toml:"solid_reserve" yaml:"solid_reserve"`
	TextureReserve int `toml:"texture_reserve" yaml:"texture_reserve"`

	SolidShader   ShaderFiles `toml:"solid_shader" yaml:"solid_shader"`
	TextureShader ShaderFiles `toml:"texture_shader" yaml:"texture_shader"`
}

// ShaderFiles is either one combined source or a vertex and fragment pair. Empty means the built in shader.
type ShaderFiles struct {
	Combined string `toml:"combined,omitempty" yaml:"combined,omitempty"`
	Vertex   string `toml:"vertex,omitempty" yaml:"vertex,omitempty"`
	Fragment string `toml:"fragment,omitempty" yaml:"fragment,omitempty"`
}

func (s ShaderFiles) IsBuiltin() bool {
	return s.Combined == "" && s.Vertex == "" && s.Fragment == ""
}

func Default() Config {
	return Config{
		Window: Window{
			Title:     "VoiOGLEngine",
			Width:     800,
			Height:    600,
			Resizable: false,
			VSync:     false,
			Backend:   Backend_SDL,
		},
		Render: Render{
			ClearColor:     [4]float32{0.2, 0.3, 0.3, 1},
			DepthTest:      true,
			SolidReserve:   1000,
			TextureReserve: 1000,
		},
	}
}

// Load reads a .toml, .yaml or .yml file over the defaults and validates the result
func Load(path string) (Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}

	var c Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		c, err = ParseTOML(data)
	case ".yaml", ".yml":
		c, err = ParseYAML(data)
	default:
		return Config{}, errors.Errorf("unknown config file type '%s' of %s, expected .toml, .yaml or .yml", ext, path)
	}

	if err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}

	return c, c.Validate()
}

func ParseTOML(data []byte) (Config, error) {

	c := Default()
	err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&c)
	return c, err
}

func ParseYAML(data []byte) (Config, error) {

	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// An empty document leaves the defaults
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, err
	}

	return c, nil
}

func (c *Config) WriteTOML() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Window.Backend != Backend_SDL && c.Window.Backend != Backend_GLFW {
		return errors.Errorf("config: unknown window backend '%s', expected '%s' or '%s'", c.Window.Backend, Backend_SDL, Backend_GLFW)
	}

	if c.Render.SolidReserve <= 0 || c.Render.TextureReserve <= 0 {
		return errors.Errorf("config: vertex reserves must be positive, got solid=%d texture=%d", c.Render.SolidReserve, c.Render.TextureReserve)
	}

	for _, s := range []ShaderFiles{c.Render.SolidShader, c.Render.TextureShader} {
		if s.Combined != "" && (s.Vertex != "" || s.Fragment != "") {
			return errors.Errorf("config: shader '%s' sets both a combined file and separate stage files", s.Combined)
		}

		if s.Combined == "" && (s.Vertex == "") != (s.Fragment == "") {
			return errors.New("config: a shader needs both a vertex and a fragment file")
		}
	}

	return nil
}
