package main

import (
	"math"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/voiengine/voi/assets"
	"github.com/voiengine/voi/config"
	"github.com/voiengine/voi/engine"
	"github.com/voiengine/voi/engine/winglfw"
	"github.com/voiengine/voi/engine/winsdl"
	"github.com/voiengine/voi/gpu"
	"github.com/voiengine/voi/gpu/gpugl"
	"github.com/voiengine/voi/input"
	"github.com/voiengine/voi/logging"
	"github.com/voiengine/voi/meshes"
	"github.com/voiengine/voi/renderer"
	"github.com/voiengine/voi/shaders"
)

var (
	configPath = pflag.StringP("config", "c", "", "path to a .toml or .yaml config file")
	backend    = pflag.StringP("backend", "b", "", "window backend, 'sdl' or 'glfw' (overrides the config)")
	img0Path   = pflag.String("img0", "./res/textures/awesomeface.png", "first demo texture")
	img1Path   = pflag.String("img1", "./res/textures/dimW.png", "second demo texture")
	modelPath  = pflag.String("model", "", "optional model drawn as a textured shape")
	cpuProfile = pflag.String("cpuprofile", "", "write a cpu profile to this file")
)

type Game struct {
	Eng  *engine.Engine
	Rend *renderer.Renderer

	textureIndices []int
	model          meshes.Shape

	framePrevIntT  int
	prevFrameCount uint64

	timeInterval float32
}

func (g *Game) Begin() {

	g.textureIndices = make([]int, 0, renderer.TextureGroupSize)

	for i, path := range []string{*img0Path, *img1Path} {

		img, err := assets.LoadImage(path, &assets.ImageLoadOptions{FlipY: true})
		if err != nil {
			logging.WarnLog.Printf("Using a generated texture instead of '%s'. Err: %v\n", path, err)
			img = checkerImage(64, 8, i)
		}

		idx, err := g.Rend.RegisterTexture(img.Width, img.Height, img.Pix, true, img.Format, -1)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to register texture. Err: ", err)
		}

		g.textureIndices = append(g.textureIndices, idx)
	}

	if *modelPath != "" {

		shape, err := meshes.LoadShape("model", *modelPath, 0)
		if err != nil {
			logging.ErrLog.Println("Failed to load model. Err: ", err)
		} else {
			g.model = shape.Transformed(renderer.V2(-0.5, 0.5), 0.25)
		}
	}

	g.check(g.Rend.SelectCurrentTexture(g.textureIndices[0]))
	g.Rend.DrawColor = renderer.White
	g.check(g.Rend.TexturedRect(-0.5, -0.5, 1, 1, 0))
}

func (g *Game) Update(dt float32) {

	if input.IsQuitClicked() || input.KeyClicked(input.Key_Escape) {
		g.Eng.Stop()
	}

	g.setTitleToFramesInSecond()
	g.Rend.Clear()

	g.timeInterval += dt
	if g.timeInterval >= 2*math.Pi {
		g.timeInterval -= 2 * math.Pi
	}

	g.Rend.DrawColor = renderer.White

	g.check(g.Rend.SelectCurrentTexture(g.textureIndices[1]))
	g.check(g.Rend.TexturedRect(-1, -1, 1, 1, 0))

	g.check(g.Rend.SelectCurrentTexture(g.textureIndices[0]))
	g.check(g.Rend.TexturedRect(0, -1, 1, 1, 0))

	g.Rend.DrawColor = renderer.Color{R: 1, G: 0, B: 0, A: 0.2}
	g.check(g.Rend.TexturedShape([]renderer.TexVertex2D{
		{Pos: renderer.V2(0, 1), Color: g.Rend.DrawColor, TexCoord: renderer.V2(0, 1)},
		{Pos: renderer.V2(1, 1), Color: g.Rend.DrawColor, TexCoord: renderer.V2(1, 1)},
		{Pos: renderer.V2(1, 0), Color: g.Rend.DrawColor, TexCoord: renderer.V2(1, 0)},
	}, renderer.TriangleElements))

	// Pulses between two colors once every 2*pi seconds
	t := float32(math.Sin(float64(g.timeInterval)))*0.5 + 0.5
	g.Rend.DrawColor = renderer.Color{R: 0.1, G: 0.6, B: 0.9, A: 1}.Lerp(renderer.Color{R: 0.9, G: 0.3, B: 0.1, A: 1}, t)
	g.check(g.Rend.FillTriangle(renderer.V2(-1, 0), renderer.V2(-0.6, 0), renderer.V2(-0.8, 0.4), 0.1))

	if len(g.model.Verts) > 0 {
		g.check(g.model.DrawFilled(g.Rend))
	}
}

func (g *Game) Finish() {
	logging.InfoLog.Printf("Ran %d frames, average fps %.1f\n", g.Eng.FrameCount(), g.Eng.AvgFPS())
}

func (g *Game) setTitleToFramesInSecond() {

	intT := int(g.Eng.TotalTime())
	if intT > g.framePrevIntT {
		g.Eng.Platform.SetTitle(strconv.FormatUint(g.Eng.FrameCount()-g.prevFrameCount, 10))
		g.framePrevIntT = intT
		g.prevFrameCount = g.Eng.FrameCount()
	}
}

func (g *Game) check(err error) {
	if err != nil {
		logging.ErrLog.Println(err)
	}
}

func main() {

	pflag.Parse()

	cfg := config.Default()
	if *configPath != "" {

		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to load config. Err: ", err)
		}
	}

	if *backend != "" {

		cfg.Window.Backend = *backend
		if err := cfg.Validate(); err != nil {
			logging.ErrLog.Fatalln(err)
		}
	}

	platform, terminate, err := createPlatform(&cfg.Window)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}
	defer terminate()
	defer platform.Destroy()

	platform.SetVSync(cfg.Window.VSync)

	dev, err := gpugl.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init OpenGL. Err: ", err)
	}

	solidProg := loadProgram("solid fill", cfg.Render.SolidShader, shaders.SolidFillSrc)
	texProg := loadProgram("single texture", cfg.Render.TextureShader, shaders.SingleTextureSrc)
	texProg.SetUnifInt32(shaders.TextureSamplerUniform, 0)

	rend, err := renderer.New(dev, renderOptions(&cfg.Render, solidProg.Id, texProg.Id))
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create renderer. Err: ", err)
	}
	defer rend.Destroy()

	game := &Game{
		Eng:  engine.New(platform, rend),
		Rend: rend,
	}

	platform.SetTitle(cfg.Window.Title)

	if *cpuProfile != "" {

		pf, err := os.Create(*cpuProfile)
		if err == nil {
			defer pf.Close()
			pprof.StartCPUProfile(pf)
			defer pprof.StopCPUProfile()
		} else {
			logging.ErrLog.Printf("Creating %s failed. CPU profiling will not run. Err=%v\n", *cpuProfile, err)
		}
	}

	game.Eng.Run(game)
}

func createPlatform(w *config.Window) (engine.Platform, func(), error) {

	switch w.Backend {
	case config.Backend_GLFW:

		if err := winglfw.Init(); err != nil {
			return nil, nil, err
		}

		win, err := winglfw.CreateOpenGLWindow(w.Title, w.Width, w.Height, w.Resizable)
		if err != nil {
			winglfw.Terminate()
			return nil, nil, err
		}

		return win, winglfw.Terminate, nil

	default:

		if err := winsdl.Init(); err != nil {
			return nil, nil, err
		}

		var flags winsdl.WindowFlags
		if w.Resizable {
			flags |= winsdl.WindowFlags_RESIZABLE
		}

		win, err := winsdl.CreateOpenGLWindowCentered(w.Title, w.Width, w.Height, flags)
		if err != nil {
			winsdl.Terminate()
			return nil, nil, err
		}

		return win, winsdl.Terminate, nil
	}
}

// loadProgram compiles the configured shader, or builtinSrc when none is configured. A program that
// failed to compile is still used so the demo keeps running.
func loadProgram(name string, files config.ShaderFiles, builtinSrc []byte) shaders.ShaderProgram {

	var prog shaders.ShaderProgram
	var err error

	switch {
	case files.IsBuiltin():
		prog, err = shaders.CombinedProgramSrc(name, builtinSrc)
	case files.Combined != "":
		prog, err = shaders.LoadCombinedProgram(files.Combined)
	default:
		prog, err = shaders.LoadProgram(files.Vertex, files.Fragment)
	}

	if err != nil {
		logging.ErrLog.Printf("Shader program '%s' has errors. Err: %v\n", name, err)
	}

	return prog
}

func renderOptions(r *config.Render, solidProgId, texProgId uint32) renderer.Options {

	opts := renderer.DefaultOptions()
	opts.SolidProgramId = solidProgId
	opts.TextureProgramId = texProgId
	opts.SolidReserve = r.SolidReserve
	opts.TextureReserve = r.TextureReserve
	opts.DepthTest = r.DepthTest
	opts.ClearColor = renderer.Color{R: r.ClearColor[0], G: r.ClearColor[1], B: r.ClearColor[2], A: r.ClearColor[3]}

	return opts
}

// checkerImage makes a size*size checkerboard with cells of cellSize pixels. variant picks the colors.
func checkerImage(size, cellSize, variant int) assets.Image {

	colors := [2][2][4]byte{
		{{255, 255, 255, 255}, {230, 80, 60, 255}},
		{{40, 40, 40, 255}, {60, 160, 230, 255}},
	}[variant%2]

	pix := make([]byte, 0, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := colors[(x/cellSize+y/cellSize)%2]
			pix = append(pix, c[:]...)
		}
	}

	return assets.Image{Width: int32(size), Height: int32(size), Format: gpu.PixelFormat_RGBA, Pix: pix}
}
