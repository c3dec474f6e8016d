// Package winsdl is an engine.Platform on an SDL2 window with an OpenGL 4.1 core context
package winsdl

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/voiengine/voi/engine"
	"github.com/voiengine/voi/gpuerr"
	"github.com/voiengine/voi/input"
	"github.com/voiengine/voi/logging"
)

var _ engine.Platform = &Window{}

type WindowFlags uint32

const (
	WindowFlags_FULLSCREEN         WindowFlags = sdl.WINDOW_FULLSCREEN
	WindowFlags_OPENGL             WindowFlags = sdl.WINDOW_OPENGL
	WindowFlags_SHOWN              WindowFlags = sdl.WINDOW_SHOWN
	WindowFlags_HIDDEN             WindowFlags = sdl.WINDOW_HIDDEN
	WindowFlags_BORDERLESS         WindowFlags = sdl.WINDOW_BORDERLESS
	WindowFlags_RESIZABLE          WindowFlags = sdl.WINDOW_RESIZABLE
	WindowFlags_ALLOW_HIGHDPI      WindowFlags = sdl.WINDOW_ALLOW_HIGHDPI
	WindowFlags_FULLSCREEN_DESKTOP WindowFlags = sdl.WINDOW_FULLSCREEN_DESKTOP
)

type Window struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext

	// EventCallbacks get every event before it is handled
	EventCallbacks []func(sdl.Event)

	shouldClose bool
	onResize    func(width, height int32)
}

// Init locks the calling goroutine to its thread, which must stay the only thread making SDL and GL calls
func Init() error {

	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return gpuerr.ResourceCreation("SDL", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	return nil
}

func Terminate() {
	sdl.Quit()
}

// CreateOpenGLWindowCentered creates the window and makes its GL context current
func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags) (*Window, error) {

	sdlWin, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, uint32(WindowFlags_OPENGL|flags))
	if err != nil {
		logging.ErrLog.Println("Failed to create SDL window. Err: ", err)
		return nil, gpuerr.ResourceCreation("SDL window", err)
	}

	win := &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		logging.ErrLog.Println("Failed to create OpenGL context. Err: ", err)
		return nil, gpuerr.ResourceCreation("OpenGL context", err)
	}

	logging.InfoLog.Printf("Created SDL window '%s' (%dx%d)\n", title, width, height)
	return win, nil
}

func (w *Window) SwapBuffers() {
	w.SDLWin.GLSwap()
}

func (w *Window) PollEvents() {

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		switch e := event.(type) {

		case *sdl.KeyboardEvent:
			input.HandleKey(keyFromSdl(e.Keysym.Sym), e.State == sdl.PRESSED, e.Repeat != 0)

		case *sdl.MouseButtonEvent:
			input.HandleMouseBtn(input.MouseButton(e.Button), e.State == sdl.PRESSED, int(e.Clicks))

		case *sdl.MouseMotionEvent:
			input.HandleMouseMotion(e.X, e.Y)

		case *sdl.WindowEvent:

			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w.handleWindowResize()
			}

		case *sdl.QuitEvent:
			input.HandleQuit()
			w.shouldClose = true
		}
	}
}

func (w *Window) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 || w.onResize == nil {
		return
	}

	w.onResize(fbWidth, fbHeight)
}

func (w *Window) Time() float64 {
	return float64(sdl.GetPerformanceCounter()) / float64(sdl.GetPerformanceFrequency())
}

func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

func (w *Window) SetShouldClose(v bool) {
	w.shouldClose = v
}

func (w *Window) SetResizeCallback(f func(width, height int32)) {
	w.onResize = f
}

func (w *Window) DrawableSize() (width, height int32) {
	return w.SDLWin.GLGetDrawableSize()
}

func (w *Window) SetTitle(title string) {
	w.SDLWin.SetTitle(title)
}

func (w *Window) SetVSync(enabled bool) {

	interval := 0
	if enabled {
		interval = 1
	}

	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logging.WarnLog.Println("Failed to set swap interval. Err: ", errors.WithStack(err))
	}
}

func (w *Window) Destroy() {

	sdl.GLDeleteContext(w.GlCtx)
	if err := w.SDLWin.Destroy(); err != nil {
		logging.ErrLog.Println("Failed to destroy SDL window. Err: ", err)
	}
}

func keyFromSdl(kc sdl.Keycode) input.Key {

	switch kc {
	case sdl.K_LEFT:
		return input.Key_Left
	case sdl.K_RIGHT:
		return input.Key_Right
	case sdl.K_UP:
		return input.Key_Up
	case sdl.K_DOWN:
		return input.Key_Down
	case sdl.K_LSHIFT:
		return input.Key_LShift
	case sdl.K_RSHIFT:
		return input.Key_RShift
	case sdl.K_LCTRL:
		return input.Key_LCtrl
	case sdl.K_RCTRL:
		return input.Key_RCtrl
	case sdl.K_LALT:
		return input.Key_LAlt
	case sdl.K_RALT:
		return input.Key_RAlt
	case sdl.K_F1:
		return input.Key_F1
	case sdl.K_F2:
		return input.Key_F2
	case sdl.K_F3:
		return input.Key_F3
	case sdl.K_F4:
		return input.Key_F4
	case sdl.K_RETURN:
		return input.Key_Enter
	case sdl.K_ESCAPE:
		return input.Key_Escape
	case sdl.K_BACKSPACE:
		return input.Key_Backspace
	case sdl.K_TAB:
		return input.Key_Tab
	}

	// Printable sdl keycodes are their lowercase ascii value
	if kc < 128 {
		return input.KeyFromRune(rune(kc))
	}

	return input.Key_Unknown
}
