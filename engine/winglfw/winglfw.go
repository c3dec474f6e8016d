// Package winglfw is an engine.Platform on a GLFW window with an OpenGL 4.1 core context
package winglfw

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/voiengine/voi/engine"
	"github.com/voiengine/voi/gpuerr"
	"github.com/voiengine/voi/input"
	"github.com/voiengine/voi/logging"
)

var _ engine.Platform = &Window{}

type Window struct {
	GlfwWin *glfw.Window

	onResize func(width, height int32)
}

// Init must be called on the main thread, which stays the only thread making GLFW and GL calls
func Init() error {

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logging.ErrLog.Println("Failed to init GLFW. Err: ", err)
		return gpuerr.ResourceCreation("GLFW", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	return nil
}

func Terminate() {
	glfw.Terminate()
}

func CreateOpenGLWindow(title string, width, height int32, resizable bool) (*Window, error) {

	resizableHint := glfw.False
	if resizable {
		resizableHint = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizableHint)

	glfwWin, err := glfw.CreateWindow(int(width), int(height), title, nil, nil)
	if err != nil {
		logging.ErrLog.Println("Failed to create GLFW window. Err: ", err)
		return nil, gpuerr.ResourceCreation("GLFW window", err)
	}

	glfwWin.MakeContextCurrent()

	w := &Window{GlfwWin: glfwWin}

	glfwWin.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if width > 0 && height > 0 && w.onResize != nil {
			w.onResize(int32(width), int32(height))
		}
	})

	glfwWin.SetCloseCallback(func(_ *glfw.Window) {
		input.HandleQuit()
	})

	glfwWin.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		input.HandleKey(keyFromGlfw(key), action != glfw.Release, action == glfw.Repeat)
	})

	glfwWin.SetMouseButtonCallback(func(_ *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		input.HandleMouseBtn(mouseBtnFromGlfw(btn), action == glfw.Press, 1)
	})

	glfwWin.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		input.HandleMouseMotion(int32(x), int32(y))
	})

	logging.InfoLog.Printf("Created GLFW window '%s' (%dx%d)\n", title, width, height)
	return w, nil
}

func (w *Window) SwapBuffers() {
	w.GlfwWin.SwapBuffers()
}

// PollEvents runs the window callbacks, which feed the input package
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) ShouldClose() bool {
	return w.GlfwWin.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.GlfwWin.SetShouldClose(v)
}

func (w *Window) SetResizeCallback(f func(width, height int32)) {
	w.onResize = f
}

func (w *Window) DrawableSize() (width, height int32) {
	fbWidth, fbHeight := w.GlfwWin.GetFramebufferSize()
	return int32(fbWidth), int32(fbHeight)
}

func (w *Window) SetTitle(title string) {
	w.GlfwWin.SetTitle(title)
}

func (w *Window) SetVSync(enabled bool) {

	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (w *Window) Destroy() {
	w.GlfwWin.Destroy()
}

func mouseBtnFromGlfw(btn glfw.MouseButton) input.MouseButton {

	switch btn {
	case glfw.MouseButtonLeft:
		return input.MouseButton_Left
	case glfw.MouseButtonMiddle:
		return input.MouseButton_Middle
	case glfw.MouseButtonRight:
		return input.MouseButton_Right
	default:
		return input.MouseButton(int(btn) + 1)
	}
}

func keyFromGlfw(key glfw.Key) input.Key {

	switch key {
	case glfw.KeyLeft:
		return input.Key_Left
	case glfw.KeyRight:
		return input.Key_Right
	case glfw.KeyUp:
		return input.Key_Up
	case glfw.KeyDown:
		return input.Key_Down
	case glfw.KeyLeftShift:
		return input.Key_LShift
	case glfw.KeyRightShift:
		return input.Key_RShift
	case glfw.KeyLeftControl:
		return input.Key_LCtrl
	case glfw.KeyRightControl:
		return input.Key_RCtrl
	case glfw.KeyLeftAlt:
		return input.Key_LAlt
	case glfw.KeyRightAlt:
		return input.Key_RAlt
	case glfw.KeyF1:
		return input.Key_F1
	case glfw.KeyF2:
		return input.Key_F2
	case glfw.KeyF3:
		return input.Key_F3
	case glfw.KeyF4:
		return input.Key_F4
	case glfw.KeyEnter:
		return input.Key_Enter
	case glfw.KeyEscape:
		return input.Key_Escape
	case glfw.KeyBackspace:
		return input.Key_Backspace
	case glfw.KeyTab:
		return input.Key_Tab
	}

	// Printable glfw keys are their uppercase ascii value
	if key >= glfw.KeySpace && key <= glfw.KeyGraveAccent {
		return input.KeyFromRune(rune(key))
	}

	return input.Key_Unknown
}
