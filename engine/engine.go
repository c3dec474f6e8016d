// Package engine drives the frame loop: it calls the application's Handler, submits the renderer
// and presents through a Platform (the window and GL context).
package engine

import (
	"github.com/voiengine/voi/assert"
	"github.com/voiengine/voi/input"
	"github.com/voiengine/voi/logging"
	"github.com/voiengine/voi/renderer"
	"github.com/voiengine/voi/timing"
)

// Handler is implemented by the application
type Handler interface {
	// Begin is called once before the first frame. Geometry added here is shown until the first Update.
	Begin()
	// Update is called every frame with the seconds since the previous frame
	Update(dt float32)
	// Finish is called once after the loop ends
	Finish()
}

// Platform is a window with a current OpenGL context
type Platform interface {
	SwapBuffers()
	// PollEvents handles pending window events and feeds them to the input package
	PollEvents()
	// Time returns seconds since some fixed point
	Time() float64
	ShouldClose() bool
	SetShouldClose(bool)
	// SetResizeCallback sets the function called with the new drawable size when the window is resized
	SetResizeCallback(func(width, height int32))
	DrawableSize() (width, height int32)
	SetTitle(title string)
	SetVSync(enabled bool)
	Destroy()
}

type Engine struct {
	Platform Platform
	Rend     *renderer.Renderer

	timer   *timing.Timer
	running bool
}

func New(p Platform, rend *renderer.Renderer) *Engine {

	e := &Engine{
		Platform: p,
		Rend:     rend,
		timer:    timing.NewTimer(),
	}

	p.SetResizeCallback(rend.SetViewport)
	rend.SetViewport(p.DrawableSize())

	return e
}

// Run calls Begin, shows the geometry it added and then runs frames until the platform
// should close, after which Finish is called.
func (e *Engine) Run(h Handler) {

	assert.T(!e.running, "Engine.Run called while already running")
	e.running = true
	defer func() { e.running = false }()

	e.timer.Reset(e.Platform.Time())

	h.Begin()
	e.Rend.EnableAttributes()

	// Both swap buffers get the initial frame, the second time without uploading again
	e.Rend.ClearTargets()
	e.Rend.Submit(false)
	e.Platform.SwapBuffers()

	e.Rend.ClearTargets()
	e.Rend.Submit(true)
	e.Platform.SwapBuffers()
	e.timer.FrameEnd()

	logging.InfoLog.Println("Engine loop starting")

	for !e.Platform.ShouldClose() {

		e.timer.FrameStart(e.Platform.Time())

		h.Update(e.timer.DT())
		e.Rend.Submit(false)
		e.Platform.SwapBuffers()

		e.timer.FrameEnd()

		input.EventLoopStart()
		e.Platform.PollEvents()
	}

	h.Finish()
	logging.InfoLog.Printf("Engine loop done after %d frames (%.2fs)\n", e.FrameCount(), e.TotalTime())
}

// Stop makes the loop end after the current frame
func (e *Engine) Stop() {
	e.Platform.SetShouldClose(true)
}

// TotalTime returns the seconds between the start of Run and the start of the current frame
func (e *Engine) TotalTime() float64 {
	return e.timer.TotalTime()
}

// FrameCount counts presented frames, the two initial frames count as one
func (e *Engine) FrameCount() uint64 {
	return e.timer.FrameCount()
}

func (e *Engine) DT() float32 {
	return e.timer.DT()
}

func (e *Engine) AvgFPS() float32 {
	return e.timer.AvgFPS()
}
