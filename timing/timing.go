// Package timing tracks frame delta time, total time and average frames per second
package timing

import (
	"time"
)

const fpsWindowSecs = 1.0

type Timer struct {
	startTime  time.Time
	lastUpdate float64

	dt         float32
	totalTime  float64
	frameCount uint64

	// Frames counted in the current fps window
	windowStart  float64
	windowFrames uint64
	avgFps       float32
}

func NewTimer() *Timer {
	return &Timer{startTime: time.Now()}
}

// Now returns the seconds since the timer was created
func (t *Timer) Now() float64 {
	return time.Since(t.startTime).Seconds()
}

// Reset makes nowSecs the start of the first frame
func (t *Timer) Reset(nowSecs float64) {
	*t = Timer{startTime: t.startTime, lastUpdate: nowSecs, windowStart: nowSecs}
}

// FrameStart advances to a new frame at time nowSecs (in seconds from any fixed origin)
func (t *Timer) FrameStart(nowSecs float64) {

	dt := nowSecs - t.lastUpdate
	if dt < 0 {
		dt = 0
	}

	t.dt = float32(dt)
	t.totalTime += dt
	t.lastUpdate = nowSecs
}

// FrameEnd counts a finished frame
func (t *Timer) FrameEnd() {

	t.frameCount++
	t.windowFrames++

	if elapsed := t.lastUpdate - t.windowStart; elapsed >= fpsWindowSecs {
		t.avgFps = float32(float64(t.windowFrames) / elapsed)
		t.windowFrames = 0
		t.windowStart = t.lastUpdate
	}
}

// DT returns the seconds between the start of the last two frames
func (t *Timer) DT() float32 {
	return t.dt
}

func (t *Timer) TotalTime() float64 {
	return t.totalTime
}

func (t *Timer) FrameCount() uint64 {
	return t.frameCount
}

// AvgFPS is averaged over about a second, and zero before the first second passes
func (t *Timer) AvgFPS() float32 {
	return t.avgFps
}

var global = NewTimer()

func Init() {
	global = NewTimer()
	global.Reset(0)
}

func FrameStarted() {
	global.FrameStart(global.Now())
}

func FrameEnded() {
	global.FrameEnd()
}

func DT() float32 {
	return global.DT()
}

func TotalTime() float64 {
	return global.TotalTime()
}

func GetAvgFPS() float32 {
	return global.AvgFPS()
}
