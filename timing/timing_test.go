package timing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voiengine/voi/timing"
)

func TestFrameTimes(t *testing.T) {

	tm := timing.NewTimer()
	tm.Reset(10)

	tm.FrameStart(10.5)
	tm.FrameEnd()
	assert.InDelta(t, 0.5, tm.DT(), 1e-6)
	assert.InDelta(t, 0.5, tm.TotalTime(), 1e-9)
	assert.Equal(t, uint64(1), tm.FrameCount())

	tm.FrameStart(10.75)
	tm.FrameEnd()
	assert.InDelta(t, 0.25, tm.DT(), 1e-6)
	assert.InDelta(t, 0.75, tm.TotalTime(), 1e-9)
	assert.Equal(t, uint64(2), tm.FrameCount())
}

func TestClockGoingBack(t *testing.T) {

	tm := timing.NewTimer()
	tm.Reset(5)

	tm.FrameStart(4)
	assert.Zero(t, tm.DT())
	assert.Zero(t, tm.TotalTime())
}

func TestAvgFPS(t *testing.T) {

	tm := timing.NewTimer()
	tm.Reset(0)

	for i := 1; i <= 60; i++ {
		tm.FrameStart(float64(i) / 60)
		tm.FrameEnd()

		if i < 60 {
			assert.Zero(t, tm.AvgFPS())
		}
	}

	assert.InDelta(t, 60, tm.AvgFPS(), 0.01)
}

func TestGlobalTimer(t *testing.T) {

	timing.Init()
	timing.FrameStarted()
	timing.FrameEnded()

	assert.GreaterOrEqual(t, timing.DT(), float32(0))
	assert.GreaterOrEqual(t, timing.TotalTime(), float64(0))
}
