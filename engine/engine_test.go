package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voiengine/voi/engine"
	"github.com/voiengine/voi/gpu/gputest"
	"github.com/voiengine/voi/input"
	"github.com/voiengine/voi/renderer"
)

type fakePlatform struct {
	now         float64
	step        float64
	closeAfter  int
	swaps       int
	polls       int
	shouldClose bool
	resize      func(w, h int32)
	title       string
	destroyed   bool

	// onPoll runs inside PollEvents like window events would
	onPoll func()
}

func (p *fakePlatform) SwapBuffers() {

	p.swaps++
	if p.closeAfter > 0 && p.swaps >= p.closeAfter {
		p.shouldClose = true
	}
}

func (p *fakePlatform) PollEvents() {

	p.polls++
	if p.onPoll != nil {
		p.onPoll()
	}
}

func (p *fakePlatform) Time() float64 {
	t := p.now
	p.now += p.step
	return t
}

func (p *fakePlatform) ShouldClose() bool                   { return p.shouldClose }
func (p *fakePlatform) SetShouldClose(v bool)               { p.shouldClose = v }
func (p *fakePlatform) SetResizeCallback(f func(w, h int32)) { p.resize = f }
func (p *fakePlatform) DrawableSize() (int32, int32)        { return 800, 600 }
func (p *fakePlatform) SetTitle(title string)               { p.title = title }
func (p *fakePlatform) SetVSync(bool)                       {}
func (p *fakePlatform) Destroy()                            { p.destroyed = true }

type recordingHandler struct {
	rend     *renderer.Renderer
	begun    bool
	finished bool
	dts      []float32
	onUpdate func()
}

func (h *recordingHandler) Begin() {
	h.begun = true
	h.rend.FillRect(-0.5, -0.5, 1, 1, 0)
}

func (h *recordingHandler) Update(dt float32) {

	h.dts = append(h.dts, dt)
	h.rend.Clear()
	h.rend.FillTriangle(renderer.V2(0, 0), renderer.V2(1, 0), renderer.V2(0, 1), 0)

	if h.onUpdate != nil {
		h.onUpdate()
	}
}

func (h *recordingHandler) Finish() {
	h.finished = true
}

func newEngine(t *testing.T, p *fakePlatform) (*gputest.Device, *engine.Engine, *recordingHandler) {

	t.Helper()

	dev := gputest.NewDevice()
	opts := renderer.DefaultOptions()
	opts.SolidProgramId = dev.NewProgram()
	opts.TextureProgramId = dev.NewProgram()

	rend, err := renderer.New(dev, opts)
	require.NoError(t, err)

	return dev, engine.New(p, rend), &recordingHandler{rend: rend}
}

func TestRunLifecycle(t *testing.T) {

	p := &fakePlatform{step: 0.25, closeAfter: 5}
	dev, e, h := newEngine(t, p)

	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.ViewportValue)

	e.Run(h)

	assert.True(t, h.begun)
	assert.True(t, h.finished)

	// Two initial swaps then one per update
	assert.Equal(t, 5, p.swaps)
	require.Len(t, h.dts, 3)
	for _, dt := range h.dts {
		assert.InDelta(t, 0.25, dt, 1e-6)
	}

	assert.Equal(t, uint64(4), e.FrameCount())
	assert.InDelta(t, 0.75, e.TotalTime(), 1e-9)
	assert.Equal(t, 3, p.polls)
	assert.Empty(t, dev.Errors)
}

func TestInitialFramesShowBeginGeometry(t *testing.T) {

	p := &fakePlatform{step: 0.1, closeAfter: 2}
	dev, e, h := newEngine(t, p)

	e.Run(h)

	// The quad from Begin is drawn twice, only the first one uploads the elements
	require.Len(t, dev.Draws, 2)
	for _, d := range dev.Draws {
		assert.Equal(t, int32(6), d.Count)
		assert.Equal(t, renderer.QuadElements, d.Elements)
	}

	assert.Equal(t, 1, dev.CallCount("BufferDataUint32")+dev.CallCount("BufferSubDataUint32"))
	assert.Empty(t, h.dts)
	assert.True(t, h.finished)
}

func TestStopAndQuit(t *testing.T) {

	p := &fakePlatform{step: 0.1}
	_, e, h := newEngine(t, p)

	h.onUpdate = func() {
		if len(h.dts) == 3 {
			e.Stop()
		}
	}

	e.Run(h)
	assert.Len(t, h.dts, 3)

	// Quit events seen while polling are visible to the next update
	p2 := &fakePlatform{step: 0.1}
	p2.onPoll = input.HandleQuit
	_, e2, h2 := newEngine(t, p2)

	h2.onUpdate = func() {
		if input.IsQuitClicked() {
			e2.Stop()
		}
	}

	e2.Run(h2)
	assert.Len(t, h2.dts, 2)
}

func TestResizeUpdatesViewport(t *testing.T) {

	p := &fakePlatform{}
	dev, _, _ := newEngine(t, p)

	require.NotNil(t, p.resize)
	p.resize(1024, 768)
	assert.Equal(t, [4]int32{0, 0, 1024, 768}, dev.ViewportValue)
}
