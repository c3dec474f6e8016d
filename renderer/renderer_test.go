package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voiengine/voi/gpu"
	"github.com/voiengine/voi/gpu/gputest"
	"github.com/voiengine/voi/gpuerr"
	"github.com/voiengine/voi/renderer"
)

func newRenderer(t *testing.T) (*gputest.Device, *renderer.Renderer) {

	t.Helper()

	dev := gputest.NewDevice()
	opts := renderer.DefaultOptions()
	opts.SolidProgramId = dev.NewProgram()
	opts.TextureProgramId = dev.NewProgram()

	r, err := renderer.New(dev, opts)
	require.NoError(t, err)
	r.EnableAttributes()

	return dev, r
}

func TestGroupLayout(t *testing.T) {

	dev, r := newRenderer(t)

	assert.Equal(t, 0, r.SolidGroup.Start)
	assert.Equal(t, 1, r.SolidGroup.Count)
	assert.Equal(t, 1, r.TextureGroup.Start)
	assert.Equal(t, 32, r.TextureGroup.Count)
	assert.Len(t, r.Batches(), 33)
	assert.Equal(t, 33, r.BufferSet().Len())

	assert.Equal(t, 2, r.Batch(0).AttribCount())
	for i := 1; i < 33; i++ {
		assert.Equal(t, 3, r.Batch(i).AttribCount())
		assert.Equal(t, i, r.Batch(i).Slot())
	}

	assert.Equal(t, 1000*7*4, r.BufferSet().VertexInfo(0).Capacity)
	assert.Equal(t, 1000*9*4, r.BufferSet().VertexInfo(1).Capacity)

	assert.Equal(t, [4]float32{0.2, 0.3, 0.3, 1}, dev.ClearColorValue)
	assert.True(t, dev.DepthTest)
	assert.Empty(t, dev.Errors)
}

func TestNewFailsWithoutGPUObjects(t *testing.T) {

	dev := gputest.NewDevice()
	dev.FailGen = true

	r, err := renderer.New(dev, renderer.DefaultOptions())
	assert.Nil(t, r)
	assert.ErrorIs(t, err, gpuerr.ErrResourceCreation)
}

func TestSelectCurrentTexture(t *testing.T) {

	_, r := newRenderer(t)

	require.NoError(t, r.SelectCurrentTexture(5))
	assert.Equal(t, 5, r.TextureGroup.Current)
	assert.Equal(t, 6, r.TextureGroup.Target())

	for _, bad := range []int{-1, 32, 100} {
		err := r.SelectCurrentTexture(bad)
		assert.ErrorIs(t, err, gpuerr.ErrIndexOutOfRange)
		assert.Equal(t, 5, r.TextureGroup.Current)
	}

	require.NoError(t, r.SelectCurrentTexture(31))
	assert.Equal(t, 32, r.TextureGroup.Target())
}

func TestSolidGroupSelect(t *testing.T) {

	_, r := newRenderer(t)

	assert.NoError(t, r.SolidGroup.Select(0))
	assert.ErrorIs(t, r.SolidGroup.Select(1), gpuerr.ErrIndexOutOfRange)
}

func rgba(w, h int) []byte {
	return make([]byte, w*h*4)
}

func TestRegisterTexture(t *testing.T) {

	dev, r := newRenderer(t)

	idx, err := r.RegisterTexture(2, 2, rgba(2, 2), true, gpu.PixelFormat_RGBA, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	tex := dev.Textures[r.TextureId(0)]
	require.NotNil(t, tex)
	assert.Equal(t, int32(2), tex.Width)
	assert.Equal(t, int32(2), tex.Height)
	assert.True(t, tex.Mipmapped)
	assert.Equal(t, gpu.TextureWrap_Repeat, tex.Wrap)
	assert.Equal(t, gpu.TextureFilter_LinearMipmapLinear, tex.MinFilter)
	assert.Equal(t, gpu.TextureFilter_Linear, tex.MagFilter)

	assert.Equal(t, []uint32{r.TextureId(0)}, r.Batch(1).TextureIds())

	idx, err = r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, gpu.TextureFilter_Linear, dev.Textures[r.TextureId(1)].MinFilter)
	assert.False(t, dev.Textures[r.TextureId(1)].Mipmapped)

	// Explicit batches are used as is
	idx, err = r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, idx)
	assert.Equal(t, []uint32{r.TextureId(10)}, r.Batch(11).TextureIds())

	assert.Empty(t, dev.Errors)
}

func TestRegisterTextureInvalid(t *testing.T) {

	_, r := newRenderer(t)

	idx, err := r.RegisterTexture(2, 2, nil, false, gpu.PixelFormat_RGBA, -1)
	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, gpuerr.ErrInvalidArgument)

	idx, err = r.RegisterTexture(2, 2, rgba(1, 1), false, gpu.PixelFormat_RGBA, -1)
	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, gpuerr.ErrInvalidArgument)

	idx, err = r.RegisterTexture(0, 2, rgba(2, 2), false, gpu.PixelFormat_RGBA, -1)
	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, gpuerr.ErrInvalidArgument)

	idx, err = r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, 32)
	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, gpuerr.ErrIndexOutOfRange)

	// Nothing was assigned so the next automatic registration still gets batch 0
	idx, err = r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestRegisterTextureExhaustion(t *testing.T) {

	_, r := newRenderer(t)

	for i := 0; i < 32; i++ {
		idx, err := r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, -1)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	idx, err := r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, -1)
	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, gpuerr.ErrInvalidArgument)
}

func TestReplaceTexture(t *testing.T) {

	dev, r := newRenderer(t)

	_, err := r.ReplaceTexture(0, 1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA)
	assert.ErrorIs(t, err, gpuerr.ErrInvalidArgument)

	_, err = r.ReplaceTexture(40, 1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA)
	assert.ErrorIs(t, err, gpuerr.ErrIndexOutOfRange)

	_, err = r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, -1)
	require.NoError(t, err)

	idx, err := r.ReplaceTexture(0, 4, 2, rgba(4, 2), false, gpu.PixelFormat_RGBA)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	tex := dev.Textures[r.TextureId(0)]
	assert.Equal(t, int32(4), tex.Width)
	assert.Equal(t, int32(2), tex.Height)
	assert.Equal(t, []uint32{r.TextureId(0)}, r.Batch(1).TextureIds())
}

func TestShapesRouteToGroups(t *testing.T) {

	dev, r := newRenderer(t)

	require.NoError(t, r.FillTriangle(renderer.V2(0, 0), renderer.V2(1, 0), renderer.V2(0, 1), 0))
	require.NoError(t, r.FillRect(0, 0, 10, 10, 0))
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 5, 6, 3}, r.Batch(0).Elements())
	assert.Equal(t, 7*7*4, r.BufferSet().VertexInfo(0).Size)

	_, err := r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, 3)
	require.NoError(t, err)
	require.NoError(t, r.SelectCurrentTexture(3))

	require.NoError(t, r.TexturedRect(0, 0, 5, 5, 0))
	assert.Equal(t, renderer.QuadElements, r.Batch(4).Elements())
	assert.Zero(t, r.Batch(1).ElementCount())

	vbo := r.BufferSet().Slot(4).VboId
	floats := dev.BufferFloats(vbo)

	// Third vertex is (x+w, y+h) with uv (1, 1)
	assert.Equal(t, []float32{5, 5, 0, 1, 1, 1, 1, 1, 1}, floats[2*9:3*9])
}

func TestDrawColorTintsVertices(t *testing.T) {

	dev, r := newRenderer(t)

	r.DrawColor = renderer.Color{R: 1, G: 0, B: 0, A: 0.5}
	require.NoError(t, r.FillTriangle(renderer.V2(1, 2), renderer.V2(3, 4), renderer.V2(5, 6), 0.25))

	floats := dev.BufferFloats(r.BufferSet().Slot(0).VboId)
	assert.Equal(t, []float32{1, 2, 0.25, 1, 0, 0, 0.5}, floats[:7])
	assert.Equal(t, []float32{5, 6, 0.25, 1, 0, 0, 0.5}, floats[14:21])
}

func TestTexturedTriangleDefaultUVs(t *testing.T) {

	dev, r := newRenderer(t)

	require.NoError(t, r.TexturedTriangle(renderer.V2(0, 0), renderer.V2(1, 0), renderer.V2(0, 1), 0))

	floats := dev.BufferFloats(r.BufferSet().Slot(1).VboId)
	assert.Equal(t, []float32{0, 0}, floats[7:9])
	assert.Equal(t, []float32{1, 0}, floats[16:18])
	assert.Equal(t, []float32{0, 1}, floats[25:27])
}

func TestShapesFromVertices(t *testing.T) {

	_, r := newRenderer(t)

	fill := []renderer.FillVertex2D{
		{Pos: renderer.V2(0, 0), Color: renderer.White},
		{Pos: renderer.V2(1, 0), Color: renderer.White},
		{Pos: renderer.V2(1, 1), Color: renderer.White},
		{Pos: renderer.V2(0, 1), Color: renderer.White},
	}
	require.NoError(t, r.FillShape(fill, []uint32{0, 1, 2, 0, 2, 3}))
	assert.Equal(t, 4*7*4, r.BufferSet().VertexInfo(0).Size)

	tex := []renderer.TexVertex2D{
		{Pos: renderer.V2(0, 0), TexCoord: renderer.V2(0, 0)},
		{Pos: renderer.V2(1, 0), TexCoord: renderer.V2(1, 0)},
		{Pos: renderer.V2(0, 1), TexCoord: renderer.V2(0, 1)},
	}
	require.NoError(t, r.TexturedShape(tex, renderer.TriangleElements))
	assert.Equal(t, 3*9*4, r.BufferSet().VertexInfo(1).Size)
}

func TestShapeCapacityExhausted(t *testing.T) {

	dev := gputest.NewDevice()
	opts := renderer.DefaultOptions()
	opts.SolidProgramId = dev.NewProgram()
	opts.TextureProgramId = dev.NewProgram()
	opts.SolidReserve = 4

	r, err := renderer.New(dev, opts)
	require.NoError(t, err)

	require.NoError(t, r.FillRect(0, 0, 1, 1, 0))
	err = r.FillTriangle(renderer.V2(0, 0), renderer.V2(1, 0), renderer.V2(0, 1), 0)
	assert.ErrorIs(t, err, gpuerr.ErrCapacityExhausted)
	assert.Equal(t, 6, r.Batch(0).ElementCount())
}

func TestClearEmptiesBatches(t *testing.T) {

	dev, r := newRenderer(t)

	require.NoError(t, r.FillRect(0, 0, 1, 1, 0))
	require.NoError(t, r.TexturedRect(0, 0, 1, 1, 0))

	clears := len(dev.Clears)
	r.Clear()

	assert.Len(t, dev.Clears, clears+1)
	assert.True(t, dev.Clears[len(dev.Clears)-1].Has(gpu.ClearMask_Color))
	assert.True(t, dev.Clears[len(dev.Clears)-1].Has(gpu.ClearMask_Depth))

	for i, b := range r.Batches() {
		assert.Zero(t, b.ElementCount())
		assert.Zero(t, r.BufferSet().VertexInfo(i).Size)
	}

	assert.Equal(t, 1000*7*4, r.BufferSet().VertexInfo(0).Capacity)
	assert.Equal(t, 1000*9*4, r.BufferSet().VertexInfo(1).Capacity)

	// After a clear new shapes start at element zero again
	require.NoError(t, r.FillTriangle(renderer.V2(0, 0), renderer.V2(1, 0), renderer.V2(0, 1), 0))
	assert.Equal(t, []uint32{0, 1, 2}, r.Batch(0).Elements())
}

func TestSubmitOrder(t *testing.T) {

	dev, r := newRenderer(t)

	_, err := r.RegisterTexture(1, 1, rgba(1, 1), false, gpu.PixelFormat_RGBA, 2)
	require.NoError(t, err)
	require.NoError(t, r.SelectCurrentTexture(2))

	require.NoError(t, r.TexturedRect(0, 0, 1, 1, 0))
	require.NoError(t, r.FillTriangle(renderer.V2(0, 0), renderer.V2(1, 0), renderer.V2(0, 1), 0))

	r.Submit(false)

	require.Len(t, dev.Draws, 2)
	assert.Equal(t, r.BufferSet().Slot(0).VaoId, dev.Draws[0].Vao)
	assert.Equal(t, int32(3), dev.Draws[0].Count)

	assert.Equal(t, r.BufferSet().Slot(3).VaoId, dev.Draws[1].Vao)
	assert.Equal(t, int32(6), dev.Draws[1].Count)
	assert.Equal(t, r.TextureId(2), dev.Draws[1].Textures[0])
	assert.Empty(t, dev.Errors)

	// A redraw repeats the frame without uploading elements
	dev.ResetCalls()
	r.Submit(true)
	assert.Len(t, dev.Draws, 2)
	assert.Zero(t, dev.CallCount("BufferDataUint32"))
	assert.Zero(t, dev.CallCount("BufferSubDataUint32"))
}

func TestClearColorAndViewport(t *testing.T) {

	dev, r := newRenderer(t)

	c := renderer.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}
	r.SetClearColor(c)
	assert.Equal(t, c, r.ClearColor())
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, dev.ClearColorValue)

	r.SetViewport(640, 480)
	assert.Equal(t, [4]int32{0, 0, 640, 480}, dev.ViewportValue)

	r.SetViewport(0, 480)
	assert.Equal(t, [4]int32{0, 0, 640, 480}, dev.ViewportValue)
}

func TestDestroy(t *testing.T) {

	dev, r := newRenderer(t)

	r.Destroy()
	assert.Empty(t, dev.Textures)
	assert.Empty(t, dev.Programs)
	assert.Empty(t, dev.Buffers)
	assert.Empty(t, dev.VertexArrays)

	deletes := dev.CallCount("DeleteTextures")
	r.Destroy()
	assert.Equal(t, deletes, dev.CallCount("DeleteTextures"))
}

func TestColorLerp(t *testing.T) {

	a := renderer.Black
	b := renderer.White

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, renderer.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, a.Lerp(b, 0.5))
}
