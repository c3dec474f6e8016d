package renderer

import (
	"fmt"

	"github.com/voiengine/voi/gpu"
	"github.com/voiengine/voi/gpuerr"
	"github.com/voiengine/voi/logging"
)

// SelectCurrentTexture makes texture batch localIndex the target of the textured shape calls
func (r *Renderer) SelectCurrentTexture(localIndex int) error {
	return r.TextureGroup.Select(localIndex)
}

// TextureId returns the texture object of texture batch localIndex
func (r *Renderer) TextureId(localIndex int) uint32 {
	gpuerr.CheckIndex("texture batch", localIndex, TextureGroupSize)
	return r.textureIds[localIndex]
}

// RegisterTexture uploads pixels into the texture of a texture batch and binds it to that batch.
//
// With explicitBatch < 0 the next unassigned batch is used. Returns the batch index (relative to the texture group),
// or -1 and an error if pixels is empty or every batch already has a texture.
func (r *Renderer) RegisterTexture(width, height int32, pixels []byte, mipmap bool, format gpu.PixelFormat, explicitBatch int) (int, error) {

	if err := checkPixels(width, height, pixels, format); err != nil {
		return -1, err
	}

	batchIndex := explicitBatch
	if batchIndex < 0 {

		batchIndex = r.nextFreeTextureBatch()
		if batchIndex < 0 {
			return -1, &gpuerr.InvalidArgumentError{Arg: "texture", Reason: fmt.Sprintf("all %d texture units are occupied", TextureGroupSize)}
		}

	} else if batchIndex >= TextureGroupSize {
		return -1, &gpuerr.IndexOutOfRangeError{What: "texture batch", Index: batchIndex, Bound: TextureGroupSize}
	}

	texId := r.textureIds[batchIndex]
	r.uploadTexture(texId, width, height, pixels, mipmap, format, true)

	r.batches[r.TextureGroup.Start+batchIndex].AddTexture(texId, 0)
	r.textureAssigned[batchIndex] = true

	logging.InfoLog.Printf("Registered %dx%d texture (id=%d) to texture batch %d\n", width, height, texId, batchIndex)
	return batchIndex, nil
}

// ReplaceTexture uploads new pixels into the texture of an already registered batch. The batch keeps the same texture object.
func (r *Renderer) ReplaceTexture(batchIndex int, width, height int32, pixels []byte, mipmap bool, format gpu.PixelFormat) (int, error) {

	if batchIndex < 0 || batchIndex >= TextureGroupSize {
		return -1, &gpuerr.IndexOutOfRangeError{What: "texture batch", Index: batchIndex, Bound: TextureGroupSize}
	}

	if err := checkPixels(width, height, pixels, format); err != nil {
		return -1, err
	}

	if !r.textureAssigned[batchIndex] {
		return -1, &gpuerr.InvalidArgumentError{Arg: "batchIndex", Reason: fmt.Sprintf("texture batch %d has no registered texture", batchIndex)}
	}

	r.uploadTexture(r.textureIds[batchIndex], width, height, pixels, mipmap, format, false)
	return batchIndex, nil
}

func (r *Renderer) nextFreeTextureBatch() int {

	for ; r.nextTextureBatch < TextureGroupSize; r.nextTextureBatch++ {
		if !r.textureAssigned[r.nextTextureBatch] {
			return r.nextTextureBatch
		}
	}

	return -1
}

func (r *Renderer) uploadTexture(texId uint32, width, height int32, pixels []byte, mipmap bool, format gpu.PixelFormat, setParams bool) {

	// Upload through unit 0, the texture group batches rebind their own units on submit
	r.dev.ActiveTexture(0)
	r.dev.BindTexture2D(texId)

	if setParams {

		minFilter := gpu.TextureFilter_Linear
		if mipmap {
			minFilter = gpu.TextureFilter_LinearMipmapLinear
		}

		r.dev.TexParams2D(gpu.TextureWrap_Repeat, minFilter, gpu.TextureFilter_Linear)
	}

	r.dev.TexImage2D(width, height, format, pixels)
	if mipmap {
		r.dev.GenerateMipmap2D()
	}
}

func checkPixels(width, height int32, pixels []byte, format gpu.PixelFormat) error {

	if len(pixels) == 0 {
		return &gpuerr.InvalidArgumentError{Arg: "pixels", Reason: "no pixel data"}
	}

	if width <= 0 || height <= 0 {
		return &gpuerr.InvalidArgumentError{Arg: "size", Reason: fmt.Sprintf("%dx%d is not a valid texture size", width, height)}
	}

	if format.Channels() == 0 {
		return &gpuerr.InvalidArgumentError{Arg: "format", Reason: fmt.Sprintf("unknown pixel format %d", format)}
	}

	if need := int(width) * int(height) * format.Channels(); len(pixels) < need {
		return &gpuerr.InvalidArgumentError{Arg: "pixels", Reason: fmt.Sprintf("%d bytes is less than the %d needed for %dx%d", len(pixels), need, width, height)}
	}

	return nil
}
