// Package assets decodes image files into tightly packed 8-bit RGBA pixels ready for texture upload
package assets

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"runtime"

	"github.com/mandykoh/prism"
	"github.com/pkg/errors"
	"github.com/voiengine/voi/gpu"
	"github.com/voiengine/voi/logging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Image struct {
	Width  int32
	Height int32
	Format gpu.PixelFormat
	// Pix holds Width*Height pixels, rows top to bottom unless flipped on load
	Pix []byte
}

type ImageLoadOptions struct {
	// FlipY puts the bottom row first, which is the row order OpenGL expects
	FlipY bool
	// TryLoadFromCache returns an earlier load of the same path
	TryLoadFromCache bool
	WriteToCache     bool
}

var imageCache = map[string]Image{}

func LoadImage(imgPath string, loadOptions *ImageLoadOptions) (Image, error) {

	if loadOptions == nil {
		loadOptions = &ImageLoadOptions{}
	}

	if loadOptions.TryLoadFromCache {
		if img, ok := imageCache[imgPath]; ok {
			return img, nil
		}
	}

	f, err := os.Open(imgPath)
	if err != nil {
		return Image{}, errors.Wrapf(err, "opening image %s", imgPath)
	}
	defer f.Close()

	img, err := DecodeImage(f, loadOptions.FlipY)
	if err != nil {
		return Image{}, errors.Wrapf(err, "loading image %s", imgPath)
	}

	if loadOptions.WriteToCache {
		imageCache[imgPath] = img
	}

	logging.InfoLog.Printf("Loaded image '%s' (%dx%d)\n", imgPath, img.Width, img.Height)
	return img, nil
}

func LoadImageBytes(data []byte, flipY bool) (Image, error) {
	return DecodeImage(bytes.NewReader(data), flipY)
}

// DecodeImage decodes png, jpeg, gif, bmp, tiff or webp data into non-premultiplied RGBA
func DecodeImage(r io.Reader, flipY bool) (Image, error) {

	decoded, format, err := image.Decode(r)
	if err != nil {
		return Image{}, errors.Wrap(err, "decoding image")
	}

	var nrgba *image.NRGBA
	if n, ok := decoded.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == n.Rect.Dx()*4 {
		nrgba = n
	} else {
		nrgba = prism.ConvertImageToNRGBA(decoded, runtime.NumCPU())
	}

	b := nrgba.Bounds()
	if b.Min != (image.Point{}) || nrgba.Stride != b.Dx()*4 {
		packed := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(packed, packed.Bounds(), nrgba, b.Min, draw.Src)
		nrgba = packed
	}

	if b.Dx() == 0 || b.Dy() == 0 {
		return Image{}, errors.Errorf("%s image has no pixels", format)
	}

	pix := nrgba.Pix
	if flipY {
		pix = flipRows(pix, b.Dx()*4, b.Dy())
	}

	return Image{
		Width:  int32(b.Dx()),
		Height: int32(b.Dy()),
		Format: gpu.PixelFormat_RGBA,
		Pix:    pix,
	}, nil
}

func flipRows(pix []byte, rowLen, rows int) []byte {

	out := make([]byte, len(pix))
	for y := 0; y < rows; y++ {
		copy(out[(rows-1-y)*rowLen:(rows-y)*rowLen], pix[y*rowLen:(y+1)*rowLen])
	}

	return out
}

func ClearImageCache() {
	clear(imageCache)
}
