package describer

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// maxCropEdge bounds the long edge of a crop before submission; full-page
// screenshots easily exceed model input limits and resolution beyond this
// adds nothing to the description.
const maxCropEdge = 1024

// cropForModel cuts rect out of img and downscales it so neither edge
// exceeds maxCropEdge.
func cropForModel(img image.Image, rect image.Rectangle) *image.RGBA {
	// Region boxes are zero-based; shift into the source coordinate space.
	src := rect.Add(img.Bounds().Min)

	crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(crop, crop.Bounds(), img, src.Min, draw.Src)

	w, h := crop.Bounds().Dx(), crop.Bounds().Dy()
	long := w
	if h > long {
		long = h
	}
	if long <= maxCropEdge {
		return crop
	}

	scale := float64(maxCropEdge) / float64(long)
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), crop, crop.Bounds(), xdraw.Over, nil)
	return dst
}

// encodePNG serializes the crop for the API payload.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
