package imageproc

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// Input geometry of the classifier.
const (
	ImageSize = 224
	Channels  = 3
)

// ErrEmptyBounds is returned for images with no pixels.
var ErrEmptyBounds = errors.New("image has empty bounds")

// Tensor is a dense float32 tensor in row-major order.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// InputShape is the (batch, height, width, channels) shape produced by Preprocess.
func InputShape() []int64 {
	return []int64{1, ImageSize, ImageSize, Channels}
}

// Preprocess stretches img to ImageSize x ImageSize, drops alpha, and scales
// each channel to [0,1]. The aspect ratio is not preserved.
func Preprocess(img image.Image) (Tensor, error) {
	if img == nil || img.Bounds().Empty() {
		return Tensor{}, ErrEmptyBounds
	}
	// imaging always hands back straight (non-premultiplied) NRGBA.
	resized := imaging.Resize(img, ImageSize, ImageSize, imaging.CatmullRom)

	out := make([]float32, ImageSize*ImageSize*Channels)
	i := 0
	for y := range ImageSize {
		row := resized.Pix[y*resized.Stride:]
		for x := range ImageSize {
			px := row[x*4 : x*4+4]
			out[i] = float32(px[0]) / 255.0
			out[i+1] = float32(px[1]) / 255.0
			out[i+2] = float32(px[2]) / 255.0
			i += Channels
		}
	}
	return Tensor{Shape: InputShape(), Data: out}, nil
}
