package renderer

import (
	"math"

	"github.com/df07/go-sah-raytracer/pkg/core"
)

// Image holds per-pixel color sums. Row 0 is the top of the picture, which
// is camera row j = Height-1.
type Image struct {
	Width           int
	Height          int
	SamplesPerPixel int
	pixels          []core.Vec3
}

// NewImage allocates a black image
func NewImage(width, height, samplesPerPixel int) *Image {
	return &Image{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		pixels:          make([]core.Vec3, width*height),
	}
}

// Row returns the writable sums for camera row j
func (img *Image) Row(j int) []core.Vec3 {
	y := img.Height - 1 - j
	return img.pixels[y*img.Width : (y+1)*img.Width]
}

// Sum returns the accumulated color at column x, image row y (top down)
func (img *Image) Sum(x, y int) core.Vec3 {
	return img.pixels[y*img.Width+x]
}

// RGB returns the 8-bit channels for the pixel at (x, y)
func (img *Image) RGB(x, y int) (r, g, b int) {
	return FormatColor(img.Sum(x, y), img.SamplesPerPixel)
}

// FormatColor averages sum over samplesPerPixel, applies gamma 2 and
// quantizes each channel as int(256 * clamp(c, 0, 0.999)). NaN becomes 0.
func FormatColor(sum core.Vec3, samplesPerPixel int) (r, g, b int) {
	scale := 1.0 / float64(samplesPerPixel)
	return quantize(sum.X * scale), quantize(sum.Y * scale), quantize(sum.Z * scale)
}

func quantize(c float64) int {
	if math.IsNaN(c) || c < 0 {
		c = 0
	}
	c = math.Sqrt(c)
	if c > 0.999 {
		c = 0.999
	}
	return int(256 * c)
}
