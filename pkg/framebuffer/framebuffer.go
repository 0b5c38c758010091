// Package framebuffer implements the radiance accumulation buffer shared
// by every rendering strategy. Pixels hold summed, not-yet-normalized
// contributions; normalization happens through Scale.
package framebuffer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"gonum.org/v1/gonum/floats"

	"github.com/jkulda/go-render-bench/pkg/core"
)

// Framebuffer is an addressable 2-D buffer of RGB radiance sums.
// Samples are stored as a flat float64 vector (3 values per pixel) so the
// element-wise merge operations run over a single slice.
type Framebuffer struct {
	width, height int
	samples       []float64
}

// New creates a zeroed framebuffer with the given resolution
func New(width, height int) *Framebuffer {
	return &Framebuffer{
		width:   width,
		height:  height,
		samples: make([]float64, width*height*3),
	}
}

// Setup resizes the buffer to the given resolution and clears it
func (fb *Framebuffer) Setup(width, height int) {
	fb.width = width
	fb.height = height
	fb.samples = make([]float64, width*height*3)
}

// Width returns the horizontal resolution
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the vertical resolution
func (fb *Framebuffer) Height() int { return fb.height }

// Clear zeroes every accumulated sample
func (fb *Framebuffer) Clear() {
	for i := range fb.samples {
		fb.samples[i] = 0
	}
}

// AddColor accumulates a radiance contribution into the pixel at (x, y).
// Out-of-bounds coordinates are ignored so splatting at the image edge
// stays cheap for callers.
func (fb *Framebuffer) AddColor(x, y int, c core.Vec3) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	i := (y*fb.width + x) * 3
	fb.samples[i] += c.X
	fb.samples[i+1] += c.Y
	fb.samples[i+2] += c.Z
}

// At returns the accumulated radiance of the pixel at (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	i := (y*fb.width + x) * 3
	return core.NewVec3(fb.samples[i], fb.samples[i+1], fb.samples[i+2])
}

// Add accumulates another buffer of the same resolution element-wise
func (fb *Framebuffer) Add(other *Framebuffer) error {
	if other.width != fb.width || other.height != fb.height {
		return fmt.Errorf("framebuffer: cannot add %dx%d buffer into %dx%d buffer",
			other.width, other.height, fb.width, fb.height)
	}
	floats.Add(fb.samples, other.samples)
	return nil
}

// Scale multiplies every accumulated sample by factor
func (fb *Framebuffer) Scale(factor float64) {
	floats.Scale(factor, fb.samples)
}

// CopyFrom replaces this buffer's contents with a scaled copy of other
func (fb *Framebuffer) CopyFrom(other *Framebuffer, factor float64) {
	if fb.width != other.width || fb.height != other.height {
		fb.Setup(other.width, other.height)
	}
	copy(fb.samples, other.samples)
	floats.Scale(factor, fb.samples)
}

// ToImage tone-maps the accumulated radiance into an 8-bit RGBA image
// using simple gamma correction
func (fb *Framebuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	invGamma := 1.0 / gamma

	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: toneMapChannel(c.X, invGamma),
				G: toneMapChannel(c.Y, invGamma),
				B: toneMapChannel(c.Z, invGamma),
				A: 255,
			})
		}
	}

	return img
}

func toneMapChannel(v, invGamma float64) uint8 {
	if v < 0 {
		v = 0
	}
	mapped := math.Pow(v, invGamma)
	if mapped > 1 {
		mapped = 1
	}
	return uint8(mapped*255 + 0.5)
}

// Save writes a tone-mapped image to the named file. The encoder is
// chosen by extension: .bmp matches the original tooling, anything else
// is written as PNG.
func (fb *Framebuffer) Save(filename string, gamma float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("framebuffer: creating %s: %w", filename, err)
	}
	defer file.Close()

	img := fb.ToImage(gamma)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".bmp":
		err = bmp.Encode(file, img)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("framebuffer: encoding %s: %w", filename, err)
	}
	return nil
}
