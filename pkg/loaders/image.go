package loaders

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first: Pixels[y*Width + x]
}

// LoadImage loads an image file and converts it to a Vec3 color array.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported; EXIF orientation is applied.
func LoadImage(filename string) (*ImageData, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}
	return FromImage(img), nil
}

// LoadNRGBA loads an image file as non-premultiplied RGBA, for compositing
func LoadNRGBA(filename string) (*image.NRGBA, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}
	return imaging.Clone(img), nil
}

// FromImage converts any image to a Vec3 color array with channels in [0, 1]
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// At returns the pixel at (x, y) with coordinates clamped to the image
func (d *ImageData) At(x, y int) core.Vec3 {
	x = max(0, min(d.Width-1, x))
	y = max(0, min(d.Height-1, y))
	return d.Pixels[y*d.Width+x]
}

// Bilinear samples the image at normalized coordinates (s, t) in [0, 1],
// with (0, 0) the top-left corner and edges clamped
func (d *ImageData) Bilinear(s, t float64) core.Vec3 {
	if d.Width == 0 || d.Height == 0 {
		return core.Vec3{}
	}

	// Texel centers sit at half-integer coordinates
	fx := s*float64(d.Width) - 0.5
	fy := t*float64(d.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	wx := fx - float64(x0)
	wy := fy - float64(y0)

	top := d.At(x0, y0).Multiply(1 - wx).Add(d.At(x0+1, y0).Multiply(wx))
	bottom := d.At(x0, y0+1).Multiply(1 - wx).Add(d.At(x0+1, y0+1).Multiply(wx))
	return top.Multiply(1 - wy).Add(bottom.Multiply(wy))
}
