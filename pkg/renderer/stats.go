package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Total number of pixels rendered
	CoveredPixels int           // Pixels whose primary ray hit a sphere
	TotalBounces  int           // Reflection rays cast across all pixels
	MaxBounces    int           // Most reflection rays cast for a single pixel
	Duration      time.Duration // Wall time for the whole render
}

// addPixel records one traced pixel
func (s *RenderStats) addPixel(coverage float64, bounces int) {
	s.TotalPixels++
	if coverage > 0 {
		s.CoveredPixels++
	}
	s.TotalBounces += bounces
	s.MaxBounces = max(s.MaxBounces, bounces)
}

// Merge folds the statistics of another region into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.CoveredPixels += other.CoveredPixels
	s.TotalBounces += other.TotalBounces
	s.MaxBounces = max(s.MaxBounces, other.MaxBounces)
}

// Coverage returns the fraction of pixels that hit geometry
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.CoveredPixels) / float64(s.TotalPixels)
}

// AverageBounces returns the mean number of reflection rays per pixel
func (s RenderStats) AverageBounces() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalBounces) / float64(s.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixelCount := bounds.Dx() * bounds.Dy()
	if pixelCount == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(pixelCount)
}
