package compositor

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Composite blends fg over bg in place with the "over" operator.
// fg's top-left pixel lands on bg at pos, which may be negative; pixels
// falling outside bg and fully transparent fg pixels are skipped. opacity
// scales the foreground alpha and is clamped to [0, 1].
func Composite(bg *image.NRGBA, fg image.Image, opacity float64, pos image.Point) {
	opacity = max(0, min(1, opacity))
	src := imaging.Clone(fg)
	srcBounds := src.Bounds()
	dstBounds := bg.Bounds()

	for y := 0; y < srcBounds.Dy(); y++ {
		for x := 0; x < srcBounds.Dx(); x++ {
			bgX := dstBounds.Min.X + x + pos.X
			bgY := dstBounds.Min.Y + y + pos.Y
			if !(image.Point{bgX, bgY}).In(dstBounds) {
				continue
			}

			fgIdx := src.PixOffset(srcBounds.Min.X+x, srcBounds.Min.Y+y)
			bgIdx := bg.PixOffset(bgX, bgY)

			fgAlpha := float64(src.Pix[fgIdx+3]) / 255
			if fgAlpha == 0 {
				continue
			}
			bgAlpha := float64(bg.Pix[bgIdx+3]) / 255

			weight := fgAlpha * opacity
			newAlpha := weight + bgAlpha*(1-weight)
			if newAlpha == 0 {
				continue
			}

			for channel := 0; channel < 3; channel++ {
				fgValue := float64(src.Pix[fgIdx+channel])
				bgValue := float64(bg.Pix[bgIdx+channel])
				newValue := (fgValue*weight + bgValue*bgAlpha*(1-weight)) / newAlpha
				bg.Pix[bgIdx+channel] = uint8(math.Round(newValue))
			}
			bg.Pix[bgIdx+3] = uint8(math.Round(newAlpha * 255))
		}
	}
}

// Over returns a copy of bg with fg composited on top, leaving bg untouched
func Over(bg image.Image, fg image.Image, opacity float64, pos image.Point) *image.NRGBA {
	dst := imaging.Clone(bg)
	Composite(dst, fg, opacity, pos)
	return dst
}
