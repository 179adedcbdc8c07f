package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

const (
	DefaultBackgroundWidth  = 1080
	DefaultBackgroundHeight = 1350
)

var (
	gradientTop    = color.NRGBA{R: 0x12, G: 0x2b, B: 0x4a, A: 0xff}
	gradientBottom = color.NRGBA{R: 0x05, G: 0x0b, B: 0x18, A: 0xff}
	wordmarkColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}
)

// DefaultBackground is the generated backdrop used when no background image
// is configured.
func DefaultBackground(w, h int) image.Image {
	dc := gg.NewContext(w, h)

	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, gradientTop)
	grad.AddColorStop(1, gradientBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	if loadFonts() != nil {
		return dc.Image()
	}
	size := math.Max(minTextSize, float64(h)*0.05)
	face, err := newFace(fontBold, size)
	if err != nil {
		return dc.Image()
	}
	dc.SetFontFace(face)
	dc.SetColor(wordmarkColor)
	dc.DrawStringAnchored("HEXCARD", float64(w)/2, float64(h)*0.08, 0.5, 0.5)

	return dc.Image()
}
