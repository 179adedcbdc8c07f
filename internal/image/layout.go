package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Card holds the text printed under the photo.
type Card struct {
	Name  string
	Phone string
}

// Layout places every element of a composed card, in output pixels.
type Layout struct {
	Width  int
	Height int

	Center      gg.Point
	Radius      float64
	Rotation    float64
	BorderWidth float64
	BorderColor color.Color

	NameY        float64
	PhoneY       float64
	NameSize     float64
	PhoneSize    float64
	MinTextSize  float64
	TextMaxWidth float64
	TextColor    color.Color
	ShadowColor  color.Color
	ShadowOffset float64

	QR       bool
	QRSize   int
	QRMargin int
}

const minTextSize = 10

// DefaultLayout derives the card geometry from the canvas size.
func DefaultLayout(w, h int) Layout {
	fw, fh := float64(w), float64(h)
	short := math.Min(fw, fh)

	radius := math.Max(1, 0.28*short)
	cy := fh * 0.40
	nameSize := math.Max(minTextSize, fh*0.06)
	phoneSize := math.Max(minTextSize, fh*0.045)
	nameY := cy + radius + fh*0.12

	return Layout{
		Width:  w,
		Height: h,

		Center:      gg.Point{X: fw / 2, Y: cy},
		Radius:      radius,
		BorderWidth: math.Max(2, radius*0.04),
		BorderColor: color.White,

		NameY:        nameY,
		PhoneY:       nameY + fh*0.08,
		NameSize:     nameSize,
		PhoneSize:    phoneSize,
		MinTextSize:  minTextSize,
		TextMaxWidth: fw * 0.86,
		TextColor:    color.White,
		ShadowColor:  color.NRGBA{A: 0x99},
		ShadowOffset: math.Max(1, fh/400),

		QRSize:   int(math.Max(32, 0.16*short)),
		QRMargin: int(math.Max(4, 0.03*short)),
	}
}

// LayoutFor sizes the canvas after the background. A positive width forces
// the output width and keeps the background's aspect ratio.
func LayoutFor(bg image.Image, width int) Layout {
	b := bg.Bounds()
	w, h := b.Dx(), b.Dy()
	if width > 0 && w > 0 && width != w {
		h = int(math.Round(float64(h) * float64(width) / float64(w)))
		w = width
	}
	if h < 1 {
		h = 1
	}
	return DefaultLayout(w, h)
}

// HexagonBounds of the layout's photo region.
func (l Layout) HexagonBounds() image.Rectangle {
	return HexagonBounds(l.Center.X, l.Center.Y, l.Radius, l.Rotation)
}
