package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// ErrDecode is returned when bytes cannot be decoded as an image.
var ErrDecode = errors.New("decode image")

// Compose draws a card: background, photo clipped to the hexagon, the
// hexagon border, then name and phone. The QR badge goes on top when the
// layout asks for it.
func Compose(bg, photo image.Image, card Card, l Layout) (image.Image, error) {
	if bg == nil {
		return nil, errors.New("compose: missing background image")
	}
	if photo == nil {
		return nil, errors.New("compose: missing photo")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("compose: invalid canvas %dx%d", l.Width, l.Height)
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	drawBackground(canvas, bg)

	dc := gg.NewContextForRGBA(canvas)
	drawPhoto(dc, photo, l)

	dc.ResetClip()
	hexagonPath(dc, l.Center.X, l.Center.Y, l.Radius, l.Rotation)
	dc.SetLineWidth(l.BorderWidth)
	dc.SetColor(l.BorderColor)
	dc.Stroke()

	if err := drawText(dc, l, fontBold, card.Name, l.NameSize, l.NameY); err != nil {
		return nil, fmt.Errorf("compose: name: %w", err)
	}
	if err := drawText(dc, l, fontRegular, card.Phone, l.PhoneSize, l.PhoneY); err != nil {
		return nil, fmt.Errorf("compose: phone: %w", err)
	}

	if l.QR && card.Phone != "" {
		if err := drawQR(dc, card.Phone, l); err != nil {
			return nil, fmt.Errorf("compose: %w", err)
		}
	}

	return dc.Image(), nil
}

func drawBackground(canvas *image.RGBA, bg image.Image) {
	b := canvas.Bounds()
	if bg.Bounds().Dx() != b.Dx() || bg.Bounds().Dy() != b.Dy() {
		bg = imaging.Resize(bg, b.Dx(), b.Dy(), imaging.Lanczos)
	}
	draw.Draw(canvas, b, bg, bg.Bounds().Min, draw.Src)
}

// drawPhoto cover-fits the photo to the hexagon's bounding box and paints it
// through a hexagon clip.
func drawPhoto(dc *gg.Context, photo image.Image, l Layout) {
	box := l.HexagonBounds()
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return
	}
	fitted := imaging.Fill(photo, box.Dx(), box.Dy(), imaging.Center, imaging.Lanczos)

	hexagonPath(dc, l.Center.X, l.Center.Y, l.Radius, l.Rotation)
	dc.Clip()
	dc.DrawImage(fitted, box.Min.X, box.Min.Y)
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeImage decodes any format imaging understands, honoring EXIF
// orientation.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
