package imagepkg

import (
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const ellipsis = "…"

var (
	fontsOnce   sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font
	fontsErr    error
)

// parsed fonts are shared; faces are not safe for concurrent use and are
// created per composition
func loadFonts() error {
	fontsOnce.Do(func() {
		if fontRegular, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", fontsErr)
			return
		}
		if fontBold, fontsErr = opentype.Parse(gobold.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %.1fpt face: %w", size, err)
	}
	return face, nil
}

// fitText picks the largest face, shrinking in 10% steps from size down to
// minSize, whose rendering of text fits maxWidth. When even minSize is too
// wide the text is cut and ends in an ellipsis. The face is left set on dc.
func fitText(dc *gg.Context, f *opentype.Font, text string, size, minSize, maxWidth float64) (string, error) {
	if minSize <= 0 {
		minSize = minTextSize
	}
	if size < minSize {
		size = minSize
	}

	for {
		face, err := newFace(f, size)
		if err != nil {
			return "", err
		}
		dc.SetFontFace(face)
		if w, _ := dc.MeasureString(text); w <= maxWidth {
			return text, nil
		}
		if size == minSize {
			break
		}
		size *= 0.9
		if size < minSize {
			size = minSize
		}
	}

	return truncate(dc, text, maxWidth), nil
}

func truncate(dc *gg.Context, text string, maxWidth float64) string {
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := string(runes[:n]) + ellipsis
		if w, _ := dc.MeasureString(s); w <= maxWidth {
			return s
		}
	}
	return ellipsis
}

// drawText fits text and draws it centered on x with its baseline at y,
// shadow first.
func drawText(dc *gg.Context, l Layout, f *opentype.Font, text string, size, y float64) error {
	if text == "" {
		return nil
	}
	fitted, err := fitText(dc, f, text, size, l.MinTextSize, l.TextMaxWidth)
	if err != nil {
		return err
	}

	x := l.Center.X
	if l.ShadowColor != nil && l.ShadowOffset > 0 {
		dc.SetColor(l.ShadowColor)
		dc.DrawStringAnchored(fitted, x+l.ShadowOffset, y+l.ShadowOffset, 0.5, 0)
	}
	dc.SetColor(l.TextColor)
	dc.DrawStringAnchored(fitted, x, y, 0.5, 0)
	return nil
}
