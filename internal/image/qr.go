package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	// validate png decode
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		return nil, fmt.Errorf("decode qr png: %w", err)
	}
	return pngBytes, nil
}

// GenerateQRImage returns an image.Image for further composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}

// TelURI turns a display phone number into a tel: URI, keeping a leading
// plus and the digits.
func TelURI(phone string) string {
	var sb strings.Builder
	sb.WriteString("tel:")
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '+' && i == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// drawQR puts a tel: QR badge in the top-right corner.
func drawQR(dc *gg.Context, phone string, l Layout) error {
	code, err := GenerateQRImage(TelURI(phone), l.QRSize)
	if err != nil {
		return fmt.Errorf("qr badge: %w", err)
	}
	x := l.Width - l.QRMargin - code.Bounds().Dx()
	dc.ResetClip()
	dc.DrawImage(code, x, l.QRMargin)
	return nil
}
