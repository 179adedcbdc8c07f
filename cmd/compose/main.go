// Command compose builds a card PNG from local files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	imagepkg "github.com/youruser/hexcard/internal/image"
	"github.com/youruser/hexcard/internal/util"
	"github.com/youruser/hexcard/internal/validate"
)

var (
	flagPhoto   string
	flagName    string
	flagPhone   string
	flagBG      string
	flagOut     string
	flagQR      bool
	flagWidth   int
	flagTimeout time.Duration
)

func init() {
	flag.StringVar(&flagPhoto, "photo", "", "photo file to clip into the hexagon")
	flag.StringVar(&flagName, "name", "", "name printed under the photo")
	flag.StringVar(&flagPhone, "phone", "", "phone number printed under the name")
	flag.StringVar(&flagBG, "bg", "", "background image file or http(s) URL (default: generated)")
	flag.StringVar(&flagOut, "out", "hexcard.png", "output PNG file")
	flag.BoolVar(&flagQR, "qr", false, "add a tel: QR code")
	flag.IntVar(&flagWidth, "width", 0, "output width in pixels (0 keeps the background width)")
	flag.DurationVar(&flagTimeout, "timeout", 10*time.Second, "deadline for loading both images")
}

func main() {
	flag.Parse()
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	photo, err := os.ReadFile(flagPhoto)
	if err != nil && flagPhoto != "" {
		return fmt.Errorf("read photo: %w", err)
	}

	card, err := validate.Validate(validate.Input{Name: flagName, Phone: flagPhone, Photo: photo}, validate.Options{})
	if err != nil {
		return err
	}

	bg, img, err := imagepkg.LoadImages(ctx, flagTimeout, backgroundSource(flagBG), imagepkg.BytesSource(photo))
	if err != nil {
		if errors.Is(err, imagepkg.ErrLoadTimeout) {
			return fmt.Errorf("%w (raise -timeout)", err)
		}
		return err
	}

	layout := imagepkg.LayoutFor(bg, flagWidth)
	layout.QR = flagQR
	out, err := imagepkg.Compose(bg, img, card, layout)
	if err != nil {
		return err
	}
	b, err := imagepkg.EncodePNG(out)
	if err != nil {
		return err
	}

	if err := util.EnsureParentDir(flagOut); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(flagOut, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flagOut, err)
	}
	log.Printf("wrote %s (%dx%d)", flagOut, layout.Width, layout.Height)
	return nil
}

func backgroundSource(bg string) imagepkg.Source {
	switch {
	case bg == "":
		return imagepkg.ImageSource{Image: imagepkg.DefaultBackground(imagepkg.DefaultBackgroundWidth, imagepkg.DefaultBackgroundHeight)}
	case strings.HasPrefix(bg, "http://"), strings.HasPrefix(bg, "https://"):
		return imagepkg.URLSource{URL: bg, Timeout: flagTimeout}
	default:
		return imagepkg.FileSource(bg)
	}
}
