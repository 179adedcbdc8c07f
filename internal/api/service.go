package api

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/youruser/hexcard/internal/config"
	imagepkg "github.com/youruser/hexcard/internal/image"
	"github.com/youruser/hexcard/internal/validate"
)

// Service composes cards against one background, fetched on first use and
// kept afterwards.
type Service struct {
	cfg      config.Config
	bgSource imagepkg.Source

	mu         sync.RWMutex
	background image.Image
}

func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg, bgSource: cfg.BackgroundSource()}
}

func (s *Service) cachedBackground() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *Service) backgroundSource() imagepkg.Source {
	if bg := s.cachedBackground(); bg != nil {
		return imagepkg.ImageSource{Image: bg}
	}
	return s.bgSource
}

func (s *Service) keepBackground(bg image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.background == nil {
		s.background = bg
	}
}

// Background returns the decoded background image.
func (s *Service) Background(ctx context.Context) (image.Image, error) {
	if bg := s.cachedBackground(); bg != nil {
		return bg, nil
	}
	bg, err := imagepkg.LoadImage(ctx, s.cfg.LoadTimeout, "background", s.bgSource)
	if err != nil {
		return nil, err
	}
	s.keepBackground(bg)
	return bg, nil
}

// Compose validates in, loads both images and returns the cleaned card text
// with the card PNG.
func (s *Service) Compose(ctx context.Context, in validate.Input, qr bool) (imagepkg.Card, []byte, error) {
	card, err := validate.Validate(in, validate.Options{
		MaxPhotoBytes:  s.cfg.MaxUploadBytes,
		MaxPhotoPixels: s.cfg.MaxPhotoPixels,
	})
	if err != nil {
		return imagepkg.Card{}, nil, err
	}

	bg, photo, err := imagepkg.LoadImages(ctx, s.cfg.LoadTimeout, s.backgroundSource(), imagepkg.BytesSource(in.Photo))
	if err != nil {
		return imagepkg.Card{}, nil, err
	}
	s.keepBackground(bg)

	layout := imagepkg.LayoutFor(bg, s.cfg.Width)
	layout.QR = qr

	out, err := imagepkg.Compose(bg, photo, card, layout)
	if err != nil {
		return imagepkg.Card{}, nil, err
	}
	b, err := imagepkg.EncodePNG(out)
	if err != nil {
		return imagepkg.Card{}, nil, fmt.Errorf("compose: %w", err)
	}
	return card, b, nil
}
