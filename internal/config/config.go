package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	imagepkg "github.com/youruser/hexcard/internal/image"
)

// Config is the service configuration read from the environment.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	BackgroundPath string        `env:"HEXCARD_BACKGROUND_PATH"`
	BackgroundURL  string        `env:"HEXCARD_BACKGROUND_URL"`
	LoadTimeout    time.Duration `env:"HEXCARD_LOAD_TIMEOUT" envDefault:"10s"`
	FetchTimeout   time.Duration `env:"HEXCARD_FETCH_TIMEOUT" envDefault:"12s"`
	MaxUploadBytes int64         `env:"HEXCARD_MAX_UPLOAD_BYTES" envDefault:"10485760"`
	MaxPhotoPixels int64         `env:"HEXCARD_MAX_PHOTO_PIXELS" envDefault:"40000000"`
	QR             bool          `env:"HEXCARD_QR" envDefault:"false"`
	Width          int           `env:"HEXCARD_WIDTH" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("HEXCARD_MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	if cfg.MaxPhotoPixels <= 0 {
		return Config{}, fmt.Errorf("HEXCARD_MAX_PHOTO_PIXELS must be positive, got %d", cfg.MaxPhotoPixels)
	}
	if cfg.Width < 0 {
		return Config{}, fmt.Errorf("HEXCARD_WIDTH must not be negative, got %d", cfg.Width)
	}
	return cfg, nil
}

// BackgroundSource picks the configured background: a file, then a URL, then
// the generated default.
func (c Config) BackgroundSource() imagepkg.Source {
	switch {
	case c.BackgroundPath != "":
		return imagepkg.FileSource(c.BackgroundPath)
	case c.BackgroundURL != "":
		return imagepkg.URLSource{URL: c.BackgroundURL, Timeout: c.FetchTimeout}
	default:
		return imagepkg.ImageSource{
			Image: imagepkg.DefaultBackground(imagepkg.DefaultBackgroundWidth, imagepkg.DefaultBackgroundHeight),
		}
	}
}
