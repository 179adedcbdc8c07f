package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/youruser/hexcard/internal/util"
)

// Source yields encoded image bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// BytesSource serves an in-memory upload.
type BytesSource []byte

func (b BytesSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// FileSource reads an image file from disk.
type FileSource string

func (f FileSource) Open(context.Context) (io.ReadCloser, error) {
	fp, err := os.Open(string(f))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", string(f), err)
	}
	return fp, nil
}

// URLSource downloads an image over HTTP.
type URLSource struct {
	URL     string
	Timeout time.Duration
}

func (u URLSource) Open(ctx context.Context) (io.ReadCloser, error) {
	body, err := util.GetBytes(ctx, u.URL, u.Timeout)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// ImageSource wraps an already decoded image. LoadImages hands it back
// without re-encoding.
type ImageSource struct {
	Image image.Image
}

func (s ImageSource) Open(context.Context) (io.ReadCloser, error) {
	if s.Image == nil {
		return nil, errors.New("empty image source")
	}
	b, err := EncodePNG(s.Image)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
