package imagepkg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrLoadTimeout is returned when the images did not load before the
// deadline.
var ErrLoadTimeout = errors.New("image load timed out")

// LoadError names the image that failed to load.
type LoadError struct {
	Which string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Which, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadImages loads the background and the photo concurrently and waits for
// both. The first failure cancels the other load. A non-positive timeout
// means only ctx bounds the wait.
func LoadImages(ctx context.Context, timeout time.Duration, bg, photo Source) (image.Image, image.Image, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var bgImg, photoImg image.Image
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := load(gctx, "background", bg)
		bgImg = img
		return err
	})
	g.Go(func() error {
		img, err := load(gctx, "photo", photo)
		photoImg = img
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return bgImg, photoImg, nil
}

// LoadImage loads a single image under the same deadline rules as
// LoadImages. which names it in errors.
func LoadImage(ctx context.Context, timeout time.Duration, which string, src Source) (image.Image, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return load(ctx, which, src)
}

type loadResult struct {
	img image.Image
	err error
}

// load decodes src off the calling goroutine so a stalled reader or decoder
// cannot hold the caller past ctx.
func load(ctx context.Context, which string, src Source) (image.Image, error) {
	if src == nil {
		return nil, &LoadError{Which: which, Err: errors.New("no source")}
	}
	if s, ok := src.(ImageSource); ok && s.Image != nil {
		return s.Image, nil
	}

	done := make(chan loadResult, 1)
	go func() {
		rc, err := src.Open(ctx)
		if err != nil {
			done <- loadResult{err: err}
			return
		}
		defer rc.Close()
		img, err := DecodeImage(rc)
		done <- loadResult{img: img, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, &LoadError{Which: which, Err: ctxError(ctxErr)}
			}
			return nil, &LoadError{Which: which, Err: res.err}
		}
		return res.img, nil
	case <-ctx.Done():
		return nil, &LoadError{Which: which, Err: ctxError(ctx.Err())}
	}
}

func ctxError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrLoadTimeout
	}
	return err
}
