package imagepkg

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout(400, 500)

	require.Equal(t, 400, l.Width)
	require.Equal(t, 500, l.Height)
	require.InDelta(t, 200, l.Center.X, 1e-9)
	require.InDelta(t, 200, l.Center.Y, 1e-9)
	require.InDelta(t, 112, l.Radius, 1e-9)
	require.InDelta(t, 372, l.NameY, 1e-9)
	require.InDelta(t, 412, l.PhoneY, 1e-9)
	require.Less(t, l.PhoneY, float64(l.Height))
	require.Greater(t, l.NameY, l.Center.Y+l.Radius)
	require.False(t, l.QR)
}

func TestDefaultLayoutTinyCanvas(t *testing.T) {
	l := DefaultLayout(3, 3)
	require.GreaterOrEqual(t, l.Radius, 1.0)
	require.Equal(t, float64(minTextSize), l.NameSize)
	require.Equal(t, float64(minTextSize), l.PhoneSize)
}

func TestLayoutFor(t *testing.T) {
	bg := imaging.New(800, 1000, color.Black)

	l := LayoutFor(bg, 0)
	require.Equal(t, 800, l.Width)
	require.Equal(t, 1000, l.Height)

	l = LayoutFor(bg, 400)
	require.Equal(t, 400, l.Width)
	require.Equal(t, 500, l.Height)
}
