package imagepkg

import (
	"image"
	"math"
	"testing"

	"github.com/fogleman/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestHexagonPointsPointyTop(t *testing.T) {
	s := 10 * math.Sqrt(3) / 2
	want := []gg.Point{
		{X: 0, Y: -10},
		{X: s, Y: -5},
		{X: s, Y: 5},
		{X: 0, Y: 10},
		{X: -s, Y: 5},
		{X: -s, Y: -5},
	}

	got := HexagonPoints(0, 0, 10, 0)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("hexagon vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestHexagonPointsRegular(t *testing.T) {
	const cx, cy, r = 120.5, 80.25, 37
	for _, rotation := range []float64{0, math.Pi / 6, 1.1} {
		points := HexagonPoints(cx, cy, r, rotation)
		require.Len(t, points, 6)
		for i, p := range points {
			require.InDelta(t, r, math.Hypot(p.X-cx, p.Y-cy), 1e-9, "vertex %d distance to center", i)
			next := points[(i+1)%len(points)]
			require.InDelta(t, r, math.Hypot(next.X-p.X, next.Y-p.Y), 1e-9, "edge %d length", i)
		}
	}
}

func TestHexagonPointsNonPositiveRadius(t *testing.T) {
	for _, r := range []float64{0, -5} {
		for _, p := range HexagonPoints(3, 4, r, 0) {
			require.Equal(t, gg.Point{X: 3, Y: 4}, p)
		}
	}
}

func TestHexagonBounds(t *testing.T) {
	require.Equal(t, image.Rect(56, 50, 144, 150), HexagonBounds(100, 100, 50, 0))

	// flat-top: the box is wider than tall
	flat := HexagonBounds(100, 100, 50, math.Pi/6)
	require.Equal(t, image.Rect(50, 56, 150, 144), flat)
}
