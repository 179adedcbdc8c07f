package imagepkg

import (
	"image"
	"math"

	"github.com/fogleman/gg"
)

// HexagonPoints returns the six vertices of a regular hexagon centered on
// (cx, cy) with circumradius r. With rotation 0 the first vertex points
// straight up and the rest follow clockwise in image coordinates.
func HexagonPoints(cx, cy, r, rotation float64) []gg.Point {
	if r < 0 {
		r = 0
	}
	points := make([]gg.Point, 6)
	for i := range points {
		a := rotation - math.Pi/2 + float64(i)*math.Pi/3
		points[i] = gg.Point{
			X: cx + r*math.Cos(a),
			Y: cy + r*math.Sin(a),
		}
	}
	return points
}

// HexagonBounds is the smallest integer rectangle holding every vertex.
func HexagonBounds(cx, cy, r, rotation float64) image.Rectangle {
	points := HexagonPoints(cx, cy, r, rotation)
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	// rounding noise from cos/sin must not grow the box by a whole pixel
	const eps = 1e-9
	return image.Rect(
		int(math.Floor(minX+eps)),
		int(math.Floor(minY+eps)),
		int(math.Ceil(maxX-eps)),
		int(math.Ceil(maxY-eps)),
	)
}

// hexagonPath traces the hexagon as a closed sub-path on dc.
func hexagonPath(dc *gg.Context, cx, cy, r, rotation float64) {
	dc.NewSubPath()
	for i, p := range HexagonPoints(cx, cy, r, rotation) {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}
