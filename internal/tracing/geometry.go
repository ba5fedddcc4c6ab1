// Package tracing scores freehand strokes against reference stroke paths.
//
// User input arrives in canvas pixels and is normalized into the unit square
// before it is compared to references, which are authored in that space.
package tracing

import "math"

// Epsilon is the span below which a bounding box axis counts as degenerate
const Epsilon = 1e-9

// Point is a 2D coordinate, in pixels or in normalized 0-1 space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is a sequence of points in drawing order
type Stroke []Point

// Distance returns the Euclidean distance between a and b
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// clamp maps NaN to lo
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// unit places v within [lo,hi] as a fraction of the span. Spans too wide
// for a float64 are measured at half scale.
func unit(v, lo, hi float64) float64 {
	span := hi - lo
	if math.IsInf(span, 0) {
		v, lo, hi = v/2, lo/2, hi/2
		span = hi - lo
	}
	return clamp((v-lo)/span, 0, 1)
}

// NormalizeStroke rescales stroke into [0,1] along each axis using the
// stroke's own bounding box. With positive bounds, points are first clamped
// into [0,boundWidth]x[0,boundHeight]. An axis whose span is within Epsilon
// collapses to 0.5.
func NormalizeStroke(stroke Stroke, boundWidth, boundHeight float64) Stroke {
	if len(stroke) == 0 {
		return Stroke{}
	}

	clampToBounds := boundWidth > 0 && boundHeight > 0
	clamped := make(Stroke, len(stroke))
	for i, p := range stroke {
		if clampToBounds {
			p = Point{X: clamp(p.X, 0, boundWidth), Y: clamp(p.Y, 0, boundHeight)}
		}
		clamped[i] = p
	}

	minX, maxX := clamped[0].X, clamped[0].X
	minY, maxY := clamped[0].Y, clamped[0].Y
	for _, p := range clamped[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	width := maxX - minX
	height := maxY - minY

	out := make(Stroke, len(clamped))
	for i, p := range clamped {
		out[i] = Point{X: 0.5, Y: 0.5}
		if width > Epsilon {
			out[i].X = unit(p.X, minX, maxX)
		}
		if height > Epsilon {
			out[i].Y = unit(p.Y, minY, maxY)
		}
	}
	return out
}

// Denormalize maps a normalized stroke onto a canvas of the given size
func Denormalize(stroke Stroke, canvasWidth, canvasHeight float64) Stroke {
	out := make(Stroke, len(stroke))
	for i, p := range stroke {
		out[i] = Point{X: p.X * canvasWidth, Y: p.Y * canvasHeight}
	}
	return out
}

// PathLength returns the total polyline length of stroke
func PathLength(stroke Stroke) float64 {
	total := 0.0
	for i := 1; i < len(stroke); i++ {
		total += Distance(stroke[i-1], stroke[i])
	}
	return total
}

// PointAtProgress returns the point a fraction progress (clamped to [0,1])
// of the way along stroke, measured by arc length. Used to place the hint
// marker when a learner stalls on a stroke.
func PointAtProgress(stroke Stroke, progress float64) Point {
	switch len(stroke) {
	case 0:
		return Point{}
	case 1:
		return stroke[0]
	}

	total := PathLength(stroke)
	if total <= Epsilon {
		return stroke[0]
	}

	target := clamp(progress, 0, 1) * total
	traversed := 0.0
	for i := 0; i < len(stroke)-1; i++ {
		seg := Distance(stroke[i], stroke[i+1])
		if seg <= Epsilon {
			continue
		}
		if target <= traversed+seg {
			t := (target - traversed) / seg
			start, end := stroke[i], stroke[i+1]
			return Point{
				X: start.X + (end.X-start.X)*t,
				Y: start.Y + (end.Y-start.Y)*t,
			}
		}
		traversed += seg
	}
	return stroke[len(stroke)-1]
}

// IsDegenerate reports whether stroke has too few points to be compared.
// Callers should discard such attempts instead of scoring them.
func IsDegenerate(stroke Stroke) bool {
	return len(stroke) < 2
}
