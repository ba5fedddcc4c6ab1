package tracing

import "math"

// DirectedHausdorff returns the largest distance from a point of source to
// its nearest point of target. An empty source gives 0; a non-empty source
// against an empty target gives +Inf.
//
// Brute force O(|source|*|target|); strokes hold at most a few hundred points.
func DirectedHausdorff(source, target Stroke) float64 {
	if len(source) == 0 {
		return 0
	}
	if len(target) == 0 {
		return math.Inf(1)
	}

	worst := 0.0
	for _, s := range source {
		nearest := math.Inf(1)
		for _, t := range target {
			if d := Distance(s, t); d < nearest {
				nearest = d
			}
		}
		if nearest > worst {
			worst = nearest
		}
	}
	return worst
}

// HausdorffDistance is the symmetric Hausdorff distance between a and b
func HausdorffDistance(a, b Stroke) float64 {
	return math.Max(DirectedHausdorff(a, b), DirectedHausdorff(b, a))
}
