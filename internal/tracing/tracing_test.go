package tracing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(points ...Point) ReferenceStroke {
	return ReferenceStroke{Points: points, StrokeIndex: 0, StrokeCount: 1}
}

func TestNormalizeStroke_UnitRange(t *testing.T) {
	raw := Stroke{{12, 24}, {64, 90}, {120, 180}}

	out := NormalizeStroke(raw, 200, 200)

	require.Len(t, out, len(raw))
	for _, p := range out {
		assert.True(t, p.X >= 0 && p.X <= 1, "x out of range: %v", p.X)
		assert.True(t, p.Y >= 0 && p.Y <= 1, "y out of range: %v", p.Y)
	}
	assert.Equal(t, Point{0, 0}, out[0])
	assert.Equal(t, Point{1, 1}, out[2])
}

func TestNormalizeStroke_ClampsToCanvas(t *testing.T) {
	out := NormalizeStroke(Stroke{{-50, 10}, {50, 30}, {500, 50}}, 100, 100)

	assert.Equal(t, Point{0, 0}, out[0])
	assert.InDelta(t, 0.5, out[1].X, 1e-12)
	assert.InDelta(t, 0.5, out[1].Y, 1e-12)
	assert.Equal(t, Point{1, 1}, out[2])
}

func TestNormalizeStroke_NonPositiveBoundsDisableClamping(t *testing.T) {
	out := NormalizeStroke(Stroke{{-50, 0}, {150, 10}}, 0, 100)

	assert.Equal(t, Point{0, 0}, out[0])
	assert.Equal(t, Point{1, 1}, out[1])
}

func TestNormalizeStroke_ExtremeFiniteSpan(t *testing.T) {
	out := NormalizeStroke(Stroke{{-1e308, 0}, {0, 0.5}, {1e308, 1}}, 0, 0)

	require.Len(t, out, 3)
	for _, p := range out {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "NaN in %v", out)
		assert.True(t, p.X >= 0 && p.X <= 1, "x out of range: %v", p.X)
	}
	assert.Equal(t, Point{0, 0}, out[0])
	assert.InDelta(t, 0.5, out[1].X, 1e-12)
	assert.Equal(t, Point{1, 1}, out[2])

	res := CompareStroke(Stroke{{-1e308, 0}, {1e308, 1}}, ref(Point{0, 0}, Point{1, 1}), 0, 0)
	assert.InDelta(t, 0.0, res.HausdorffDistance, 1e-12)
	assert.True(t, res.IsCorrect)
}

func TestNormalizeStroke_Degenerate(t *testing.T) {
	assert.Empty(t, NormalizeStroke(nil, 100, 100))

	single := NormalizeStroke(Stroke{{40, 70}}, 100, 100)
	assert.Equal(t, Stroke{{0.5, 0.5}}, single)

	vertical := NormalizeStroke(Stroke{{10, 0}, {10, 50}, {10, 100}}, 100, 100)
	for _, p := range vertical {
		assert.Equal(t, 0.5, p.X)
		assert.False(t, math.IsNaN(p.Y))
	}
	assert.Equal(t, 0.0, vertical[0].Y)
	assert.Equal(t, 1.0, vertical[2].Y)
}

func TestNormalizeStroke_Idempotent(t *testing.T) {
	once := NormalizeStroke(Stroke{{3, 9}, {27, 1}, {14, 44}}, 0, 0)
	twice := NormalizeStroke(once, 1, 1)

	for i := range once {
		assert.InDelta(t, once[i].X, twice[i].X, 1e-12)
		assert.InDelta(t, once[i].Y, twice[i].Y, 1e-12)
	}
}

func TestHausdorffDistance(t *testing.T) {
	s := Stroke{{0, 0}, {0.5, 0.2}, {1, 1}}
	assert.Equal(t, 0.0, HausdorffDistance(s, s))

	a := Stroke{{0, 0}, {1, 1}}
	b := Stroke{{0, 1}, {1, 0}}
	assert.Greater(t, HausdorffDistance(a, b), 0.0)

	c := Stroke{{0, 0}, {1, 0.3}}
	d := Stroke{{0.2, 0.2}, {0.7, 1}, {0.1, 0.9}}
	assert.Equal(t, HausdorffDistance(c, d), HausdorffDistance(d, c))
}

func TestDirectedHausdorff_EmptyContracts(t *testing.T) {
	s := Stroke{{0, 0}, {1, 1}}

	assert.Equal(t, 0.0, DirectedHausdorff(nil, s))
	assert.True(t, math.IsInf(DirectedHausdorff(s, nil), 1))
	assert.Equal(t, 0.0, DirectedHausdorff(nil, nil))
}

func TestDirectedHausdorff_IsAsymmetric(t *testing.T) {
	short := Stroke{{0, 0}}
	long := Stroke{{0, 0}, {0, 1}}

	assert.Equal(t, 0.0, DirectedHausdorff(short, long))
	assert.Equal(t, 1.0, DirectedHausdorff(long, short))
	assert.Equal(t, 1.0, HausdorffDistance(short, long))
}

func TestScoreForDistance_Boundaries(t *testing.T) {
	assert.Equal(t, 1.0, ScoreForDistance(0))
	assert.InDelta(t, 0.5, ScoreForDistance(0.15), 1e-12)
	assert.InDelta(t, 0.0, ScoreForDistance(0.3), 1e-12)
	assert.Equal(t, 0.0, ScoreForDistance(0.9))
	assert.Equal(t, 0.0, ScoreForDistance(math.Inf(1)))

	prev := 1.0
	for d := 0.0; d <= 0.5; d += 0.01 {
		s := ScoreForDistance(d)
		assert.LessOrEqual(t, s, prev)
		assert.GreaterOrEqual(t, s, 0.0)
		prev = s
	}
}

func TestCompareStroke_EndToEnd(t *testing.T) {
	res := CompareStroke(Stroke{{0, 0}, {100, 100}}, ref(Point{0, 0}, Point{1, 1}), 100, 100)

	assert.InDelta(t, 0.0, res.HausdorffDistance, 1e-12)
	assert.InDelta(t, 1.0, res.Score, 1e-12)
	assert.True(t, res.IsCorrect)
}

func TestCompareStroke_PoorMatch(t *testing.T) {
	// Anti-diagonal against the main diagonal: every endpoint is 1 away.
	res := CompareStroke(Stroke{{0, 100}, {100, 0}}, ref(Point{0, 0}, Point{1, 1}), 100, 100)

	assert.InDelta(t, 1.0, res.HausdorffDistance, 1e-12)
	assert.Equal(t, 0.0, res.Score)
	assert.False(t, res.IsCorrect)
}

func TestCompareStroke_CorrectThreshold(t *testing.T) {
	// A horizontal user stroke collapses to y = 0.5.
	reference := ref(Point{0, 0.1}, Point{1, 0.1})
	res := CompareStroke(Stroke{{0, 0}, {100, 0}}, reference, 100, 100)

	assert.InDelta(t, 0.4, res.HausdorffDistance, 1e-12)
	assert.False(t, res.IsCorrect)

	reference = ref(Point{0, 0.45}, Point{1, 0.45})
	res = CompareStroke(Stroke{{0, 0}, {100, 0}}, reference, 100, 100)
	assert.InDelta(t, 0.05, res.HausdorffDistance, 1e-12)
	assert.InDelta(t, 1-0.05/0.3, res.Score, 1e-12)
	assert.True(t, res.IsCorrect)
}

func TestCompareStroke_SinglePointIsFinite(t *testing.T) {
	res := CompareStroke(Stroke{{30, 30}}, ref(Point{0, 0}, Point{1, 1}), 100, 100)

	assert.False(t, math.IsNaN(res.Score))
	assert.False(t, math.IsInf(res.HausdorffDistance, 0))
	assert.True(t, IsDegenerate(Stroke{{30, 30}}))
	assert.False(t, IsDegenerate(Stroke{{0, 0}, {1, 1}}))
}

func TestCompareStroke_EmptyUserStroke(t *testing.T) {
	res := CompareStroke(nil, ref(Point{0, 0}, Point{1, 1}), 100, 100)

	assert.Equal(t, 0.0, res.Score)
	assert.False(t, res.IsCorrect)
}

func TestCompareCharacter(t *testing.T) {
	refs := []ReferenceStroke{
		{Points: Stroke{{0, 0}, {1, 1}}, StrokeIndex: 0, StrokeCount: 2},
		{Points: Stroke{{0, 1}, {1, 0}}, StrokeIndex: 1, StrokeCount: 2},
	}

	good := []Stroke{{{0, 0}, {100, 100}}, {{0, 100}, {100, 0}}}
	res, err := CompareCharacter(good, refs, 100, 100)
	require.NoError(t, err)
	assert.True(t, res.AllCorrect)
	assert.InDelta(t, 1.0, res.OverallScore, 1e-12)
	assert.Len(t, res.Strokes, 2)

	mixed := []Stroke{{{0, 0}, {100, 100}}, {{0, 0}, {100, 100}}}
	res, err = CompareCharacter(mixed, refs, 100, 100)
	require.NoError(t, err)
	assert.False(t, res.AllCorrect)
	assert.InDelta(t, 0.5, res.OverallScore, 1e-12)

	_, err = CompareCharacter(good[:1], refs, 100, 100)
	assert.True(t, errors.Is(err, ErrStrokeCountMismatch))

	_, err = CompareCharacter(nil, nil, 100, 100)
	assert.True(t, errors.Is(err, ErrNoStrokes))
}

func TestPointAtProgress(t *testing.T) {
	path := Stroke{{0, 0}, {10, 0}, {10, 10}}

	assert.Equal(t, Point{0, 0}, PointAtProgress(path, 0))
	assert.Equal(t, Point{10, 0}, PointAtProgress(path, 0.5))
	assert.Equal(t, Point{10, 5}, PointAtProgress(path, 0.75))
	assert.Equal(t, Point{10, 10}, PointAtProgress(path, 1))
	assert.Equal(t, Point{10, 10}, PointAtProgress(path, 7))

	assert.Equal(t, Point{}, PointAtProgress(nil, 0.5))
	assert.Equal(t, Point{3, 3}, PointAtProgress(Stroke{{3, 3}, {3, 3}}, 0.5))
}

func TestDenormalize(t *testing.T) {
	out := Denormalize(Stroke{{0.5, 0.25}}, 200, 400)
	assert.Equal(t, Stroke{{100, 100}}, out)
	assert.InDelta(t, 20.0, PathLength(Stroke{{0, 0}, {10, 0}, {10, 10}}), 1e-12)
}
