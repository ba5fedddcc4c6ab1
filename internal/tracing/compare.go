package tracing

import (
	"errors"
	"fmt"
	"math"
)

const (
	// ScoreThreshold is the normalized Hausdorff distance that scores zero
	ScoreThreshold = 0.3
	// CorrectThreshold is the minimum score of a correct stroke
	CorrectThreshold = 0.65
)

var (
	ErrNoStrokes           = errors.New("tracing: character has no strokes")
	ErrStrokeCountMismatch = errors.New("tracing: stroke count does not match reference")
	ErrDegenerateStroke    = errors.New("tracing: stroke has fewer than 2 points")
)

// ReferenceStroke is the authoritative shape of one stroke of a character
type ReferenceStroke struct {
	Points      Stroke `json:"points"`       // normalized 0-1 space
	StrokeIndex int    `json:"stroke_index"` // 0-based
	StrokeCount int    `json:"stroke_count"`
}

// StrokeResult is the grade of one user stroke
type StrokeResult struct {
	Score             float64 `json:"score"`
	IsCorrect         bool    `json:"is_correct"`
	HausdorffDistance float64 `json:"hausdorff_distance"`
}

// TracingResult is the grade of a whole character
type TracingResult struct {
	AllCorrect   bool           `json:"all_correct"`
	Strokes      []StrokeResult `json:"strokes"`
	OverallScore float64        `json:"overall_score"`
}

// ScoreForDistance maps a normalized Hausdorff distance to a score in [0,1]:
// 1 at distance 0, falling linearly to 0 at ScoreThreshold and beyond.
func ScoreForDistance(distance float64) float64 {
	return math.Max(0, 1-distance/ScoreThreshold)
}

// CompareStroke normalizes a user stroke drawn in canvas pixels and grades
// it against reference
func CompareStroke(user Stroke, reference ReferenceStroke, canvasWidth, canvasHeight float64) StrokeResult {
	normalized := NormalizeStroke(user, canvasWidth, canvasHeight)
	distance := HausdorffDistance(normalized, reference.Points)
	score := ScoreForDistance(distance)

	return StrokeResult{
		Score:             score,
		IsCorrect:         score >= CorrectThreshold,
		HausdorffDistance: distance,
	}
}

// CompareCharacter grades every stroke of a character in order. The overall
// score is the mean stroke score; the character is correct only if every
// stroke is.
func CompareCharacter(user []Stroke, references []ReferenceStroke, canvasWidth, canvasHeight float64) (TracingResult, error) {
	if len(references) == 0 {
		return TracingResult{}, ErrNoStrokes
	}
	if len(user) != len(references) {
		return TracingResult{}, fmt.Errorf("%w: got %d, want %d", ErrStrokeCountMismatch, len(user), len(references))
	}

	result := TracingResult{
		AllCorrect: true,
		Strokes:    make([]StrokeResult, len(references)),
	}
	total := 0.0
	for i, ref := range references {
		r := CompareStroke(user[i], ref, canvasWidth, canvasHeight)
		result.Strokes[i] = r
		result.AllCorrect = result.AllCorrect && r.IsCorrect
		total += r.Score
	}
	result.OverallScore = total / float64(len(references))

	return result, nil
}
