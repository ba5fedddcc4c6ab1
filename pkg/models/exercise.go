package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ExerciseKind tags the variant of an exercise document
type ExerciseKind string

const (
	KindReorder        ExerciseKind = "reorder"
	KindFillBlank      ExerciseKind = "fill_blank"
	KindMultipleChoice ExerciseKind = "multiple_choice"
	KindMatchPairs     ExerciseKind = "match_pairs"
)

var (
	ErrUnknownExercise = errors.New("unknown exercise kind")
	ErrInvalidExercise = errors.New("invalid exercise")
	ErrInvalidAnswer   = errors.New("invalid answer")
)

// Exercise is one grammar or dialogue exercise. Every kind has its own
// validation and grading rule; the answer shape depends on the kind.
type Exercise interface {
	Kind() ExerciseKind
	Validate() error
	Grade(answer json.RawMessage) (bool, error)
}

// Reorder asks the learner to put shuffled tokens in order.
// Answer: ["tok", "tok", ...]
type Reorder struct {
	Prompt string   `json:"prompt"`
	Tokens []string `json:"tokens"`
	Answer []string `json:"answer"`
}

func (e *Reorder) Kind() ExerciseKind { return KindReorder }

func (e *Reorder) Validate() error {
	if len(e.Answer) == 0 {
		return fmt.Errorf("%w: reorder without answer", ErrInvalidExercise)
	}
	if len(e.Tokens) != len(e.Answer) {
		return fmt.Errorf("%w: reorder has %d tokens but %d answer items", ErrInvalidExercise, len(e.Tokens), len(e.Answer))
	}
	counts := make(map[string]int, len(e.Tokens))
	for _, t := range e.Tokens {
		counts[t]++
	}
	for _, a := range e.Answer {
		counts[a]--
		if counts[a] < 0 {
			return fmt.Errorf("%w: answer token %q not among tokens", ErrInvalidExercise, a)
		}
	}
	return nil
}

func (e *Reorder) Grade(answer json.RawMessage) (bool, error) {
	var got []string
	if err := json.Unmarshal(answer, &got); err != nil {
		return false, fmt.Errorf("%w: reorder expects a list of tokens: %v", ErrInvalidAnswer, err)
	}
	if len(got) != len(e.Answer) {
		return false, nil
	}
	for i := range got {
		if strings.TrimSpace(got[i]) != strings.TrimSpace(e.Answer[i]) {
			return false, nil
		}
	}
	return true, nil
}

// FillBlank asks for the word that completes a sentence.
// Answer: "word"
type FillBlank struct {
	Sentence string   `json:"sentence"` // contains "___" where the blank is
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer"`
}

func (e *FillBlank) Kind() ExerciseKind { return KindFillBlank }

func (e *FillBlank) Validate() error {
	if !strings.Contains(e.Sentence, "___") {
		return fmt.Errorf("%w: fill_blank sentence has no blank", ErrInvalidExercise)
	}
	if strings.TrimSpace(e.Answer) == "" {
		return fmt.Errorf("%w: fill_blank without answer", ErrInvalidExercise)
	}
	if len(e.Options) > 0 && !contains(e.Options, e.Answer) {
		return fmt.Errorf("%w: fill_blank answer %q not among options", ErrInvalidExercise, e.Answer)
	}
	return nil
}

func (e *FillBlank) Grade(answer json.RawMessage) (bool, error) {
	var got string
	if err := json.Unmarshal(answer, &got); err != nil {
		return false, fmt.Errorf("%w: fill_blank expects a string: %v", ErrInvalidAnswer, err)
	}
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(e.Answer)), nil
}

// MultipleChoice asks the learner to pick one option.
// Answer: option index
type MultipleChoice struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

func (e *MultipleChoice) Kind() ExerciseKind { return KindMultipleChoice }

func (e *MultipleChoice) Validate() error {
	if len(e.Options) < 2 {
		return fmt.Errorf("%w: multiple_choice needs at least 2 options", ErrInvalidExercise)
	}
	if e.CorrectIndex < 0 || e.CorrectIndex >= len(e.Options) {
		return fmt.Errorf("%w: correct_index %d out of range", ErrInvalidExercise, e.CorrectIndex)
	}
	return nil
}

func (e *MultipleChoice) Grade(answer json.RawMessage) (bool, error) {
	var got int
	if err := json.Unmarshal(answer, &got); err != nil {
		return false, fmt.Errorf("%w: multiple_choice expects an option index: %v", ErrInvalidAnswer, err)
	}
	if got < 0 || got >= len(e.Options) {
		return false, fmt.Errorf("%w: option %d out of range", ErrInvalidAnswer, got)
	}
	return got == e.CorrectIndex, nil
}

// Pair is one left/right association of a MatchPairs exercise
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// MatchPairs asks the learner to connect every left item to its right item.
// Answer: {"left": "right", ...}
type MatchPairs struct {
	Pairs []Pair `json:"pairs"`
}

func (e *MatchPairs) Kind() ExerciseKind { return KindMatchPairs }

func (e *MatchPairs) Validate() error {
	if len(e.Pairs) < 2 {
		return fmt.Errorf("%w: match_pairs needs at least 2 pairs", ErrInvalidExercise)
	}
	seen := make(map[string]bool, len(e.Pairs))
	for _, p := range e.Pairs {
		if seen[p.Left] {
			return fmt.Errorf("%w: duplicate left item %q", ErrInvalidExercise, p.Left)
		}
		seen[p.Left] = true
	}
	return nil
}

func (e *MatchPairs) Grade(answer json.RawMessage) (bool, error) {
	var got map[string]string
	if err := json.Unmarshal(answer, &got); err != nil {
		return false, fmt.Errorf("%w: match_pairs expects an object: %v", ErrInvalidAnswer, err)
	}
	if len(got) != len(e.Pairs) {
		return false, nil
	}
	for _, p := range e.Pairs {
		if got[p.Left] != p.Right {
			return false, nil
		}
	}
	return true, nil
}

// DecodeExercise decodes a document of the form {"kind": "...", "data": {...}}
func DecodeExercise(doc []byte) (Exercise, error) {
	var envelope struct {
		Kind ExerciseKind    `json:"kind"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(doc, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode exercise: %w", err)
	}

	var ex Exercise
	switch envelope.Kind {
	case KindReorder:
		ex = &Reorder{}
	case KindFillBlank:
		ex = &FillBlank{}
	case KindMultipleChoice:
		ex = &MultipleChoice{}
	case KindMatchPairs:
		ex = &MatchPairs{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExercise, envelope.Kind)
	}

	if err := json.Unmarshal(envelope.Data, ex); err != nil {
		return nil, fmt.Errorf("failed to decode %s exercise: %w", envelope.Kind, err)
	}
	if err := ex.Validate(); err != nil {
		return nil, err
	}
	return ex, nil
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
