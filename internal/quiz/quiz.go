// Package quiz builds multiple choice vocabulary quizzes from the learner's
// custom vocabulary.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/example/fideltutor/internal/database"
	"github.com/example/fideltutor/pkg/models"
)

// ErrNotEnoughWords is returned when fewer than two distinct words are
// available, so no question could have a wrong option
var ErrNotEnoughWords = errors.New("quiz: need at least two words")

// Direction selects which side of a word is asked
type Direction string

const (
	// AmharicToEnglish shows the Ethiopic word and asks for the translation
	AmharicToEnglish Direction = "am-en"
	// EnglishToAmharic shows the translation and asks for the Ethiopic word
	EnglishToAmharic Direction = "en-am"
)

const (
	// Number of wrong options per question, when enough words exist
	distractorCount = 3
	// PassScore is the percentage at which a quiz counts as complete
	PassScore = 80
)

// VocabLister is the part of the record store listing custom vocabulary
type VocabLister interface {
	List(ctx context.Context) ([]models.CustomVocab, error)
}

// ProgressStore is the part of the record store holding progress
type ProgressStore interface {
	Get(ctx context.Context, moduleID string) (*models.Progress, error)
	Put(ctx context.Context, p *models.Progress) error
}

// Question is one quiz question about a vocabulary entry
type Question struct {
	Word     models.CustomVocab
	Exercise *models.MultipleChoice
}

// Generator creates quizzes
type Generator struct {
	vocab VocabLister
	rnd   *rand.Rand
}

// NewGenerator creates a generator; rnd may be nil for a time seeded source
func NewGenerator(vocab VocabLister, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{vocab: vocab, rnd: rnd}
}

// Create generates up to count questions. With a theme, only words of that
// theme are asked, but wrong options may come from any theme.
func (g *Generator) Create(ctx context.Context, theme string, count int, dir Direction) ([]Question, error) {
	all, err := g.vocab.List(ctx)
	if err != nil {
		return nil, err
	}
	if distinctAnswers(all, dir) < 2 {
		return nil, ErrNotEnoughWords
	}

	words := make([]models.CustomVocab, 0, len(all))
	for _, w := range all {
		if theme == "" || strings.EqualFold(w.Theme, theme) {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("quiz: no words with theme %q", theme)
	}

	g.rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	if count > 0 && len(words) > count {
		words = words[:count]
	}

	questions := make([]Question, 0, len(words))
	for _, w := range words {
		options := append(g.incorrectOptions(w, all, dir), answer(w, dir))
		correctIndex := len(options) - 1
		g.rnd.Shuffle(len(options), func(i, j int) {
			if i == correctIndex {
				correctIndex = j
			} else if j == correctIndex {
				correctIndex = i
			}
			options[i], options[j] = options[j], options[i]
		})

		ex := &models.MultipleChoice{
			Question:     prompt(w, dir),
			Options:      options,
			CorrectIndex: correctIndex,
		}
		if err := ex.Validate(); err != nil {
			return nil, err
		}
		questions = append(questions, Question{Word: w, Exercise: ex})
	}
	return questions, nil
}

// incorrectOptions picks wrong answers, from the same theme first
func (g *Generator) incorrectOptions(word models.CustomVocab, all []models.CustomVocab, dir Direction) []string {
	correct := answer(word, dir)
	seen := map[string]bool{correct: true}
	options := make([]string, 0, distractorCount)

	candidates := append([]models.CustomVocab(nil), all...)
	g.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, sameTheme := range []bool{true, false} {
		for _, c := range candidates {
			if len(options) == distractorCount {
				return options
			}
			if strings.EqualFold(c.Theme, word.Theme) != sameTheme {
				continue
			}
			if opt := answer(c, dir); !seen[opt] {
				seen[opt] = true
				options = append(options, opt)
			}
		}
	}
	return options
}

func prompt(w models.CustomVocab, dir Direction) string {
	if dir == EnglishToAmharic {
		return w.English
	}
	return fmt.Sprintf("%s (%s)", w.Amharic, w.Transliteration)
}

func answer(w models.CustomVocab, dir Direction) string {
	if dir == EnglishToAmharic {
		return w.Amharic
	}
	return w.English
}

func distinctAnswers(words []models.CustomVocab, dir Direction) int {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[answer(w, dir)] = true
	}
	return len(seen)
}

// ModuleID is the progress record of quizzes over theme ("" for all themes)
func ModuleID(theme string) string {
	if theme == "" {
		return "quiz_vocab"
	}
	return "quiz_vocab_" + strings.ToLower(theme)
}

// SaveResult records a finished quiz as progress. The best score is kept
// and reaching PassScore completes the module.
func SaveResult(ctx context.Context, store ProgressStore, theme string, correct, total int, today string) (*models.Progress, error) {
	if total <= 0 || correct < 0 || correct > total {
		return nil, fmt.Errorf("quiz: invalid result %d/%d", correct, total)
	}

	id := ModuleID(theme)
	p, err := store.Get(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		p = &models.Progress{ModuleID: id, Status: models.StatusInProgress}
	} else if err != nil {
		return nil, err
	}

	score := correct * 100 / total
	if score > p.Score {
		p.Score = score
	}
	if p.Score >= PassScore && p.Status != models.StatusComplete {
		day := today
		p.Status = models.StatusComplete
		p.CompletedAt = &day
	} else if p.Status == models.StatusLocked {
		p.Status = models.StatusInProgress
	}

	if err := store.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
