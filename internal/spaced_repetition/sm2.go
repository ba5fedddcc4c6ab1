package spaced_repetition

import (
	"fmt"
	"math"
	"sort"

	"github.com/example/fideltutor/pkg/models"
)

const (
	// DefaultEaseFactor is the starting easiness of a card that was never rated
	DefaultEaseFactor = 2.5
	// MinEaseFactor is the floor applied after every rating
	MinEaseFactor = 1.3
	// InitialInterval is the interval of a freshly enqueued card, in days
	InitialInterval = 1.0

	hardIntervalFactor = 1.2
	easyBonus          = 1.3
	againEaseDelta     = -0.2
	hardEaseDelta      = -0.15
	easyEaseDelta      = 0.15
)

// SM2 implements the fixed SM-2 variant used for card reviews
type SM2 struct {
	// Number of successful reps after which a card counts as mastered
	MasteryReps int
	// Minimum interval in days for a card to count as mastered
	MasteryInterval float64
}

// NewSM2 creates a new SM2 with the default mastery thresholds
func NewSM2() *SM2 {
	return &SM2{
		MasteryReps:     5,
		MasteryInterval: 30,
	}
}

// ReviewResult is the outcome of rating a card
type ReviewResult struct {
	NewState models.SRSState `json:"new_state"`
	XPEarned int             `json:"xp_earned"`
}

// CreateInitialState returns the state of a card entering the review system today
func CreateInitialState(cardID, today string) models.SRSState {
	return models.SRSState{
		CardID:     cardID,
		Interval:   InitialInterval,
		EaseFactor: DefaultEaseFactor,
		DueDate:    today,
		Reps:       0,
	}
}

// ApplyRating transitions state for rating, with the due date counted from today.
//
//	again: interval 1,                     ease -0.2,  reps reset to 0
//	hard:  interval max(1, interval*1.2),  ease -0.15, reps+1
//	good:  interval interval*ease,         ease +0,    reps+1
//	easy:  interval interval*ease*1.3,     ease +0.15, reps+1
//
// The ease factor is clamped to MinEaseFactor after the delta.
// The interval keeps its fraction; only the due date floors it.
func (sm *SM2) ApplyRating(state models.SRSState, rating Rating, today string) (ReviewResult, error) {
	if !rating.IsValid() {
		return ReviewResult{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}

	interval := state.Interval
	ease := state.EaseFactor
	reps := state.Reps

	switch rating {
	case Again:
		interval = InitialInterval
		ease += againEaseDelta
		reps = 0
	case Hard:
		interval = math.Max(1, state.Interval*hardIntervalFactor)
		ease += hardEaseDelta
		reps++
	case Good:
		interval = state.Interval * state.EaseFactor
		reps++
	case Easy:
		interval = state.Interval * state.EaseFactor * easyBonus
		ease += easyEaseDelta
		reps++
	}

	due, err := AddDays(today, interval)
	if err != nil {
		return ReviewResult{}, err
	}

	newState := state
	newState.Interval = interval
	newState.EaseFactor = clampEaseFactor(ease)
	newState.DueDate = due
	newState.Reps = reps

	return ReviewResult{NewState: newState, XPEarned: rating.XP()}, nil
}

func clampEaseFactor(ease float64) float64 {
	return math.Max(MinEaseFactor, ease)
}

// IsDue reports whether the card should be reviewed on today
func IsDue(state models.SRSState, today string) bool {
	return state.DueDate <= today
}

// IsMastered determines if a card is considered "mastered"
func (sm *SM2) IsMastered(state models.SRSState) bool {
	return state.Reps >= sm.MasteryReps && state.Interval >= sm.MasteryInterval
}

// DueStates returns the states due on today in review order, at most limit
// of them (limit <= 0 means no limit)
func DueStates(states []models.SRSState, today string, limit int) []models.SRSState {
	var due []models.SRSState
	for _, s := range states {
		if IsDue(s, today) {
			due = append(due, s)
		}
	}

	SortQueue(due)

	if limit > 0 && len(due) > limit {
		return due[:limit]
	}
	return due
}

// SortQueue orders states for a review session:
// 1. Cards that have never been successfully reviewed (reps = 0)
// 2. Cards with the lowest ease factor (hardest cards)
// 3. Cards that are most overdue
func SortQueue(states []models.SRSState) {
	sort.SliceStable(states, func(i, j int) bool {
		a, b := states[i], states[j]

		if (a.Reps == 0) != (b.Reps == 0) {
			return a.Reps == 0
		}
		if a.EaseFactor != b.EaseFactor {
			return a.EaseFactor < b.EaseFactor
		}
		if a.DueDate != b.DueDate {
			return a.DueDate < b.DueDate
		}
		return a.CardID < b.CardID
	})
}

// NextDueDate returns the earliest due date strictly after today, or ""
// when no state is scheduled in the future
func NextDueDate(states []models.SRSState, today string) string {
	next := ""
	for _, s := range states {
		if s.DueDate <= today {
			continue
		}
		if next == "" || s.DueDate < next {
			next = s.DueDate
		}
	}
	return next
}
