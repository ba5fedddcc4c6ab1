package review

import (
	"context"
	"errors"
	"fmt"

	sr "github.com/example/fideltutor/internal/spaced_repetition"
	"github.com/example/fideltutor/pkg/models"
)

// ErrSessionDone is returned when rating past the end of the queue
var ErrSessionDone = errors.New("review: session has no cards left")

// Session walks a queue card by card. Every rating is persisted before the
// session advances, so an interrupted session loses no transitions.
type Session struct {
	engine *sr.SM2
	states StateStore
	items  []Item
	pos    int
	xp     int
}

// NewSession starts a session over the items of queue
func NewSession(engine *sr.SM2, states StateStore, queue Queue) *Session {
	return &Session{engine: engine, states: states, items: append([]Item(nil), queue.Items...)}
}

// Current returns the card under review, or false when the session is over
func (s *Session) Current() (Item, bool) {
	if s.pos >= len(s.items) {
		return Item{}, false
	}
	return s.items[s.pos], true
}

// Remaining is the number of cards not rated yet
func (s *Session) Remaining() int {
	return len(s.items) - s.pos
}

// XP is the experience earned so far in this session
func (s *Session) XP() int {
	return s.xp
}

// Rate applies rating to the current card, stores the new state and moves on
func (s *Session) Rate(ctx context.Context, rating sr.Rating, today string) (sr.ReviewResult, error) {
	item, ok := s.Current()
	if !ok {
		return sr.ReviewResult{}, ErrSessionDone
	}

	res, err := s.engine.ApplyRating(item.State, rating, today)
	if err != nil {
		return sr.ReviewResult{}, err
	}
	if err := s.states.Put(ctx, &res.NewState); err != nil {
		return sr.ReviewResult{}, fmt.Errorf("failed to save review of %q: %w", item.Card.ID, err)
	}

	s.items[s.pos].State = res.NewState
	s.pos++
	s.xp += res.XPEarned
	return res, nil
}

// Finish records a completed session: the streak is advanced, today becomes
// the last study date and the session XP is added to the total.
func Finish(ctx context.Context, prefs PrefsStore, xp int, today string) (models.UserPrefs, error) {
	current, err := prefs.Get(ctx)
	if err != nil {
		return models.UserPrefs{}, err
	}

	next, err := ApplySession(current, xp, today)
	if err != nil {
		return models.UserPrefs{}, err
	}

	if err := prefs.Put(ctx, next); err != nil {
		return models.UserPrefs{}, err
	}
	return next, nil
}

// ApplySession is the pure prefs transition behind Finish
func ApplySession(prefs models.UserPrefs, xp int, today string) (models.UserPrefs, error) {
	if xp < 0 {
		return models.UserPrefs{}, fmt.Errorf("review: negative session xp %d", xp)
	}
	streak, err := sr.CalculateStreak(prefs.LastStudyDate, today, prefs.StreakCount)
	if err != nil {
		return models.UserPrefs{}, err
	}

	day := today
	return models.UserPrefs{
		StreakCount:   streak,
		LastStudyDate: &day,
		XPTotal:       prefs.XPTotal + xp,
	}, nil
}
