// Package review builds review queues from stored scheduling states and
// runs rating sessions over them.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/example/fideltutor/internal/database"
	sr "github.com/example/fideltutor/internal/spaced_repetition"
	"github.com/example/fideltutor/pkg/models"
)

// CardStore is the part of the record store holding cards
type CardStore interface {
	Get(ctx context.Context, id string) (*models.Card, error)
	Put(ctx context.Context, card *models.Card) error
}

// StateStore is the part of the record store holding scheduling states
type StateStore interface {
	Get(ctx context.Context, cardID string) (*models.SRSState, error)
	Put(ctx context.Context, state *models.SRSState) error
	ListDue(ctx context.Context, today string) ([]models.SRSState, error)
	List(ctx context.Context) ([]models.SRSState, error)
}

// PrefsStore is the part of the record store holding the learner's prefs
type PrefsStore interface {
	Get(ctx context.Context) (models.UserPrefs, error)
	Put(ctx context.Context, prefs models.UserPrefs) error
}

// Item is one card of a review queue with its current state
type Item struct {
	Card  models.Card     `json:"card"`
	State models.SRSState `json:"state"`
}

// Queue is the set of cards to review today
type Queue struct {
	Items []Item `json:"items"`
	// NextDueDate is the earliest future due date, set only when Items is empty
	NextDueDate string `json:"next_due_date,omitempty"`
	// Orphans are due states whose card no longer exists
	Orphans []string `json:"orphans,omitempty"`
}

// Selector assembles review queues
type Selector struct {
	cards  CardStore
	states StateStore
	logger *slog.Logger
	// Limit caps the queue length; 0 means no limit
	Limit int
}

// NewSelector creates a selector over the given stores
func NewSelector(cards CardStore, states StateStore, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{cards: cards, states: states, logger: logger}
}

// Load returns every card due on today paired with its state. Due states
// whose card is missing are skipped and reported as orphans. When nothing is
// due, the queue carries the next future due date instead.
func (s *Selector) Load(ctx context.Context, today string) (Queue, error) {
	if _, err := sr.ParseDate(today); err != nil {
		return Queue{}, err
	}

	states, err := s.states.ListDue(ctx, today)
	if err != nil {
		return Queue{}, err
	}
	due := sr.DueStates(states, today, 0)

	var q Queue
	for _, st := range due {
		if s.Limit > 0 && len(q.Items) >= s.Limit {
			break
		}
		card, err := s.cards.Get(ctx, st.CardID)
		if errors.Is(err, database.ErrNotFound) {
			s.logger.Warn("skipping orphaned srs state", "card_id", st.CardID)
			q.Orphans = append(q.Orphans, st.CardID)
			continue
		}
		if err != nil {
			return Queue{}, err
		}
		q.Items = append(q.Items, Item{Card: *card, State: st})
	}

	if len(q.Items) > 0 {
		return q, nil
	}

	all, err := s.states.List(ctx)
	if err != nil {
		return Queue{}, err
	}
	q.NextDueDate = sr.NextDueDate(all, today)
	return q, nil
}

// ErrInvalidCard is returned by Enqueue for a card failing its field checks
var ErrInvalidCard = errors.New("invalid card")

var validate = validator.New()

// Enqueue stores card and, if the card has no scheduling state yet, an
// initial state due today. Existing states are left untouched.
func Enqueue(ctx context.Context, cards CardStore, states StateStore, card *models.Card, today string) error {
	if _, err := sr.ParseDate(today); err != nil {
		return err
	}
	if err := validate.Struct(card); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidCard, card.ID, err)
	}
	if err := cards.Put(ctx, card); err != nil {
		return err
	}

	_, err := states.Get(ctx, card.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("failed to check srs state of %q: %w", card.ID, err)
	}

	initial := sr.CreateInitialState(card.ID, today)
	return states.Put(ctx, &initial)
}
