package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/fideltutor/pkg/models"
)

// SRSStateRepository handles database operations for scheduling states
type SRSStateRepository struct {
	db *sqlx.DB
}

// NewSRSStateRepository creates a new repository instance
func NewSRSStateRepository(db *sqlx.DB) *SRSStateRepository {
	return &SRSStateRepository{db: db}
}

// Get returns the state of a card
func (r *SRSStateRepository) Get(ctx context.Context, cardID string) (*models.SRSState, error) {
	var state models.SRSState
	err := r.db.GetContext(ctx, &state, r.db.Rebind("SELECT * FROM srs_state WHERE card_id = ?"), cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("srs state %q: %w", cardID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get srs state: %w", err)
	}
	return &state, nil
}

// Put stores a state under its card ID, replacing any previous one
func (r *SRSStateRepository) Put(ctx context.Context, state *models.SRSState) error {
	query := `
		INSERT INTO srs_state (card_id, interval_days, ease_factor, due_date, reps)
		VALUES (:card_id, :interval_days, :ease_factor, :due_date, :reps)
		ON CONFLICT (card_id) DO UPDATE SET
			interval_days = excluded.interval_days,
			ease_factor = excluded.ease_factor,
			due_date = excluded.due_date,
			reps = excluded.reps
	`
	if _, err := r.db.NamedExecContext(ctx, query, state); err != nil {
		return fmt.Errorf("failed to put srs state: %w", err)
	}
	return nil
}

// ListDue returns the states with due_date <= today, earliest first.
// Dates are fixed-width ISO strings so the text comparison is chronological.
func (r *SRSStateRepository) ListDue(ctx context.Context, today string) ([]models.SRSState, error) {
	var states []models.SRSState
	query := r.db.Rebind("SELECT * FROM srs_state WHERE due_date <= ? ORDER BY due_date, card_id")
	if err := r.db.SelectContext(ctx, &states, query, today); err != nil {
		return nil, fmt.Errorf("failed to get due srs states: %w", err)
	}
	return states, nil
}

// List returns every stored state
func (r *SRSStateRepository) List(ctx context.Context) ([]models.SRSState, error) {
	var states []models.SRSState
	if err := r.db.SelectContext(ctx, &states, "SELECT * FROM srs_state ORDER BY due_date, card_id"); err != nil {
		return nil, fmt.Errorf("failed to list srs states: %w", err)
	}
	return states, nil
}
