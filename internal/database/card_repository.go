package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/fideltutor/pkg/models"
)

// CardRepository handles database operations for cards
type CardRepository struct {
	db *sqlx.DB
}

// NewCardRepository creates a new repository instance
func NewCardRepository(db *sqlx.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Get returns a card by ID
func (r *CardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	err := r.db.GetContext(ctx, &card, r.db.Rebind("SELECT * FROM cards WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

// List returns all cards, or only those of moduleID when it is not empty
func (r *CardRepository) List(ctx context.Context, moduleID string) ([]models.Card, error) {
	var cards []models.Card
	var err error
	if moduleID == "" {
		err = r.db.SelectContext(ctx, &cards, "SELECT * FROM cards ORDER BY id")
	} else {
		err = r.db.SelectContext(ctx, &cards, r.db.Rebind("SELECT * FROM cards WHERE module_id = ? ORDER BY id"), moduleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Put inserts a card or replaces the stored card with the same ID
func (r *CardRepository) Put(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (id, front_fidel, front_roman, fidel_confidence, back, audio_key, module_id)
		VALUES (:id, :front_fidel, :front_roman, :fidel_confidence, :back, :audio_key, :module_id)
		ON CONFLICT (id) DO UPDATE SET
			front_fidel = excluded.front_fidel,
			front_roman = excluded.front_roman,
			fidel_confidence = excluded.fidel_confidence,
			back = excluded.back,
			audio_key = excluded.audio_key,
			module_id = excluded.module_id
	`
	if _, err := r.db.NamedExecContext(ctx, query, card); err != nil {
		return fmt.Errorf("failed to put card: %w", err)
	}
	return nil
}

// Delete removes a card together with its scheduling state
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM srs_state WHERE card_id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete srs state: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM cards WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return tx.Commit()
}
