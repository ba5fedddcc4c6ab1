package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/fideltutor/pkg/models"
)

// CustomVocabRepository handles database operations for learner vocabulary
type CustomVocabRepository struct {
	db *sqlx.DB
}

// NewCustomVocabRepository creates a new repository instance
func NewCustomVocabRepository(db *sqlx.DB) *CustomVocabRepository {
	return &CustomVocabRepository{db: db}
}

// Get returns a vocabulary entry by ID
func (r *CustomVocabRepository) Get(ctx context.Context, id string) (*models.CustomVocab, error) {
	var v models.CustomVocab
	err := r.db.GetContext(ctx, &v, r.db.Rebind("SELECT * FROM custom_vocab WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("custom vocab %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom vocab: %w", err)
	}
	return &v, nil
}

// FindByAmharic returns the entry with exactly this Amharic spelling
func (r *CustomVocabRepository) FindByAmharic(ctx context.Context, amharic string) (*models.CustomVocab, error) {
	var v models.CustomVocab
	err := r.db.GetContext(ctx, &v, r.db.Rebind("SELECT * FROM custom_vocab WHERE amharic = ?"), amharic)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("custom vocab %q: %w", amharic, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find custom vocab: %w", err)
	}
	return &v, nil
}

// List returns all vocabulary entries
func (r *CustomVocabRepository) List(ctx context.Context) ([]models.CustomVocab, error) {
	var vocab []models.CustomVocab
	if err := r.db.SelectContext(ctx, &vocab, "SELECT * FROM custom_vocab ORDER BY amharic"); err != nil {
		return nil, fmt.Errorf("failed to list custom vocab: %w", err)
	}
	return vocab, nil
}

// Put inserts or replaces a vocabulary entry
func (r *CustomVocabRepository) Put(ctx context.Context, v *models.CustomVocab) error {
	query := `
		INSERT INTO custom_vocab (id, amharic, english, transliteration, theme)
		VALUES (:id, :amharic, :english, :transliteration, :theme)
		ON CONFLICT (id) DO UPDATE SET
			amharic = excluded.amharic,
			english = excluded.english,
			transliteration = excluded.transliteration,
			theme = excluded.theme
	`
	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		return fmt.Errorf("failed to put custom vocab: %w", err)
	}
	return nil
}

// Delete removes a vocabulary entry
func (r *CustomVocabRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM custom_vocab WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete custom vocab: %w", err)
	}
	return nil
}
