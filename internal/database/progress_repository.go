package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/fideltutor/pkg/models"
)

// ProgressRepository handles database operations for curriculum progress
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get returns the progress of a module
func (r *ProgressRepository) Get(ctx context.Context, moduleID string) (*models.Progress, error) {
	var p models.Progress
	err := r.db.GetContext(ctx, &p, r.db.Rebind("SELECT * FROM progress WHERE module_id = ?"), moduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("progress %q: %w", moduleID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &p, nil
}

// List returns all progress records
func (r *ProgressRepository) List(ctx context.Context) ([]models.Progress, error) {
	var records []models.Progress
	if err := r.db.SelectContext(ctx, &records, "SELECT * FROM progress ORDER BY module_id"); err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return records, nil
}

// Put writes a progress record wholesale
func (r *ProgressRepository) Put(ctx context.Context, p *models.Progress) error {
	query := `
		INSERT INTO progress (module_id, status, score, completed_at)
		VALUES (:module_id, :status, :score, :completed_at)
		ON CONFLICT (module_id) DO UPDATE SET
			status = excluded.status,
			score = excluded.score,
			completed_at = excluded.completed_at
	`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to put progress: %w", err)
	}
	return nil
}
