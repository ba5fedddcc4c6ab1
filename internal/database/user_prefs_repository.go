package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/fideltutor/pkg/models"
)

// userPrefsKey is the primary key of the singleton prefs row
const userPrefsKey = "singleton"

// UserPrefsRepository reads and writes the learner's prefs record
type UserPrefsRepository struct {
	db *sqlx.DB
}

// NewUserPrefsRepository creates a new repository instance
func NewUserPrefsRepository(db *sqlx.DB) *UserPrefsRepository {
	return &UserPrefsRepository{db: db}
}

// Get returns the stored prefs, or the defaults if none were saved yet
func (r *UserPrefsRepository) Get(ctx context.Context) (models.UserPrefs, error) {
	var prefs models.UserPrefs
	query := r.db.Rebind("SELECT streak_count, last_study_date, xp_total FROM user_prefs WHERE id = ?")
	err := r.db.GetContext(ctx, &prefs, query, userPrefsKey)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultUserPrefs(), nil
	}
	if err != nil {
		return models.UserPrefs{}, fmt.Errorf("failed to get user prefs: %w", err)
	}
	return prefs, nil
}

// Put replaces the stored prefs
func (r *UserPrefsRepository) Put(ctx context.Context, prefs models.UserPrefs) error {
	query := r.db.Rebind(`
		INSERT INTO user_prefs (id, streak_count, last_study_date, xp_total)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			streak_count = excluded.streak_count,
			last_study_date = excluded.last_study_date,
			xp_total = excluded.xp_total
	`)
	_, err := r.db.ExecContext(ctx, query, userPrefsKey, prefs.StreakCount, prefs.LastStudyDate, prefs.XPTotal)
	if err != nil {
		return fmt.Errorf("failed to put user prefs: %w", err)
	}
	return nil
}
