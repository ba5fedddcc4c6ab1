package database

import "github.com/jmoiron/sqlx"

// Store groups the repositories that share one connection
type Store struct {
	DB       *sqlx.DB
	Cards    *CardRepository
	States   *SRSStateRepository
	Progress *ProgressRepository
	Prefs    *UserPrefsRepository
	Vocab    *CustomVocabRepository
}

// NewStore wires every repository to db
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		DB:       db,
		Cards:    NewCardRepository(db),
		States:   NewSRSStateRepository(db),
		Progress: NewProgressRepository(db),
		Prefs:    NewUserPrefsRepository(db),
		Vocab:    NewCustomVocabRepository(db),
	}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
