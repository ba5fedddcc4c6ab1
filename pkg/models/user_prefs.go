package models

// UserPrefs holds the per-learner streak and XP counters
type UserPrefs struct {
	StreakCount   int     `json:"streak_count" db:"streak_count"`
	LastStudyDate *string `json:"last_study_date" db:"last_study_date"`
	XPTotal       int     `json:"xp_total" db:"xp_total"`
}

// DefaultUserPrefs returns the prefs of a learner who has never studied
func DefaultUserPrefs() UserPrefs {
	return UserPrefs{}
}
