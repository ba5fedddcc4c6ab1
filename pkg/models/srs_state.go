package models

// SRSState is the scheduling state of one card
type SRSState struct {
	CardID     string  `json:"card_id" db:"card_id"`
	Interval   float64 `json:"interval" db:"interval_days"`  // Current interval in days, may be fractional
	EaseFactor float64 `json:"ease_factor" db:"ease_factor"` // Never below 1.3
	DueDate    string  `json:"due_date" db:"due_date"`       // YYYY-MM-DD, local calendar
	Reps       int     `json:"reps" db:"reps"`               // Consecutive successful ratings
}
