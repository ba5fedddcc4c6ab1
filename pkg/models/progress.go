package models

// ProgressStatus is the completion state of a curriculum unit
type ProgressStatus string

const (
	StatusLocked     ProgressStatus = "locked"
	StatusInProgress ProgressStatus = "in_progress"
	StatusComplete   ProgressStatus = "complete"
)

// Progress tracks a learner's completion of one logical unit
// (a character, a lesson, a dialogue)
type Progress struct {
	ModuleID    string         `json:"module_id" db:"module_id"`
	Status      ProgressStatus `json:"status" db:"status"`
	Score       int            `json:"score" db:"score"`
	CompletedAt *string        `json:"completed_at" db:"completed_at"`
}
