package models

// FidelConfidence describes how trustworthy a card's Ethiopic front is
type FidelConfidence string

const (
	FidelConfidenceOK      FidelConfidence = "ok"
	FidelConfidenceLow     FidelConfidence = "low"
	FidelConfidencePending FidelConfidence = "pending" // suppresses fidel views
)

// Card represents a single reviewable study item
type Card struct {
	ID              string          `json:"id" db:"id" validate:"required"`
	FrontFidel      *string         `json:"front_fidel" db:"front_fidel"` // nil if the fidel lookup failed or is pending
	FrontRoman      string          `json:"front_roman" db:"front_roman" validate:"required"`
	FidelConfidence FidelConfidence `json:"fidel_confidence" db:"fidel_confidence" validate:"oneof=ok low pending"`
	Back            string          `json:"back" db:"back" validate:"required"`
	AudioKey        *string         `json:"audio_key" db:"audio_key"`
	ModuleID        string          `json:"module_id" db:"module_id" validate:"required"`
}

// ShowFidel reports whether the Ethiopic front should be displayed
func (c *Card) ShowFidel() bool {
	return c.FrontFidel != nil && c.FidelConfidence != FidelConfidencePending
}
