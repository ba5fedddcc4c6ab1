package models

// CustomVocab is a vocabulary entry added by the learner or imported from a sheet
type CustomVocab struct {
	ID              string `json:"id" db:"id"`
	Amharic         string `json:"amharic" db:"amharic" validate:"required"`
	English         string `json:"english" db:"english" validate:"required"`
	Transliteration string `json:"transliteration" db:"transliteration"`
	Theme           string `json:"theme" db:"theme"`
}
