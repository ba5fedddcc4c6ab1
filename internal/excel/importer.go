package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/example/fideltutor/internal/database"
	"github.com/example/fideltutor/internal/review"
	sr "github.com/example/fideltutor/internal/spaced_repetition"
	"github.com/example/fideltutor/pkg/models"
)

// VocabModule is the module imported words are studied in
const VocabModule = "vocab"

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath              string // Path to the Excel or CSV file
	SheetName             string // Sheet to import; empty means the first sheet
	AmharicColumn         string // Column with the Ethiopic word
	EnglishColumn         string // Column with the translation
	TransliterationColumn string // Column with the romanization
	ThemeColumn           string // Column with the theme
	StartRow              int    // The row to start importing from (1-based index)
	Today                 string // Due date of newly created cards
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		AmharicColumn:         "A",
		EnglishColumn:         "B",
		TransliterationColumn: "C",
		ThemeColumn:           "D",
		StartRow:              2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// VocabStore is the part of the record store holding custom vocabulary
type VocabStore interface {
	FindByAmharic(ctx context.Context, amharic string) (*models.CustomVocab, error)
	Put(ctx context.Context, v *models.CustomVocab) error
	Delete(ctx context.Context, id string) error
}

// CardStore holds the review cards of imported words
type CardStore interface {
	review.CardStore
	Delete(ctx context.Context, id string) error
}

// Importer turns spreadsheet rows into custom vocabulary and review cards
type Importer struct {
	vocab    VocabStore
	cards    CardStore
	states   review.StateStore
	validate *validator.Validate
	logger   *slog.Logger
}

// NewImporter creates an importer writing to the given stores
func NewImporter(vocab VocabStore, cards CardStore, states review.StateStore, logger *slog.Logger) *Importer {
	return &Importer{
		vocab:    vocab,
		cards:    cards,
		states:   states,
		validate: validator.New(),
		logger:   logger,
	}
}

// row is one vocabulary line of the source file
type row struct {
	Amharic         string `validate:"required"`
	English         string `validate:"required"`
	Transliteration string `validate:"required"`
	Theme           string
}

// ImportWords imports words from an Excel or CSV file. Row problems are
// collected in the result; only failures to read the file or to reach the
// store abort the import.
func (im *Importer) ImportWords(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	if _, err := sr.ParseDate(config.Today); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, cells := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if isBlank(cells) {
			continue
		}

		result.TotalProcessed++
		r := row{
			Amharic:         cleanWord(cell(cells, config.AmharicColumn)),
			English:         cleanWord(cell(cells, config.EnglishColumn)),
			Transliteration: cleanWord(cell(cells, config.TransliterationColumn)),
			Theme:           strings.TrimSpace(cell(cells, config.ThemeColumn)),
		}

		if err := im.validate.Struct(r); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+1, describe(err)))
			continue
		}

		created, err := im.processWordData(ctx, r, config.Today)
		if err != nil {
			return result, fmt.Errorf("row %d: %w", i+1, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	im.logger.Info("vocabulary import finished",
		"file", config.FilePath,
		"processed", result.TotalProcessed,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped)
	return result, nil
}

// processWordData upserts the vocabulary entry keyed by its Ethiopic
// spelling and makes sure its card is enqueued
func (im *Importer) processWordData(ctx context.Context, r row, today string) (bool, error) {
	existing, err := im.vocab.FindByAmharic(ctx, r.Amharic)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return false, fmt.Errorf("failed to search for existing word: %w", err)
	}

	created := existing == nil
	id := uuid.NewString()
	if !created {
		id = existing.ID
	}

	v := &models.CustomVocab{
		ID:              id,
		Amharic:         r.Amharic,
		English:         r.English,
		Transliteration: r.Transliteration,
		Theme:           r.Theme,
	}
	if err := im.vocab.Put(ctx, v); err != nil {
		return false, fmt.Errorf("failed to save word: %w", err)
	}

	fidel := r.Amharic
	card := &models.Card{
		ID:              CardID(v.ID),
		FrontFidel:      &fidel,
		FrontRoman:      r.Transliteration,
		FidelConfidence: models.FidelConfidenceOK,
		Back:            r.English,
		ModuleID:        VocabModule,
	}
	if err := review.Enqueue(ctx, im.cards, im.states, card, today); err != nil {
		return false, fmt.Errorf("failed to enqueue card: %w", err)
	}
	return created, nil
}

// Forget removes an imported word together with its review card and
// schedule. It returns database.ErrNotFound if the word was never imported.
func (im *Importer) Forget(ctx context.Context, amharic string) (*models.CustomVocab, error) {
	v, err := im.vocab.FindByAmharic(ctx, cleanWord(amharic))
	if err != nil {
		return nil, err
	}
	if err := im.cards.Delete(ctx, CardID(v.ID)); err != nil {
		return nil, err
	}
	if err := im.vocab.Delete(ctx, v.ID); err != nil {
		return nil, err
	}
	im.logger.Info("custom word removed", "amharic", v.Amharic, "id", v.ID)
	return v, nil
}

// CardID is the review card id of a custom vocabulary entry
func CardID(vocabID string) string {
	return "custom_srs_" + vocabID
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func cell(cells []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(cells) {
		return cells[idx]
	}
	return ""
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cleanWord removes a trailing parenthesised note such as "(pl. ...)"
func cleanWord(word string) string {
	if i := strings.Index(word, "("); i > 0 {
		return strings.TrimSpace(word[:i])
	}
	return strings.TrimSpace(word)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = strings.ToLower(fe.Field()) + " cannot be empty"
	}
	return strings.Join(msgs, ", ")
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	idx, err := excelize.ColumnNameToNumber(strings.ToUpper(column))
	if err != nil {
		return -1
	}
	return idx - 1
}
