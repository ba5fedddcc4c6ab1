package excel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/fideltutor/internal/database"
	sr "github.com/example/fideltutor/internal/spaced_repetition"
)

const today = "2026-02-25"

func newTestImporter(t *testing.T) (*Importer, *database.Store) {
	t.Helper()
	db, err := database.Connect(context.Background(), database.Config{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	store := database.NewStore(db)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewImporter(store.Vocab, store.Cards, store.States, logger), store
}

func configFor(path string) ImportConfig {
	cfg := DefaultImportConfig()
	cfg.FilePath = path
	cfg.Today = today
	return cfg
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportWords_CSV(t *testing.T) {
	im, store := newTestImporter(t)
	ctx := context.Background()

	path := writeCSV(t, "amharic,english,transliteration,theme\n"+
		"ሰላም,hello,selam,greetings\n"+
		"ውሃ (ውሆች),water,wuha,food\n"+
		",,,\n"+
		"ዳቦ,,dabo,food\n")

	res, err := im.ImportWords(ctx, configFor(path))
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalProcessed)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Row 5")
	assert.Contains(t, res.Errors[0], "english cannot be empty")

	water, err := store.Vocab.FindByAmharic(ctx, "ውሃ")
	require.NoError(t, err)
	assert.Equal(t, "wuha", water.Transliteration)

	card, err := store.Cards.Get(ctx, CardID(water.ID))
	require.NoError(t, err)
	assert.Equal(t, VocabModule, card.ModuleID)
	assert.Equal(t, "water", card.Back)
	require.NotNil(t, card.FrontFidel)
	assert.Equal(t, "ውሃ", *card.FrontFidel)

	state, err := store.States.Get(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, sr.CreateInitialState(card.ID, today), *state)
}

func TestImportWords_ReimportUpdatesAndKeepsSchedule(t *testing.T) {
	im, store := newTestImporter(t)
	ctx := context.Background()

	_, err := im.ImportWords(ctx, configFor(writeCSV(t, "h\nሰላም,hello,selam,greetings\n")))
	require.NoError(t, err)

	v, err := store.Vocab.FindByAmharic(ctx, "ሰላም")
	require.NoError(t, err)
	state, err := store.States.Get(ctx, CardID(v.ID))
	require.NoError(t, err)
	state.Reps = 3
	state.DueDate = "2026-03-10"
	require.NoError(t, store.States.Put(ctx, state))

	cfg := configFor(writeCSV(t, "h\nሰላም,peace,selam,greetings\n"))
	cfg.Today = "2026-03-01"
	res, err := im.ImportWords(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)

	card, err := store.Cards.Get(ctx, CardID(v.ID))
	require.NoError(t, err)
	assert.Equal(t, "peace", card.Back)

	kept, err := store.States.Get(ctx, CardID(v.ID))
	require.NoError(t, err)
	assert.Equal(t, 3, kept.Reps)
	assert.Equal(t, "2026-03-10", kept.DueDate)
}

func TestForget(t *testing.T) {
	im, store := newTestImporter(t)
	ctx := context.Background()

	_, err := im.ImportWords(ctx, configFor(writeCSV(t, "h\nሰላም,hello,selam,greetings\nውሃ,water,wuha,food\n")))
	require.NoError(t, err)
	v, err := store.Vocab.FindByAmharic(ctx, "ሰላም")
	require.NoError(t, err)

	removed, err := im.Forget(ctx, " ሰላም ")
	require.NoError(t, err)
	assert.Equal(t, v.ID, removed.ID)

	_, err = store.Vocab.FindByAmharic(ctx, "ሰላም")
	assert.True(t, errors.Is(err, database.ErrNotFound))
	_, err = store.Cards.Get(ctx, CardID(v.ID))
	assert.True(t, errors.Is(err, database.ErrNotFound))
	_, err = store.States.Get(ctx, CardID(v.ID))
	assert.True(t, errors.Is(err, database.ErrNotFound))

	due, err := store.States.ListDue(ctx, today)
	require.NoError(t, err)
	assert.Len(t, due, 1)

	_, err = im.Forget(ctx, "ሰላም")
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestImportWords_Excel(t *testing.T) {
	im, store := newTestImporter(t)
	ctx := context.Background()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Amharic", "English", "Transliteration", "Theme"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"ቡና", "coffee", "buna", "food"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"መጽሐፍ", "book", "mets'haf", ""}))
	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := im.ImportWords(ctx, configFor(path))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Empty(t, res.Errors)

	cards, err := store.Cards.List(ctx, VocabModule)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestImportWords_Failures(t *testing.T) {
	im, _ := newTestImporter(t)
	ctx := context.Background()

	_, err := im.ImportWords(ctx, configFor(filepath.Join(t.TempDir(), "missing.xlsx")))
	assert.Error(t, err)

	cfg := configFor(writeCSV(t, "h\n"))
	cfg.Today = "yesterday"
	_, err = im.ImportWords(ctx, cfg)
	assert.ErrorIs(t, err, sr.ErrInvalidDate)
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 3, columnToIndex("d"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, -1, columnToIndex("1"))
}

func TestCleanWord(t *testing.T) {
	assert.Equal(t, "ውሃ", cleanWord(" ውሃ (ውሆች) "))
	assert.Equal(t, "hello", cleanWord("hello"))
}
