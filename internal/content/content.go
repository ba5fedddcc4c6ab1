// Package content loads static study content: reference strokes of fidel
// characters and grammar/dialogue exercises. Documents are validated against
// embedded JSON schemas before they are decoded.
package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/example/fideltutor/internal/tracing"
	"github.com/example/fideltutor/pkg/models"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrInvalidDocument wraps schema validation failures
var ErrInvalidDocument = errors.New("content: document does not match schema")

// FieldError is one schema violation
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation of a document
type ValidationError struct {
	Document string
	Errors   []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s: %s", e.Document, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDocument }

func validate(schemaName, docName string, doc []byte) error {
	schema, err := schemaFS.ReadFile("schemas/" + schemaName)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schemaName, err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", docName, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Document: docName, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

// Character is the stroke data of one fidel character
type Character struct {
	Character    string                    `json:"character"`
	Romanization string                    `json:"romanization,omitempty"`
	Strokes      []tracing.ReferenceStroke `json:"strokes"`
}

// ParseCharacter validates and decodes a character document
func ParseCharacter(name string, doc []byte) (*Character, error) {
	if err := validate("character.schema.json", name, doc); err != nil {
		return nil, err
	}

	var c Character
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	sort.SliceStable(c.Strokes, func(i, j int) bool {
		return c.Strokes[i].StrokeIndex < c.Strokes[j].StrokeIndex
	})
	for i, s := range c.Strokes {
		if s.StrokeIndex != i || s.StrokeCount != len(c.Strokes) {
			return nil, fmt.Errorf("%w: %s: stroke %d is labelled %d of %d",
				ErrInvalidDocument, name, i, s.StrokeIndex, s.StrokeCount)
		}
	}
	return &c, nil
}

// ExerciseDoc is an exercise together with its identity
type ExerciseDoc struct {
	ID       string
	ModuleID string
	Exercise models.Exercise
}

// ParseExercise validates and decodes an exercise document
func ParseExercise(name string, doc []byte) (*ExerciseDoc, error) {
	if err := validate("exercise.schema.json", name, doc); err != nil {
		return nil, err
	}

	var head struct {
		ID       string `json:"id"`
		ModuleID string `json:"module_id"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	ex, err := models.DecodeExercise(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if head.ID == "" {
		head.ID = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return &ExerciseDoc{ID: head.ID, ModuleID: head.ModuleID, Exercise: ex}, nil
}

// Library is the content found under one content directory
type Library struct {
	Characters map[string]*Character // keyed by character and by romanization
	Exercises  map[string]*ExerciseDoc
}

// Character looks a character up by glyph or romanization
func (l *Library) Character(key string) (*Character, bool) {
	c, ok := l.Characters[key]
	return c, ok
}

// Load reads dir/characters/*.json and dir/exercises/*.json. Missing
// subdirectories are treated as empty.
func Load(dir string) (*Library, error) {
	lib := &Library{
		Characters: map[string]*Character{},
		Exercises:  map[string]*ExerciseDoc{},
	}

	err := eachJSON(filepath.Join(dir, "characters"), func(path string, doc []byte) error {
		c, err := ParseCharacter(path, doc)
		if err != nil {
			return err
		}
		lib.Characters[c.Character] = c
		if c.Romanization != "" {
			lib.Characters[c.Romanization] = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachJSON(filepath.Join(dir, "exercises"), func(path string, doc []byte) error {
		ex, err := ParseExercise(path, doc)
		if err != nil {
			return err
		}
		lib.Exercises[ex.ID] = ex
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}

func eachJSON(dir string, fn func(path string, doc []byte) error) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	sort.Strings(paths)
	for _, p := range paths {
		doc, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		if err := fn(p, doc); err != nil {
			return err
		}
	}
	return nil
}
