// Package curriculum decides which curriculum units a learner may open.
package curriculum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/fideltutor/pkg/models"
)

var (
	ErrUnknownUnit          = errors.New("curriculum: unknown unit")
	ErrInvalidCharacterSet  = errors.New("curriculum: character set size must be positive")
	ErrCharacterSetChanged  = errors.New("curriculum: more characters unlocked than the configured character set holds")
	ErrNegativeUnlockedChar = errors.New("curriculum: unlocked character count is negative")
)

// Unit is one stage of the fixed curriculum
type Unit string

const (
	Script     Unit = "fidel"
	Vocabulary Unit = "vocab"
	Grammar    Unit = "grammar"
	Dialogues  Unit = "dialogue"
)

// Order is the fixed curriculum sequence
var Order = []Unit{Script, Vocabulary, Grammar, Dialogues}

// DefaultFidelTotalChars is the size of the fidel character set taught by
// the script unit
const DefaultFidelTotalChars = 287

// ProgressLookup returns the stored progress of a module, if any
type ProgressLookup func(moduleID string) (models.Progress, bool)

// FromRecords builds a lookup over an in-memory list of progress records
func FromRecords(records []models.Progress) ProgressLookup {
	byID := make(map[string]models.Progress, len(records))
	for _, p := range records {
		byID[p.ModuleID] = p
	}
	return func(moduleID string) (models.Progress, bool) {
		p, ok := byID[moduleID]
		return p, ok
	}
}

// ParseUnit resolves a unit from its module id
func ParseUnit(s string) (Unit, error) {
	for _, u := range Order {
		if string(u) == s {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// IsUnlocked reports whether unit may be opened: the first unit always,
// any other only once its predecessor is complete.
func IsUnlocked(unit Unit, lookup ProgressLookup) (bool, error) {
	for i, u := range Order {
		if u != unit {
			continue
		}
		if i == 0 {
			return true, nil
		}
		prev, ok := lookup(string(Order[i-1]))
		return ok && prev.Status == models.StatusComplete, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
}

// Unlocks returns the unlock flag of every unit in curriculum order
func Unlocks(lookup ProgressLookup) map[Unit]bool {
	flags := make(map[Unit]bool, len(Order))
	for _, u := range Order {
		flags[u], _ = IsUnlocked(u, lookup)
	}
	return flags
}

// FidelUnlockPercentage returns the share of the character set unlocked, in
// percent. total comes from configuration; a count above it means the
// character set changed without the configuration following.
func FidelUnlockPercentage(unlocked, total int) (float64, error) {
	if total <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCharacterSet, total)
	}
	if unlocked < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeUnlockedChar, unlocked)
	}
	if unlocked > total {
		return 0, fmt.Errorf("%w: %d > %d", ErrCharacterSetChanged, unlocked, total)
	}
	return float64(unlocked) / float64(total) * 100, nil
}

// CharacterModulePrefix prefixes the progress records of single fidel
// characters, e.g. "fidel_ሀ"
const CharacterModulePrefix = "fidel_"

// CharacterModuleID is the progress record id of one fidel character
func CharacterModuleID(character string) string {
	return CharacterModulePrefix + character
}

// UnlockedCharacters counts the fidel characters whose progress record is
// no longer locked
func UnlockedCharacters(records []models.Progress) int {
	n := 0
	for _, p := range records {
		if strings.HasPrefix(p.ModuleID, CharacterModulePrefix) && p.Status != models.StatusLocked {
			n++
		}
	}
	return n
}
