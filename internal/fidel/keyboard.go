// Package fidel holds the Ethiopic (fidel) keyboard helpers: the consonant
// keys, vowel-order composition and answer checking.
package fidel

import (
	"errors"
	"fmt"
)

// ErrInvalidVowelOrder is returned for vowel orders outside 1..7
var ErrInvalidVowelOrder = errors.New("fidel: vowel order must be an integer from 1 to 7")

// ConsonantKey is one consonant on the on-screen keyboard
type ConsonantKey struct {
	BaseChar      string `json:"base_char"`
	Romanization  string `json:"romanization"`
	BaseCodepoint rune   `json:"base_codepoint"`
}

// DisplayName is the label shown on the key, e.g. "ለ (l)"
func (k ConsonantKey) DisplayName() string {
	return fmt.Sprintf("%s (%s)", k.BaseChar, k.Romanization)
}

func key(base string, roman string, cp rune) ConsonantKey {
	return ConsonantKey{BaseChar: base, Romanization: roman, BaseCodepoint: cp}
}

// ConsonantKeys lists the keyboard consonants in keyboard order
var ConsonantKeys = []ConsonantKey{
	key("ለ", "l", 0x1208),
	key("አ", "a", 0x12a0),
	key("ነ", "n", 0x1290),
	key("ተ", "t", 0x1270),
	key("ከ", "k", 0x12a8),
	key("በ", "b", 0x1260),
	key("ሰ", "s", 0x1230),
	key("ደ", "d", 0x12f0),
	key("ዘ", "z", 0x12d8),
	key("ወ", "w", 0x12c8),
	key("ረ", "r", 0x1228),
	key("ሀ", "h", 0x1200),
	key("መ", "m", 0x1218),
	key("ሸ", "sh", 0x1238),
	key("ቀ", "q", 0x1240),
	key("ገ", "g", 0x1308),
	key("ፈ", "f", 0x1348),
	key("ዐ", "'a", 0x12d0),
	key("ጠ", "t'", 0x1320),
	key("ጸ", "ts", 0x1338),
	key("ኀ", "x", 0x1280),
	key("ኘ", "ny", 0x1298),
	key("ፐ", "p", 0x1350),
	key("ጀ", "j", 0x1300),
	key("ጨ", "ch'", 0x1328),
	key("ቸ", "ch", 0x1278),
	key("ዥ", "zh", 0x12e0),
	key("ሐ", "h'", 0x1210),
	key("ሠ", "s'", 0x1220),
	key("ቐ", "q'", 0x1250),
	key("ቨ", "v", 0x1268),
	key("ዀ", "xw", 0x12c0),
	key("ጐ", "gw", 0x1310),
	key("ፀ", "ts'", 0x1340),
}

// KeyByRomanization finds a consonant key by its romanization
func KeyByRomanization(roman string) (ConsonantKey, bool) {
	for _, k := range ConsonantKeys {
		if k.Romanization == roman {
			return k, true
		}
	}
	return ConsonantKey{}, false
}

// VowelOrderChar returns the syllable of consonant in the given vowel order.
// The sixth order is the bare consonant and sits at the base code point of
// the block; the other orders are offset from it by order-1.
func VowelOrderChar(consonant ConsonantKey, order int) (string, error) {
	if order < 1 || order > 7 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidVowelOrder, order)
	}

	cp := consonant.BaseCodepoint
	if order != 6 {
		cp += rune(order - 1)
	}
	return string(cp), nil
}

// InputCheck is the outcome of comparing typed fidel with the expected text
type InputCheck struct {
	Correct        bool  `json:"correct"`
	WrongPositions []int `json:"wrong_positions"`
}

// ValidateInput compares user input with expected rune by rune. Positions
// past the end of the shorter string count as wrong.
func ValidateInput(input, expected string) InputCheck {
	got := []rune(input)
	want := []rune(expected)

	n := len(got)
	if len(want) > n {
		n = len(want)
	}

	wrong := []int{}
	for i := 0; i < n; i++ {
		if i >= len(got) || i >= len(want) || got[i] != want[i] {
			wrong = append(wrong, i)
		}
	}

	return InputCheck{Correct: len(wrong) == 0, WrongPositions: wrong}
}
