package fidel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsonantKeys(t *testing.T) {
	assert.Len(t, ConsonantKeys, 34)

	seen := map[string]bool{}
	for _, k := range ConsonantKeys {
		assert.False(t, seen[k.Romanization], "duplicate romanization %q", k.Romanization)
		seen[k.Romanization] = true
	}

	l, ok := KeyByRomanization("l")
	require.True(t, ok)
	assert.Equal(t, "ለ (l)", l.DisplayName())

	_, ok = KeyByRomanization("zz")
	assert.False(t, ok)
}

func TestVowelOrderChar(t *testing.T) {
	l, _ := KeyByRomanization("l")

	want := []string{"ለ", "ሉ", "ሊ", "ላ", "ሌ", "ለ", "ሎ"}
	for order := 1; order <= 7; order++ {
		got, err := VowelOrderChar(l, order)
		require.NoError(t, err)
		assert.Equal(t, want[order-1], got, "order %d", order)
	}
}

func TestVowelOrderChar_OutOfRange(t *testing.T) {
	l, _ := KeyByRomanization("l")

	for _, order := range []int{0, 8, -1} {
		_, err := VowelOrderChar(l, order)
		assert.True(t, errors.Is(err, ErrInvalidVowelOrder), "order %d", order)
	}
}

func TestValidateInput(t *testing.T) {
	res := ValidateInput("ሰላም", "ሰላም")
	assert.True(t, res.Correct)
	assert.Empty(t, res.WrongPositions)

	res = ValidateInput("ሰሉም", "ሰላም")
	assert.False(t, res.Correct)
	assert.Equal(t, []int{1}, res.WrongPositions)

	res = ValidateInput("ሰ", "ሰላም")
	assert.Equal(t, []int{1, 2}, res.WrongPositions)

	res = ValidateInput("ሰላምታ", "ሰላም")
	assert.Equal(t, []int{3, 4}, res.WrongPositions)
}
