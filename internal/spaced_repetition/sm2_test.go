package spaced_repetition

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fideltutor/pkg/models"
)

const today = "2026-02-25"

func state(interval, ease float64, reps int) models.SRSState {
	return models.SRSState{CardID: "card-1", Interval: interval, EaseFactor: ease, DueDate: today, Reps: reps}
}

func TestCreateInitialState(t *testing.T) {
	s := CreateInitialState("vocab_selam", today)

	assert.Equal(t, "vocab_selam", s.CardID)
	assert.Equal(t, 1.0, s.Interval)
	assert.Equal(t, 2.5, s.EaseFactor)
	assert.Equal(t, 0, s.Reps)
	assert.Equal(t, today, s.DueDate)
	assert.True(t, IsDue(s, today))
}

func TestApplyRating_GoodEndToEnd(t *testing.T) {
	res, err := NewSM2().ApplyRating(state(4, 2.5, 5), Good, today)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, res.NewState.Interval, 1e-9)
	assert.Equal(t, 2.5, res.NewState.EaseFactor)
	assert.Equal(t, 6, res.NewState.Reps)
	assert.Equal(t, "2026-03-07", res.NewState.DueDate)
	assert.Equal(t, "card-1", res.NewState.CardID)
	assert.Equal(t, 10, res.XPEarned)
}

func TestApplyRating_Table(t *testing.T) {
	tests := []struct {
		name     string
		in       models.SRSState
		rating   Rating
		interval float64
		ease     float64
		reps     int
		due      string
		xp       int
	}{
		{"again resets", state(12, 2.5, 7), Again, 1, 2.3, 0, "2026-02-26", 0},
		{"hard grows by 1.2", state(4, 2.5, 2), Hard, 4.8, 2.35, 3, "2026-03-01", 5},
		{"hard never below one day", state(0.5, 2.5, 0), Hard, 1, 2.35, 1, "2026-02-26", 5},
		{"good multiplies by ease", state(2, 2.0, 1), Good, 4, 2.0, 2, "2026-03-01", 10},
		{"easy adds bonus and ease", state(2, 2.5, 1), Easy, 6.5, 2.65, 2, "2026-03-03", 15},
	}

	sm := NewSM2()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := sm.ApplyRating(tt.in, tt.rating, today)
			require.NoError(t, err)

			assert.InDelta(t, tt.interval, res.NewState.Interval, 1e-9)
			assert.InDelta(t, tt.ease, res.NewState.EaseFactor, 1e-9)
			assert.Equal(t, tt.reps, res.NewState.Reps)
			assert.Equal(t, tt.due, res.NewState.DueDate)
			assert.Equal(t, tt.xp, res.XPEarned)
		})
	}
}

func TestApplyRating_AgainAlwaysResets(t *testing.T) {
	sm := NewSM2()
	for _, in := range []models.SRSState{state(1, 1.3, 0), state(300, 3.1, 40), state(2.4, 1.7, 3)} {
		res, err := sm.ApplyRating(in, Again, today)
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.NewState.Interval)
		assert.Equal(t, 0, res.NewState.Reps)
	}
}

func TestApplyRating_EaseFloor(t *testing.T) {
	sm := NewSM2()
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		for _, ease := range []float64{1.3, 1.35, 1.4, 0.5} {
			res, err := sm.ApplyRating(state(3, ease, 2), r, today)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.NewState.EaseFactor, MinEaseFactor, "rating %s ease %v", r, ease)
		}
	}

	res, err := sm.ApplyRating(state(3, 1.4, 2), Again, today)
	require.NoError(t, err)
	assert.Equal(t, MinEaseFactor, res.NewState.EaseFactor)
}

func TestApplyRating_FractionalIntervalFloorsDueDate(t *testing.T) {
	res, err := NewSM2().ApplyRating(state(2, 1.2, 1), Good, today)
	require.NoError(t, err)

	assert.InDelta(t, 2.4, res.NewState.Interval, 1e-9)
	assert.Equal(t, "2026-02-27", res.NewState.DueDate)
}

func TestApplyRating_IsPure(t *testing.T) {
	sm := NewSM2()
	in := state(4, 2.5, 5)

	first, err := sm.ApplyRating(in, Easy, today)
	require.NoError(t, err)
	second, err := sm.ApplyRating(in, Easy, today)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, state(4, 2.5, 5), in)
}

func TestApplyRating_InvalidInput(t *testing.T) {
	sm := NewSM2()

	_, err := sm.ApplyRating(state(1, 2.5, 0), Rating(0), today)
	assert.True(t, errors.Is(err, ErrInvalidRating))

	_, err = sm.ApplyRating(state(1, 2.5, 0), Rating(9), today)
	assert.True(t, errors.Is(err, ErrInvalidRating))

	_, err = sm.ApplyRating(state(1, 2.5, 0), Good, "25/02/2026")
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestIsDue(t *testing.T) {
	s := state(1, 2.5, 0)

	s.DueDate = "2026-02-24"
	assert.True(t, IsDue(s, today))
	s.DueDate = today
	assert.True(t, IsDue(s, today))
	s.DueDate = "2026-02-26"
	assert.False(t, IsDue(s, today))
}

func TestIsMastered(t *testing.T) {
	sm := NewSM2()
	assert.True(t, sm.IsMastered(state(30, 2.5, 5)))
	assert.False(t, sm.IsMastered(state(29.9, 2.5, 5)))
	assert.False(t, sm.IsMastered(state(60, 2.5, 4)))
}

func TestDueStatesAndSortQueue(t *testing.T) {
	states := []models.SRSState{
		{CardID: "future", DueDate: "2026-03-01", EaseFactor: 1.3, Reps: 0},
		{CardID: "easy-old", DueDate: "2026-02-01", EaseFactor: 2.8, Reps: 3},
		{CardID: "hard", DueDate: "2026-02-20", EaseFactor: 1.5, Reps: 2},
		{CardID: "new", DueDate: today, EaseFactor: 2.5, Reps: 0},
		{CardID: "easy-new", DueDate: "2026-02-10", EaseFactor: 2.8, Reps: 1},
	}

	due := DueStates(states, today, 0)
	ids := make([]string, len(due))
	for i, s := range due {
		ids[i] = s.CardID
	}
	assert.Equal(t, []string{"new", "hard", "easy-old", "easy-new"}, ids)

	assert.Len(t, DueStates(states, today, 2), 2)
	assert.Equal(t, "2026-03-01", NextDueDate(states, today))
	assert.Equal(t, "", NextDueDate(states, "2026-03-01"))
}

func TestCalculateStreak(t *testing.T) {
	yesterday := "2026-02-24"
	sameDay := today
	older := "2026-02-20"

	n, err := CalculateStreak(&yesterday, today, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = CalculateStreak(&sameDay, today, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = CalculateStreak(&older, today, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = CalculateStreak(nil, today, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCalculateStreak_AcrossMonthAndYear(t *testing.T) {
	last := "2026-02-28"
	n, err := CalculateStreak(&last, "2026-03-01", 9)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	last = "2025-12-31"
	n, err = CalculateStreak(&last, "2026-01-01", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = CalculateStreak(&last, "tomorrow", 1)
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestRatingParsingAndJSON(t *testing.T) {
	r, err := ParseRating(" Good ")
	require.NoError(t, err)
	assert.Equal(t, Good, r)

	_, err = ParseRating("skip")
	assert.True(t, errors.Is(err, ErrInvalidRating))

	data, err := json.Marshal(Easy)
	require.NoError(t, err)
	assert.Equal(t, `"easy"`, string(data))

	var back Rating
	require.NoError(t, json.Unmarshal([]byte(`"hard"`), &back))
	assert.Equal(t, Hard, back)

	assert.Error(t, json.Unmarshal([]byte(`"suspend"`), &back))
	assert.Equal(t, "Rating(7)", Rating(7).String())
}

func TestAddDays(t *testing.T) {
	d, err := AddDays("2026-02-25", 10.99)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-07", d)

	d, err = AddDays("2024-02-28", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d)
}
