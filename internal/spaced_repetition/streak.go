package spaced_repetition

// CalculateStreak returns the study streak after a session completed today.
// Called once per finished session, not per rating.
//   - already studied today: unchanged
//   - studied yesterday: current + 1
//   - anything else, including no prior session: 1
func CalculateStreak(lastStudyDate *string, today string, current int) (int, error) {
	yesterday, err := AddDays(today, -1)
	if err != nil {
		return 0, err
	}
	if lastStudyDate == nil {
		return 1, nil
	}

	switch *lastStudyDate {
	case today:
		return current, nil
	case yesterday:
		return current + 1, nil
	default:
		return 1, nil
	}
}
