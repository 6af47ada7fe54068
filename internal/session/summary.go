package session

import (
	"math"
	"time"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Mode     Mode
	Total    int
	Correct  int
	Percent  int
	Elapsed  time.Duration
	Resolved int
}

// BuildSummary creates a Summary from a finished session.
func BuildSummary(state *State) Summary {
	correct := state.Correct()
	total := len(state.Outcomes)

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(correct) / float64(total) * 100))
	}

	resolved := 0
	if state.Spec.Mode == ModeMistakes {
		resolved = correct
	}

	return Summary{
		Mode:     state.Spec.Mode,
		Total:    total,
		Correct:  correct,
		Percent:  percent,
		Elapsed:  state.Elapsed,
		Resolved: resolved,
	}
}
