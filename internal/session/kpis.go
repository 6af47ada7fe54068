package session

import (
	"time"

	"opostudy/internal/mistakes"
	"opostudy/internal/stats"
)

// KPI is the headline numbers shown on the home screen.
type KPI struct {
	Answered        int
	AccuracyPercent int
	StreakDays      int
	PendingMistakes int
}

// BuildKPI assembles the home screen numbers from current state.
func BuildKPI(tracker *stats.Tracker, ledger *mistakes.Ledger, now time.Time) KPI {
	snap := tracker.Snapshot()
	return KPI{
		Answered:        snap.TotalAnswered,
		AccuracyPercent: snap.AccuracyPercent(),
		StreakDays:      snap.StreakDays,
		PendingMistakes: ledger.PendingCount(nil, now),
	}
}
