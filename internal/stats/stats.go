package stats

import (
	"math"
	"time"
)

// dateLayout is the calendar-date format used for streak tracking.
// Streaks are evaluated against UTC calendar days, not 24h windows.
const dateLayout = "2006-01-02"

// Snapshot holds the cumulative study counters persisted between runs.
//
// TotalMistakes is a plain tally of wrong answers. It is distinct from the
// mistake ledger's de-duplicated pending queue and never decreases.
type Snapshot struct {
	TotalAnswered int    `json:"total_answered"`
	TotalCorrect  int    `json:"total_correct"`
	TotalMistakes int    `json:"total_mistakes"`
	StreakDays    int    `json:"streak_days"`
	LastStudyDate string `json:"last_study_date,omitempty"`
}

// AccuracyPercent returns the rounded overall accuracy, 0 when nothing
// has been answered yet.
func (s Snapshot) AccuracyPercent() int {
	if s.TotalAnswered == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.TotalCorrect) / float64(s.TotalAnswered)))
}

// Repo persists the stats snapshot.
type Repo interface {
	Load() Snapshot
	Save(Snapshot) error
}

// Tracker maintains the cumulative answer counters and the daily streak.
type Tracker struct {
	repo Repo
	snap Snapshot
}

// NewTracker creates a Tracker seeded from the repo.
func NewTracker(repo Repo) *Tracker {
	return &Tracker{repo: repo, snap: repo.Load()}
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

// RecordAnswer applies a single answer outcome and persists the snapshot.
//
// The streak only moves on the first answer of a new calendar day: an
// answer exactly one day after the last study date extends it, any larger
// gap (or an unparseable stored date) resets it to 1. Repeat answers on
// the same day leave it unchanged.
func (t *Tracker) RecordAnswer(correct bool, now time.Time) error {
	t.snap.TotalAnswered++
	if correct {
		t.snap.TotalCorrect++
	} else {
		t.snap.TotalMistakes++
	}

	today := now.UTC().Format(dateLayout)
	switch {
	case t.snap.LastStudyDate == "":
		t.snap.StreakDays = 1
	case t.snap.LastStudyDate != today:
		if dayDiff(t.snap.LastStudyDate, today) == 1 {
			t.snap.StreakDays++
		} else {
			t.snap.StreakDays = 1
		}
	}
	t.snap.LastStudyDate = today

	return t.repo.Save(t.snap)
}

// dayDiff returns the whole-day difference between two calendar dates.
// An unparseable date yields a sentinel that never matches a streak
// continuation.
func dayDiff(from, to string) int {
	a, errA := time.Parse(dateLayout, from)
	b, errB := time.Parse(dateLayout, to)
	if errA != nil || errB != nil {
		return math.MinInt
	}
	return int(b.Sub(a).Hours() / 24)
}
