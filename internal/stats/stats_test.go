package stats

import (
	"testing"
	"time"
)

// memRepo is an in-memory Repo for testing.
type memRepo struct {
	snap  Snapshot
	saves int
}

func (m *memRepo) Load() Snapshot { return m.snap }
func (m *memRepo) Save(s Snapshot) error {
	m.snap = s
	m.saves++
	return nil
}

func date(day int) time.Time {
	return time.Date(2025, 3, day, 10, 30, 0, 0, time.UTC)
}

func TestRecordAnswer_Counters(t *testing.T) {
	repo := &memRepo{}
	tr := NewTracker(repo)

	answers := []bool{true, false, true}
	for _, ok := range answers {
		if err := tr.RecordAnswer(ok, date(1)); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	snap := tr.Snapshot()
	if snap.TotalAnswered != 3 {
		t.Errorf("TotalAnswered = %d, want 3", snap.TotalAnswered)
	}
	if snap.TotalCorrect != 2 {
		t.Errorf("TotalCorrect = %d, want 2", snap.TotalCorrect)
	}
	if snap.TotalMistakes != 1 {
		t.Errorf("TotalMistakes = %d, want 1", snap.TotalMistakes)
	}
	if snap.TotalCorrect > snap.TotalAnswered {
		t.Error("TotalCorrect exceeds TotalAnswered")
	}
	if repo.saves != 3 {
		t.Errorf("saves = %d, want one per answer", repo.saves)
	}
}

func TestRecordAnswer_Streak(t *testing.T) {
	repo := &memRepo{}
	tr := NewTracker(repo)

	// First ever answer starts the streak.
	_ = tr.RecordAnswer(true, date(1))
	if got := tr.Snapshot().StreakDays; got != 1 {
		t.Fatalf("streak after first answer = %d, want 1", got)
	}

	// Same day twice does not double-count.
	_ = tr.RecordAnswer(false, date(1))
	if got := tr.Snapshot().StreakDays; got != 1 {
		t.Errorf("streak after same-day repeat = %d, want 1", got)
	}

	// Next calendar day extends.
	_ = tr.RecordAnswer(true, date(2))
	if got := tr.Snapshot().StreakDays; got != 2 {
		t.Errorf("streak after next day = %d, want 2", got)
	}

	// Two-day gap resets.
	_ = tr.RecordAnswer(true, date(5))
	if got := tr.Snapshot().StreakDays; got != 1 {
		t.Errorf("streak after gap = %d, want 1", got)
	}
}

func TestRecordAnswer_StreakClockSkew(t *testing.T) {
	repo := &memRepo{snap: Snapshot{StreakDays: 4, LastStudyDate: "2025-03-10"}}
	tr := NewTracker(repo)

	// Clock moved backwards: reset rather than extend.
	_ = tr.RecordAnswer(true, date(8))
	if got := tr.Snapshot().StreakDays; got != 1 {
		t.Errorf("streak after negative gap = %d, want 1", got)
	}
}

func TestRecordAnswer_CorruptLastDate(t *testing.T) {
	repo := &memRepo{snap: Snapshot{StreakDays: 7, LastStudyDate: "not-a-date"}}
	tr := NewTracker(repo)

	_ = tr.RecordAnswer(true, date(1))
	snap := tr.Snapshot()
	if snap.StreakDays != 1 {
		t.Errorf("streak after corrupt date = %d, want 1", snap.StreakDays)
	}
	if snap.LastStudyDate != "2025-03-01" {
		t.Errorf("LastStudyDate = %q, want 2025-03-01", snap.LastStudyDate)
	}
}

func TestAccuracyPercent(t *testing.T) {
	tests := []struct {
		answered int
		correct  int
		want     int
	}{
		{0, 0, 0},
		{1, 1, 100},
		{3, 2, 67},
		{3, 1, 33},
		{8, 1, 13},
		{4, 2, 50},
	}

	for _, tt := range tests {
		s := Snapshot{TotalAnswered: tt.answered, TotalCorrect: tt.correct}
		if got := s.AccuracyPercent(); got != tt.want {
			t.Errorf("AccuracyPercent(%d/%d) = %d, want %d", tt.correct, tt.answered, got, tt.want)
		}
	}
}
