package session

import (
	"testing"
	"time"
)

func TestStateLifecycle(t *testing.T) {
	qs := testQuestions("q1", "q2")
	st := NewState(NewSpec(ModeExam), qs, time.Now())

	if st.ID == "" {
		t.Error("expected a session ID")
	}
	if st.Phase != PhaseActive {
		t.Fatalf("Phase = %v, want active", st.Phase)
	}

	q, ok := st.Current()
	if !ok || q.ID != "q1" {
		t.Fatalf("Current = %v %v, want q1", q.ID, ok)
	}

	st.RecordOutcome(Outcome{QuestionID: "q1", IsCorrect: true})
	if st.Phase != PhaseFeedback {
		t.Errorf("Phase after outcome = %v, want feedback", st.Phase)
	}

	if !st.Advance() {
		t.Fatal("Advance returned false with a question left")
	}
	q, _ = st.Current()
	if q.ID != "q2" {
		t.Errorf("Current = %v, want q2", q.ID)
	}

	st.RecordOutcome(Outcome{QuestionID: "q2", IsCorrect: false})
	if st.Advance() {
		t.Fatal("Advance returned true on the last question")
	}
	if st.Phase != PhaseSummary {
		t.Errorf("Phase = %v, want summary", st.Phase)
	}
	if st.Correct() != 1 {
		t.Errorf("Correct = %d, want 1", st.Correct())
	}
}

func TestBuildSummary(t *testing.T) {
	st := NewState(NewSpec(ModeMistakes), testQuestions("q1", "q2", "q3"), time.Now())
	st.Outcomes = []Outcome{
		{IsCorrect: true},
		{IsCorrect: true},
		{IsCorrect: false},
	}
	st.Elapsed = 90 * time.Second

	sum := BuildSummary(st)
	if sum.Total != 3 || sum.Correct != 2 {
		t.Errorf("summary = %+v, want 2/3", sum)
	}
	if sum.Percent != 67 {
		t.Errorf("Percent = %d, want 67", sum.Percent)
	}
	if sum.Elapsed != 90*time.Second {
		t.Errorf("Elapsed = %v", sum.Elapsed)
	}
	// Mistakes reviews report how many entries got cleared.
	if sum.Resolved != 2 {
		t.Errorf("Resolved = %d, want 2", sum.Resolved)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	st := NewState(NewSpec(ModeExam), nil, time.Now())
	sum := BuildSummary(st)
	if sum.Percent != 0 || sum.Total != 0 {
		t.Errorf("summary = %+v, want zeros", sum)
	}
	if sum.Resolved != 0 {
		t.Errorf("Resolved = %d, want 0 outside mistakes mode", sum.Resolved)
	}
}
