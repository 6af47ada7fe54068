package session

import (
	"time"

	"github.com/google/uuid"

	"opostudy/internal/provider"
)

// Phase represents the current phase of a running session.
type Phase int

const (
	PhaseActive   Phase = iota // Serving questions
	PhaseFeedback              // Showing answer feedback
	PhaseSummary               // Session finished
)

// State tracks the runtime of an active quiz session.
type State struct {
	// ID is the UUID for this session.
	ID string

	// Spec is the configuration the session was started with.
	Spec Spec

	// Questions is the ordered question set.
	Questions []provider.Question

	// Index is the position of the current question.
	Index int

	// Outcomes collects the scored answers so far, one per question
	// answered.
	Outcomes []Outcome

	// StartTime is when the session began.
	StartTime time.Time

	// Elapsed is the running session duration, driven by the UI tick.
	Elapsed time.Duration

	// Phase is the current session phase.
	Phase Phase
}

// NewState starts a session over the given questions.
func NewState(spec Spec, questions []provider.Question, now time.Time) *State {
	return &State{
		ID:        uuid.NewString(),
		Spec:      spec,
		Questions: questions,
		StartTime: now,
		Phase:     PhaseActive,
	}
}

// Current returns the question at the cursor, or false when the set is
// exhausted.
func (s *State) Current() (provider.Question, bool) {
	if s.Index >= len(s.Questions) {
		return provider.Question{}, false
	}
	return s.Questions[s.Index], true
}

// RecordOutcome appends a scored answer and moves to the feedback phase.
func (s *State) RecordOutcome(out Outcome) {
	s.Outcomes = append(s.Outcomes, out)
	s.Phase = PhaseFeedback
}

// Advance moves past the current question. It returns false when the
// session is finished, in which case the phase flips to summary.
func (s *State) Advance() bool {
	s.Index++
	if s.Index >= len(s.Questions) {
		s.Phase = PhaseSummary
		return false
	}
	s.Phase = PhaseActive
	return true
}

// Correct counts the correct outcomes so far.
func (s *State) Correct() int {
	n := 0
	for _, out := range s.Outcomes {
		if out.IsCorrect {
			n++
		}
	}
	return n
}
