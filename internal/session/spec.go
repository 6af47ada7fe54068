// Package session composes study sessions from the question bank and the
// mistake ledger, and scores answers as they come in.
package session

// Mode selects what kind of session to run.
type Mode string

const (
	// ModeExam is a timed simulation of a single block.
	ModeExam Mode = "exam"
	// ModeFull is a long untimed run over all blocks.
	ModeFull Mode = "full"
	// ModePractice is a short block-focused drill.
	ModePractice Mode = "practice"
	// ModeMistakes replays previously failed questions.
	ModeMistakes Mode = "mistakes"
)

// PracticeKind distinguishes the two practice variants.
type PracticeKind string

const (
	// KindTest serves multiple-choice questions.
	KindTest PracticeKind = "test"
	// KindPractical serves open-ended exercises.
	KindPractical PracticeKind = "practical"
)

// Count limits per mode.
const (
	MinFullCount  = 30
	MaxDrillCount = 15
)

// Spec describes the session the user asked for.
type Spec struct {
	Mode         Mode
	PracticeKind PracticeKind
	// Block restricts the session to one syllabus block; nil means all.
	Block *int
	Count int
	// TimerEnabled shows a count-up timer during the session.
	TimerEnabled bool

	// countExplicit records that the user picked a count, so mode
	// switches stop adjusting it.
	countExplicit bool
}

// NewSpec returns a Spec with the defaults for mode.
func NewSpec(mode Mode) Spec {
	s := Spec{PracticeKind: KindTest, Count: MaxDrillCount}
	s.SetMode(mode)
	return s
}

// SetMode switches the session mode and re-applies mode defaults to any
// settings the user has not explicitly chosen.
func (s *Spec) SetMode(mode Mode) {
	s.Mode = mode
	switch mode {
	case ModeExam:
		s.TimerEnabled = true
	case ModeFull:
		// Full runs always span every block.
		s.Block = nil
		s.TimerEnabled = false
	default:
		s.TimerEnabled = false
	}

	if s.countExplicit {
		return
	}
	switch mode {
	case ModeFull:
		if s.Count < MinFullCount {
			s.Count = MinFullCount
		}
	default:
		if s.Count > MaxDrillCount {
			s.Count = MaxDrillCount
		}
	}
}

// SetCount records a user-chosen question count.
func (s *Spec) SetCount(n int) {
	s.Count = n
	s.countExplicit = true
}

// SetBlock restricts the session to a block; ignored in full mode.
func (s *Spec) SetBlock(block *int) {
	if s.Mode == ModeFull {
		return
	}
	s.Block = block
}

// EffectiveBlock is the block filter actually sent to the provider.
// Full runs never filter, whatever Block holds.
func (s Spec) EffectiveBlock() *int {
	if s.Mode == ModeFull {
		return nil
	}
	return s.Block
}
