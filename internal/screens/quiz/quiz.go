// Package quiz runs a multiple-choice session from first question to
// summary handoff.
package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"opostudy/internal/explain"
	"opostudy/internal/router"
	"opostudy/internal/screen"
	"opostudy/internal/screens/summary"
	sess "opostudy/internal/session"
	"opostudy/internal/ui/components"
	"opostudy/internal/ui/layout"
)

// QuizScreen drives an active question session.
type QuizScreen struct {
	spec      sess.Spec
	composer  *sess.Composer
	evaluator *sess.Evaluator
	explainer explain.Explainer

	state *sess.State
	mc    components.MultiChoice

	explanation        string
	loadingExplanation bool
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for the given spec.
func New(spec sess.Spec, composer *sess.Composer, evaluator *sess.Evaluator, explainer explain.Explainer) *QuizScreen {
	return &QuizScreen{
		spec:      spec,
		composer:  composer,
		evaluator: evaluator,
		explainer: explainer,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadQuestions()
}

func (s *QuizScreen) Title() string {
	switch s.spec.Mode {
	case sess.ModeExam:
		return "Exam"
	case sess.ModeFull:
		return "Full Run"
	case sess.ModeMistakes:
		return "Mistakes Review"
	default:
		return "Practice"
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state != nil && s.state.Phase == sess.PhaseFeedback {
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if s.explainer != nil && s.explanation == "" && !s.loadingExplanation {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
		return hints
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Quit"},
	}
}

// loadQuestions fetches the session's question set off the UI loop.
func (s *QuizScreen) loadQuestions() tea.Cmd {
	spec := s.spec
	composer := s.composer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		questions, err := composer.Questions(ctx, spec)
		return questionsLoadedMsg{Questions: questions, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// immediateFeedback reports whether this mode reveals the result after
// each answer. Only practice does; every other mode, mistakes review
// included, defers everything to the summary.
func (s *QuizScreen) immediateFeedback() bool {
	return s.spec.Mode == sess.ModePractice
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)

	case timerTickMsg:
		if s.state == nil || s.state.Phase == sess.PhaseSummary {
			return s, nil
		}
		s.state.Elapsed += time.Second
		return s, tickCmd()

	case explanationMsg:
		s.loadingExplanation = false
		if q, ok := s.state.Current(); !ok || q.ID != msg.QuestionID {
			return s, nil
		}
		if msg.Err != nil {
			s.explanation = "Explanation unavailable: " + msg.Err.Error()
		} else {
			s.explanation = msg.Text
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.state = sess.NewState(s.spec, msg.Questions, time.Now())
	s.setupQuestion()

	if s.spec.TimerEnabled {
		return s, tickCmd()
	}
	return s, nil
}

func (s *QuizScreen) setupQuestion() {
	if q, ok := s.state.Current(); ok {
		s.mc = components.NewMultiChoice(q.Statement, q.Options, q.CorrectIndex)
		s.explanation = ""
		s.loadingExplanation = false
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showingQuitConfirm {
		switch msg.String() {
		case "y", "Y":
			return s.finish()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.state == nil {
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil

	case "enter":
		switch s.state.Phase {
		case sess.PhaseActive:
			return s.submit()
		case sess.PhaseFeedback:
			return s.next()
		}
		return s, nil

	case "e", "E":
		if s.state.Phase == sess.PhaseFeedback {
			return s.requestExplanation()
		}
	}

	if s.state.Phase == sess.PhaseActive {
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit scores the current selection.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	q, ok := s.state.Current()
	if !ok {
		return s.finish()
	}

	selected := s.mc.Choose()
	// A store write failure must not end the session mid-question.
	out, _ := s.evaluator.Evaluate(q, selected, s.spec.Mode, time.Now())
	s.state.RecordOutcome(out)

	if s.immediateFeedback() {
		return s, nil
	}
	return s.next()
}

// next advances past the current question or ends the session.
func (s *QuizScreen) next() (screen.Screen, tea.Cmd) {
	if !s.state.Advance() {
		return s.finish()
	}
	s.setupQuestion()
	return s, nil
}

// finish hands off to the summary screen in place of this one.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	if s.state == nil || len(s.state.Outcomes) == 0 {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.state.Phase = sess.PhaseSummary
	if !s.spec.TimerEnabled {
		s.state.Elapsed = time.Since(s.state.StartTime)
	}
	sum := sess.BuildSummary(s.state)
	next := summary.New(sum, s.spec, func(spec sess.Spec) screen.Screen {
		return New(spec, s.composer, s.evaluator, s.explainer)
	})
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) requestExplanation() (screen.Screen, tea.Cmd) {
	if s.explainer == nil || s.loadingExplanation || s.explanation != "" {
		return s, nil
	}
	q, ok := s.state.Current()
	if !ok {
		return s, nil
	}
	selected := s.mc.ChosenIndex
	explainer := s.explainer

	s.loadingExplanation = true
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := explainer.Explain(ctx, q, selected)
		return explanationMsg{QuestionID: q.ID, Text: text, Err: err}
	}
}
