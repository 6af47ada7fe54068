// Package setup configures a session before it starts: block, question
// count and, for practice, the exercise kind.
package setup

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"opostudy/internal/explain"
	"opostudy/internal/router"
	"opostudy/internal/screen"
	"opostudy/internal/screens/practical"
	"opostudy/internal/screens/quiz"
	"opostudy/internal/session"
	"opostudy/internal/store"
	"opostudy/internal/ui/components"
	"opostudy/internal/ui/layout"
	"opostudy/internal/ui/theme"
)

// Blocks is the syllabus block list offered in the picker.
var Blocks = []int{1, 2, 3, 4, 5}

// SetupScreen collects the session spec from the user.
type SetupScreen struct {
	mode      session.Mode
	composer  *session.Composer
	evaluator *session.Evaluator
	store     *store.Store
	explainer explain.Explainer

	rows    []rowKind
	focused int

	kind  components.Segmented
	block components.Segmented
	count components.Segmented
	timer components.Segmented

	errMsg string
}

type rowKind int

const (
	rowRun rowKind = iota
	rowKindPick
	rowBlock
	rowCount
	rowTimer
)

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen for the given mode.
func New(mode session.Mode, composer *session.Composer, evaluator *session.Evaluator, st *store.Store, explainer explain.Explainer) *SetupScreen {
	s := &SetupScreen{
		mode:      mode,
		composer:  composer,
		evaluator: evaluator,
		store:     st,
		explainer: explainer,
	}

	s.kind = components.NewSegmented("Exercise", []string{"test", "practical"})

	// Reviews may span the whole queue; the other modes need a block.
	var blockOpts []string
	if mode == session.ModeMistakes {
		blockOpts = append(blockOpts, "all")
	}
	for _, b := range Blocks {
		blockOpts = append(blockOpts, strconv.Itoa(b))
	}
	s.block = components.NewSegmented("Block", blockOpts)

	s.count = components.NewSegmented("Questions", countOptions(mode))
	s.count.Selected = defaultCountIndex(mode)

	s.timer = components.NewSegmented("Timer", []string{"off", "on"})
	if session.NewSpec(mode).TimerEnabled {
		s.timer.Selected = 1
	}

	s.rows = s.visibleRows()
	s.focusRow(0)
	return s
}

func countOptions(mode session.Mode) []string {
	if mode == session.ModeFull {
		return []string{"30", "40", "50"}
	}
	return []string{"5", "10", "15"}
}

func defaultCountIndex(mode session.Mode) int {
	if mode == session.ModeFull {
		return 0 // 30
	}
	return 2 // 15
}

// visibleRows lists the pickers this mode offers, ending with the run row.
func (s *SetupScreen) visibleRows() []rowKind {
	var rows []rowKind
	if s.mode == session.ModePractice {
		rows = append(rows, rowKindPick)
	}
	if s.mode != session.ModeFull {
		rows = append(rows, rowBlock)
	}
	if !s.practicalChosen() {
		rows = append(rows, rowCount, rowTimer)
	}
	return append(rows, rowRun)
}

func (s *SetupScreen) practicalChosen() bool {
	return s.mode == session.ModePractice && s.kind.Value() == "practical"
}

func (s *SetupScreen) focusRow(i int) {
	s.focused = i
	s.kind.Focused = false
	s.block.Focused = false
	s.count.Focused = false
	switch s.rows[i] {
	case rowKindPick:
		s.kind.Focused = true
	case rowBlock:
		s.block.Focused = true
	case rowCount:
		s.count.Focused = true
	case rowTimer:
		s.timer.Focused = true
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	switch s.mode {
	case session.ModeExam:
		return "Exam Simulation"
	case session.ModeFull:
		return "Full Run"
	case session.ModeMistakes:
		return "Mistakes Review"
	default:
		return "Practice"
	}
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Row"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.focused > 0 {
			s.focusRow(s.focused - 1)
		}
		return s, nil
	case "down", "j":
		if s.focused < len(s.rows)-1 {
			s.focusRow(s.focused + 1)
		}
		return s, nil
	case "enter":
		return s.start()
	}

	var cmd tea.Cmd
	s.kind, _ = s.kind.Update(msg)
	s.block, _ = s.block.Update(msg)
	s.timer, _ = s.timer.Update(msg)
	s.count, cmd = s.count.Update(msg)

	// Toggling test/practical changes which rows exist.
	s.rows = s.visibleRows()
	if s.focused >= len(s.rows) {
		s.focusRow(len(s.rows) - 1)
	}
	s.errMsg = ""
	return s, cmd
}

// buildSpec translates the picker state into a session spec.
func (s *SetupScreen) buildSpec() session.Spec {
	spec := session.NewSpec(s.mode)

	if s.mode == session.ModePractice && s.practicalChosen() {
		spec.PracticeKind = session.KindPractical
	}

	if s.mode != session.ModeFull {
		idx := s.block.Selected
		if s.mode == session.ModeMistakes {
			idx-- // slot 0 is "all"
		}
		if idx >= 0 && idx < len(Blocks) {
			b := Blocks[idx]
			spec.SetBlock(&b)
		}
	}

	if n, err := strconv.Atoi(s.count.Value()); err == nil {
		spec.SetCount(n)
	}

	spec.TimerEnabled = s.timer.Value() == "on"

	return spec
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	spec := s.buildSpec()

	if err := s.composer.CanStart(spec); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	if spec.PracticeKind == session.KindPractical && spec.Mode == session.ModePractice {
		next := practical.New(spec, s.composer, s.store)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	next := quiz.New(spec, s.composer, s.evaluator, s.explainer)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	var lines []string
	for i, row := range s.rows {
		var line string
		switch row {
		case rowKindPick:
			line = s.kind.View()
		case rowBlock:
			line = s.block.View()
		case rowCount:
			line = s.count.View()
		case rowTimer:
			line = s.timer.View()
		case rowRun:
			label := "  Start session  "
			if i == s.focused {
				line = theme.SegmentActive.Render(label)
			} else {
				line = theme.SegmentInactive.Render(label)
			}
		}
		lines = append(lines, line)
	}

	body := strings.Join(lines, "\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}
