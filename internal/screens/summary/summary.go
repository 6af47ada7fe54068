// Package summary shows the results of a finished session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"opostudy/internal/router"
	"opostudy/internal/screen"
	sess "opostudy/internal/session"
	"opostudy/internal/ui/layout"
	"opostudy/internal/ui/theme"
)

// QuizFactory builds a fresh quiz screen for the repeat action. It
// breaks the import cycle between this package and the quiz package.
type QuizFactory func(spec sess.Spec) screen.Screen

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary sess.Summary
	spec    sess.Spec
	repeat  QuizFactory
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen.
func New(summary sess.Summary, spec sess.Spec, repeat QuizFactory) *SummaryScreen {
	return &SummaryScreen{summary: summary, spec: spec, repeat: repeat}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.repeat != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Again"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Home"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "r", "R":
		if s.repeat == nil {
			return s, nil
		}
		next := s.repeat(s.spec)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder
	b.WriteString("\n\n")

	headline := "Session complete!"
	if sum.Mode == sess.ModeMistakes {
		headline = "Review complete!"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	if sum.Elapsed > 0 {
		mins := int(sum.Elapsed.Minutes())
		secs := int(sum.Elapsed.Seconds()) % 60
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
		b.WriteString("\n\n")
	}

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %d%%",
		sum.Total, sum.Correct, sum.Percent)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if sum.Mode == sess.ModeMistakes {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render(fmt.Sprintf("Mistakes cleared: %d", sum.Resolved)))
		b.WriteString("\n\n")
	}

	verdict := verdictFor(sum.Percent)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(verdict))

	return b.String()
}

func verdictFor(percent int) string {
	switch {
	case percent >= 90:
		return "Outstanding. Keep this pace."
	case percent >= 70:
		return "Solid work. Tighten up the weak topics."
	case percent >= 50:
		return "Getting there. Review the misses."
	default:
		return "Rough one. The mistakes queue has you covered."
	}
}
