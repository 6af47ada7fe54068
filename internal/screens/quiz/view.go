package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "opostudy/internal/session"
	"opostudy/internal/ui/components"
	"opostudy/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q, ok := s.state.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	// Progress and timer row.
	answered := len(s.state.Outcomes)
	progress := components.QuestionProgress(answered, len(s.state.Questions), min(width-20, 50))
	statusRow := progress.View()
	if s.spec.TimerEnabled {
		mins := int(s.state.Elapsed.Minutes())
		secs := int(s.state.Elapsed.Seconds()) % 60
		statusRow += lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(fmt.Sprintf("   %d:%02d", mins, secs))
	}
	b.WriteString("  " + statusRow + "\n\n")

	if q.Block != 0 || q.Topic != "" {
		meta := fmt.Sprintf("Block %d · %s", q.Block, q.Topic)
		if q.Difficulty != "" {
			meta += " · " + q.Difficulty
		}
		b.WriteString("  " + theme.Hint.Render(meta) + "\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		PaddingLeft(2).
		Render(s.mc.View(width-6)))

	if s.state.Phase == sess.PhaseFeedback {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width, q.Explanation, q.Reference))
	}

	return b.String()
}

func (s *QuizScreen) renderFeedback(width int, bankExplanation, reference string) string {
	var b strings.Builder

	if s.mc.IsCorrect() {
		b.WriteString("  " + theme.Correct.Render("Correct!") + "\n")
	} else {
		b.WriteString("  " + theme.Incorrect.Render("Not quite.") + "\n")
	}

	if bankExplanation != "" {
		b.WriteString("\n" + lipgloss.NewStyle().
			PaddingLeft(2).
			Width(width-4).
			Foreground(theme.Text).
			Render(bankExplanation) + "\n")
	}
	if reference != "" {
		b.WriteString("  " + theme.Hint.Render("Ref: "+reference) + "\n")
	}

	if s.loadingExplanation {
		b.WriteString("\n  " + theme.Hint.Render("Asking the tutor...") + "\n")
	} else if s.explanation != "" {
		b.WriteString("\n" + lipgloss.NewStyle().
			PaddingLeft(2).
			Width(width-4).
			Foreground(theme.Secondary).
			Render(s.explanation) + "\n")
	}

	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Fetching questions...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func renderQuitConfirm(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("\n\n\n  End this session?\n\n  Answers so far are already recorded.")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
