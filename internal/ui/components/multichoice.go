package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"opostudy/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Revealed switches the view
// into feedback mode: the correct option paints green and a wrong pick
// paints red.
type MultiChoice struct {
	Statement    string
	Options      []string
	CorrectIndex int
	Selected     int
	Revealed     bool
	ChosenIndex  int
}

// NewMultiChoice creates a selector over the given options.
func NewMultiChoice(statement string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Statement:    statement,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Submission is driven by the
// owning screen via Choose, since whether enter submits immediately or
// confirms depends on the session mode.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}

	return m, nil
}

// Choose locks in the current selection and reveals the result.
func (m *MultiChoice) Choose() int {
	m.ChosenIndex = m.Selected
	m.Revealed = true
	return m.ChosenIndex
}

// IsCorrect reports whether the locked-in choice was right.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.ChosenIndex == m.CorrectIndex
}

// View renders the statement and options.
func (m MultiChoice) View(width int) string {
	statement := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(max(width, 20)).
		Render(m.Statement)
	s := statement + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		if m.Revealed {
			switch {
			case i == m.CorrectIndex:
				s += theme.Correct.Render(line) + "\n"
			case i == m.ChosenIndex:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}

	return s
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
