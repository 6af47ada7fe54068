package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"opostudy/internal/ui/theme"
)

// Segmented is a horizontal single-select control, cycled with left/right.
type Segmented struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewSegmented creates a segmented control.
func NewSegmented(label string, options []string) Segmented {
	return Segmented{Label: label, Options: options}
}

// Update handles left/right cycling while focused.
func (s Segmented) Update(msg tea.Msg) (Segmented, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.Selected > 0 {
			s.Selected--
		}
	case "right", "l":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		}
	}

	return s, nil
}

// Value returns the selected option text.
func (s Segmented) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// View renders the label and options in a row.
func (s Segmented) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	}

	row := labelStyle.Render(s.Label) + "  "
	for i, opt := range s.Options {
		if i == s.Selected {
			row += theme.SegmentActive.Render(opt)
		} else {
			row += theme.SegmentInactive.Render(opt)
		}
		row += " "
	}
	return row
}
