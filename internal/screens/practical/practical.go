// Package practical presents an open-ended exercise with a scratchpad
// whose contents persist between runs.
package practical

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"opostudy/internal/provider"
	"opostudy/internal/router"
	"opostudy/internal/screen"
	sess "opostudy/internal/session"
	"opostudy/internal/store"
	"opostudy/internal/ui/components"
	"opostudy/internal/ui/layout"
	"opostudy/internal/ui/theme"
)

// practicalLoadedMsg delivers the fetched exercise.
type practicalLoadedMsg struct {
	Practical provider.Practical
	Err       error
}

// savedMsg confirms the answer was written to the store.
type savedMsg struct {
	Err error
}

// PracticalScreen shows one practical exercise.
type PracticalScreen struct {
	spec     sess.Spec
	composer *sess.Composer
	store    *store.Store

	practical provider.Practical
	loaded    bool
	answer    components.TextArea

	showSolution bool
	savedNote    string
	errMsg       string
	width        int
	height       int
}

var _ screen.Screen = (*PracticalScreen)(nil)
var _ screen.KeyHintProvider = (*PracticalScreen)(nil)

// New creates a practical screen for spec's block.
func New(spec sess.Spec, composer *sess.Composer, st *store.Store) *PracticalScreen {
	return &PracticalScreen{
		spec:     spec,
		composer: composer,
		store:    st,
	}
}

func (s *PracticalScreen) Init() tea.Cmd {
	spec := s.spec
	composer := s.composer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		p, err := composer.Practical(ctx, spec)
		return practicalLoadedMsg{Practical: p, Err: err}
	}
}

func (s *PracticalScreen) Title() string {
	return "Practical"
}

func (s *PracticalScreen) KeyHints() []layout.KeyHint {
	solution := "Show solution"
	if s.showSolution {
		solution = "Hide solution"
	}
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Save answer"},
		{Key: "Tab", Description: solution},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PracticalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case practicalLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.practical = msg.Practical
		s.loaded = true

		saved := s.store.PracticalAnswers()[s.practical.ID]
		s.answer = components.NewTextArea("Work through your answer here...", saved.Answer)
		s.answer.SetSize(answerWidth(s.width), 8)
		return s, s.answer.Init()

	case savedMsg:
		if msg.Err != nil {
			s.savedNote = "Save failed: " + msg.Err.Error()
		} else {
			s.savedNote = "Saved."
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "ctrl+s":
			return s, s.save()
		case "tab":
			s.showSolution = !s.showSolution
			return s, nil
		}
	}

	if !s.loaded {
		return s, nil
	}

	s.savedNote = ""
	var cmd tea.Cmd
	s.answer, cmd = s.answer.Update(msg)
	return s, cmd
}

// save persists the scratchpad under the practical's ID.
func (s *PracticalScreen) save() tea.Cmd {
	if !s.loaded {
		return nil
	}
	st := s.store
	id := s.practical.ID
	text := s.answer.Value()
	return func() tea.Msg {
		answers := st.PracticalAnswers()
		answers[id] = store.PracticalAnswer{
			Answer:    text,
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		return savedMsg{Err: st.SavePracticalAnswers(answers)}
	}
}

func answerWidth(width int) int {
	w := width - 8
	if w < 20 {
		w = 20
	}
	return w
}

func (s *PracticalScreen) View(width, height int) string {
	s.width = width
	s.height = height

	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Esc to go back.", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Fetching an exercise...")
	}

	p := s.practical
	body := lipgloss.NewStyle().PaddingLeft(2).Width(width - 4)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.Title) + "\n")

	meta := fmt.Sprintf("Block %d · %s", p.Block, p.Topic)
	if p.Type != "" {
		meta += " · " + p.Type
	}
	b.WriteString("  " + theme.Hint.Render(meta) + "\n\n")

	b.WriteString(body.Foreground(theme.Text).Render(p.Prompt) + "\n")
	if p.Deliverable != "" {
		b.WriteString("\n  " + theme.Hint.Render("Deliverable: "+p.Deliverable) + "\n")
	}

	if p.Assets.Mermaid != "" {
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Left,
			"  "+theme.Card.Render(p.Assets.Mermaid)) + "\n")
	}

	b.WriteString("\n")
	if s.showSolution {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Model solution") + "\n")
		b.WriteString(body.Foreground(theme.Text).Render(p.Solution) + "\n")
	} else {
		s.answer.SetSize(answerWidth(width), 8)
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answer") + "\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.answer.View()) + "\n")
	}

	if s.savedNote != "" {
		b.WriteString("\n  " + theme.Hint.Render(s.savedNote))
	}

	return b.String()
}
