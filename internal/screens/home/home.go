// Package home is the entry screen: headline numbers and the mode menu.
package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"opostudy/internal/explain"
	"opostudy/internal/mistakes"
	"opostudy/internal/router"
	"opostudy/internal/screen"
	"opostudy/internal/screens/setup"
	"opostudy/internal/session"
	"opostudy/internal/stats"
	"opostudy/internal/store"
	"opostudy/internal/ui/components"
	"opostudy/internal/ui/theme"
)

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	menu      components.Menu
	composer  *session.Composer
	evaluator *session.Evaluator
	tracker   *stats.Tracker
	ledger    *mistakes.Ledger
	store     *store.Store
	explainer explain.Explainer
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(composer *session.Composer, evaluator *session.Evaluator, tracker *stats.Tracker, ledger *mistakes.Ledger, st *store.Store, explainer explain.Explainer) *HomeScreen {
	s := &HomeScreen{
		composer:  composer,
		evaluator: evaluator,
		tracker:   tracker,
		ledger:    ledger,
		store:     st,
		explainer: explainer,
	}
	s.menu = components.NewMenu(s.buildMenu())
	return s
}

func (s *HomeScreen) buildMenu() []components.MenuItem {
	pending := s.ledger.PendingCount(nil, time.Now())

	pushSetup := func(mode session.Mode) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: setup.New(mode, s.composer, s.evaluator, s.store, s.explainer),
				}
			}
		}
	}

	mistakesHint := ""
	if pending > 0 {
		mistakesHint = fmt.Sprintf("%d pending", pending)
	}

	return []components.MenuItem{
		{Label: "EXAM SIMULATION", Hint: "timed, one block", Action: pushSetup(session.ModeExam)},
		{Label: "FULL RUN", Hint: "long run, all blocks", Action: pushSetup(session.ModeFull)},
		{Label: "PRACTICE", Hint: "pick a block", Action: pushSetup(session.ModePractice)},
		{
			Label:    "MISTAKES REVIEW",
			Hint:     mistakesHint,
			Action:   pushSetup(session.ModeMistakes),
			Disabled: pending == 0,
		},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Counts change while we're away on other screens, so refresh the
	// menu whenever the user comes back and presses a key.
	if _, ok := msg.(tea.KeyMsg); ok {
		selected := s.menu.Selected
		s.menu.Items = s.buildMenu()
		if selected < len(s.menu.Items) && !s.menu.Items[selected].Disabled {
			s.menu.Selected = selected
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	kpi := session.BuildKPI(s.tracker, s.ledger, time.Now())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("OpoStudy"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("terminal study companion"))
	b.WriteString("\n\n")

	kpiLine := fmt.Sprintf(
		"Answered %d     Accuracy %d%%     Streak %d days     Mistakes due %d",
		kpi.Answered, kpi.AccuracyPercent, kpi.StreakDays, kpi.PendingMistakes,
	)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(kpiLine))
	b.WriteString("\n\n")

	menu := s.menu.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return b.String()
}
