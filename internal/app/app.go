package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"opostudy/internal/explain"
	"opostudy/internal/mistakes"
	"opostudy/internal/router"
	"opostudy/internal/screen"
	"opostudy/internal/screens/home"
	"opostudy/internal/session"
	"opostudy/internal/stats"
	"opostudy/internal/store"
	"opostudy/internal/ui/layout"
)

// Model is the root Bubble Tea model.
type Model struct {
	router  *router.Router
	tracker *stats.Tracker
	ledger  *mistakes.Ledger
	width   int
	height  int
}

// newModel creates the root model with the home screen.
func newModel(composer *session.Composer, evaluator *session.Evaluator, tracker *stats.Tracker, ledger *mistakes.Ledger, st *store.Store, explainer explain.Explainer) Model {
	homeScreen := home.New(composer, evaluator, tracker, ledger, st, explainer)
	return Model{
		router:  router.New(homeScreen),
		tracker: tracker,
		ledger:  ledger,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := layout.HeaderStatus{
		StreakDays:      m.tracker.Snapshot().StreakDays,
		PendingMistakes: m.ledger.PendingCount(nil, time.Now()),
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(composer *session.Composer, evaluator *session.Evaluator, tracker *stats.Tracker, ledger *mistakes.Ledger, st *store.Store, explainer explain.Explainer) error {
	p := tea.NewProgram(newModel(composer, evaluator, tracker, ledger, st, explainer))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
