package quiz

import (
	"time"

	"opostudy/internal/provider"
)

// questionsLoadedMsg is sent when the session's question set is ready.
type questionsLoadedMsg struct {
	Questions []provider.Question
	Err       error
}

// timerTickMsg is sent every second to advance the session clock.
type timerTickMsg time.Time

// explanationMsg carries an AI explanation for the current question.
type explanationMsg struct {
	QuestionID string
	Text       string
	Err        error
}
