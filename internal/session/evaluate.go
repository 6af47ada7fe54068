package session

import (
	"errors"
	"time"

	"opostudy/internal/mistakes"
	"opostudy/internal/provider"
	"opostudy/internal/stats"
)

// Outcome is the result of scoring a single answer.
type Outcome struct {
	QuestionID   string
	Block        int
	Topic        string
	Selected     int
	CorrectIndex int
	IsCorrect    bool
}

// Evaluator scores answers and feeds the results into the stats tracker
// and the mistake ledger.
type Evaluator struct {
	tracker *stats.Tracker
	ledger  *mistakes.Ledger
}

// NewEvaluator creates an Evaluator over the given trackers.
func NewEvaluator(tracker *stats.Tracker, ledger *mistakes.Ledger) *Evaluator {
	return &Evaluator{tracker: tracker, ledger: ledger}
}

// Evaluate scores the selected option against q and records the result.
//
// A wrong answer always lands in the ledger. A correct answer resolves
// the ledger entry only during a mistakes review; getting a question
// right in a regular session is not evidence the original gap is closed.
func (e *Evaluator) Evaluate(q provider.Question, selected int, mode Mode, now time.Time) (Outcome, error) {
	out := Outcome{
		QuestionID:   q.ID,
		Block:        q.Block,
		Topic:        q.Topic,
		Selected:     selected,
		CorrectIndex: q.CorrectIndex,
		IsCorrect:    selected == q.CorrectIndex,
	}

	var errs []error
	if out.IsCorrect {
		if mode == ModeMistakes {
			if err := e.ledger.Resolve(q.ID, now); err != nil {
				errs = append(errs, err)
			}
		}
	} else {
		if err := e.ledger.RecordWrong(q.ID, q.Block, q.Topic, now); err != nil {
			errs = append(errs, err)
		}
	}

	if err := e.tracker.RecordAnswer(out.IsCorrect, now); err != nil {
		errs = append(errs, err)
	}

	return out, errors.Join(errs...)
}
