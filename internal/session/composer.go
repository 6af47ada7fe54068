package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"opostudy/internal/mistakes"
	"opostudy/internal/provider"
)

// ErrNoBlock indicates a session kind that requires a block was started
// without one.
var ErrNoBlock = errors.New("select a block first")

// ErrNoMistakes indicates a mistakes review was requested with an empty
// pending queue.
var ErrNoMistakes = errors.New("no pending mistakes to review")

// Composer assembles the question set for a session.
type Composer struct {
	provider provider.Provider
	ledger   *mistakes.Ledger

	// intn is swappable for deterministic shuffles in tests.
	intn func(n int) int
	now  func() time.Time
}

// NewComposer creates a Composer over the given sources.
func NewComposer(p provider.Provider, ledger *mistakes.Ledger) *Composer {
	return &Composer{
		provider: p,
		ledger:   ledger,
		intn:     rand.Intn,
		now:      time.Now,
	}
}

// CanStart reports whether spec describes a startable session, without
// touching the network.
func (c *Composer) CanStart(spec Spec) error {
	if spec.Count <= 0 {
		return fmt.Errorf("question count must be positive")
	}
	switch spec.Mode {
	case ModeMistakes:
		if c.ledger.PendingCount(spec.EffectiveBlock(), c.now()) == 0 {
			return ErrNoMistakes
		}
	case ModeExam, ModePractice:
		if spec.Block == nil {
			return ErrNoBlock
		}
	}
	return nil
}

// Questions fetches and orders the question set for spec.
func (c *Composer) Questions(ctx context.Context, spec Spec) ([]provider.Question, error) {
	if err := c.CanStart(spec); err != nil {
		return nil, err
	}

	if spec.Mode == ModeMistakes {
		return c.mistakeQuestions(ctx, spec)
	}

	questions, err := c.provider.RandomQuestions(ctx, spec.Count, spec.EffectiveBlock())
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, provider.ErrNoQuestions
	}
	return questions, nil
}

// mistakeQuestions builds a review set from the pending ledger entries.
// The IDs are shuffled before truncation so a large queue gets sampled,
// and the fetched questions are shuffled again because the bank returns
// them in storage order.
func (c *Composer) mistakeQuestions(ctx context.Context, spec Spec) ([]provider.Question, error) {
	ids := c.ledger.PendingIDs(spec.EffectiveBlock(), c.now())
	if len(ids) == 0 {
		return nil, ErrNoMistakes
	}

	c.shuffleStrings(ids)
	if len(ids) > spec.Count {
		ids = ids[:spec.Count]
	}

	questions, err := c.provider.QuestionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, provider.ErrNoQuestions
	}
	c.shuffleQuestions(questions)
	return questions, nil
}

// Practical fetches one practical exercise for spec's block.
func (c *Composer) Practical(ctx context.Context, spec Spec) (provider.Practical, error) {
	if spec.Block == nil {
		return provider.Practical{}, ErrNoBlock
	}
	practicals, err := c.provider.RandomPracticals(ctx, 1, *spec.Block)
	if err != nil {
		return provider.Practical{}, err
	}
	if len(practicals) == 0 {
		return provider.Practical{}, provider.ErrNoQuestions
	}
	return practicals[0], nil
}

func (c *Composer) shuffleStrings(s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := c.intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func (c *Composer) shuffleQuestions(qs []provider.Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := c.intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}
