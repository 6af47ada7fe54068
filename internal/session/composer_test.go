package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"opostudy/internal/mistakes"
	"opostudy/internal/provider"
)

type memMistakesRepo struct {
	records []mistakes.Record
}

func (r *memMistakesRepo) Load() []mistakes.Record        { return r.records }
func (r *memMistakesRepo) Save(m []mistakes.Record) error { r.records = m; return nil }

func testLedger(t *testing.T, wrongIDs ...string) *mistakes.Ledger {
	t.Helper()
	ledger := mistakes.NewLedger(&memMistakesRepo{}, 30)
	now := time.Now().UTC()
	for i, id := range wrongIDs {
		if err := ledger.RecordWrong(id, i%4+1, "topic", now); err != nil {
			t.Fatalf("seed ledger: %v", err)
		}
	}
	return ledger
}

func testQuestions(ids ...string) []provider.Question {
	qs := make([]provider.Question, len(ids))
	for i, id := range ids {
		qs[i] = provider.Question{
			ID:        id,
			Statement: "statement " + id,
			Options:   []string{"a", "b", "c", "d"},
		}
	}
	return qs
}

func TestQuestionsRegularMode(t *testing.T) {
	var gotCount int
	var gotBlock *int
	p := &provider.Mock{
		RandomQuestionsFunc: func(ctx context.Context, count int, block *int) ([]provider.Question, error) {
			gotCount, gotBlock = count, block
			return testQuestions("q1", "q2"), nil
		},
	}
	c := NewComposer(p, testLedger(t))

	block := 2
	spec := NewSpec(ModePractice)
	spec.SetBlock(&block)
	spec.SetCount(12)

	qs, err := c.Questions(context.Background(), spec)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("got %d questions, want 2", len(qs))
	}
	if gotCount != 12 {
		t.Errorf("provider count = %d, want 12", gotCount)
	}
	if gotBlock == nil || *gotBlock != 2 {
		t.Errorf("provider block = %v, want 2", gotBlock)
	}
}

func TestQuestionsFullModeIgnoresBlock(t *testing.T) {
	var gotBlock *int
	p := &provider.Mock{
		RandomQuestionsFunc: func(ctx context.Context, count int, block *int) ([]provider.Question, error) {
			gotBlock = block
			return testQuestions("q1"), nil
		},
	}
	c := NewComposer(p, testLedger(t))

	block := 3
	spec := NewSpec(ModePractice)
	spec.SetBlock(&block)
	spec.SetMode(ModeFull)

	if _, err := c.Questions(context.Background(), spec); err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if gotBlock != nil {
		t.Errorf("provider block = %v, want nil in full mode", *gotBlock)
	}
}

func TestQuestionsEmptyResult(t *testing.T) {
	p := &provider.Mock{
		RandomQuestionsFunc: func(ctx context.Context, count int, block *int) ([]provider.Question, error) {
			return nil, nil
		},
	}
	c := NewComposer(p, testLedger(t))

	block := 1
	spec := NewSpec(ModeExam)
	spec.SetBlock(&block)

	_, err := c.Questions(context.Background(), spec)
	if !errors.Is(err, provider.ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestCanStart(t *testing.T) {
	c := NewComposer(&provider.Mock{}, testLedger(t))

	tests := []struct {
		name    string
		spec    func() Spec
		wantErr error
	}{
		{
			"mistakes with empty ledger",
			func() Spec { return NewSpec(ModeMistakes) },
			ErrNoMistakes,
		},
		{
			"practice without block",
			func() Spec { return NewSpec(ModePractice) },
			ErrNoBlock,
		},
		{
			"exam without block",
			func() Spec { return NewSpec(ModeExam) },
			ErrNoBlock,
		},
		{
			"exam with block",
			func() Spec {
				s := NewSpec(ModeExam)
				b := 2
				s.SetBlock(&b)
				return s
			},
			nil,
		},
		{
			"full run never needs a block",
			func() Spec { return NewSpec(ModeFull) },
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.CanStart(tt.spec())
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CanStart: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanStartRejectsZeroCount(t *testing.T) {
	c := NewComposer(&provider.Mock{}, testLedger(t))
	spec := NewSpec(ModeExam)
	spec.SetCount(0)
	if err := c.CanStart(spec); err == nil {
		t.Fatal("expected error for zero count")
	}
}

func TestMistakesReviewSamplesAndShuffles(t *testing.T) {
	pending := []string{"m1", "m2", "m3", "m4", "m5"}
	var fetched []string
	p := &provider.Mock{
		QuestionsByIDsFunc: func(ctx context.Context, ids []string) ([]provider.Question, error) {
			fetched = ids
			return testQuestions(ids...), nil
		},
	}
	c := NewComposer(p, testLedger(t, pending...))
	c.intn = rand.New(rand.NewSource(7)).Intn

	spec := NewSpec(ModeMistakes)
	spec.SetCount(3)

	qs, err := c.Questions(context.Background(), spec)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(fetched) != 3 {
		t.Fatalf("fetched %d ids, want 3", len(fetched))
	}
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}
	valid := map[string]bool{}
	for _, id := range pending {
		valid[id] = true
	}
	for _, q := range qs {
		if !valid[q.ID] {
			t.Errorf("question %s not in pending set", q.ID)
		}
	}
}

// Every pending mistake should show up in some review over enough runs,
// otherwise the sampling is biased toward one end of the queue.
func TestMistakesSamplingCoversQueue(t *testing.T) {
	pending := make([]string, 10)
	for i := range pending {
		pending[i] = fmt.Sprintf("m%d", i)
	}
	p := &provider.Mock{
		QuestionsByIDsFunc: func(ctx context.Context, ids []string) ([]provider.Question, error) {
			return testQuestions(ids...), nil
		},
	}

	seen := map[string]bool{}
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 100; run++ {
		c := NewComposer(p, testLedger(t, pending...))
		c.intn = rng.Intn

		spec := NewSpec(ModeMistakes)
		spec.SetCount(3)
		qs, err := c.Questions(context.Background(), spec)
		if err != nil {
			t.Fatalf("Questions: %v", err)
		}
		for _, q := range qs {
			seen[q.ID] = true
		}
	}

	for _, id := range pending {
		if !seen[id] {
			t.Errorf("id %s never sampled in 100 runs", id)
		}
	}
}

// The subset-choice shuffle and the presentation shuffle are
// independent: the questions must not simply come back in the order
// their ids were fetched.
func TestMistakesPresentationOrderDecoupledFromSelection(t *testing.T) {
	pending := make([]string, 8)
	for i := range pending {
		pending[i] = fmt.Sprintf("m%d", i)
	}

	var fetched []string
	p := &provider.Mock{
		QuestionsByIDsFunc: func(ctx context.Context, ids []string) ([]provider.Question, error) {
			fetched = ids
			return testQuestions(ids...), nil
		},
	}

	rng := rand.New(rand.NewSource(13))
	reordered := 0
	for run := 0; run < 30; run++ {
		c := NewComposer(p, testLedger(t, pending...))
		c.intn = rng.Intn

		spec := NewSpec(ModeMistakes)
		spec.SetCount(5)
		qs, err := c.Questions(context.Background(), spec)
		if err != nil {
			t.Fatalf("Questions: %v", err)
		}
		if len(qs) != len(fetched) {
			t.Fatalf("got %d questions for %d fetched ids", len(qs), len(fetched))
		}
		for i, q := range qs {
			if q.ID != fetched[i] {
				reordered++
				break
			}
		}
	}

	if reordered == 0 {
		t.Error("presentation order matched fetch order in all 30 runs")
	}
}

func TestMistakesReviewSmallerThanCount(t *testing.T) {
	p := &provider.Mock{
		QuestionsByIDsFunc: func(ctx context.Context, ids []string) ([]provider.Question, error) {
			return testQuestions(ids...), nil
		},
	}
	c := NewComposer(p, testLedger(t, "m1", "m2"))

	spec := NewSpec(ModeMistakes)
	spec.SetCount(15)
	qs, err := c.Questions(context.Background(), spec)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("got %d questions, want all 2 pending", len(qs))
	}
}

func TestPractical(t *testing.T) {
	p := &provider.Mock{
		RandomPracticalsFunc: func(ctx context.Context, count, block int) ([]provider.Practical, error) {
			if count != 1 || block != 4 {
				t.Errorf("count=%d block=%d, want 1 and 4", count, block)
			}
			return []provider.Practical{{ID: "p1", Title: "routing table"}}, nil
		},
	}
	c := NewComposer(p, testLedger(t))

	block := 4
	spec := NewSpec(ModePractice)
	spec.PracticeKind = KindPractical
	spec.SetBlock(&block)

	got, err := c.Practical(context.Background(), spec)
	if err != nil {
		t.Fatalf("Practical: %v", err)
	}
	if got.ID != "p1" {
		t.Errorf("got practical %q, want p1", got.ID)
	}
}

func TestPracticalRequiresBlock(t *testing.T) {
	c := NewComposer(&provider.Mock{}, testLedger(t))
	spec := NewSpec(ModePractice)
	spec.PracticeKind = KindPractical

	if _, err := c.Practical(context.Background(), spec); !errors.Is(err, ErrNoBlock) {
		t.Fatalf("err = %v, want ErrNoBlock", err)
	}
}
