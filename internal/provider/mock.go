package provider

import "context"

// Mock is a configurable in-memory Provider for tests.
type Mock struct {
	RandomQuestionsFunc  func(ctx context.Context, count int, block *int) ([]Question, error)
	QuestionsByIDsFunc   func(ctx context.Context, ids []string) ([]Question, error)
	RandomPracticalsFunc func(ctx context.Context, count, block int) ([]Practical, error)
}

func (m *Mock) RandomQuestions(ctx context.Context, count int, block *int) ([]Question, error) {
	if m.RandomQuestionsFunc == nil {
		return nil, nil
	}
	return m.RandomQuestionsFunc(ctx, count, block)
}

func (m *Mock) QuestionsByIDs(ctx context.Context, ids []string) ([]Question, error) {
	if m.QuestionsByIDsFunc == nil {
		return nil, nil
	}
	return m.QuestionsByIDsFunc(ctx, ids)
}

func (m *Mock) RandomPracticals(ctx context.Context, count, block int) ([]Practical, error) {
	if m.RandomPracticalsFunc == nil {
		return nil, nil
	}
	return m.RandomPracticalsFunc(ctx, count, block)
}
