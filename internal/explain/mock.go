package explain

import (
	"context"

	"opostudy/internal/provider"
)

// Mock is a canned Explainer for tests.
type Mock struct {
	Text string
	Err  error
}

func (m *Mock) Explain(ctx context.Context, q provider.Question, selected int) (string, error) {
	return m.Text, m.Err
}
