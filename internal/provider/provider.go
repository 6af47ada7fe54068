// Package provider fetches quiz questions and practical exercises from a
// remote question bank and normalizes them into clean domain types.
package provider

import "context"

// Question is a single multiple-choice question.
type Question struct {
	ID           string   `json:"id"`
	Block        int      `json:"block"`
	Topic        string   `json:"topic"`
	Difficulty   string   `json:"difficulty"`
	Statement    string   `json:"statement"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Reference    string   `json:"reference"`
}

// Assets holds optional rich content attached to a practical exercise.
type Assets struct {
	Mermaid string `json:"mermaid,omitempty"`
}

// Practical is an open-ended practical exercise with a model solution.
type Practical struct {
	ID          string `json:"id"`
	Block       int    `json:"block"`
	Topic       string `json:"topic"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Deliverable string `json:"deliverable"`
	Solution    string `json:"solution"`
	Assets      Assets `json:"assets"`
}

// Provider is the source of study material.
type Provider interface {
	// RandomQuestions returns up to count questions, optionally
	// restricted to a block. Fewer than count may be returned.
	RandomQuestions(ctx context.Context, count int, block *int) ([]Question, error)

	// QuestionsByIDs fetches the questions with the given IDs. Missing
	// IDs are silently dropped; order is not guaranteed.
	QuestionsByIDs(ctx context.Context, ids []string) ([]Question, error)

	// RandomPracticals returns up to count practical exercises for a block.
	RandomPracticals(ctx context.Context, count, block int) ([]Practical, error)
}
