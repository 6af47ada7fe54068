// Package explain produces short AI explanations for answered questions.
// It is optional: without an API key the feature is simply absent.
package explain

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"opostudy/internal/config"
	"opostudy/internal/provider"
)

const defaultModel = "gpt-4o-mini"

// Explainer generates an explanation for why the correct answer is
// correct and the selected one is not.
type Explainer interface {
	Explain(ctx context.Context, q provider.Question, selected int) (string, error)
}

// OpenAI implements Explainer over any OpenAI-compatible API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an Explainer from cfg. BaseURL overrides allow
// OpenRouter and other compatible endpoints.
func NewOpenAI(cfg config.ExplainConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

func (o *OpenAI) Explain(ctx context.Context, q provider.Question, selected int) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(q, selected)},
		},
		MaxTokens:   400,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("explanation request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty explanation response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const systemPrompt = "You are a concise exam tutor. Explain in at most " +
	"4 sentences why the correct option is right. If the student picked " +
	"a wrong option, say what misconception it reflects. Plain text only."

// buildPrompt formats the question, its options and the student's pick.
func buildPrompt(q provider.Question, selected int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", q.Statement)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, opt)
	}
	fmt.Fprintf(&b, "\nCorrect answer: %c\n", 'A'+q.CorrectIndex)
	if selected >= 0 && selected < len(q.Options) {
		fmt.Fprintf(&b, "Student picked: %c\n", 'A'+selected)
	}
	if q.Explanation != "" {
		fmt.Fprintf(&b, "\nBank explanation to build on: %s\n", q.Explanation)
	}
	return b.String()
}
