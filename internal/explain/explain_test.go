package explain

import (
	"strings"
	"testing"

	"opostudy/internal/config"
	"opostudy/internal/provider"
)

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(config.ExplainConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
	if _, err := NewOpenAI(config.ExplainConfig{APIKey: "sk-test"}); err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	q := provider.Question{
		Statement:    "Which layer does TCP live in?",
		Options:      []string{"Physical", "Transport", "Session"},
		CorrectIndex: 1,
		Explanation:  "TCP is a transport protocol.",
	}

	got := buildPrompt(q, 2)

	for _, want := range []string{
		"Which layer does TCP live in?",
		"A) Physical",
		"B) Transport",
		"C) Session",
		"Correct answer: B",
		"Student picked: C",
		"TCP is a transport protocol.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildPromptOmitsInvalidSelection(t *testing.T) {
	q := provider.Question{
		Statement:    "s",
		Options:      []string{"a", "b"},
		CorrectIndex: 0,
	}
	got := buildPrompt(q, -1)
	if strings.Contains(got, "Student picked") {
		t.Errorf("prompt should omit selection line:\n%s", got)
	}
}
