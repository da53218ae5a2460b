package llm

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestNewClientDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := NewClient()
	if c.baseURL != defaultBaseURL {
		t.Fatalf("baseURL = %q, want %q", c.baseURL, defaultBaseURL)
	}
	if c.model != defaultModel {
		t.Fatalf("model = %q, want %q", c.model, defaultModel)
	}
}

func TestNewClientOptionsOverrideDefaults(t *testing.T) {
	c := NewClient(WithBaseURL("https://example.invalid/v1"), WithModel("custom-model"))
	if c.baseURL != "https://example.invalid/v1" {
		t.Fatalf("baseURL not overridden: %q", c.baseURL)
	}
	if c.model != "custom-model" {
		t.Fatalf("model not overridden: %q", c.model)
	}
}

func TestQueryFailsWithoutAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := NewClient()
	_, err := c.ParseNaturalLanguage(context.Background(), "P implies P")
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
	}
}

// TestExplainAgainstLiveAPI exercises a real endpoint; it is skipped unless
// OPENAI_API_KEY is set and -short is not passed, matching the teacher's
// llmcore connectivity test.
func TestExplainAgainstLiveAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("skipping: OPENAI_API_KEY not set")
	}

	c := NewClient()
	out, err := c.Explain(context.Background(), "verdict: provable\nstep 1 [axiom]\n    from: A ⊢ A\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("expected a non-empty explanation")
	}
	t.Logf("LLM explanation: %s", out)
}
