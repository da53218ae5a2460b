// Package llm is an optional external collaborator that turns free-text
// conjectures into the parser package's JSON surface syntax, and turns a
// proof trace back into a plain-English explanation. It generalizes the
// teacher's llmcore.LLMQuery/ParsingPrompt/ExplanationPrompt from
// clause-resolution output to sequent proof traces. The core never
// imports this package.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultBaseURL = "https://api.cerebras.ai/v1"
const defaultModel = "gpt-oss-120b"

// ParsingPrompt instructs the model to emit parser-ready JSON for a
// free-text conjecture.
const ParsingPrompt = `You translate an English conjecture into the JSON formula ` +
	`syntax: {"var":name}, {"uvar":name}, {"fn":name,"args":[...]}, ` +
	`{"pred":name,"args":[...]}, {"not":F}, {"and":[F,F]}, {"or":[F,F]}, ` +
	`{"implies":[F,F]}, {"forall":{"var":name,"body":F}}, ` +
	`{"exists":{"var":name,"body":F}}. Respond with exactly one JSON object ` +
	`and nothing else.`

// ExplanationPrompt instructs the model to narrate a rendered proof trace.
const ExplanationPrompt = `You explain, in plain English, why the given sequent ` +
	`proof trace establishes its verdict. Be concise.`

// Sentinel errors, matching the teacher's llmcore error set.
var (
	ErrRateLimitExceeded = errors.New("LLM API rate limit exceeded")
	ErrAPIKeyMissing     = errors.New("no API key set (set OPENAI_API_KEY)")
	ErrEmptyResponse     = errors.New("empty response from LLM")
)

// Client wraps an openai-go client pointed at a chat-completions-compatible
// endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the default endpoint.
func WithBaseURL(url string) Option { return func(c *Client) { c.baseURL = url } }

// WithModel overrides the default model name.
func WithModel(model string) Option { return func(c *Client) { c.model = model } }

// NewClient builds a Client, reading OPENAI_API_KEY from the environment
// the same way the teacher's llmcore.getAPIKey does.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: defaultBaseURL,
		model:   defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) query(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	client := openai.NewClient(option.WithBaseURL(c.baseURL), option.WithAPIKey(c.apiKey))
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") {
			return "", ErrRateLimitExceeded
		}
		return "", fmt.Errorf("LLM API error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// ParseNaturalLanguage asks the model to translate text into parser JSON.
func (c *Client) ParseNaturalLanguage(ctx context.Context, text string) (string, error) {
	return c.query(ctx, ParsingPrompt, text, 0.2)
}

// Explain asks the model to narrate a rendered proof trace.
func (c *Client) Explain(ctx context.Context, renderedTrace string) (string, error) {
	return c.query(ctx, ExplanationPrompt, renderedTrace, 0.4)
}
