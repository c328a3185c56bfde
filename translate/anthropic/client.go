// Package anthropic implements a translation provider backed by Anthropic's
// messages API.
package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ourstudio-se/langbridge/translate"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "claude-3-5-haiku-latest"

const systemPromptTemplate = `You are a translation engine.

Translate the user's message into the language with ISO 639-1 code "%s".
Preserve numbers, units, brand names and technical terms exactly.
Return ONLY the translated text, with no quotes and no commentary.`

// Config for the Anthropic provider.
type Config struct {
	// APIKey is the Anthropic API key. Required unless the SDK finds one in
	// the environment.
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// Model overrides the default model.
	Model string
}

// Client is a translate.Provider backed by Anthropic's API.
type Client struct {
	client anthropic.Client
	model  string
}

// New creates an Anthropic translation provider.
func New(cfg Config) *Client {
	var opts []option.RequestOption

	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Name identifies the provider backend.
func (c *Client) Name() string {
	return "anthropic"
}

// Translate translates text into the target language with one messages call.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) ([]translate.Candidate, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: fmt.Sprintf(systemPromptTemplate, targetLanguage)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return nil, &translate.ProviderError{
			Provider: c.Name(),
			Message:  "messages call failed",
			Err:      err,
		}
	}

	var translated string
	for _, block := range resp.Content {
		if block.Type == "text" {
			translated += block.Text
		}
	}

	if translated == "" {
		return nil, nil
	}

	return []translate.Candidate{{Text: translated}}, nil
}
