// Package openai implements a translation provider backed by an OpenAI
// chat-completion model.
package openai

import (
	"context"
	"fmt"

	"github.com/ourstudio-se/langbridge/translate"
	oai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const systemPromptTemplate = `You are a translation engine.

Translate the user's message into the language with ISO 639-1 code "%s".
Preserve numbers, units, brand names and technical terms exactly.
Return ONLY the translated text, with no quotes and no commentary.`

// Client is a translate.Provider backed by the OpenAI API.
type Client struct {
	client *oai.Client
	model  string
}

// New creates an OpenAI translation provider.
func New(client *oai.Client, model string) *Client {
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: client,
		model:  model,
	}
}

// Name identifies the provider backend.
func (c *Client) Name() string {
	return "openai"
}

// Translate translates text into the target language with one chat completion.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) ([]translate.Candidate, error) {
	resp, err := c.client.CreateChatCompletion(ctx, oai.ChatCompletionRequest{
		Model: c.model,
		Messages: []oai.ChatCompletionMessage{
			{
				Role:    oai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPromptTemplate, targetLanguage),
			},
			{
				Role:    oai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, &translate.ProviderError{
			Provider: c.Name(),
			Message:  "chat completion failed",
			Err:      err,
		}
	}

	candidates := make([]translate.Candidate, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		if choice.Message.Content == "" {
			continue
		}
		candidates = append(candidates, translate.Candidate{Text: choice.Message.Content})
	}

	return candidates, nil
}
