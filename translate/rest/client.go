// Package rest implements a translation provider over a plain HTTP API.
//
// The wire format follows the common hosted-translator shape: one POST per
// request carrying the text and target language code plus an API key header,
// answered with an ordered list of translation candidates.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ourstudio-se/langbridge/translate"
)

const (
	// DefaultAPIKeyHeader is the header the API key is sent in.
	DefaultAPIKeyHeader = "Ocp-Apim-Subscription-Key"

	// DefaultTimeout bounds a single translation request. The provider has no
	// timeout of its own, so the client must carry one.
	DefaultTimeout = 15 * time.Second
)

// Config configures the REST provider.
type Config struct {
	// Endpoint is the full URL of the translation endpoint. Required.
	Endpoint string

	// APIKey is the provider credential. Required.
	APIKey string

	// APIKeyHeader overrides the header the credential is sent in.
	APIKeyHeader string

	// Timeout overrides the per-request timeout.
	Timeout time.Duration

	// HTTPClient overrides the HTTP client (the timeout is then yours to set).
	HTTPClient *http.Client
}

// Client is a translate.Provider backed by an HTTP translation API.
type Client struct {
	endpoint     string
	apiKey       string
	apiKeyHeader string
	httpClient   *http.Client
}

// New creates a REST translation provider.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("translation endpoint is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("translation API key is required")
	}

	header := cfg.APIKeyHeader
	if header == "" {
		header = DefaultAPIKeyHeader
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint:     cfg.Endpoint,
		apiKey:       cfg.APIKey,
		apiKeyHeader: header,
		httpClient:   httpClient,
	}, nil
}

// Name identifies the provider backend.
func (c *Client) Name() string {
	return "rest"
}

// translateRequest is one item in the request payload.
type translateRequest struct {
	Text string `json:"Text"`
}

// translateResponse is one item in the response payload.
type translateResponse struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

// Translate issues one translation request. The source language is omitted;
// the provider auto-detects it.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) ([]translate.Candidate, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode([]translateRequest{{Text: text}}); err != nil {
		return nil, &translate.ProviderError{
			Provider: c.Name(),
			Message:  "encoding request",
			Err:      err,
		}
	}

	url := c.endpoint + "?to=" + targetLanguage
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return nil, &translate.ProviderError{
			Provider: c.Name(),
			Message:  "creating request",
			Err:      err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &translate.ProviderError{
			Provider: c.Name(),
			Message:  "request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &translate.ProviderError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", string(body)),
		}
	}

	var results []translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &translate.ProviderError{
			Provider: c.Name(),
			Message:  "decoding response",
			Err:      err,
		}
	}

	if len(results) == 0 {
		return nil, nil
	}

	candidates := make([]translate.Candidate, 0, len(results[0].Translations))
	for _, tr := range results[0].Translations {
		candidates = append(candidates, translate.Candidate{Text: tr.Text})
	}

	return candidates, nil
}
