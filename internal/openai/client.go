// internal/openai/client.go
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultBaseURL is the public chat-completions endpoint host.
const DefaultBaseURL = "https://api.openai.com"

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini-2024-07-18"

// Reply carries the language model's raw transport status and body text,
// surfaced to the caller unmodified.
type Reply struct {
	Status int
	Text   string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type inquiryRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

// Client calls the chat-completions API. One attempt per call; no retry.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
	logger  *slog.Logger
}

// NewClient creates a chat-completions client. baseURL and model fall back to
// the public defaults when empty.
func NewClient(apiKey, baseURL, model string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		logger:  logger,
	}
}

// Inquire sends content as a single user message and returns the raw status
// and reply text.
func (c *Client) Inquire(ctx context.Context, content string) (Reply, error) {
	body, err := json.Marshal(inquiryRequest{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: content}},
	})
	if err != nil {
		return Reply{}, err
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Reply{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Sending model inquiry", "model", c.model, "content_len", len(content))

	resp, err := c.http.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("reading model response body: %w", err)
	}

	return Reply{Status: resp.StatusCode, Text: string(text)}, nil
}
