// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	defaultClaudeEndpoint = "https://api.anthropic.com/v1/messages"
	defaultClaudeModel    = "claude-sonnet-4-5-20250929"
	defaultMaxTokens      = 1024
	anthropicVersion      = "2023-06-01"
)

// Claude calls the Anthropic Messages API with a single user turn.
type Claude struct {
	endpoint  string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

// NewClaude returns a Messages API client.
func NewClaude(client *http.Client, cfg types.LLMConfig) *Claude {
	if client == nil {
		client = http.DefaultClient
	}
	c := &Claude{
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    client,
	}
	if c.endpoint == "" {
		c.endpoint = defaultClaudeEndpoint
	}
	if c.model == "" {
		c.model = defaultClaudeModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	return c
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends prompt as one user message and joins the returned text blocks.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	bodyBytes, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", unavailable("marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", unavailable("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", unavailable("calling Claude API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", unavailable("Claude API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", unavailable("decoding Claude response: %v", err)
	}

	var parts []string
	for _, block := range cResp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			parts = append(parts, strings.TrimSpace(block.Text))
		}
	}
	if len(parts) == 0 {
		return "", unavailable("no text content in Claude API response")
	}
	return strings.Join(parts, "\n"), nil
}
