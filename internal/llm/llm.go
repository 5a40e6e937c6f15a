// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm provides single-turn text completion clients for the language
// model backends the digest can talk to.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// ErrModelUnavailable reports that a completion call failed: the backend
// could not be reached, rejected the request, or returned no usable text.
var ErrModelUnavailable = errors.New("language model unavailable")

// Model completes a single prompt. Implementations are safe for concurrent use.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New builds the client selected by cfg.Provider. The returned Model is
// constructed once at startup and shared by every stage.
func New(cfg types.LLMConfig) (Model, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case "", types.ProviderOllama:
		return NewOllama(client, cfg), nil
	case types.ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm provider %q requires an API key (llm.api_key or .secrets/anthropic-api-key)", cfg.Provider)
		}
		return NewClaude(client, cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrModelUnavailable, fmt.Sprintf(format, args...))
}

// Describe reports the endpoint and model a client resolved to after defaults.
func Describe(m Model) (endpoint, model string) {
	switch c := m.(type) {
	case *Ollama:
		return c.endpoint, c.model
	case *Claude:
		return c.endpoint, c.model
	}
	return "", ""
}
