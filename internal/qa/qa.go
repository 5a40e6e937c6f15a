// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package qa answers questions using the most recently cached papers as context.
package qa

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/paper-digest/internal/cache"
	"github.com/pdiddy/paper-digest/internal/llm"
	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// ErrNoContext reports that there are no cached papers to answer from.
// No model call is made in that case.
var ErrNoContext = errors.New("no cached papers to answer from")

// Placeholder is the user-facing reply when there is no context.
const Placeholder = "No recent papers available. Try again later!"

// MaxContextPapers bounds the number of papers placed in the context blob.
const MaxContextPapers = 5

// Builder assembles a bounded context from cached papers and asks the model.
type Builder struct {
	model       llm.Model
	contextSize int
	metrics     *metrics.Metrics
}

// NewBuilder returns a Builder using the last cfg.ContextSize cached papers,
// clamped to [1, MaxContextPapers].
func NewBuilder(model llm.Model, cfg types.QAConfig, m *metrics.Metrics) *Builder {
	size := cfg.ContextSize
	if size <= 0 || size > MaxContextPapers {
		size = MaxContextPapers
	}
	return &Builder{model: model, contextSize: size, metrics: m}
}

// Answer selects the most recently inserted entries, renders them into the
// answer prompt with question, and returns the exchange. Empty entries yield
// ErrNoContext; model failures wrap llm.ErrModelUnavailable.
func (b *Builder) Answer(ctx context.Context, question string, entries *cache.Entries) (types.ChatExchange, error) {
	if entries.Len() == 0 {
		return types.ChatExchange{}, ErrNoContext
	}

	selected := entries.Last(b.contextSize)
	papers := make([]types.Paper, len(selected))
	for i, sp := range selected {
		papers[i] = sp.Paper
	}

	prompt, err := RenderPrompt(question, RenderContext(papers))
	if err != nil {
		return types.ChatExchange{}, fmt.Errorf("rendering answer prompt: %w", err)
	}

	started := time.Now()
	answer, err := b.model.Complete(ctx, prompt)
	b.metrics.ObserveLLM("answer", started)
	if err != nil {
		return types.ChatExchange{}, err
	}

	return types.ChatExchange{
		Question:      question,
		ContextPapers: papers,
		Answer:        answer,
	}, nil
}
