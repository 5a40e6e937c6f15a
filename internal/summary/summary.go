// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary turns listing papers into short model-generated summaries.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/paper-digest/internal/llm"
	"github.com/pdiddy/paper-digest/internal/logger"
	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Unavailable is the summary shown for a paper whose summary failed under the
// degrade policy.
const Unavailable = "Summary unavailable."

// Generator calls the language model once per paper. It holds no state
// between calls.
type Generator struct {
	model   llm.Model
	policy  types.SummaryErrorPolicy
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewGenerator returns a Generator. An empty policy means abort; unknown
// policies are rejected.
func NewGenerator(model llm.Model, cfg types.SummaryConfig, log logger.Logger, m *metrics.Metrics) (*Generator, error) {
	policy := cfg.OnError
	switch policy {
	case "":
		policy = types.OnErrorAbort
	case types.OnErrorAbort, types.OnErrorDegrade:
	default:
		return nil, fmt.Errorf("unknown summary.on_error policy %q (want %q or %q)", policy, types.OnErrorAbort, types.OnErrorDegrade)
	}
	return &Generator{model: model, policy: policy, log: log, metrics: m}, nil
}

// Summarize renders the summary prompt for one paper and returns the model's text.
// Errors from the model wrap llm.ErrModelUnavailable.
func (g *Generator) Summarize(ctx context.Context, title, abstract string) (string, error) {
	prompt, err := RenderPrompt(title, abstract)
	if err != nil {
		return "", fmt.Errorf("rendering summary prompt: %w", err)
	}
	started := time.Now()
	text, err := g.model.Complete(ctx, prompt)
	g.metrics.ObserveLLM("summarize", started)
	if err != nil {
		return "", err
	}
	return text, nil
}

// SummarizeAll summarizes papers in order. Under the abort policy the first
// failure aborts the batch and no partial results are returned; under the
// degrade policy failed papers carry the Unavailable summary.
func (g *Generator) SummarizeAll(ctx context.Context, papers []types.Paper) ([]types.SummarizedPaper, error) {
	out := make([]types.SummarizedPaper, 0, len(papers))
	for _, p := range papers {
		text, err := g.Summarize(ctx, p.Title, p.Abstract)
		if err != nil {
			g.metrics.Summaries.WithLabelValues(metrics.ResultError).Inc()
			if g.policy != types.OnErrorDegrade {
				return nil, fmt.Errorf("summarizing %s: %w", p.ID, err)
			}
			g.log.Warn("summary failed, degrading",
				logger.String("paper_id", p.ID),
				logger.Error(err),
			)
			g.metrics.Summaries.WithLabelValues(metrics.ResultDegraded).Inc()
			text = Unavailable
		} else {
			g.metrics.Summaries.WithLabelValues(metrics.ResultOK).Inc()
		}
		out = append(out, types.SummarizedPaper{Paper: p, Summary: text})
	}
	return out, nil
}
