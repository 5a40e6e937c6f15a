// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest composes the listing source, the summary generator, the
// paper cache and the question answerer into the two operations the web
// surface and the CLI expose: listing recent papers and answering questions.
package digest

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/paper-digest/internal/cache"
	"github.com/pdiddy/paper-digest/internal/logger"
	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/internal/qa"
	"github.com/pdiddy/paper-digest/internal/summary"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Source fetches recent papers. source.Arxiv implements it.
type Source interface {
	FetchRecent(ctx context.Context, daysBack int) ([]types.Paper, error)
}

// Service runs the list and ask pipelines. All collaborators are injected.
type Service struct {
	source     Source
	summarizer *summary.Generator
	store      cache.Store
	answerer   *qa.Builder
	daysBack   int
	maxEntries int
	log        logger.Logger
	metrics    *metrics.Metrics
}

// Config carries the pipeline knobs that are not owned by a collaborator.
type Config struct {
	DaysBack   int
	MaxEntries int
}

// New returns a Service. DaysBack below 1 is raised to 1.
func New(src Source, gen *summary.Generator, store cache.Store, answerer *qa.Builder, cfg Config, log logger.Logger, m *metrics.Metrics) *Service {
	if cfg.DaysBack < 1 {
		cfg.DaysBack = 1
	}
	return &Service{
		source:     src,
		summarizer: gen,
		store:      store,
		answerer:   answerer,
		daysBack:   cfg.DaysBack,
		maxEntries: cfg.MaxEntries,
		log:        log,
		metrics:    m,
	}
}

// List fetches papers from the last DaysBack days, summarizes each one, and
// replaces the cache with the result. A failed cache write is logged and
// does not fail the call.
func (s *Service) List(ctx context.Context) ([]types.SummarizedPaper, error) {
	papers, err := s.source.FetchRecent(ctx, s.daysBack)
	if err != nil {
		return nil, fmt.Errorf("fetching recent papers: %w", err)
	}
	s.metrics.PapersFetched.Add(float64(len(papers)))
	s.log.Info("fetched recent papers",
		logger.Int("count", len(papers)),
		logger.Int("days_back", s.daysBack),
	)

	summarized, err := s.summarizer.SummarizeAll(ctx, papers)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, cache.NewEntries(s.maxEntries, summarized...)); err != nil {
		s.log.Error("saving paper cache", logger.Error(err))
	}
	return summarized, nil
}

// Ask answers question from the cached papers. A missing or empty cache
// surfaces as qa.ErrNoContext.
func (s *Service) Ask(ctx context.Context, question string) (types.ChatExchange, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheEmpty) {
			return types.ChatExchange{}, fmt.Errorf("loading paper cache: %w", err)
		}
		s.log.Debug("paper cache unavailable", logger.Error(err))
		entries = nil
	}

	ex, err := s.answerer.Answer(ctx, question, entries)
	switch {
	case errors.Is(err, qa.ErrNoContext):
		s.metrics.ChatRequests.WithLabelValues(metrics.ResultPlaceholder).Inc()
	case err != nil:
		s.metrics.ChatRequests.WithLabelValues(metrics.ResultError).Inc()
	default:
		s.metrics.ChatRequests.WithLabelValues(metrics.ResultOK).Inc()
	}
	return ex, err
}
