// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-digest/internal/cache"
	"github.com/pdiddy/paper-digest/internal/digest"
	"github.com/pdiddy/paper-digest/internal/llm"
	"github.com/pdiddy/paper-digest/internal/logger"
	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/internal/qa"
	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/internal/source"
	"github.com/pdiddy/paper-digest/internal/summary"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// app holds the wired pipeline for one command invocation.
type app struct {
	cfg     types.Config
	log     logger.Logger
	metrics *metrics.Metrics
	store   cache.Store
	digest  *digest.Service
}

// newApp loads config and secrets and builds every collaborator once.
func newApp() (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	loaded, err := secrets.Load(secrets.DefaultDir, log)
	if err != nil {
		return nil, err
	}
	if len(loaded) > 0 {
		keys := make([]string, 0, len(loaded))
		for k := range loaded {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		log.Debug("loaded secrets", logger.Strings("keys", keys))
	}
	cfg.LLM.APIKey = secrets.Resolve(loaded, secrets.AnthropicAPIKey, cfg.LLM.APIKey)

	model, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	gen, err := summary.NewGenerator(model, cfg.Summary, log, m)
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return nil, err
	}
	svc := digest.New(
		source.NewArxiv(nil, cfg.Source),
		gen,
		store,
		qa.NewBuilder(model, cfg.QA, m),
		digest.Config{DaysBack: cfg.Source.DaysBack, MaxEntries: cfg.Cache.MaxEntries},
		log, m,
	)

	endpoint, modelName := llm.Describe(model)
	log.Info("paper-digest configured",
		logger.String("llm_provider", string(cfg.LLM.Provider)),
		logger.String("llm_endpoint", endpoint),
		logger.String("llm_model", modelName),
		logger.String("cache_backend", string(cfg.Cache.Backend)),
		logger.Strings("categories", cfg.Source.Categories),
	)
	return &app{cfg: cfg, log: log, metrics: m, store: store, digest: svc}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing paper cache", logger.Error(err))
	}
	_ = a.log.Sync()
}
