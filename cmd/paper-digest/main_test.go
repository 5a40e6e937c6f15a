// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/internal/llm"
	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "https://export.arxiv.org/api/query", cfg.Source.BaseURL)
	assert.Equal(t, []string{"cs.AI", "cs.LG", "cs.CL"}, cfg.Source.Categories)
	assert.Empty(t, cfg.Source.Keywords)
	assert.Equal(t, 5, cfg.Source.MaxResults)
	assert.Equal(t, 1, cfg.Source.DaysBack)
	assert.Equal(t, 60*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "paper-digest/0.1", cfg.Source.UserAgent)
	assert.Equal(t, 0, cfg.Source.MaxRetries)
	assert.Equal(t, types.ProviderOllama, cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.Model)
	assert.Empty(t, cfg.LLM.Endpoint)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, types.OnErrorAbort, cfg.Summary.OnError)
	assert.Equal(t, types.CacheFile, cfg.Cache.Backend)
	assert.Equal(t, ".cache", cfg.Cache.Dir)
	assert.Equal(t, 50, cfg.Cache.MaxEntries)
	assert.Equal(t, 5, cfg.QA.ContextSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDefaultModelPerProvider(t *testing.T) {
	tests := []struct {
		provider     string
		wantEndpoint string
		wantModel    string
	}{
		{"ollama", "http://localhost:11434", "mistral"},
		{"claude", "https://api.anthropic.com/v1/messages", "claude-sonnet-4-5-20250929"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv("PAPER_DIGEST_LLM_PROVIDER", tt.provider)
			t.Setenv("PAPER_DIGEST_LLM_API_KEY", "sk-test")

			v := viper.New()
			setDefaults(v)
			cfg, err := loadConfig(v)
			require.NoError(t, err)

			m, err := llm.New(cfg.LLM)
			require.NoError(t, err)
			endpoint, model := llm.Describe(m)
			assert.Equal(t, tt.wantEndpoint, endpoint)
			assert.Equal(t, tt.wantModel, model)
		})
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PAPER_DIGEST_SERVER_PORT", "5001")
	t.Setenv("PAPER_DIGEST_LLM_PROVIDER", "claude")
	t.Setenv("PAPER_DIGEST_SOURCE_TIMEOUT", "5s")
	t.Setenv("PAPER_DIGEST_CACHE_BACKEND", "sqlite")

	v := viper.New()
	setDefaults(v)
	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, types.ProviderClaude, cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, types.CacheSQLite, cfg.Cache.Backend)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper-digest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  categories: [cs.RO]
  keywords: [diffusion, "large language model"]
  days_back: 3
summary:
  on_error: degrade
qa:
  context_size: 3
`), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"cs.RO"}, cfg.Source.Categories)
	assert.Equal(t, []string{"diffusion", "large language model"}, cfg.Source.Keywords)
	assert.Equal(t, 3, cfg.Source.DaysBack)
	assert.Equal(t, 5, cfg.Source.MaxResults)
	assert.Equal(t, types.OnErrorDegrade, cfg.Summary.OnError)
	assert.Equal(t, 3, cfg.QA.ContextSize)
}

func samplePapers() []types.SummarizedPaper {
	return []types.SummarizedPaper{{
		Paper: types.Paper{
			ID:        "http://arxiv.org/abs/2610.00001v1",
			Title:     "Sparse Attention",
			Authors:   []string{"Ada", "Grace"},
			Published: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
			PDFURL:    "http://arxiv.org/pdf/2610.00001v1",
		},
		Summary: "1. Faster.\n2. Smaller.",
	}}
}

func TestPrintPapersText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPapers(&buf, samplePapers(), false))
	assert.Equal(t, `1. Sparse Attention
   Ada, Grace | 2026-10-19
   http://arxiv.org/pdf/2610.00001v1
   1. Faster.
   2. Smaller.

`, buf.String())

	buf.Reset()
	require.NoError(t, printPapers(&buf, nil, false))
	assert.Equal(t, "No recent papers found.\n", buf.String())
}

func TestPrintPapersJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPapers(&buf, samplePapers(), true))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Sparse Attention", got[0]["title"])
	assert.Equal(t, "http://arxiv.org/pdf/2610.00001v1", got[0]["pdf_url"])
	assert.Equal(t, "1. Faster.\n2. Smaller.", got[0]["summary"])

	buf.Reset()
	require.NoError(t, printPapers(&buf, nil, true))
	assert.Equal(t, "[]\n", buf.String())
}
