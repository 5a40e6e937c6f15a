// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestNewSelectsProvider(t *testing.T) {
	m, err := New(types.LLMConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Ollama{}, m)

	m, err = New(types.LLMConfig{Provider: types.ProviderClaude, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &Claude{}, m)

	_, err = New(types.LLMConfig{Provider: types.ProviderClaude})
	assert.Error(t, err)

	_, err = New(types.LLMConfig{Provider: "gpt-local"})
	assert.Error(t, err)
}

func TestNewAppliesProviderDefaults(t *testing.T) {
	m, err := New(types.LLMConfig{Provider: types.ProviderClaude, APIKey: "k"})
	require.NoError(t, err)
	endpoint, model := Describe(m)
	assert.Equal(t, defaultClaudeEndpoint, endpoint)
	assert.Equal(t, defaultClaudeModel, model)

	m, err = New(types.LLMConfig{Provider: types.ProviderOllama})
	require.NoError(t, err)
	endpoint, model = Describe(m)
	assert.Equal(t, defaultOllamaEndpoint, endpoint)
	assert.Equal(t, defaultOllamaModel, model)
}

func TestOllamaComplete(t *testing.T) {
	var got ollamaRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"response":"  - point one\n- point two  ","done":true}`)
	}))
	defer ts.Close()

	o := NewOllama(ts.Client(), types.LLMConfig{Endpoint: ts.URL + "/"})
	text, err := o.Complete(context.Background(), "Summarize this")
	require.NoError(t, err)

	assert.Equal(t, "- point one\n- point two", text)
	assert.Equal(t, "mistral", got.Model)
	assert.Equal(t, "Summarize this", got.Prompt)
	assert.False(t, got.Stream)
}

func TestOllamaEndpointScheme(t *testing.T) {
	o := NewOllama(nil, types.LLMConfig{Endpoint: "gpu-box:11434"})
	assert.Equal(t, "http://gpu-box:11434", o.endpoint)
}

func TestOllamaFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "not json")
		}},
		{"error field", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"error":"out of memory"}`)
		}},
		{"empty response", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"response":"   ","done":true}`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := NewOllama(ts.Client(), types.LLMConfig{Endpoint: ts.URL}).Complete(context.Background(), "p")
			assert.ErrorIs(t, err, ErrModelUnavailable)
		})
	}
}

func TestOllamaUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewOllama(nil, types.LLMConfig{Endpoint: url}).Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestClaudeComplete(t *testing.T) {
	var got claudeRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"content":[{"type":"text","text":"Answer A."},{"type":"tool_use"},{"type":"text","text":"Answer B."}]}`)
	}))
	defer ts.Close()

	c := NewClaude(ts.Client(), types.LLMConfig{Endpoint: ts.URL, APIKey: "secret", Model: "m"})
	text, err := c.Complete(context.Background(), "What is new?")
	require.NoError(t, err)

	assert.Equal(t, "Answer A.\nAnswer B.", text)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "What is new?", got.Messages[0].Content)
}

func TestClaudeFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"no text", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"content":[]}`)
		}},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"content":`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			c := NewClaude(ts.Client(), types.LLMConfig{Endpoint: ts.URL, APIKey: "k"})
			_, err := c.Complete(context.Background(), "p")
			assert.ErrorIs(t, err, ErrModelUnavailable)
		})
	}
}
