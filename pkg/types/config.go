// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the client default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host  string `json:"host" yaml:"host" mapstructure:"host"`
	Port  int    `json:"port" yaml:"port" mapstructure:"port"`
	Debug bool   `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// SourceConfig holds settings for the paper listing source.
type SourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the arXiv query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Categories are ORed together (default cs.AI, cs.LG, cs.CL).
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories"`

	// Keywords, when set, are ORed together and ANDed with the category filter.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// MaxResults is the page size requested from the service (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// DaysBack is the recency window used by the list pipeline (default 1).
	DaysBack int `json:"days_back" yaml:"days_back" mapstructure:"days_back"`

	// MaxRetries bounds retries on HTTP 429 and 503 responses. Zero sends a
	// single request.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// LLMProvider identifies the language model backend.
type LLMProvider string

const (
	ProviderOllama LLMProvider = "ollama"
	ProviderClaude LLMProvider = "claude"
)

// LLMConfig holds settings for the language model client.
type LLMConfig struct {
	// Provider selects the backend: ollama or claude.
	Provider LLMProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier. Empty uses the provider default.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Endpoint is the base URL of the inference server. Empty uses the provider default.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// APIKey authenticates against hosted providers.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxTokens caps the completion length for providers that require it.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout is the per-call HTTP timeout. Zero leaves the client default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// SummaryErrorPolicy selects what a batch does when one summary fails.
type SummaryErrorPolicy string

const (
	// OnErrorAbort fails the whole batch on the first model error.
	OnErrorAbort SummaryErrorPolicy = "abort"
	// OnErrorDegrade keeps going with a placeholder summary.
	OnErrorDegrade SummaryErrorPolicy = "degrade"
)

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	OnError SummaryErrorPolicy `json:"on_error" yaml:"on_error" mapstructure:"on_error"`
}

// CacheBackend identifies the paper cache storage.
type CacheBackend string

const (
	CacheFile   CacheBackend = "file"
	CacheSQLite CacheBackend = "sqlite"
)

// CacheConfig holds settings for the paper cache.
type CacheConfig struct {
	// Backend selects file (YAML) or sqlite storage.
	Backend CacheBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Dir is the directory holding the cache file.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxEntries caps the number of cached papers (default 50).
	MaxEntries int `json:"max_entries" yaml:"max_entries" mapstructure:"max_entries"`
}

// QAConfig holds settings for the question-answering stage.
type QAConfig struct {
	// ContextSize is the number of most recently cached papers used as context (max 5).
	ContextSize int `json:"context_size" yaml:"context_size" mapstructure:"context_size"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `json:"level" yaml:"level" mapstructure:"level"`
	Development bool   `json:"development" yaml:"development" mapstructure:"development"`
}

// Config groups all stage configurations.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Source  SourceConfig  `json:"source" yaml:"source" mapstructure:"source"`
	LLM     LLMConfig     `json:"llm" yaml:"llm" mapstructure:"llm"`
	Summary SummaryConfig `json:"summary" yaml:"summary" mapstructure:"summary"`
	Cache   CacheConfig   `json:"cache" yaml:"cache" mapstructure:"cache"`
	QA      QAConfig      `json:"qa" yaml:"qa" mapstructure:"qa"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
