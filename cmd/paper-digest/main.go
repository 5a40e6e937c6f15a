// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-digest CLI: a web digest of
// recent arXiv AI papers with generated summaries and a question-answering chat.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "PAPER_DIGEST"

var rootCmd = &cobra.Command{
	Use:   "paper-digest",
	Short: "Summaries of and chat over recent arXiv AI papers",
	Long: `paper-digest fetches the newest cs.AI, cs.LG and cs.CL submissions from arXiv,
summarizes each one with a language model, caches the results, and answers
questions about the cached papers.

Run "paper-digest serve" for the web interface, or use fetch and ask from the
command line.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-digest.yaml or ~/.config/paper-digest/paper-digest.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-digest"))
		}
	}

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so AutomaticEnv can resolve
// PAPER_DIGEST_<SECTION>_<KEY> during Unmarshal. llm.model and llm.endpoint
// stay empty so each provider applies its own defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.debug", false)

	v.SetDefault("source.base_url", "https://export.arxiv.org/api/query")
	v.SetDefault("source.categories", []string{"cs.AI", "cs.LG", "cs.CL"})
	v.SetDefault("source.keywords", []string{})
	v.SetDefault("source.max_results", 5)
	v.SetDefault("source.days_back", 1)
	v.SetDefault("source.max_retries", 0)
	v.SetDefault("source.timeout", "60s")
	v.SetDefault("source.user_agent", "paper-digest/0.1")

	v.SetDefault("llm.provider", string(types.ProviderOllama))
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.timeout", "0s")

	v.SetDefault("summary.on_error", string(types.OnErrorAbort))

	v.SetDefault("cache.backend", string(types.CacheFile))
	v.SetDefault("cache.dir", ".cache")
	v.SetDefault("cache.max_entries", 50)

	v.SetDefault("qa.context_size", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig decodes v into a Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
