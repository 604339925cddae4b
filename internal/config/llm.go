package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/sankalpa/khaata/internal/llm"
)

// LoadLLMConfig assembles the LLM client configuration from Viper.
// Precedence follows Viper's: flags, then KHAATA_ environment
// variables, then the config file, then these defaults.
func LoadLLMConfig() llm.Config {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
	}
	if ttl := viper.GetDuration("llm.cache_ttl"); ttl > 0 {
		cfg.CacheTTL = ttl
	} else {
		cfg.CacheTTL = 15 * time.Minute
	}
	return cfg
}

// DatabasePath resolves the SQLite database location, expanding ~ and
// environment variables.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = "~/.local/share/khaata/khaata.db"
	}
	return ExpandPath(path)
}
