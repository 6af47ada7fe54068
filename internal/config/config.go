package config

import (
	"os"
	"strconv"
)

// Config holds all client configuration.
type Config struct {
	// ProviderURL is the base URL of the question service
	// (the PostgREST endpoint the question bank is published on).
	ProviderURL string

	// ProviderKey is the API key sent with every provider request.
	ProviderKey string

	// LookbackDays is the mistake-review window: unresolved mistakes older
	// than this many days drop out of review selection until missed again.
	LookbackDays int

	Explain ExplainConfig
}

// ExplainConfig configures the optional AI explanation feature.
// The feature is disabled when APIKey is empty.
type ExplainConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// DefaultLookbackDays is the default mistake-review window.
const DefaultLookbackDays = 30

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		LookbackDays: DefaultLookbackDays,
		Explain: ExplainConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	if u := os.Getenv("OPOSTUDY_PROVIDER_URL"); u != "" {
		cfg.ProviderURL = u
	}
	if k := os.Getenv("OPOSTUDY_PROVIDER_KEY"); k != "" {
		cfg.ProviderKey = k
	}
	if d := os.Getenv("OPOSTUDY_LOOKBACK_DAYS"); d != "" {
		if n, err := strconv.Atoi(d); err == nil && n > 0 {
			cfg.LookbackDays = n
		}
	}

	if k := os.Getenv("OPOSTUDY_OPENAI_API_KEY"); k != "" {
		cfg.Explain.APIKey = k
	}
	if m := os.Getenv("OPOSTUDY_OPENAI_MODEL"); m != "" {
		cfg.Explain.Model = m
	}
	if u := os.Getenv("OPOSTUDY_OPENAI_BASE_URL"); u != "" {
		cfg.Explain.BaseURL = u
	}

	return cfg
}
