// Package config loads runtime configuration from environment variables
// (and an optional .env file) at startup. Fail-fast: an invalid environment
// stops the process before anything is wired.
package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendHuggingFace = "huggingface"
	BackendGemini      = "gemini"
)

type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`

	// RedisAddr enables the cross-process worker cycle lock. Empty means a
	// single process is the only trigger and the lock degrades to a no-op.
	RedisAddr    string        `env:"REDIS_ADDR"`
	CycleLockKey string        `env:"CYCLE_LOCK_KEY" envDefault:"jobs:cycle-lock"`
	CycleLockTTL time.Duration `env:"CYCLE_LOCK_TTL" envDefault:"5m"`

	// LLMBackend selects the generation backend: "huggingface" or "gemini".
	LLMBackend string `env:"LLM_BACKEND" envDefault:"huggingface"`

	HFEndpoint string `env:"HF_ENDPOINT"`
	HFAPIKey   string `env:"HF_API_KEY"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL"`

	WorkerConcurrency int `env:"WORKER_CONCURRENCY" envDefault:"4"`

	// ProcessInterval enables the in-process scheduler when positive; zero
	// leaves cycle triggering to POST /jobs/process.
	ProcessInterval time.Duration `env:"PROCESS_INTERVAL" envDefault:"0"`

	LogJSON bool `env:"LOG_JSON" envDefault:"false"`
	Debug   bool `env:"DEBUG" envDefault:"false"`
}

func Load() (*Config, error) {
	// .env is a development convenience; missing is fine.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	switch cfg.LLMBackend {
	case BackendHuggingFace:
		// endpoint and key have usable defaults / anonymous access
	case BackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_BACKEND=gemini")
		}
	default:
		return nil, fmt.Errorf("LLM_BACKEND must be %q or %q, got %q", BackendHuggingFace, BackendGemini, cfg.LLMBackend)
	}

	if cfg.WorkerConcurrency < 1 {
		return nil, fmt.Errorf("WORKER_CONCURRENCY must be a positive integer, got %d", cfg.WorkerConcurrency)
	}

	return cfg, nil
}
