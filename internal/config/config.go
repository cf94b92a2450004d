// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tjhootman/audiobook-generator/domain/entities"
	"github.com/tjhootman/audiobook-generator/internal/textproc"
)

const (
	defaultOutputDir    = "output"
	defaultSynthWorkers = 4
	defaultHTTPTimeout  = 30 * time.Second
)

// Config holds the runtime settings of the generator.
type Config struct {
	OutputDir    string        // Root directory for per-book output trees
	ChunkLimit   int           // Max characters per synthesis request
	SynthWorkers int           // Concurrent synthesis requests
	HTTPTimeout  time.Duration // Book download timeout
}

// Load reads configuration from the environment, applying defaults for
// unset variables. Malformed values fail with ConfigError rather than
// silently falling back.
func Load() (Config, error) {
	cfg := Config{
		OutputDir:    getEnv("AUDIOBOOK_OUTPUT_DIR", defaultOutputDir),
		ChunkLimit:   textproc.DefaultChunkLimit,
		SynthWorkers: defaultSynthWorkers,
		HTTPTimeout:  defaultHTTPTimeout,
	}

	if err := getEnvInt("AUDIOBOOK_CHUNK_LIMIT", &cfg.ChunkLimit); err != nil {
		return Config{}, err
	}
	if err := getEnvInt("AUDIOBOOK_SYNTH_WORKERS", &cfg.SynthWorkers); err != nil {
		return Config{}, err
	}

	if raw := os.Getenv("AUDIOBOOK_HTTP_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, &entities.ConfigError{
				Name: "AUDIOBOOK_HTTP_TIMEOUT_SECONDS",
				Err:  fmt.Errorf("expected a positive integer, got %q", raw),
			}
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return &entities.ConfigError{
			Name: key,
			Err:  fmt.Errorf("expected a positive integer, got %q", raw),
		}
	}
	*dst = value
	return nil
}
