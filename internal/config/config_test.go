package config

import (
	"errors"
	"testing"
	"time"

	"github.com/tjhootman/audiobook-generator/domain/entities"
	"github.com/tjhootman/audiobook-generator/internal/textproc"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"AUDIOBOOK_OUTPUT_DIR", "AUDIOBOOK_CHUNK_LIMIT",
		"AUDIOBOOK_SYNTH_WORKERS", "AUDIOBOOK_HTTP_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != defaultOutputDir {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.ChunkLimit != textproc.DefaultChunkLimit {
		t.Errorf("ChunkLimit = %d", cfg.ChunkLimit)
	}
	if cfg.SynthWorkers != defaultSynthWorkers {
		t.Errorf("SynthWorkers = %d", cfg.SynthWorkers)
	}
	if cfg.HTTPTimeout != defaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AUDIOBOOK_OUTPUT_DIR", "/tmp/books")
	t.Setenv("AUDIOBOOK_CHUNK_LIMIT", "2000")
	t.Setenv("AUDIOBOOK_SYNTH_WORKERS", "8")
	t.Setenv("AUDIOBOOK_HTTP_TIMEOUT_SECONDS", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "/tmp/books" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.ChunkLimit != 2000 {
		t.Errorf("ChunkLimit = %d", cfg.ChunkLimit)
	}
	if cfg.SynthWorkers != 8 {
		t.Errorf("SynthWorkers = %d", cfg.SynthWorkers)
	}
	if cfg.HTTPTimeout != 60*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"AUDIOBOOK_CHUNK_LIMIT", "not-a-number"},
		{"AUDIOBOOK_CHUNK_LIMIT", "-5"},
		{"AUDIOBOOK_SYNTH_WORKERS", "0"},
		{"AUDIOBOOK_HTTP_TIMEOUT_SECONDS", "soon"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			var cfgErr *entities.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Name != tc.key {
				t.Errorf("error names %q, want %q", cfgErr.Name, tc.key)
			}
		})
	}
}
