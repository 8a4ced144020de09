package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Content.Generator != "none" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LLM.MaxTokens != 1500 {
		t.Fatalf("expected llm defaults, got %+v", cfg.LLM)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
storage:
  backend: redis
redis:
  addr: localhost:6379
  ttl: 5m
cache:
  ttl: 12h
content:
  generator: llm
  timeouts:
    meaning: 3s
llm:
  provider: anthropic
  retry:
    maxAttempts: 3
    initialWait: 100ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Storage.Backend != "redis" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := TTLDuration(cfg.Cache.TTL, time.Hour); got != 12*time.Hour {
		t.Fatalf("expected 12h cache ttl, got %v", got)
	}
	if cfg.Content.Timeouts["meaning"] != "3s" {
		t.Fatalf("expected meaning timeout, got %v", cfg.Content.Timeouts)
	}
	if cfg.LLM.Provider != "anthropic" || cfg.LLM.Retry.MaxAttempts != 3 || cfg.LLM.Retry.InitialWait != 100*time.Millisecond {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	// Fields absent from the file keep their defaults.
	if cfg.LLM.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("expected default openai model, got %q", cfg.LLM.OpenAI.Model)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("UXA_PORT", "7070")
	t.Setenv("UXA_REDIS_DB", "2")
	t.Setenv("UXA_ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(writeConfig(t, "server:\n  port: \"9090\"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "7070" || cfg.Redis.DB != 2 || cfg.LLM.Anthropic.APIKey != "sk-test" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for bad input, got %v", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}

func TestSampleConfigDocumentsCacheVersioning(t *testing.T) {
	path := filepath.Join("..", "..", "config", "config.yaml")
	if _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	body := string(raw)
	start := strings.Index(body, "\ncache:")
	if start < 0 {
		t.Fatalf("sample config has no cache block")
	}
	block := body[start:]
	if end := strings.Index(block[1:], "\n\n"); end > 0 {
		block = block[:end+1]
	}
	if !strings.Contains(block, "cache.CurrentVersion") || !strings.Contains(block, "only migration path") {
		t.Fatalf("cache block does not call out version bumps:\n%s", block)
	}
}
