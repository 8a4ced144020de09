package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ux-career-assessment/internal/llm"
)

type Config struct {
	Server struct {
		Port         string   `yaml:"port"`
		AllowOrigins []string `yaml:"allowOrigins"`
	} `yaml:"server"`
	Log struct {
		// Mode is "development" or "production".
		Mode string `yaml:"mode"`
	} `yaml:"log"`
	Storage struct {
		// Backend is "memory", "redis" or "postgres". Empty picks the first
		// configured of postgres, redis, memory.
		Backend string `yaml:"backend"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		// TTL applies to the cached question bank.
		TTL string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL    string `yaml:"url"`
		BankID string `yaml:"bankId"`
	} `yaml:"postgres"`
	Cache struct {
		Prefix string `yaml:"prefix"`
		TTL    string `yaml:"ttl"`
	} `yaml:"cache"`
	Content struct {
		// Generator is "http", "llm" or "none".
		Generator string            `yaml:"generator"`
		BaseURL   string            `yaml:"baseURL"`
		Timeouts  map[string]string `yaml:"timeouts"`
	} `yaml:"content"`
	LLM llm.Config `yaml:"llm"`
}

// Default returns the configuration used when no file is present: memory
// storage and fallback-only content.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Log.Mode = "development"
	cfg.Content.Generator = "none"
	cfg.LLM = llm.DefaultConfig()
	return cfg
}

// Load reads YAML config from path on top of Default, then applies a .env
// file and environment overrides. A missing config file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	// Load .env file if it exists
	_ = godotenv.Load()
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "UXA_PORT")
	setString(&cfg.Log.Mode, "UXA_LOG_MODE")
	setString(&cfg.Storage.Backend, "UXA_STORAGE")
	setString(&cfg.Redis.Addr, "UXA_REDIS_ADDR")
	setString(&cfg.Redis.Password, "UXA_REDIS_PASSWORD")
	if v, err := strconv.Atoi(os.Getenv("UXA_REDIS_DB")); err == nil {
		cfg.Redis.DB = v
	}
	setString(&cfg.Postgres.URL, "UXA_POSTGRES_URL")
	setString(&cfg.Content.Generator, "UXA_CONTENT_GENERATOR")
	setString(&cfg.Content.BaseURL, "UXA_CONTENT_BASE_URL")
	setString(&cfg.LLM.Provider, "UXA_LLM_PROVIDER")
	setString(&cfg.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.OpenAI.APIKey, "UXA_OPENAI_API_KEY")
	setString(&cfg.LLM.OpenAI.BaseURL, "UXA_OPENAI_BASE_URL")
	setString(&cfg.LLM.OpenAI.Model, "UXA_OPENAI_MODEL")
	setString(&cfg.LLM.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setString(&cfg.LLM.Anthropic.APIKey, "UXA_ANTHROPIC_API_KEY")
	setString(&cfg.LLM.Anthropic.Model, "UXA_ANTHROPIC_MODEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
