package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ux-career-assessment/internal/app"
	"ux-career-assessment/internal/cache"
	"ux-career-assessment/internal/config"
	"ux-career-assessment/internal/content"
	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/infra/memory"
	pginfra "ux-career-assessment/internal/infra/postgres"
	redisinfra "ux-career-assessment/internal/infra/redis"
	"ux-career-assessment/internal/llm"
	"ux-career-assessment/internal/questionbank"
)

// backends holds the wired storage and the cleanups to run on exit.
type backends struct {
	kv      domain.KeyValueStore
	bank    questionbank.Loader
	closers []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func storageBackend(cfg config.Config) string {
	if cfg.Storage.Backend != "" {
		return cfg.Storage.Backend
	}
	switch {
	case cfg.Postgres.URL != "":
		return "postgres"
	case cfg.Redis.Addr != "":
		return "redis"
	default:
		return "memory"
	}
}

func openBackends(ctx context.Context, cfg config.Config, log *zap.Logger) (*backends, error) {
	b := &backends{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b.closers = append(b.closers, func() { _ = redisClient.Close() })
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
	}

	backend := storageBackend(cfg)
	switch backend {
	case "postgres":
		if cfg.Postgres.URL == "" {
			b.Close()
			return nil, fmt.Errorf("storage backend postgres needs postgres.url")
		}
		db := openBunDB(cfg.Postgres.URL)
		b.closers = append(b.closers, func() { _ = db.Close() })
		b.kv = pginfra.NewKVStore(db)
	case "redis":
		if redisClient == nil {
			b.Close()
			return nil, fmt.Errorf("storage backend redis needs redis.addr")
		}
		b.kv = redisinfra.NewKVStore(redisClient)
	case "memory":
		b.kv = memory.NewKVStore()
	default:
		b.Close()
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}

	b.bank = memory.NewStaticBankLoader(questionbank.Default())
	if pool != nil {
		if err := pginfra.SeedBank(ctx, pool, cfg.Postgres.BankID, questionbank.Default()); err != nil {
			log.Warn("seed question bank", zap.Error(err))
		}
		b.bank = pginfra.NewBankLoader(pool, cfg.Postgres.BankID)
	}
	if redisClient != nil {
		b.bank = redisinfra.NewCachedBankLoader(redisClient, b.bank, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	}

	log.Info("storage ready", zap.String("backend", backend),
		zap.Bool("redis", redisClient != nil), zap.Bool("postgres", pool != nil))
	return b, nil
}

func newCache(cfg config.Config, kv domain.KeyValueStore, log *zap.Logger) *cache.Cache {
	return cache.New(kv,
		cache.WithPrefix(cfg.Cache.Prefix),
		cache.WithTTL(config.TTLDuration(cfg.Cache.TTL, cache.DefaultTTL)),
		cache.WithLogger(log),
	)
}

func newGenerator(cfg config.Config, log *zap.Logger) (content.Generator, error) {
	switch cfg.Content.Generator {
	case "", "none":
		return content.Unavailable{}, nil
	case "http":
		if cfg.Content.BaseURL == "" {
			return nil, fmt.Errorf("content generator http needs content.baseURL")
		}
		return content.NewHTTPGenerator(cfg.Content.BaseURL, &http.Client{}), nil
	case "llm":
		provider, err := llm.NewProvider(cfg.LLM, log)
		if err != nil {
			return nil, err
		}
		return content.NewLLMGenerator(provider, cfg.LLM.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown content generator %q", cfg.Content.Generator)
	}
}

func loaderConfig(cfg config.Config, log *zap.Logger) app.LoaderConfig {
	defaults := app.DefaultTimeouts()
	timeouts := make(map[domain.Section]time.Duration, len(cfg.Content.Timeouts))
	for name, raw := range cfg.Content.Timeouts {
		section := domain.Section(name)
		if !section.Valid() {
			log.Warn("ignoring timeout for unknown section", zap.String("section", name))
			continue
		}
		timeouts[section] = config.TTLDuration(raw, defaults[section])
	}
	return app.LoaderConfig{
		Timeouts:      timeouts,
		KnowledgeBank: questionbank.KnowledgeBank(),
		Logger:        log,
	}
}
