package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/logger"
)

// CurrentVersion is the schema version stamped on every entry. Bumping it
// invalidates every stored entry on its next read; there is no other
// migration path for cached content.
const CurrentVersion = 2

const (
	DefaultPrefix = "ux_assessment_cache"
	DefaultTTL    = 24 * time.Hour
)

// Entry is the persisted envelope. Timestamps are Unix milliseconds.
type Entry[T any] struct {
	Data      T     `json:"data"`
	CachedAt  int64 `json:"cachedAt"`
	ExpiresAt int64 `json:"expiresAt"`
	Version   int   `json:"version"`
}

// Cache is a versioned, TTL-bound cache of generated section content.
// It never returns storage errors: every failure is logged and degrades to
// a miss.
type Cache struct {
	store   domain.KeyValueStore
	prefix  string
	ttl     time.Duration
	version int
	now     func() time.Time
	logger  *zap.Logger
}

type Option func(*Cache)

func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock allows deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.logger = logger.OrNop(l) }
}

// WithVersion overrides CurrentVersion. Only tests use it, to simulate a
// deploy that bumped the constant.
func WithVersion(v int) Option {
	return func(c *Cache) { c.version = v }
}

func New(store domain.KeyValueStore, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		prefix:  DefaultPrefix,
		ttl:     DefaultTTL,
		version: CurrentVersion,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScoreBucket rounds a score to the nearest multiple of 5 so near-identical
// runs share entries.
func ScoreBucket(totalScore int) int {
	return int(math.Round(float64(totalScore)/5)) * 5
}

// Key derives the entry key for a stage, score and section.
func (c *Cache) Key(stage domain.Stage, totalScore int, section domain.Section) string {
	return fmt.Sprintf("%s_%s_%d_%s", c.prefix, stage, ScoreBucket(totalScore), section)
}

// Set stores data under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, data any) {
	c.SetWithTTL(ctx, key, data, c.ttl)
}

// SetWithTTL stores data under key. Failures are logged, never returned.
func (c *Cache) SetWithTTL(ctx context.Context, key string, data any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.now()
	raw, err := json.Marshal(Entry[any]{
		Data:      data,
		CachedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
		Version:   c.version,
	})
	if err != nil {
		c.logger.Warn("cache entry not serializable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, string(raw)); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Get decodes the payload stored under key into dst. It reports a miss for
// absent, unreadable, version-mismatched or expired entries, deleting the
// latter three.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	entry, valid := c.parse(raw)
	if !valid {
		c.evict(ctx, key)
		return false
	}
	if err := json.Unmarshal(entry.Data, dst); err != nil {
		c.logger.Debug("cache payload does not match type", zap.String("key", key), zap.Error(err))
		c.evict(ctx, key)
		return false
	}
	return true
}

// Lookup is the typed form of Get.
func Lookup[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var v T
	if !c.Get(ctx, key, &v) {
		var zero T
		return zero, false
	}
	return v, true
}

// Delete removes a single entry.
func (c *Cache) Delete(ctx context.Context, key string) {
	c.evict(ctx, key)
}

// ClearExpired removes every entry under the prefix that is expired,
// unreadable or from another version. It returns the number removed.
func (c *Cache) ClearExpired(ctx context.Context) int {
	keys, err := c.store.Keys(ctx, c.prefix+"_")
	if err != nil {
		c.logger.Warn("cache sweep failed", zap.Error(err))
		return 0
	}
	removed := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, c.prefix+"_") {
			continue
		}
		raw, ok, err := c.store.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		if _, valid := c.parse(raw); valid {
			continue
		}
		if c.evict(ctx, key) {
			removed++
		}
	}
	if removed > 0 {
		c.logger.Info("cache sweep removed stale entries", zap.Int("removed", removed))
	}
	return removed
}

func (c *Cache) parse(raw string) (Entry[json.RawMessage], bool) {
	var entry Entry[json.RawMessage]
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return entry, false
	}
	if entry.Version != c.version {
		return entry, false
	}
	if c.now().UnixMilli() > entry.ExpiresAt {
		return entry, false
	}
	return entry, true
}

func (c *Cache) evict(ctx context.Context, key string) bool {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
