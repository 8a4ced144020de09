package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/questionbank"
)

const bankKey = "ux_assessment:question_bank"

// CachedBankLoader keeps the question bank in Redis and falls back to the
// wrapped loader on a miss. Concurrent misses share one load.
type CachedBankLoader struct {
	client *redis.Client
	loader questionbank.Loader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCachedBankLoader(client *redis.Client, loader questionbank.Loader, ttl time.Duration) *CachedBankLoader {
	return &CachedBankLoader{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (l *CachedBankLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	if bank, ok := l.cached(ctx); ok {
		return bank, nil
	}

	result, err, _ := l.sf.Do(bankKey, func() (interface{}, error) {
		// Another caller may have filled it meanwhile.
		if bank, ok := l.cached(ctx); ok {
			return bank, nil
		}
		bank, err := l.loader.LoadBank(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(bank); err == nil {
			_ = l.client.Set(ctx, bankKey, raw, l.ttlWithJitter()).Err()
		}
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (l *CachedBankLoader) cached(ctx context.Context) ([]domain.Question, bool) {
	raw, err := l.client.Get(ctx, bankKey).Bytes()
	if err != nil {
		return nil, false
	}
	var bank []domain.Question
	if err := json.Unmarshal(raw, &bank); err != nil || questionbank.Validate(bank) != nil {
		return nil, false
	}
	return bank, true
}

// ttlWithJitter adds up to 10% to the TTL. Only called inside the
// singleflight slot, which serializes access to rnd.
func (l *CachedBankLoader) ttlWithJitter() time.Duration {
	if l.ttl <= 0 {
		return 0
	}
	jitterMax := int64(l.ttl) / 10
	return l.ttl + time.Duration(l.rnd.Int63n(jitterMax+1))
}
