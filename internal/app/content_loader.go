package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"ux-career-assessment/internal/cache"
	"ux-career-assessment/internal/content"
	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/logger"
)

// Sink receives settled sections. Calls are serialized and stop as soon as
// the load's context is cancelled.
type Sink func(domain.SectionContent)

// DefaultTimeouts bound each remote fetch.
func DefaultTimeouts() map[domain.Section]time.Duration {
	return map[domain.Section]time.Duration{
		domain.SectionMeaning:         5 * time.Second,
		domain.SectionSkillAnalysis:   8 * time.Second,
		domain.SectionResources:       8 * time.Second,
		domain.SectionDeepInsights:    8 * time.Second,
		domain.SectionImprovementPlan: 10 * time.Second,
	}
}

// LoaderConfig tunes a ContentLoader. Zero values fall back to defaults.
type LoaderConfig struct {
	Timeouts      map[domain.Section]time.Duration
	KnowledgeBank []domain.Resource
	Logger        *zap.Logger
}

// ContentLoader settles every supplementary section for a result: from the
// cache, from the remote generator, or from the local fallback.
type ContentLoader struct {
	cache     *cache.Cache
	generator content.Generator
	knowledge []domain.Resource
	timeouts  map[domain.Section]time.Duration
	sf        singleflight.Group
	logger    *zap.Logger
}

func NewContentLoader(c *cache.Cache, gen content.Generator, cfg LoaderConfig) *ContentLoader {
	if gen == nil {
		gen = content.Unavailable{}
	}
	timeouts := DefaultTimeouts()
	for section, d := range cfg.Timeouts {
		if d > 0 {
			timeouts[section] = d
		}
	}
	return &ContentLoader{
		cache:     c,
		generator: gen,
		knowledge: cfg.KnowledgeBank,
		timeouts:  timeouts,
		logger:    logger.OrNop(cfg.Logger),
	}
}

// Load fetches the eager sections concurrently, then the improvement plan
// once all of them have settled. Each section is delivered to sink as it
// settles. Cancelling ctx stops delivery; the returned error is ctx.Err().
func (l *ContentLoader) Load(ctx context.Context, res domain.QuizResults, sink Sink) error {
	var mu sync.Mutex
	deliver := func(sc domain.SectionContent) {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		sink(sc)
	}

	var g errgroup.Group
	for _, section := range domain.EagerSections {
		g.Go(func() error {
			deliver(l.fetch(ctx, section, res))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	deliver(l.fetch(ctx, domain.SectionImprovementPlan, res))
	return ctx.Err()
}

// LoadAll settles every section and returns them keyed by section.
func (l *ContentLoader) LoadAll(ctx context.Context, res domain.QuizResults) (map[domain.Section]domain.SectionContent, error) {
	out := make(map[domain.Section]domain.SectionContent, len(domain.Sections))
	err := l.Load(ctx, res, func(sc domain.SectionContent) {
		out[sc.Section] = sc
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Warm settles one section and discards it; a remote success is cached for
// the next load.
func (l *ContentLoader) Warm(ctx context.Context, res domain.QuizResults, section domain.Section) {
	sc := l.fetch(ctx, section, res)
	l.logger.Debug("section warmed", zap.String("section", string(section)), zap.String("source", string(sc.Source)))
}

func (l *ContentLoader) fetch(ctx context.Context, section domain.Section, res domain.QuizResults) domain.SectionContent {
	key := l.cache.Key(res.Stage, res.TotalScore, section)

	if raw, ok := cache.Lookup[json.RawMessage](ctx, l.cache, key); ok {
		data, err := content.Decode(section, raw)
		if err == nil {
			return settled(section, data, domain.SourceCache)
		}
		l.logger.Debug("cached section no longer valid", zap.String("key", key), zap.Error(err))
		l.cache.Delete(ctx, key)
	}

	data, err := l.remote(ctx, key, section, res)
	if err == nil {
		return settled(section, data, domain.SourceRemote)
	}
	if errors.Is(err, domain.ErrRemoteUnavailable) {
		l.logger.Debug("no remote generator, using fallback", zap.String("section", string(section)))
	} else {
		l.logger.Warn("remote section failed, using fallback", zap.String("section", string(section)), zap.Error(err))
	}
	return settled(section, content.Fallback(section, res, l.knowledge), domain.SourceFallback)
}

// remote generates a section under its timeout. Concurrent requests for
// the same cache key share one call, which runs detached from any single
// caller; each caller stops waiting at its own deadline.
func (l *ContentLoader) remote(ctx context.Context, key string, section domain.Section, res domain.QuizResults) (any, error) {
	timeout := l.timeouts[section]
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	flightCtx := context.WithoutCancel(ctx)
	ch := l.sf.DoChan(key, func() (interface{}, error) {
		genCtx, cancel := context.WithTimeout(flightCtx, timeout)
		defer cancel()

		raw, err := l.generator.Generate(genCtx, section, content.RequestFor(section, res))
		if err != nil {
			return nil, err
		}
		data, err := content.Decode(section, raw)
		if err != nil {
			return nil, err
		}
		l.cache.Set(flightCtx, key, data)
		return data, nil
	})

	select {
	case r := <-ch:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func settled(section domain.Section, data any, source domain.ContentSource) domain.SectionContent {
	return domain.SectionContent{
		Section: section,
		Status:  domain.StatusSuccess,
		Data:    data,
		Source:  source,
	}
}
