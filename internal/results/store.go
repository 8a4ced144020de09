package results

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/logger"
)

const (
	DefaultPrefix   = "ux_assessment_result"
	DefaultIndexKey = "ux_assessment_results_index"
	// MaxStored bounds the index; older results are evicted.
	MaxStored = 10
)

// Store persists completed assessments so they can be restored by ID.
// Records live under "<prefix>_<id>"; a JSON array of IDs, newest first,
// lives under the index key.
type Store struct {
	kv       domain.KeyValueStore
	prefix   string
	indexKey string
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*Store)

func WithPrefix(prefix, indexKey string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
		if indexKey != "" {
			s.indexKey = indexKey
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = logger.OrNop(l) }
}

func NewStore(kv domain.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		prefix:   DefaultPrefix,
		indexKey: DefaultIndexKey,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) recordKey(id string) string {
	return s.prefix + "_" + id
}

// Exists reports whether a record is stored under id. Callers use it to
// regenerate an ID on collision.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	_, ok, err := s.kv.Get(ctx, s.recordKey(id))
	return ok, err
}

// Save writes the record and puts id at the head of the index, evicting
// the oldest records beyond MaxStored. An unreadable index aborts the save
// before anything is written.
func (s *Store) Save(ctx context.Context, id string, answers domain.Answers, res domain.QuizResults) (domain.StoredResult, error) {
	record := domain.StoredResult{
		ID:        id,
		Answers:   answers,
		Results:   res,
		CreatedAt: s.now(),
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return record, fmt.Errorf("marshal result %s: %w", id, err)
	}

	index, err := s.readIndex(ctx)
	if err != nil {
		return record, err
	}
	if err := s.kv.Set(ctx, s.recordKey(id), string(raw)); err != nil {
		return record, fmt.Errorf("store result %s: %w", id, err)
	}

	if !contains(index, id) {
		index = append([]string{id}, index...)
	}
	for len(index) > MaxStored {
		evicted := index[len(index)-1]
		index = index[:len(index)-1]
		if err := s.kv.Delete(ctx, s.recordKey(evicted)); err != nil {
			s.logger.Warn("evict stored result failed", zap.String("id", evicted), zap.Error(err))
		}
	}
	if err := s.writeIndex(ctx, index); err != nil {
		return record, err
	}
	return record, nil
}

// Load returns the record for id. Missing, unreadable and incomplete
// records are all reported as absent.
func (s *Store) Load(ctx context.Context, id string) (domain.StoredResult, bool) {
	raw, ok, err := s.kv.Get(ctx, s.recordKey(id))
	if err != nil {
		s.logger.Warn("load stored result failed", zap.String("id", id), zap.Error(err))
		return domain.StoredResult{}, false
	}
	if !ok {
		return domain.StoredResult{}, false
	}

	var partial struct {
		ID        string              `json:"id"`
		Answers   domain.Answers      `json:"answers"`
		Results   *domain.QuizResults `json:"results"`
		CreatedAt time.Time           `json:"createdAt"`
	}
	if err := json.Unmarshal([]byte(raw), &partial); err != nil {
		s.logger.Debug("stored result unreadable", zap.String("id", id), zap.Error(err))
		return domain.StoredResult{}, false
	}
	if partial.ID == "" || partial.Answers == nil || partial.Results == nil {
		return domain.StoredResult{}, false
	}
	return domain.StoredResult{
		ID:        partial.ID,
		Answers:   partial.Answers,
		Results:   *partial.Results,
		CreatedAt: partial.CreatedAt,
	}, true
}

// Delete removes the record and its index slot. Unknown IDs are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	index, err := s.readIndex(ctx)
	if err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, s.recordKey(id)); err != nil {
		return fmt.Errorf("delete result %s: %w", id, err)
	}
	if !contains(index, id) {
		return nil
	}
	kept := index[:0]
	for _, existing := range index {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return s.writeIndex(ctx, kept)
}

// MostRecent returns the newest record that still loads.
func (s *Store) MostRecent(ctx context.Context) (domain.StoredResult, bool) {
	index, err := s.readIndex(ctx)
	if err != nil {
		s.logger.Warn("read result index failed", zap.Error(err))
		return domain.StoredResult{}, false
	}
	for _, id := range index {
		if record, ok := s.Load(ctx, id); ok {
			return record, true
		}
	}
	return domain.StoredResult{}, false
}

// List returns stored IDs, newest first.
func (s *Store) List(ctx context.Context) []string {
	index, err := s.readIndex(ctx)
	if err != nil {
		s.logger.Warn("read result index failed", zap.Error(err))
		return []string{}
	}
	return index
}

// readIndex fails only when the store does. A corrupt index is rebuilt from
// the records themselves so none of them escape eviction.
func (s *Store) readIndex(ctx context.Context) ([]string, error) {
	raw, ok, err := s.kv.Get(ctx, s.indexKey)
	if err != nil {
		return nil, fmt.Errorf("read result index: %w", err)
	}
	if !ok {
		return []string{}, nil
	}
	var index []string
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		s.logger.Warn("result index unreadable, rebuilding", zap.Error(err))
		return s.rebuildIndex(ctx)
	}
	return index, nil
}

func (s *Store) rebuildIndex(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, s.prefix+"_")
	if err != nil {
		return nil, fmt.Errorf("list stored results: %w", err)
	}
	records := make([]domain.StoredResult, 0, len(keys))
	for _, key := range keys {
		if key == s.indexKey {
			continue
		}
		id := strings.TrimPrefix(key, s.prefix+"_")
		record, ok := s.Load(ctx, id)
		if !ok || record.ID != id {
			if err := s.kv.Delete(ctx, key); err != nil {
				s.logger.Warn("drop unreadable result failed", zap.String("key", key), zap.Error(err))
			}
			continue
		}
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	index := make([]string, len(records))
	for i, r := range records {
		index[i] = r.ID
	}
	return index, nil
}

func (s *Store) writeIndex(ctx context.Context, index []string) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("marshal result index: %w", err)
	}
	if err := s.kv.Set(ctx, s.indexKey, string(raw)); err != nil {
		return fmt.Errorf("store result index: %w", err)
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
