package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

type kvEntry struct {
	bun.BaseModel `bun:"table:kv_entries"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// KVStore implements domain.KeyValueStore on the kv_entries table.
type KVStore struct {
	db  *bun.DB
	now func() time.Time
}

func NewKVStore(db *bun.DB) *KVStore {
	return &KVStore{db: db, now: time.Now}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry kvEntry
	err := s.db.NewSelect().Model(&entry).Where("key = ?", key).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	entry := &kvEntry{Key: key, Value: value, UpdatedAt: s.now().UTC()}
	_, err := s.db.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().Model((*kvEntry)(nil)).Where("key = ?", key).Exec(ctx)
	return err
}

func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.NewSelect().
		Model((*kvEntry)(nil)).
		Column("key").
		Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Scan(ctx, &keys)
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
