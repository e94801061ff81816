package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the opaque key-value persistence the codec reads from and
// writes to. One blob, one fixed key; calls are never interleaved within a
// session (the service serializes them).
type Store interface {
	Save(ctx context.Context, raw []byte) error
	Load(ctx context.Context) ([]byte, bool, error)
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}

// ── Redis store ──────────────────────────────────────────────────────────────

type redisStore struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) Store { return &redisStore{rdb: rdb} }

func (s *redisStore) Save(ctx context.Context, raw []byte) error {
	// No TTL: the blob lives until the day is explicitly reset.
	return s.rdb.Set(ctx, Key, raw, 0).Err()
}

func (s *redisStore) Load(ctx context.Context) ([]byte, bool, error) {
	raw, err := s.rdb.Get(ctx, Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, Key).Err()
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// ── Postgres store ───────────────────────────────────────────────────────────
// For deployments that already run the store database and do not want a
// second service just to hold one blob.

type snapshotRow struct {
	Key       string `gorm:"primaryKey;size:64"`
	Blob      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string { return "snapshots" }

type gormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Save(ctx context.Context, raw []byte) error {
	row := snapshotRow{Key: Key, Blob: raw}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (s *gormStore) Load(ctx context.Context) ([]byte, bool, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).First(&row, "key = ?", Key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Blob, true, nil
}

func (s *gormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Delete(&snapshotRow{}, "key = ?", Key).Error
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ── Memory store ─────────────────────────────────────────────────────────────
// Used by tests and by ephemeral runs (SNAPSHOT_BACKEND=memory).

type memoryStore struct {
	mu  sync.Mutex
	raw []byte
	set bool
}

func NewMemoryStore() Store { return &memoryStore{} }

func (s *memoryStore) Save(_ context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = append([]byte(nil), raw...)
	s.set = true
	return nil
}

func (s *memoryStore) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, false, nil
	}
	return append([]byte(nil), s.raw...), true, nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw, s.set = nil, false
	return nil
}

func (s *memoryStore) Ping(_ context.Context) error { return nil }
