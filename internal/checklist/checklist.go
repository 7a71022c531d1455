// Package checklist keeps the ticked state of tomorrow's pack list per date.
package checklist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"nursery-prep-backend/internal/calendar"
)

// DefaultTTL is how long a date's checklist survives without writes.
const DefaultTTL = 48 * time.Hour

// Store persists checked item ids per date. Ids are the need ids shown to
// the caregiver, including the synthetic group and take-home ids.
type Store interface {
	Get(ctx context.Context, date calendar.Date) (map[string]bool, error)
	Set(ctx context.Context, date calendar.Date, checked map[string]bool) error
}

func key(date calendar.Date) string { return fmt.Sprintf("checklist:%s", date) }

// compact drops unchecked entries so only ticked ids are stored.
func compact(checked map[string]bool) map[string]bool {
	out := make(map[string]bool, len(checked))
	for id, v := range checked {
		if v {
			out[id] = true
		}
	}
	return out
}

// RedisStore keeps checklists in Redis as JSON with a TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed checklist store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Get returns the checklist of a date, empty when none was saved.
func (s *RedisStore) Get(ctx context.Context, date calendar.Date) (map[string]bool, error) {
	b, err := s.rdb.Get(ctx, key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist %s: %w", date, err)
	}
	checked := map[string]bool{}
	if err := json.Unmarshal(b, &checked); err != nil {
		return nil, fmt.Errorf("failed to decode checklist %s: %w", date, err)
	}
	return checked, nil
}

// Set replaces the checklist of a date.
func (s *RedisStore) Set(ctx context.Context, date calendar.Date, checked map[string]bool) error {
	b, err := json.Marshal(compact(checked))
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key(date), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save checklist %s: %w", date, err)
	}
	return nil
}

// MemoryStore keeps checklists in process memory. It is used when no Redis
// address is configured.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates an in-memory checklist store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{cache: cache.New(ttl, ttl/4)}
}

// Get returns a copy of the checklist of a date.
func (s *MemoryStore) Get(_ context.Context, date calendar.Date) (map[string]bool, error) {
	out := map[string]bool{}
	if v, found := s.cache.Get(key(date)); found {
		for id := range v.(map[string]bool) {
			out[id] = true
		}
	}
	return out, nil
}

// Set replaces the checklist of a date.
func (s *MemoryStore) Set(_ context.Context, date calendar.Date, checked map[string]bool) error {
	s.cache.SetDefault(key(date), compact(checked))
	return nil
}
