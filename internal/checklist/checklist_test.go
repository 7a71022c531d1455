package checklist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery-prep-backend/internal/calendar"
)

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	date := calendar.MustParse("2025-06-02")

	got, err := s.Get(ctx, date)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Set(ctx, date, map[string]bool{
		"underwear":  true,
		"group:tops": true,
		"towel":      false,
	}))

	got, err = s.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"underwear": true, "group:tops": true}, got)

	other, err := s.Get(ctx, date.AddDays(1))
	require.NoError(t, err)
	assert.Empty(t, other, "checklists are kept per date")

	require.NoError(t, s.Set(ctx, date, map[string]bool{"swimsuit_return": true}))
	got, err = s.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"swimsuit_return": true}, got, "set replaces the previous list")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore(0)
	date := calendar.MustParse("2025-06-02")
	require.NoError(t, s.Set(context.Background(), date, map[string]bool{"towel": true}))

	got, _ := s.Get(context.Background(), date)
	got["pants"] = true

	again, _ := s.Get(context.Background(), date)
	assert.NotContains(t, again, "pants")
}

func TestMemoryStore_Expires(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)
	date := calendar.MustParse("2025-06-02")
	require.NoError(t, s.Set(context.Background(), date, map[string]bool{"towel": true}))

	time.Sleep(50 * time.Millisecond)
	got, err := s.Get(context.Background(), date)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(context.Background()).Err())

	s := NewRedisStore(rdb, time.Minute)
	date := calendar.MustParse("2025-06-02")
	require.NoError(t, rdb.Del(context.Background(), key(date), key(date.AddDays(1))).Err())

	exerciseStore(t, s)

	ttl, err := rdb.TTL(context.Background(), key(date)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
