package loader

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKVStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedisKVStore(client)
	ctx := context.Background()

	_, err := kv.Get(ctx, "healthdash:dataset:2024")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, kv.Set(ctx, "healthdash:dataset:2024", `[{"employee_id":"E001"}]`, time.Minute))
	val, err := kv.Get(ctx, "healthdash:dataset:2024")
	require.NoError(t, err)
	assert.Equal(t, `[{"employee_id":"E001"}]`, val)

	require.NoError(t, kv.Del(ctx, "healthdash:dataset:2024"))
	_, err = kv.Get(ctx, "healthdash:dataset:2024")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisKVStore_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedisKVStore(client)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", 5*time.Second))
	mr.FastForward(6 * time.Second)

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
