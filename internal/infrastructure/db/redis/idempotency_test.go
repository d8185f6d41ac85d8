package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyKey(t *testing.T) {
	assert.Equal(t, "idem:booking:user-1:abc", idempotencyKey("user-1", "abc"))
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	s := NewIdempotencyStore(nil, 0)
	assert.Equal(t, defaultIdempotencyTTL, s.ttl)

	s = NewIdempotencyStore(nil, time.Minute)
	assert.Equal(t, time.Minute, s.ttl)
}

func TestIdempotencyStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	s := NewIdempotencyStore(client, time.Minute)
	_, reserved, err := s.Reserve(context.Background(), "user-1", "abc")
	require.Error(t, err)
	assert.False(t, reserved)
	assert.Contains(t, err.Error(), "idempotency reserve")
}

func newMiniStore(t *testing.T, ttl time.Duration) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, ttl), mr
}

func TestIdempotencyStore_SecondReserveIsInFlight(t *testing.T) {
	s, mr := newMiniStore(t, time.Hour)
	ctx := context.Background()

	id, reserved, err := s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Empty(t, id)

	id, reserved, err = s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Empty(t, id)

	val, err := mr.Get("idem:booking:user-1:abc")
	require.NoError(t, err)
	assert.Equal(t, pendingMarker, val)
	assert.Equal(t, time.Hour, mr.TTL("idem:booking:user-1:abc"))
}

func TestIdempotencyStore_CompleteReplaysBookingID(t *testing.T) {
	s, mr := newMiniStore(t, time.Hour)
	ctx := context.Background()

	_, reserved, err := s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	require.True(t, reserved)

	require.NoError(t, s.Complete(ctx, "user-1", "abc", "booking-42"))

	id, reserved, err := s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, "booking-42", id)
	assert.Equal(t, time.Hour, mr.TTL("idem:booking:user-1:abc"))
}

func TestIdempotencyStore_ReleaseAllowsRetry(t *testing.T) {
	s, mr := newMiniStore(t, time.Hour)
	ctx := context.Background()

	_, reserved, err := s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	require.True(t, reserved)

	require.NoError(t, s.Release(ctx, "user-1", "abc"))
	assert.False(t, mr.Exists("idem:booking:user-1:abc"))

	_, reserved, err = s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestIdempotencyStore_ScopesAreIndependent(t *testing.T) {
	s, _ := newMiniStore(t, time.Hour)
	ctx := context.Background()

	_, reserved, err := s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	require.True(t, reserved)

	_, reserved, err = s.Reserve(ctx, "user-2", "abc")
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestIdempotencyStore_KeyExpires(t *testing.T) {
	s, mr := newMiniStore(t, time.Minute)
	ctx := context.Background()

	_, reserved, err := s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, s.Complete(ctx, "user-1", "abc", "booking-42"))

	mr.FastForward(2 * time.Minute)

	id, reserved, err := s.Reserve(ctx, "user-1", "abc")
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Empty(t, id)
}
