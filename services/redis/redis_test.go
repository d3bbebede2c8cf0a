package redis

import (
	"context"
	"testing"
	"time"

	redis_models "Roomio/models/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { CloseRedis(rc) })
	return rc, mr
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rc, err := InitRedis("redis://" + mr.Addr())
	require.NoError(t, err)
	defer CloseRedis(rc)

	rc, err = InitRedis(mr.Addr())
	require.NoError(t, err)
	defer CloseRedis(rc)

	addr := mr.Addr()
	mr.Close()
	_, err = InitRedis(addr)
	assert.Error(t, err)
}

func TestPresence(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	p, err := rc.GetPresence(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, redis_models.StatusOffline, p.Status)

	require.NoError(t, rc.SetOnline(ctx, "u1", "sock-a"))
	p, err = rc.GetPresence(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, redis_models.StatusOnline, p.Status)
	assert.Equal(t, "sock-a", p.SocketID)

	t.Run("offline after the last socket whatever its id", func(t *testing.T) {
		// sock-b refreshed the key last, sock-a closes last
		require.NoError(t, rc.SetOnline(ctx, "u1", "sock-b"))
		require.NoError(t, rc.SetOffline(ctx, "u1"))
		p, err := rc.GetPresence(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, redis_models.StatusOffline, p.Status)
	})

	t.Run("expires", func(t *testing.T) {
		require.NoError(t, rc.SetOnline(ctx, "u2", "sock"))
		mr.FastForward(PresenceTTL + time.Second)
		p, err := rc.GetPresence(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, redis_models.StatusOffline, p.Status)
	})
}

func TestTyping(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, rc.SetTyping(ctx, "chat1", "bob", true))
	require.NoError(t, rc.SetTyping(ctx, "chat1", "alice", true))
	require.NoError(t, rc.SetTyping(ctx, "chat2", "carol", true))

	users, err := rc.TypingUsers(ctx, "chat1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)

	require.NoError(t, rc.SetTyping(ctx, "chat1", "bob", false))
	users, err = rc.TypingUsers(ctx, "chat1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)

	mr.FastForward(TypingTTL + time.Second)
	users, err = rc.TypingUsers(ctx, "chat1")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAllow(t *testing.T) {
	rc, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := rc.Allow(ctx, "user:1", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i+1)
	}
	ok, err := rc.Allow(ctx, "user:1", 3, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = rc.Allow(ctx, "user:2", 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCandidateCache(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	_, ok, err := rc.GetCachedCandidates(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.CacheCandidates(ctx, "u1", []string{"b", "a"}))
	ids, ok, err := rc.GetCachedCandidates(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, ids)

	require.NoError(t, rc.InvalidateCandidates(ctx, "u1"))
	_, ok, err = rc.GetCachedCandidates(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.CacheCandidates(ctx, "u1", nil))
	mr.FastForward(CandidateCacheTTL + time.Second)
	_, ok, err = rc.GetCachedCandidates(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCleanupKeys(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	mr.Set("a", "1")
	mr.Set("b", "2")
	require.NoError(t, rc.CleanupKeys(ctx, []string{"a", "b", "missing"}))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}
