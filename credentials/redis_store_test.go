package credentials_test

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-storefront-client/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*mr.Miniredis, *redis.Client) {
	t.Helper()

	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return m, client
}

func TestRedisStore_PersistReadClear(t *testing.T) {
	ctx := context.Background()
	m, client := newRedis(t)
	store := credentials.NewRedisStore(client, "tab-1", credentials.DefaultOptions())

	require.NoError(t, store.Persist(ctx, credentials.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	access, ok, err := store.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a1", access)

	require.Equal(t, 24*time.Hour, m.TTL("credentials:tab-1:ecommerce.token"))
	require.Equal(t, 7*24*time.Hour, m.TTL("credentials:tab-1:ecommerce.refreshToken"))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	_, ok, err = store.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m, client := newRedis(t)
	store := credentials.NewRedisStore(client, "", credentials.DefaultOptions())

	require.NoError(t, store.Persist(ctx, credentials.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	m.FastForward(25 * time.Hour)

	_, ok, err := store.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	refresh, ok, err := store.ReadRefresh(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "r1", refresh)
}

func TestRedisStore_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	first := credentials.NewRedisStore(client, "tab-1", credentials.DefaultOptions())
	second := credentials.NewRedisStore(client, "tab-2", credentials.DefaultOptions())

	require.NoError(t, first.Persist(ctx, credentials.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	_, ok, err := second.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStore_SurvivesNewStoreInstance(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)

	require.NoError(t, credentials.NewRedisStore(client, "tab-1", credentials.DefaultOptions()).
		Persist(ctx, credentials.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	access, ok, err := credentials.NewRedisStore(client, "tab-1", credentials.DefaultOptions()).Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a1", access)
}

func TestRedisStore_ReadError(t *testing.T) {
	m, client := newRedis(t)
	store := credentials.NewRedisStore(client, "tab-1", credentials.DefaultOptions())
	m.Close()

	_, ok, err := store.Read(context.Background())
	require.Error(t, err)
	require.False(t, ok)
}
