package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps each cookie as a Redis key with the cookie's TTL.
// Keys are "credentials:<scope>:<name>" so several browsing contexts can share one server.
// Unlike CookieStore it survives a process restart.
type RedisStore struct {
	client redis.Cmdable
	opts   Options
	prefix string
}

func NewRedisStore(client redis.Cmdable, scope string, opts Options) *RedisStore {
	if scope == "" {
		scope = "default"
	}
	return &RedisStore{
		client: client,
		opts:   opts.normalize(),
		prefix: "credentials:" + scope + ":",
	}
}

func (r *RedisStore) key(name string) string {
	return r.prefix + name
}

func (r *RedisStore) Persist(ctx context.Context, pair Pair) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(r.opts.AccessTokenName), pair.AccessToken, r.opts.AccessTokenTTL)
		pipe.Set(ctx, r.key(r.opts.RefreshTokenName), pair.RefreshToken, r.opts.RefreshTokenTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("[RedisStore Persist] %w", err)
	}
	log.Debug().Str("prefix", r.prefix).Msg("credentials persisted")
	return nil
}

func (r *RedisStore) Read(ctx context.Context) (string, bool, error) {
	return r.get(ctx, r.opts.AccessTokenName)
}

func (r *RedisStore) ReadRefresh(ctx context.Context) (string, bool, error) {
	return r.get(ctx, r.opts.RefreshTokenName)
}

func (r *RedisStore) get(ctx context.Context, name string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("[RedisStore Read] %s: %w", name, err)
	}
	return v, true, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(r.opts.AccessTokenName), r.key(r.opts.RefreshTokenName)).Err(); err != nil {
		return fmt.Errorf("[RedisStore Clear] %w", err)
	}
	log.Debug().Str("prefix", r.prefix).Msg("credentials cleared")
	return nil
}
