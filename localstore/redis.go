package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisPrefix = "plantshop:localstorage"

// RedisStore keeps local storage in Redis under
// plantshop:localstorage:<session>:<key>. Values never expire; sessions are
// cleaned up explicitly through DropSession.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ Store = (*RedisStore)(nil)

func (r *RedisStore) Namespace(sessionID string) KV {
	return &redisKV{client: r.client, sessionID: sessionID}
}

func (r *RedisStore) DropSession(ctx context.Context, sessionID string) error {
	pattern := fmt.Sprintf("%s:%s:*", redisPrefix, sessionID)
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

type redisKV struct {
	client    *redis.Client
	sessionID string
}

func (kv *redisKV) key(key string) string {
	return fmt.Sprintf("%s:%s:%s", redisPrefix, kv.sessionID, key)
}

func (kv *redisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := kv.client.Get(ctx, kv.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoValue
		}
		return "", err
	}
	return value, nil
}

func (kv *redisKV) Set(ctx context.Context, key, value string) error {
	return kv.client.Set(ctx, kv.key(key), value, 0).Err()
}

func (kv *redisKV) Remove(ctx context.Context, key string) error {
	return kv.client.Del(ctx, kv.key(key)).Err()
}
