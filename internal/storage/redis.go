package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 3 * time.Second

// RedisKV keeps every key under a fixed prefix so several installations can
// share one Redis database.
type RedisKV struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisKV(options RedisOptions) *RedisKV {
	client := redis.NewClient(&redis.Options{
		Addr:     options.Addr,
		Password: options.Password,
		DB:       options.DB,
	})
	return NewRedisKVWithClient(client, options.Prefix)
}

func NewRedisKVWithClient(client redis.UniversalClient, prefix string) *RedisKV {
	return &RedisKV{
		client:  client,
		prefix:  prefix,
		timeout: defaultRedisTimeout,
	}
}

func (store *RedisKV) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), store.timeout)
	defer cancel()
	return store.client.Ping(ctx).Err()
}

func (store *RedisKV) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), store.timeout)
	defer cancel()

	value, err := store.client.Get(ctx, store.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (store *RedisKV) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), store.timeout)
	defer cancel()
	return store.client.Set(ctx, store.prefix+key, value, 0).Err()
}

func (store *RedisKV) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), store.timeout)
	defer cancel()
	return store.client.Del(ctx, store.prefix+key).Err()
}

func (store *RedisKV) Close() error {
	return store.client.Close()
}
