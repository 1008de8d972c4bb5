package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cryptomaster/models"

	"github.com/redis/go-redis/v9"
)

// Redis keeps entries as JSON documents. Entries expire after ttl, which
// should be longer than the stale window so stale data can still be served.
type Redis struct {
	client    *redis.Client
	staleTime time.Duration
	ttl       time.Duration
	now       func() time.Time
}

type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	StaleTime time.Duration
	TTL       time.Duration
}

func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}

	return newRedis(client, opts.StaleTime, opts.TTL), nil
}

func newRedis(client *redis.Client, staleTime, ttl time.Duration) *Redis {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	if ttl < staleTime {
		ttl = 24 * time.Hour
	}
	return &Redis{client: client, staleTime: staleTime, ttl: ttl, now: time.Now}
}

func redisKey(key string) string {
	return "analysis:" + key
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	data, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return e, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value *models.AnalysisResult, at time.Time) error {
	data, err := json.Marshal(Entry{Result: value, UpdatedAt: at})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKey(key), data, r.ttl).Err()
}

func (r *Redis) IsStale(ctx context.Context, key string) (bool, error) {
	e, ok, err := r.Get(ctx, key)
	if err != nil {
		return true, err
	}
	if !ok {
		return true, nil
	}
	return isStale(e, r.now(), r.staleTime), nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
