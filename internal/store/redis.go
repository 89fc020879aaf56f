package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis-backed KV.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	Namespace string // prepended to every key; default "bodypath:"
}

// Redis is a KV backed by plain Redis strings.
type Redis struct {
	rdb       *goredis.Client
	namespace string
}

// OpenRedis connects to Redis and verifies the connection with a ping.
func OpenRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	ns := opts.Namespace
	if ns == "" {
		ns = "bodypath:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{rdb: rdb, namespace: ns}, nil
}

// Client returns the underlying go-redis client.
func (r *Redis) Client() *goredis.Client {
	return r.rdb
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, r.namespace+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.namespace+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.namespace+key).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.rdb.Scan(ctx, 0, escapeGlob(r.namespace+prefix)+"*", 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.namespace))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan keys %q: %w", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats as glob syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
