package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisDialTimeout = 5 * time.Second

// NewRedis connects the sweet-detail read cache. The URL form
// (redis://host:port/db) keeps the whole connection in one env var alongside
// DATABASE_URL. Connectivity is verified once at startup; a broken cache
// should fail the boot, not the first customer request.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
