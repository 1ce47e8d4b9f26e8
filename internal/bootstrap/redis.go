package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnreachable means the client was built but the ping failed.
var ErrStoreUnreachable = errors.New("redis unreachable")

type RedisOptions struct {
	URL    string
	Token  string
	DialTO time.Duration
	PingTO time.Duration
}

// OpenRedis parses the URL, applies the token as password when set, and
// pings before returning the client.
func OpenRedis(ctx context.Context, opt RedisOptions) (*redis.Client, error) {
	client, err := newRedisClient(opt)
	if err != nil {
		return nil, err
	}
	if err := pingRedis(ctx, client, opt.PingTO); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func newRedisClient(opt RedisOptions) (*redis.Client, error) {
	if opt.URL == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}
	if opt.DialTO == 0 {
		opt.DialTO = 5 * time.Second
	}

	ropts, err := redis.ParseURL(opt.URL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	if opt.Token != "" {
		ropts.Password = opt.Token
	}
	ropts.DialTimeout = opt.DialTO

	return redis.NewClient(ropts), nil
}

func pingRedis(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

// redisPinger adapts *redis.Client to the health check.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
