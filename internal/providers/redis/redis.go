package redis

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const monitorInterval = 5 * time.Second

// RedisProvider owns the Redis client used for the key-value store and the
// stats cache. A background monitor logs connection loss and recovery.
type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.SugaredLogger
	ttl    time.Duration

	connected atomic.Bool
	stop      context.CancelFunc
	done      sync.WaitGroup
}

// NewRedisProvider accepts either a redis:// URL or a bare host:port. ttl is
// the expiry applied by SetWithDefaultTTL when the caller passes none.
func NewRedisProvider(redisURL string, logger *zap.Logger, ttl time.Duration) *RedisProvider {
	client := redis.NewClient(clientOptions(redisURL))

	provider := &RedisProvider{
		Client: client,
		URL:    redisURL,
		logger: logger.Named("redis").Sugar(),
		ttl:    ttl,
	}
	client.AddHook(&commandLogger{logger: provider.logger})

	if err := client.Ping(context.Background()).Err(); err != nil {
		provider.logger.Errorw("Redis connection failed at startup", "url", redisURL, "error", err)
	} else {
		provider.connected.Store(true)
		provider.logger.Infow("Redis connected", "url", redisURL, "db", client.Options().DB, "default_ttl", ttl.String())
	}

	ctx, stop := context.WithCancel(context.Background())
	provider.stop = stop
	provider.done.Add(1)
	go provider.monitor(ctx, monitorInterval)

	return provider
}

func clientOptions(redisURL string) *redis.Options {
	opts := &redis.Options{Addr: redisURL}
	// ParseURL reads "redis:6379" as scheme "redis" with no host, so bare
	// host:port values never go through it.
	if strings.Contains(redisURL, "://") {
		if parsed, err := redis.ParseURL(redisURL); err == nil {
			opts = parsed
		}
	}
	opts.MaxRetries = 3
	opts.MinRetryBackoff = 100 * time.Millisecond
	opts.MaxRetryBackoff = 500 * time.Millisecond
	return opts
}

// Connected reports the state seen by the last startup or monitor ping.
func (r *RedisProvider) Connected() bool {
	return r.connected.Load()
}

// Close stops the monitor and closes the client.
func (r *RedisProvider) Close() error {
	r.stop()
	r.done.Wait()
	return r.Client.Close()
}

func (r *RedisProvider) SetWithDefaultTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.Client.Set(ctx, key, value, ttl)
}

func (r *RedisProvider) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.Client.Get(ctx, key)
}

func (r *RedisProvider) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.Client.Del(ctx, keys...)
}

func (r *RedisProvider) Scan(ctx context.Context, cursor uint64, pattern string, count int64) *redis.ScanCmd {
	return r.Client.Scan(ctx, cursor, pattern, count)
}

func (r *RedisProvider) monitor(ctx context.Context, every time.Duration) {
	defer r.done.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.observe(r.Client.Ping(ctx).Err())
		}
	}
}

func (r *RedisProvider) observe(err error) {
	up := err == nil
	if r.connected.Swap(up) == up {
		return
	}
	if up {
		r.logger.Infow("Redis reconnected", "url", r.URL)
	} else {
		r.logger.Errorw("Redis disconnected", "url", r.URL, "error", err)
	}
}
