package config

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisDisabled is returned by NewRedisClient when REDIS_DISABLED is set.
var ErrRedisDisabled = errors.New("redis disabled")

// RedisConfig holds the connection settings for the Redis instance backing
// the login rate limiter and the session denylist.
type RedisConfig struct {
	Disabled    bool
	Addr        string
	Password    string
	DB          int
	TLS         bool
	DialTimeout time.Duration
}

// LoadRedisConfig reads REDIS_* variables.  REDIS_HOST and REDIS_PORT take
// precedence over REDIS_ADDR; the default address is localhost:6379.
func LoadRedisConfig() RedisConfig {
	addr := envStr("REDIS_ADDR", "localhost:6379")
	if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}
	db := envInt("REDIS_DB", 0)
	if db < 0 {
		db = 0
	}
	return RedisConfig{
		Disabled:    envBool("REDIS_DISABLED", false),
		Addr:        addr,
		Password:    envStr("REDIS_PASSWORD", ""),
		DB:          db,
		TLS:         envBool("REDIS_TLS", false),
		DialTimeout: envDur("REDIS_DIAL_TIMEOUT", 2*time.Second),
	}
}

// Options converts the configuration into go-redis client options.
func (r RedisConfig) Options() *redis.Options {
	opts := &redis.Options{
		Addr:        r.Addr,
		Password:    r.Password,
		DB:          r.DB,
		DialTimeout: r.DialTimeout,
	}
	if r.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

// NewRedisClient connects to Redis and pings it.  Callers treat any error
// as "run without Redis".
func NewRedisClient(ctx context.Context, r RedisConfig) (*redis.Client, error) {
	if r.Disabled {
		return nil, ErrRedisDisabled
	}
	client := redis.NewClient(r.Options())
	ctx, cancel := context.WithTimeout(ctx, r.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", r.Addr, err)
	}
	return client, nil
}
