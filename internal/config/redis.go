package config

import (
	"os"
	"strconv"
)

const (
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
	redisDBEnv       = "REDIS_DB"
	redisTLSEnv      = "REDIS_TLS"

	defaultRedisDB = 0
)

// RedisConfig configures the baseline store. An empty Addr is not an
// error: the baseline falls back to process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

func LoadRedisConfig() (*RedisConfig, error) {
	db := defaultRedisDB
	if raw := os.Getenv(redisDBEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ErrInvalidRedisDB
		}
		db = parsed
	}

	return &RedisConfig{
		Addr:     os.Getenv(redisAddrEnv),
		Password: os.Getenv(redisPasswordEnv),
		DB:       db,
		TLS:      os.Getenv(redisTLSEnv) == "true",
	}, nil
}

// Enabled reports whether a Redis-backed baseline is configured.
func (c *RedisConfig) Enabled() bool {
	return c != nil && c.Addr != ""
}
