package config

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
)

var (
	// Shared dependencies used across the application. SecretKey and
	// RedisClient are set once during startup and read-only afterwards.
	// The default key matches the original dev fallback; main warns
	// loudly when it is left in place.
	SecretKey   = []byte("devsecretkey")
	Validate    = validator.New()
	Ctx         = context.Background()
	RedisClient *redis.Client
)
