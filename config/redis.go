package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// DashboardCacheKey holds the cached dashboard counters. Mutating handlers
// call InvalidateDashboardStats after every contribution/association write.
const DashboardCacheKey = "dashboard:stats"

func ConnectRedis() {
	redisAddr := App.Redis.Addr
	if redisAddr == "" {
		redisAddr = os.Getenv("REDIS_ADDR")
	}
	if redisAddr == "" {
		slog.Warn("REDIS_ADDR is not set, caching is disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		RDB = nil
		return
	}

	slog.Info("connected to Redis")
}

func InvalidateDashboardStats() {
	if RDB == nil {
		return
	}
	if err := RDB.Del(Ctx, DashboardCacheKey).Err(); err != nil {
		slog.Warn("failed to invalidate dashboard cache", "error", err)
	}
}
