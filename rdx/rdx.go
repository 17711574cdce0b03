package rdx

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

const (
	MachinesKey = "machines:all"
	EarningsKey = "bookings:earnings"
)

// GetJSON loads a cached value into dest; returns false on miss or decode error.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	val, err := Conn.Get(ctx, key).Result()
	if err != nil || val == "" {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// SetJSON caches a value with a TTL; failures are ignored, the store is the
// source of truth.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = Conn.Set(ctx, key, data, ttl).Err()
}

func Invalidate(ctx context.Context, keys ...string) {
	_ = Conn.Del(ctx, keys...).Err()
}
