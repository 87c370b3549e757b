package rdx

import (
	"log"
	"os"
	"time"

	"seaops/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

func RdxSetTTL(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

// DelMatching removes every key matching the pattern. Used for cache
// invalidation of per-date summaries.
func DelMatching(pattern string) {
	keys, err := Conn.Keys(globals.Ctx, pattern).Result()
	if err != nil {
		log.Println("Redis scan error:", err)
		return
	}
	if len(keys) > 0 {
		Conn.Del(globals.Ctx, keys...)
	}
}
