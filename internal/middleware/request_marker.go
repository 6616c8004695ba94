package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys for the request counters surfaced on /health.
const (
	KeyReqTotal  = "stats:req_total"
	KeyReqErrors = "stats:req_errors"
	KeyResTime   = "stats:res_time_total"
	KeyResCount  = "stats:res_count"
)

// RequestMarker records request counters in Redis (skips /, /health*, favicon).
// Counter failures never fail the request.
func RequestMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		ctx := context.Background()
		pipe := rdb.Pipeline()
		pipe.Incr(ctx, KeyReqTotal)
		pipe.IncrBy(ctx, KeyResTime, time.Since(start).Milliseconds())
		pipe.Incr(ctx, KeyResCount)
		if err != nil || c.Response().StatusCode() >= 500 {
			pipe.Incr(ctx, KeyReqErrors)
		}
		_, _ = pipe.Exec(ctx)

		return err
	}
}
