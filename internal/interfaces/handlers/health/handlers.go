package health

import (
	"context"

	"galangan-backend/internal/middleware"
	"galangan-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger abstracts the database ping for testability.
type DBPinger interface {
	Ping() error
}

type Handlers struct {
	DB  DBPinger
	Rdb *redis.Client
}

// JSON GET /health — reports database and Redis reachability.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	dbStatus := "ok"
	if h.DB == nil {
		dbStatus = "not configured"
	} else if err := h.DB.Ping(); err != nil {
		dbStatus = err.Error()
	}

	redisStatus := "ok"
	if h.Rdb == nil {
		redisStatus = "not configured"
	} else if err := h.Rdb.Ping(context.Background()).Err(); err != nil {
		redisStatus = err.Error()
	}

	body := fiber.Map{
		"database": dbStatus,
		"redis":    redisStatus,
	}
	if h.Rdb != nil && redisStatus == "ok" {
		body["requests"] = requestStats(h.Rdb)
	}
	return response.Success(c, "Health", body, nil)
}

// requestStats reads the counters maintained by middleware.RequestMarker.
func requestStats(rdb *redis.Client) fiber.Map {
	ctx := context.Background()
	total, _ := rdb.Get(ctx, middleware.KeyReqTotal).Int64()
	errs, _ := rdb.Get(ctx, middleware.KeyReqErrors).Int64()
	resTime, _ := rdb.Get(ctx, middleware.KeyResTime).Int64()
	resCount, _ := rdb.Get(ctx, middleware.KeyResCount).Int64()

	var avgMs int64
	if resCount > 0 {
		avgMs = resTime / resCount
	}
	return fiber.Map{
		"total":           total,
		"errors":          errs,
		"avg_response_ms": avgMs,
	}
}
