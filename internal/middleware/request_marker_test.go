package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMarker(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Use(RequestMarker(rdb))
	app.Get("/assets", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(500) })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for _, path := range []string{"/assets", "/assets", "/boom", "/health"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	total, err := mr.Get(KeyReqTotal)
	require.NoError(t, err)
	assert.Equal(t, "3", total) // /health excluded

	errs, err := mr.Get(KeyReqErrors)
	require.NoError(t, err)
	assert.Equal(t, "1", errs)

	count, err := mr.Get(KeyResCount)
	require.NoError(t, err)
	assert.Equal(t, "3", count)
}
