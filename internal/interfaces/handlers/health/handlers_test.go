package health

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping() error { return f.err }

func healthData(t *testing.T, h *Handlers) map[string]interface{} {
	app := fiber.New()
	app.Get("/health", h.JSON)
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed["data"].(map[string]interface{})
}

func TestHealth_NotConfigured(t *testing.T) {
	data := healthData(t, &Handlers{})
	assert.Equal(t, "not configured", data["database"])
	assert.Equal(t, "not configured", data["redis"])
}

func TestHealth_DBStates(t *testing.T) {
	data := healthData(t, &Handlers{DB: fakePinger{}})
	assert.Equal(t, "ok", data["database"])

	data = healthData(t, &Handlers{DB: fakePinger{err: errors.New("connection refused")}})
	assert.Equal(t, "connection refused", data["database"])
}
