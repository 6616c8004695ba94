package reports

import (
	reportsvc "galangan-backend/internal/application/reports"
	"galangan-backend/internal/application/assets"
	"galangan-backend/internal/middleware"
	"galangan-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *reportsvc.Service
}

// AssetReport GET /api/v1/reports/asset/:id — render-ready export view model.
// The "generated by" line carries the session user's name.
func (h *Handlers) AssetReport(c *fiber.Ctx) error {
	id := c.Params("id")

	generatedBy := ""
	if u, ok := middleware.GetUser(c).(map[string]interface{}); ok {
		if name, ok := u["name"].(string); ok {
			generatedBy = name
		}
	}

	report, err := h.Service.AssetReport(c.Context(), id, generatedBy)
	if err != nil {
		if err.Error() == assets.ErrAssetNotFound.Error() {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Asset report generated", report, nil)
}
