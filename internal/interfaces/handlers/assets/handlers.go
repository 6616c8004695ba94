package assets

import (
	assetsvc "galangan-backend/internal/application/assets"
	"galangan-backend/internal/domain"
	"galangan-backend/internal/pkg/response"
	"galangan-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *assetsvc.Service
}

var assetStatusMap = map[string]int{
	assetsvc.ErrAssetExists.Error():     409,
	assetsvc.ErrAssetNotFound.Error():   404,
	assetsvc.ErrItemNotFound.Error():    404,
	assetsvc.ErrInvalidItemType.Error(): 400,
}

func serviceError(c *fiber.Ctx, err error) error {
	if code, ok := assetStatusMap[err.Error()]; ok {
		return response.Error(c, err.Error(), code, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}

// CreateAsset POST /api/v1/assets/post-asset — main asset plus children in
// one transaction.
func (h *Handlers) CreateAsset(c *fiber.Ctx) error {
	var body struct {
		MainAsset     domain.Asset          `json:"main_asset"`
		Complementary []assetsvc.ChildInput `json:"complementary_assets"`
		Components    []assetsvc.ChildInput `json:"components"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if body.MainAsset.ID == "" || body.MainAsset.Name == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if !validation.IsValidAssetID(body.MainAsset.ID) {
		return response.Error(c, "Invalid asset id", 400, nil)
	}
	for _, child := range append(body.Complementary, body.Components...) {
		if child.ID == "" || !validation.IsValidAssetID(child.ID) {
			return response.Error(c, "Invalid item id", 400, nil)
		}
	}

	err := h.Service.Create(c.Context(), assetsvc.CreateInput{
		Asset:         body.MainAsset,
		Complementary: body.Complementary,
		Components:    body.Components,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return response.SuccessCreated(c, "Assets created successfully", fiber.Map{"id": body.MainAsset.ID}, nil)
}

// ListAssets GET /api/v1/assets/fetch-assets
func (h *Handlers) ListAssets(c *fiber.Ctx) error {
	list, err := h.Service.List(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Assets fetched", list, fiber.Map{"count": len(list)})
}

// GetAsset GET /api/v1/assets/:id
func (h *Handlers) GetAsset(c *fiber.Ctx) error {
	id := c.Params("id")
	asset, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Asset fetched", asset, nil)
}

// GetAggregate GET /api/v1/assets/:id/aggregate — asset + nested children +
// computed current_book_value.
func (h *Handlers) GetAggregate(c *fiber.Ctx) error {
	id := c.Params("id")
	agg, err := h.Service.Aggregate(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Asset aggregate fetched", agg, nil)
}

// UpdateAssetState PUT /api/v1/assets/update-asset-state — status,
// active_date, notes (and optionally primary_user).
func (h *Handlers) UpdateAssetState(c *fiber.Ctx) error {
	var body assetsvc.StateUpdateInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.ID == "" || body.Status == "" || body.ActiveDate == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if !validation.IsValidStatus(body.Status) {
		return response.Error(c, "Invalid status", 400, nil)
	}
	if !validation.IsValidDate(body.ActiveDate) {
		return response.Error(c, "Invalid active_date", 400, nil)
	}

	if err := h.Service.UpdateState(c.Context(), body); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Asset state updated", fiber.Map{"id": body.ID}, nil)
}

// UpdateArchive PUT /api/v1/assets/update-archive — wholesale replace of an
// item's stored archive (last write wins).
func (h *Handlers) UpdateArchive(c *fiber.Ctx) error {
	var body struct {
		ID      string             `json:"id"`
		Type    string             `json:"type"`
		Archive domain.ArchiveList `json:"archive"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.ID == "" || body.Type == "" || body.Archive == nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}

	if err := h.Service.UpdateArchive(c.Context(), body.ID, body.Type, body.Archive); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Archive updated", fiber.Map{"id": body.ID}, nil)
}

// AddComplementary POST /api/v1/assets/add-complementary
func (h *Handlers) AddComplementary(c *fiber.Ctx) error {
	var body struct {
		AssetID       string              `json:"asset_id"`
		Complementary assetsvc.ChildInput `json:"complementary"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.AssetID == "" || body.Complementary.ID == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}

	if err := h.Service.AddComplementary(c.Context(), body.AssetID, body.Complementary); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Complementary item added", fiber.Map{"id": body.Complementary.ID}, nil)
}

// AddComponent POST /api/v1/assets/add-component
func (h *Handlers) AddComponent(c *fiber.Ctx) error {
	var body struct {
		AssetID   string              `json:"asset_id"`
		Component assetsvc.ChildInput `json:"component"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.AssetID == "" || body.Component.ID == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}

	if err := h.Service.AddComponent(c.Context(), body.AssetID, body.Component); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Component item added", fiber.Map{"id": body.Component.ID}, nil)
}
