package events

import (
	eventsvc "galangan-backend/internal/application/events"
	"galangan-backend/internal/domain"
	"galangan-backend/internal/pkg/response"
	"galangan-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *eventsvc.Service
}

var eventStatusMap = map[string]int{
	eventsvc.ErrEventNotFound.Error():    404,
	eventsvc.ErrInvalidEventType.Error(): 400,
	eventsvc.ErrMissingPayload.Error():   400,
}

func serviceError(c *fiber.Ctx, err error) error {
	if code, ok := eventStatusMap[err.Error()]; ok {
		return response.Error(c, err.Error(), code, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}

// RecordEvent POST /api/v1/events/post-event — header plus type payload.
func (h *Handlers) RecordEvent(c *fiber.Ctx) error {
	var body struct {
		EventData         domain.Event `json:"event_data"`
		EventType         string       `json:"event_type"`
		SpecificEventData struct {
			Location    *eventsvc.LocationInput    `json:"location"`
			Maintenance *eventsvc.MaintenanceInput `json:"maintenance"`
			Repair      *eventsvc.RepairInput      `json:"repair"`
		} `json:"specific_event_data"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.EventType == "" {
		body.EventType = body.EventData.EventType
	}
	if !validation.IsValidEventType(body.EventType) {
		return response.Error(c, "Invalid event type", 400, nil)
	}
	if body.EventData.AssetID == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	body.EventData.EventType = body.EventType

	event, err := h.Service.Record(c.Context(), eventsvc.RecordInput{
		Event:       body.EventData,
		Location:    body.SpecificEventData.Location,
		Maintenance: body.SpecificEventData.Maintenance,
		Repair:      body.SpecificEventData.Repair,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return response.SuccessCreated(c, "Event recorded", event, nil)
}

// FetchEvent POST /api/v1/events/fetch-event — header + type payload by id.
func (h *Handlers) FetchEvent(c *fiber.Ctx) error {
	var body struct {
		EventID string `json:"event_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.EventID == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}

	detail, err := h.Service.Get(c.Context(), body.EventID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Event fetched", detail, nil)
}

// UpdateEvent POST /api/v1/events/update-event — amend header fields and
// replace the whole type-specific row.
func (h *Handlers) UpdateEvent(c *fiber.Ctx) error {
	var body struct {
		EventID  string             `json:"event_id"`
		EditData eventsvc.EditInput `json:"edit_data"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required parameters", 400, nil)
	}
	if body.EventID == "" {
		return response.Error(c, "Missing required parameters", 400, nil)
	}

	if err := h.Service.Update(c.Context(), body.EventID, body.EditData); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Event updated", fiber.Map{"event_id": body.EventID}, nil)
}

// ListEvents GET /api/v1/events/get-events — all headers, or one asset's via
// ?asset_id=.
func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	assetID := c.Query("asset_id")
	var (
		list []domain.Event
		err  error
	)
	if assetID != "" {
		list, err = h.Service.ListForAsset(c.Context(), assetID)
	} else {
		list, err = h.Service.List(c.Context())
	}
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Events fetched", list, fiber.Map{"count": len(list)})
}
