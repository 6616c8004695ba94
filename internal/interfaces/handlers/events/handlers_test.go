package events

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	eventsvc "galangan-backend/internal/application/events"
	"galangan-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEventHandlerTest(t *testing.T) (*fiber.App, *eventsvc.Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Event{},
		&domain.LocationEvent{},
		&domain.MaintenanceEvent{},
		&domain.RepairEvent{},
	))
	svc := &eventsvc.Service{DB: db}
	h := &Handlers{Service: svc}

	app := fiber.New()
	app.Post("/post-event", h.RecordEvent)
	app.Post("/fetch-event", h.FetchEvent)
	app.Post("/update-event", h.UpdateEvent)
	app.Get("/get-events", h.ListEvents)
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func TestRecordEvent_Maintenance(t *testing.T) {
	app, _ := setupEventHandlerTest(t)

	code, body := doJSON(t, app, "POST", "/post-event", map[string]interface{}{
		"event_data": map[string]interface{}{
			"asset_id":    "CR-02/GNT/2023",
			"asset_name":  "Gantry Crane 40T",
			"event_date":  "2024-06-01",
			"recorded_by": "Budi",
		},
		"event_type": "maintenance",
		"specific_event_data": map[string]interface{}{
			"maintenance": map[string]interface{}{
				"maintenance_type": "preventive",
				"technician":       "Wahyu",
				"materials_used": []map[string]interface{}{
					{"name": "Hydraulic oil", "quantity": 2, "uom": "drum", "price": 1500000},
				},
			},
		},
	})
	require.Equal(t, 201, code)
	data := body["data"].(map[string]interface{})
	eventID := data["event_id"].(string)
	assert.Contains(t, eventID, "EVT-MTC-")

	// Fetch it back, cost recomputed from materials
	code, body = doJSON(t, app, "POST", "/fetch-event", map[string]interface{}{"event_id": eventID})
	require.Equal(t, 200, code)
	detail := body["data"].(map[string]interface{})
	maint := detail["maintenance"].(map[string]interface{})
	assert.Equal(t, float64(3000000), maint["cost"])
	assert.Nil(t, detail["location"])
}

func TestRecordEvent_InvalidType(t *testing.T) {
	app, _ := setupEventHandlerTest(t)
	code, _ := doJSON(t, app, "POST", "/post-event", map[string]interface{}{
		"event_data": map[string]interface{}{"asset_id": "CR-02/GNT/2023"},
		"event_type": "demolition",
	})
	assert.Equal(t, 400, code)
}

func TestRecordEvent_MissingAssetID(t *testing.T) {
	app, _ := setupEventHandlerTest(t)
	code, _ := doJSON(t, app, "POST", "/post-event", map[string]interface{}{
		"event_type": "location",
		"specific_event_data": map[string]interface{}{
			"location": map[string]interface{}{"location": "Yard"},
		},
	})
	assert.Equal(t, 400, code)
}

func TestFetchEvent_NotFound(t *testing.T) {
	app, _ := setupEventHandlerTest(t)
	code, body := doJSON(t, app, "POST", "/fetch-event", map[string]interface{}{"event_id": "EVT-LOC-deadbeef"})
	assert.Equal(t, 404, code)
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "Event not found", errObj["message"])
}

func TestUpdateEvent(t *testing.T) {
	app, _ := setupEventHandlerTest(t)

	code, body := doJSON(t, app, "POST", "/post-event", map[string]interface{}{
		"event_data": map[string]interface{}{"asset_id": "CR-02/GNT/2023", "status": "out"},
		"event_type": "location",
		"specific_event_data": map[string]interface{}{
			"location": map[string]interface{}{"location": "Dry Dock 2", "checked_out_by": "Budi"},
		},
	})
	require.Equal(t, 201, code)
	eventID := body["data"].(map[string]interface{})["event_id"].(string)

	code, _ = doJSON(t, app, "POST", "/update-event", map[string]interface{}{
		"event_id": eventID,
		"edit_data": map[string]interface{}{
			"status": "returned",
			"location": map[string]interface{}{
				"location":       "Dry Dock 2",
				"checked_out_by": "Budi",
				"checked_in_by":  "Siti",
			},
		},
	})
	assert.Equal(t, 200, code)

	code, body = doJSON(t, app, "POST", "/fetch-event", map[string]interface{}{"event_id": eventID})
	require.Equal(t, 200, code)
	detail := body["data"].(map[string]interface{})
	assert.Equal(t, "returned", detail["status"])
	loc := detail["location"].(map[string]interface{})
	assert.Equal(t, "Siti", loc["checked_in_by"])
}

func TestListEvents_AssetFilter(t *testing.T) {
	app, _ := setupEventHandlerTest(t)

	for _, assetID := range []string{"CR-02/GNT/2023", "FL-07/FRK/2022"} {
		code, _ := doJSON(t, app, "POST", "/post-event", map[string]interface{}{
			"event_data": map[string]interface{}{"asset_id": assetID},
			"event_type": "location",
			"specific_event_data": map[string]interface{}{
				"location": map[string]interface{}{"location": "Yard"},
			},
		})
		require.Equal(t, 201, code)
	}

	code, body := doJSON(t, app, "GET", "/get-events", nil)
	assert.Equal(t, 200, code)
	meta := body["metadata"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["count"])

	code, body = doJSON(t, app, "GET", "/get-events?asset_id=FL-07%2FFRK%2F2022", nil)
	assert.Equal(t, 200, code)
	meta = body["metadata"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["count"])
}
