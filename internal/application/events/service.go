package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"galangan-backend/internal/domain"
)

var (
	ErrEventNotFound    = errors.New("Event not found")
	ErrInvalidEventType = errors.New("Invalid event type")
	ErrMissingPayload   = errors.New("Missing event payload")
)

// Service records and amends lifecycle events: one header row in events plus
// one row in the type-specific table, always in a single transaction.
type Service struct {
	DB *gorm.DB
}

// LocationInput is the location check-out/in payload.
type LocationInput struct {
	Location     string `json:"location"`
	CheckedOutBy string `json:"checked_out_by"`
	CheckedInBy  string `json:"checked_in_by"`
}

// MaintenanceInput is the maintenance payload. Cost is recomputed from the
// materials list; any client-supplied cost is ignored.
type MaintenanceInput struct {
	MaintenanceType string                `json:"maintenance_type"`
	Technician      string                `json:"technician"`
	DurationMinutes int                   `json:"duration_minutes"`
	DowntimeMinutes int                   `json:"downtime_minutes"`
	Notes           string                `json:"notes"`
	MaterialsUsed   []domain.MaterialItem `json:"materials_used"`
	Actions         []domain.ActionRecord `json:"actions"`
}

// RepairInput is the repair payload.
type RepairInput struct {
	FailureDescription string                `json:"failure_description"`
	Technician         string                `json:"technician"`
	DurationMinutes    int                   `json:"duration_minutes"`
	DowntimeMinutes    int                   `json:"downtime_minutes"`
	RootCause          string                `json:"root_cause"`
	CorrectiveAction   string                `json:"corrective_action"`
	Notes              string                `json:"notes"`
	MaterialsUsed      []domain.MaterialItem `json:"materials_used"`
}

// RecordInput carries the header and exactly one type payload.
type RecordInput struct {
	Event       domain.Event
	Location    *LocationInput
	Maintenance *MaintenanceInput
	Repair      *RepairInput
}

// Detail is an event header with exactly one non-nil type payload.
type Detail struct {
	domain.Event
	Location    *domain.LocationEvent    `json:"location,omitempty"`
	Maintenance *domain.MaintenanceEvent `json:"maintenance,omitempty"`
	Repair      *domain.RepairEvent      `json:"repair,omitempty"`
}

// MaterialCost sums quantity x price over the materials list. This is the
// only source of an event's cost.
func MaterialCost(items []domain.MaterialItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.Price)))
	}
	return total.InexactFloat64()
}

// TypeCode maps an event type to the id segment used in event ids.
func TypeCode(eventType string) (string, bool) {
	switch eventType {
	case domain.EventLocation:
		return "LOC", true
	case domain.EventMaintenance:
		return "MTC", true
	case domain.EventRepair:
		return "RPR", true
	}
	return "", false
}

// NewEventID builds an id like EVT-MTC-1a2b3c4d.
func NewEventID(eventType string) (string, error) {
	code, ok := TypeCode(eventType)
	if !ok {
		return "", ErrInvalidEventType
	}
	fragment := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return "EVT-" + code + "-" + fragment, nil
}

// Record inserts the header and the type-specific row transactionally. The
// event id is generated when absent.
func (s *Service) Record(ctx context.Context, in RecordInput) (*domain.Event, error) {
	event := in.Event
	if _, ok := TypeCode(event.EventType); !ok {
		return nil, ErrInvalidEventType
	}
	if event.EventID == "" {
		id, err := NewEventID(event.EventType)
		if err != nil {
			return nil, err
		}
		event.EventID = id
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		switch event.EventType {
		case domain.EventLocation:
			if in.Location == nil {
				return ErrMissingPayload
			}
			return tx.Create(&domain.LocationEvent{
				EventID:      event.EventID,
				Location:     in.Location.Location,
				CheckedOutBy: in.Location.CheckedOutBy,
				CheckedInBy:  in.Location.CheckedInBy,
			}).Error
		case domain.EventMaintenance:
			if in.Maintenance == nil {
				return ErrMissingPayload
			}
			row, err := maintenanceRow(event.EventID, *in.Maintenance)
			if err != nil {
				return err
			}
			return tx.Create(row).Error
		case domain.EventRepair:
			if in.Repair == nil {
				return ErrMissingPayload
			}
			row, err := repairRow(event.EventID, *in.Repair)
			if err != nil {
				return err
			}
			return tx.Create(row).Error
		}
		return ErrInvalidEventType
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func maintenanceRow(eventID string, in MaintenanceInput) (*domain.MaintenanceEvent, error) {
	materials, err := jsonColumn(in.MaterialsUsed)
	if err != nil {
		return nil, err
	}
	actions, err := jsonColumn(in.Actions)
	if err != nil {
		return nil, err
	}
	return &domain.MaintenanceEvent{
		EventID:         eventID,
		MaintenanceType: in.MaintenanceType,
		Technician:      in.Technician,
		DurationMinutes: in.DurationMinutes,
		Cost:            MaterialCost(in.MaterialsUsed),
		DowntimeMinutes: in.DowntimeMinutes,
		Notes:           in.Notes,
		MaterialsUsed:   materials,
		Actions:         actions,
	}, nil
}

func repairRow(eventID string, in RepairInput) (*domain.RepairEvent, error) {
	materials, err := jsonColumn(in.MaterialsUsed)
	if err != nil {
		return nil, err
	}
	return &domain.RepairEvent{
		EventID:            eventID,
		FailureDescription: in.FailureDescription,
		Technician:         in.Technician,
		DurationMinutes:    in.DurationMinutes,
		Cost:               MaterialCost(in.MaterialsUsed),
		DowntimeMinutes:    in.DowntimeMinutes,
		RootCause:          in.RootCause,
		CorrectiveAction:   in.CorrectiveAction,
		Notes:              in.Notes,
		MaterialsUsed:      materials,
	}, nil
}

// jsonColumn marshals a payload slice for a json column; nil becomes [].
func jsonColumn(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		b = []byte("[]")
	}
	return datatypes.JSON(b), nil
}

// Get returns the header plus the type payload, selected by the header's
// event_type rather than by parsing the id.
func (s *Service) Get(ctx context.Context, eventID string) (*Detail, error) {
	var event domain.Event
	if err := s.DB.WithContext(ctx).Where("event_id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	detail := &Detail{Event: event}
	switch event.EventType {
	case domain.EventLocation:
		var row domain.LocationEvent
		if err := s.DB.WithContext(ctx).Where("event_id = ?", eventID).First(&row).Error; err != nil {
			return nil, err
		}
		detail.Location = &row
	case domain.EventMaintenance:
		var row domain.MaintenanceEvent
		if err := s.DB.WithContext(ctx).Where("event_id = ?", eventID).First(&row).Error; err != nil {
			return nil, err
		}
		detail.Maintenance = &row
	case domain.EventRepair:
		var row domain.RepairEvent
		if err := s.DB.WithContext(ctx).Where("event_id = ?", eventID).First(&row).Error; err != nil {
			return nil, err
		}
		detail.Repair = &row
	default:
		return nil, ErrInvalidEventType
	}
	return detail, nil
}

// EditInput amends an event: header fields plus a whole replace of the
// type-specific row.
type EditInput struct {
	EventStart  string `json:"event_start"`
	EventFinish string `json:"event_finish"`
	Status      string `json:"status"`

	Location    *LocationInput    `json:"location"`
	Maintenance *MaintenanceInput `json:"maintenance"`
	Repair      *RepairInput      `json:"repair"`
}

// Update replaces the header fields and the whole type-specific row in one
// transaction. The payload must match the event's recorded type.
func (s *Service) Update(ctx context.Context, eventID string, in EditInput) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event domain.Event
		if err := tx.Where("event_id = ?", eventID).First(&event).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrEventNotFound
			}
			return err
		}

		if err := tx.Model(&domain.Event{}).Where("event_id = ?", eventID).Updates(map[string]interface{}{
			"event_start":  in.EventStart,
			"event_finish": in.EventFinish,
			"status":       in.Status,
		}).Error; err != nil {
			return err
		}

		switch event.EventType {
		case domain.EventLocation:
			if in.Location == nil {
				return ErrMissingPayload
			}
			res := tx.Model(&domain.LocationEvent{}).Where("event_id = ?", eventID).Updates(map[string]interface{}{
				"location":       in.Location.Location,
				"checked_out_by": in.Location.CheckedOutBy,
				"checked_in_by":  in.Location.CheckedInBy,
			})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrEventNotFound
			}
			return nil
		case domain.EventMaintenance:
			if in.Maintenance == nil {
				return ErrMissingPayload
			}
			row, err := maintenanceRow(eventID, *in.Maintenance)
			if err != nil {
				return err
			}
			res := tx.Model(&domain.MaintenanceEvent{}).Where("event_id = ?", eventID).Updates(map[string]interface{}{
				"maintenance_type": row.MaintenanceType,
				"technician":       row.Technician,
				"duration_minutes": row.DurationMinutes,
				"cost":             row.Cost,
				"downtime_minutes": row.DowntimeMinutes,
				"notes":            row.Notes,
				"materials_used":   row.MaterialsUsed,
				"actions":          row.Actions,
			})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrEventNotFound
			}
			return nil
		case domain.EventRepair:
			if in.Repair == nil {
				return ErrMissingPayload
			}
			row, err := repairRow(eventID, *in.Repair)
			if err != nil {
				return err
			}
			res := tx.Model(&domain.RepairEvent{}).Where("event_id = ?", eventID).Updates(map[string]interface{}{
				"failure_description": row.FailureDescription,
				"technician":          row.Technician,
				"duration_minutes":    row.DurationMinutes,
				"cost":                row.Cost,
				"downtime_minutes":    row.DowntimeMinutes,
				"root_cause":          row.RootCause,
				"corrective_action":   row.CorrectiveAction,
				"notes":               row.Notes,
				"materials_used":      row.MaterialsUsed,
			})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrEventNotFound
			}
			return nil
		}
		return ErrInvalidEventType
	})
}

// List returns all event headers, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListForAsset returns event headers for one asset, newest first.
func (s *Service) ListForAsset(ctx context.Context, assetID string) ([]domain.Event, error) {
	var out []domain.Event
	if err := s.DB.WithContext(ctx).Where("asset_id = ?", assetID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
