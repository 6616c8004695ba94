package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Event types.
const (
	EventLocation    = "location"
	EventMaintenance = "maintenance"
	EventRepair      = "repair"
)

// Event is the common header row for a lifecycle event. The event_id carries
// a type code segment (e.g. EVT-LOC-1a2b3c4d) so the id alone identifies which
// type-specific table holds the payload.
type Event struct {
	EventID     string    `gorm:"column:event_id;primaryKey" json:"event_id"`
	AssetID     string    `gorm:"column:asset_id;index;not null" json:"asset_id"`
	AssetName   string    `gorm:"column:asset_name" json:"asset_name"`
	EventType   string    `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	EventDate   string    `gorm:"column:event_date" json:"event_date"`
	EventStart  string    `gorm:"column:event_start" json:"event_start"`
	EventFinish string    `gorm:"column:event_finish" json:"event_finish"`
	RecordedBy  string    `gorm:"column:recorded_by" json:"recorded_by"`
	Description string    `gorm:"column:description" json:"description"`
	Status      string    `gorm:"column:status" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// MaterialItem is one material consumed during maintenance or repair.
// Cost of the event is always recomputed as the sum of quantity x price.
type MaterialItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UOM      string  `json:"uom"`
	Price    float64 `json:"price"`
}

// ActionRecord is one discrete action taken during maintenance.
type ActionRecord struct {
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	FinishTime  string `json:"finish_time"`
}

// LocationEvent is the location check-out/in payload.
type LocationEvent struct {
	EventID      string `gorm:"column:event_id;primaryKey" json:"event_id"`
	Location     string `gorm:"column:location" json:"location"`
	CheckedOutBy string `gorm:"column:checked_out_by" json:"checked_out_by"`
	CheckedInBy  string `gorm:"column:checked_in_by" json:"checked_in_by"`
}

func (LocationEvent) TableName() string {
	return "location_events"
}

// MaintenanceEvent is the maintenance payload. MaterialsUsed and Actions are
// json arrays of MaterialItem / ActionRecord.
type MaintenanceEvent struct {
	EventID         string         `gorm:"column:event_id;primaryKey" json:"event_id"`
	MaintenanceType string         `gorm:"column:maintenance_type" json:"maintenance_type"`
	Technician      string         `gorm:"column:technician" json:"technician"`
	DurationMinutes int            `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	Cost            float64        `gorm:"column:cost;type:decimal(18,2);not null;default:0" json:"cost"`
	DowntimeMinutes int            `gorm:"column:downtime_minutes;not null;default:0" json:"downtime_minutes"`
	Notes           string         `gorm:"column:notes" json:"notes"`
	MaterialsUsed   datatypes.JSON `gorm:"column:materials_used;type:json" json:"materials_used"`
	Actions         datatypes.JSON `gorm:"column:actions;type:json" json:"actions"`
}

func (MaintenanceEvent) TableName() string {
	return "maintenance_events"
}

// RepairEvent is the repair payload.
type RepairEvent struct {
	EventID            string         `gorm:"column:event_id;primaryKey" json:"event_id"`
	FailureDescription string         `gorm:"column:failure_description" json:"failure_description"`
	Technician         string         `gorm:"column:technician" json:"technician"`
	DurationMinutes    int            `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	Cost               float64        `gorm:"column:cost;type:decimal(18,2);not null;default:0" json:"cost"`
	DowntimeMinutes    int            `gorm:"column:downtime_minutes;not null;default:0" json:"downtime_minutes"`
	RootCause          string         `gorm:"column:root_cause" json:"root_cause"`
	CorrectiveAction   string         `gorm:"column:corrective_action" json:"corrective_action"`
	Notes              string         `gorm:"column:notes" json:"notes"`
	MaterialsUsed      datatypes.JSON `gorm:"column:materials_used;type:json" json:"materials_used"`
}

func (RepairEvent) TableName() string {
	return "repair_events"
}
