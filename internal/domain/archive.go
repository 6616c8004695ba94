package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Asset/item status values. Archive records and asset rows share the same pair.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// ArchiveRecord is one purchase/ownership/status snapshot belonging to a
// complementary or component item. Records are immutable once appended except
// through the explicit archive-update flow; the last record in the list is the
// item's current state.
type ArchiveRecord struct {
	Status              string  `json:"status"`
	Warranty            string  `json:"warranty"`
	ActiveDate          string  `json:"active_date"`
	PurchaseDate        string  `json:"purchase_date"`
	SerialNumber        string  `json:"serial_number"`
	PartNumber          string  `json:"part_number"`
	PurchasePrice       float64 `json:"purchase_price"`
	SupplierVendor      string  `json:"supplier_vendor"`
	PurchaseOrderNumber string  `json:"purchase_order_number"`
	Notes               string  `json:"notes"`
}

// ArchiveList stores an ordered list of archive records in a json column.
// Order matters: the last element is the current record.
type ArchiveList []ArchiveRecord

// Scan implements sql.Scanner for reading from DB (json column).
func (a *ArchiveList) Scan(value interface{}) error {
	if value == nil {
		*a = ArchiveList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for ArchiveList")
	}
	if len(b) == 0 {
		*a = ArchiveList{}
		return nil
	}
	var records []ArchiveRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return err
	}
	*a = records
	return nil
}

// Value implements driver.Valuer for writing to DB. Empty lists persist as [].
func (a ArchiveList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]ArchiveRecord(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MarshalJSON keeps API responses as [] instead of null for empty histories.
func (a ArchiveList) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ArchiveRecord(a))
}
