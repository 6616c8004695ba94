// Package archive holds the pure list operations over an item's purchase
// history: grouping by purchase order for reporting and the append/replace
// transitions used by the archive-update flow.
package archive

import (
	"errors"

	"galangan-backend/internal/domain"
)

// UnknownPO is the single sentinel group key for records without a purchase
// order number.
const UnknownPO = "UNKNOWN_PO"

var (
	ErrStatusRequired  = errors.New("Archive record status must be Active or Inactive")
	ErrIndexOutOfRange = errors.New("Archive record index out of range")
	ErrLastRecord      = errors.New("Cannot remove the only archive record")
)

// GroupByPurchaseOrder clusters records by purchase_order_number, preserving
// record order within each group. Every record lands in exactly one group;
// empty input yields an empty map.
func GroupByPurchaseOrder(records []domain.ArchiveRecord) map[string][]domain.ArchiveRecord {
	groups := make(map[string][]domain.ArchiveRecord, len(records))
	for _, rec := range records {
		key := rec.PurchaseOrderNumber
		if key == "" {
			key = UnknownPO
		}
		groups[key] = append(groups[key], rec)
	}
	return groups
}

// GroupKeys returns group keys in order of first occurrence, so reports render
// deterministically.
func GroupKeys(records []domain.ArchiveRecord) []string {
	seen := make(map[string]bool, len(records))
	keys := make([]string, 0, len(records))
	for _, rec := range records {
		key := rec.PurchaseOrderNumber
		if key == "" {
			key = UnknownPO
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// Latest returns the item's current record: last element by list order, not
// by date.
func Latest(list domain.ArchiveList) (domain.ArchiveRecord, bool) {
	if len(list) == 0 {
		return domain.ArchiveRecord{}, false
	}
	return list[len(list)-1], true
}

// Append adds a record to the end of the history. Status is the only required
// field; everything else defaults to its zero value.
func Append(list domain.ArchiveList, rec domain.ArchiveRecord) (domain.ArchiveList, error) {
	if err := validateStatus(rec.Status); err != nil {
		return nil, err
	}
	out := make(domain.ArchiveList, len(list), len(list)+1)
	copy(out, list)
	return append(out, rec), nil
}

// ReplaceAt swaps the record at position i in place. Position is the only
// addressing scheme archive records have.
func ReplaceAt(list domain.ArchiveList, i int, rec domain.ArchiveRecord) (domain.ArchiveList, error) {
	if i < 0 || i >= len(list) {
		return nil, ErrIndexOutOfRange
	}
	if err := validateStatus(rec.Status); err != nil {
		return nil, err
	}
	out := make(domain.ArchiveList, len(list))
	copy(out, list)
	out[i] = rec
	return out, nil
}

// RemoveAt drops the record at position i. The sole remaining record cannot
// be removed; an item with history keeps at least one.
func RemoveAt(list domain.ArchiveList, i int) (domain.ArchiveList, error) {
	if i < 0 || i >= len(list) {
		return nil, ErrIndexOutOfRange
	}
	if len(list) == 1 {
		return nil, ErrLastRecord
	}
	out := make(domain.ArchiveList, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out, nil
}

func validateStatus(s string) error {
	if s != domain.StatusActive && s != domain.StatusInactive {
		return ErrStatusRequired
	}
	return nil
}
