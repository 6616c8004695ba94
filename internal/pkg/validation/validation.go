package validation

import (
	"regexp"
)

// Asset and item ids are vendor-assigned tags: alphanumeric with slashes,
// dashes and underscores (e.g. "CR-02/GNT/2023").
var assetIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/_\-.]*$`)

// Form dates arrive as YYYY-MM-DD.
var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func IsValidAssetID(id string) bool {
	return id != "" && assetIDRe.MatchString(id)
}

func IsValidDate(date string) bool {
	return dateRe.MatchString(date)
}

// IsValidStatus checks the asset/archive status enum.
func IsValidStatus(status string) bool {
	return status == "Active" || status == "Inactive"
}

// IsValidEventType checks the event type enum.
func IsValidEventType(t string) bool {
	return t == "location" || t == "maintenance" || t == "repair"
}
