// Package reports builds the view model consumed by the downstream PDF/print
// renderer: asset fields, formatted Rupiah amounts, and per-child archive
// histories grouped by purchase order.
package reports

import (
	"context"
	"time"

	"galangan-backend/internal/application/assets"
	"galangan-backend/internal/archive"
	"galangan-backend/internal/domain"
	"galangan-backend/internal/valuation"
)

// Service composes the assets aggregate into a render-ready report.
type Service struct {
	Assets *assets.Service
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ArchiveGroup is one purchase-order cluster, in record order.
type ArchiveGroup struct {
	PurchaseOrderNumber string                 `json:"purchase_order_number"`
	Records             []domain.ArchiveRecord `json:"records"`
}

// ChildReport is a complementary or component item with its grouped history.
type ChildReport struct {
	ID       string         `json:"id"`
	Relation string         `json:"relation"`
	Name     string         `json:"name"`
	Brand    string         `json:"brand"`
	Model    string         `json:"model"`
	Groups   []ArchiveGroup `json:"groups"`
}

// AssetReport is the sole input contract for PDF/print generation.
type AssetReport struct {
	Asset                   domain.Asset  `json:"asset"`
	CurrentBookValue        float64       `json:"current_book_value"`
	CurrentBookValueDisplay string        `json:"current_book_value_display"`
	PurchasePriceDisplay    string        `json:"purchase_price_display"`
	ComplementaryItems      []ChildReport `json:"complementary_items"`
	ComponentItems          []ChildReport `json:"component_items"`
	GeneratedAt             time.Time     `json:"generated_at"`
	GeneratedBy             string        `json:"generated_by"`
}

// AssetReport builds the report for one asset. Group keys appear in
// first-occurrence order so repeated exports render identically.
func (s *Service) AssetReport(ctx context.Context, id, generatedBy string) (*AssetReport, error) {
	now := s.now()
	agg, err := s.Assets.Aggregate(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &AssetReport{
		Asset:                   agg.Asset,
		CurrentBookValue:        agg.CurrentBookValue,
		CurrentBookValueDisplay: valuation.FormatIDR(agg.CurrentBookValue),
		PurchasePriceDisplay:    valuation.FormatIDR(agg.Asset.PurchasePrice),
		ComplementaryItems:      make([]ChildReport, 0, len(agg.ComplementaryItems)),
		ComponentItems:          make([]ChildReport, 0, len(agg.ComponentItems)),
		GeneratedAt:             now,
		GeneratedBy:             generatedBy,
	}
	for _, item := range agg.ComplementaryItems {
		report.ComplementaryItems = append(report.ComplementaryItems, ChildReport{
			ID:       item.ComplementaryID,
			Relation: item.Relation,
			Name:     item.Name,
			Brand:    item.Brand,
			Model:    item.Model,
			Groups:   groupArchive(item.Archive),
		})
	}
	for _, item := range agg.ComponentItems {
		report.ComponentItems = append(report.ComponentItems, ChildReport{
			ID:       item.ComponentID,
			Relation: item.Relation,
			Name:     item.Name,
			Brand:    item.Brand,
			Model:    item.Model,
			Groups:   groupArchive(item.Archive),
		})
	}
	return report, nil
}

func groupArchive(list domain.ArchiveList) []ArchiveGroup {
	grouped := archive.GroupByPurchaseOrder(list)
	keys := archive.GroupKeys(list)
	groups := make([]ArchiveGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, ArchiveGroup{
			PurchaseOrderNumber: key,
			Records:             grouped[key],
		})
	}
	return groups
}
