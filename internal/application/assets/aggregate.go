package assets

import (
	"context"
	"time"

	"galangan-backend/internal/domain"
	"galangan-backend/internal/valuation"
)

// ComplementaryItem is a complementary row nested under its parent asset,
// tagged with the relation label.
type ComplementaryItem struct {
	ComplementaryID string             `json:"complementary_id"`
	Relation        string             `json:"relation"`
	Name            string             `json:"name"`
	Brand           string             `json:"brand"`
	Model           string             `json:"model"`
	Category        string             `json:"category"`
	SubCategory     string             `json:"sub_category"`
	Archive         domain.ArchiveList `json:"archive"`
	Notes           string             `json:"notes"`
}

// ComponentItem is a component row nested under its parent asset.
type ComponentItem struct {
	ComponentID string             `json:"component_id"`
	Relation    string             `json:"relation"`
	Name        string             `json:"name"`
	Brand       string             `json:"brand"`
	Model       string             `json:"model"`
	Archive     domain.ArchiveList `json:"archive"`
	Notes       string             `json:"notes"`
}

// Aggregate is the full read model for a detail page or report: the asset,
// its children with their histories, and the computed book value.
type Aggregate struct {
	domain.Asset
	CurrentBookValue   float64             `json:"current_book_value"`
	ComplementaryItems []ComplementaryItem `json:"complementary_items"`
	ComponentItems     []ComponentItem     `json:"component_items"`
}

// ComplementaryRow pairs a complementary item with its relation label.
type ComplementaryRow struct {
	Item     domain.Complementary
	Relation string
}

// ComponentRow pairs a component item with its relation label.
type ComponentRow struct {
	Item     domain.Component
	Relation string
}

// BuildAggregate nests the child rows under the asset and attaches the book
// value at the supplied instant. Archives pass through structurally and child
// ordering mirrors input row order. Zero children yield empty, not nil,
// slices so downstream iteration never trips.
func BuildAggregate(asset domain.Asset, complementary []ComplementaryRow, components []ComponentRow, now time.Time) Aggregate {
	agg := Aggregate{
		Asset:              asset,
		CurrentBookValue:   valuation.BookValue(valuation.AssetInput(asset), now),
		ComplementaryItems: make([]ComplementaryItem, 0, len(complementary)),
		ComponentItems:     make([]ComponentItem, 0, len(components)),
	}
	for _, row := range complementary {
		agg.ComplementaryItems = append(agg.ComplementaryItems, ComplementaryItem{
			ComplementaryID: row.Item.ID,
			Relation:        row.Relation,
			Name:            row.Item.Name,
			Brand:           row.Item.Brand,
			Model:           row.Item.Model,
			Category:        row.Item.Category,
			SubCategory:     row.Item.SubCategory,
			Archive:         row.Item.Archive,
			Notes:           row.Item.Notes,
		})
	}
	for _, row := range components {
		agg.ComponentItems = append(agg.ComponentItems, ComponentItem{
			ComponentID: row.Item.ID,
			Relation:    row.Relation,
			Name:        row.Item.Name,
			Brand:       row.Item.Brand,
			Model:       row.Item.Model,
			Archive:     row.Item.Archive,
			Notes:       row.Item.Notes,
		})
	}
	return agg
}

// Aggregate loads the asset and its children and builds the read model.
// Child ordering follows relation-row insert order (the relation tables'
// autoincrement id), which makes detail pages and reports stable across
// reloads.
func (s *Service) Aggregate(ctx context.Context, id string) (*Aggregate, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	complementary, err := s.complementaryRows(ctx, id)
	if err != nil {
		return nil, err
	}
	components, err := s.componentRows(ctx, id)
	if err != nil {
		return nil, err
	}

	agg := BuildAggregate(*asset, complementary, components, s.now())
	return &agg, nil
}

func (s *Service) complementaryRows(ctx context.Context, assetID string) ([]ComplementaryRow, error) {
	var relations []domain.ComplementaryRelation
	if err := s.DB.WithContext(ctx).Where("parent_id = ?", assetID).Order("id").Find(&relations).Error; err != nil {
		return nil, err
	}
	if len(relations) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(relations))
	for _, rel := range relations {
		ids = append(ids, rel.ComplementaryID)
	}
	var items []domain.Complementary
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Complementary, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	rows := make([]ComplementaryRow, 0, len(relations))
	for _, rel := range relations {
		item, ok := byID[rel.ComplementaryID]
		if !ok {
			// Dangling relation row; skip rather than fail the whole read.
			continue
		}
		rows = append(rows, ComplementaryRow{Item: item, Relation: rel.Relation})
	}
	return rows, nil
}

func (s *Service) componentRows(ctx context.Context, assetID string) ([]ComponentRow, error) {
	var relations []domain.ComponentRelation
	if err := s.DB.WithContext(ctx).Where("parent_id = ?", assetID).Order("id").Find(&relations).Error; err != nil {
		return nil, err
	}
	if len(relations) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(relations))
	for _, rel := range relations {
		ids = append(ids, rel.ComponentID)
	}
	var items []domain.Component
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Component, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	rows := make([]ComponentRow, 0, len(relations))
	for _, rel := range relations {
		item, ok := byID[rel.ComponentID]
		if !ok {
			continue
		}
		rows = append(rows, ComponentRow{Item: item, Relation: rel.Relation})
	}
	return rows, nil
}
