package assets

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"galangan-backend/internal/archive"
	"galangan-backend/internal/domain"
)

// Item types accepted by the archive-update operation.
const (
	ItemComplementary = "complementary"
	ItemComponent     = "component"
)

var (
	ErrAssetExists     = errors.New("Asset id already exists")
	ErrAssetNotFound   = errors.New("Asset not found")
	ErrItemNotFound    = errors.New("Item not found")
	ErrInvalidItemType = errors.New("Invalid item type")
)

// Service owns the asset catalog: creation, state updates, archive writes and
// the aggregate read model. Now is injectable so book values are testable.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ChildInput is the flat creation form for a complementary or component item.
// The purchase fields seed the first archive record.
type ChildInput struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Brand               string  `json:"brand"`
	Model               string  `json:"model"`
	Category            string  `json:"category"`
	SubCategory         string  `json:"sub_category"`
	DepartmentOwner     string  `json:"department_owner"`
	SerialNumber        string  `json:"serial_number"`
	PartNumber          string  `json:"part_number"`
	SupplierVendor      string  `json:"supplier_vendor"`
	PurchasePrice       float64 `json:"purchase_price"`
	PurchaseOrderNumber string  `json:"purchase_order_number"`
	PurchaseDate        string  `json:"purchase_date"`
	Status              string  `json:"status"`
	Warranty            string  `json:"warranty"`
	ActiveDate          string  `json:"active_date"`
	ExpectedLifespan    float64 `json:"expected_lifespan"`
	DepreciationMethod  string  `json:"depreciation_method"`
	DepreciationRate    float64 `json:"depreciation_rate"`
	Notes               string  `json:"notes"`
	Relation            string  `json:"relation"`
}

// CreateInput is the asset-creation form: the main asset plus any children
// registered at the same time.
type CreateInput struct {
	Asset         domain.Asset
	Complementary []ChildInput
	Components    []ChildInput
}

// Create inserts the asset, its children and their relation rows in one
// transaction. Ids are caller-assigned; a duplicate asset id conflicts rather
// than silently succeeding.
func (s *Service) Create(ctx context.Context, in CreateInput) error {
	asset := in.Asset
	asset.ImageURL = ImageURL(asset.Category, asset.SubCategory, asset.ID)
	if asset.Status == "" {
		asset.Status = domain.StatusActive
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Asset{}).Where("id = ?", asset.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAssetExists
		}
		if err := tx.Create(&asset).Error; err != nil {
			return err
		}

		for _, child := range in.Complementary {
			item := domain.Complementary{
				ID:                 child.ID,
				Name:               child.Name,
				Brand:              child.Brand,
				Model:              child.Model,
				Category:           child.Category,
				SubCategory:        child.SubCategory,
				DepartmentOwner:    child.DepartmentOwner,
				Archive:            domain.ArchiveList{FirstArchiveRecord(child)},
				ExpectedLifespan:   child.ExpectedLifespan,
				DepreciationMethod: child.DepreciationMethod,
				DepreciationRate:   child.DepreciationRate,
				Notes:              child.Notes,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			rel := domain.ComplementaryRelation{
				ParentID:        asset.ID,
				ComplementaryID: child.ID,
				Relation:        child.Relation,
			}
			if err := tx.Create(&rel).Error; err != nil {
				return err
			}
		}

		for _, child := range in.Components {
			item := domain.Component{
				ID:               child.ID,
				Name:             child.Name,
				Brand:            child.Brand,
				Model:            child.Model,
				Archive:          domain.ArchiveList{FirstArchiveRecord(child)},
				ExpectedLifespan: child.ExpectedLifespan,
				Notes:            child.Notes,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			rel := domain.ComponentRelation{
				ParentID:    asset.ID,
				ComponentID: child.ID,
				Relation:    child.Relation,
			}
			if err := tx.Create(&rel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FirstArchiveRecord seeds an item's history from the flat purchase fields of
// the creation form.
func FirstArchiveRecord(c ChildInput) domain.ArchiveRecord {
	status := c.Status
	if status == "" {
		status = domain.StatusActive
	}
	return domain.ArchiveRecord{
		Status:              status,
		Warranty:            c.Warranty,
		ActiveDate:          c.ActiveDate,
		PurchaseDate:        c.PurchaseDate,
		SerialNumber:        c.SerialNumber,
		PartNumber:          c.PartNumber,
		PurchasePrice:       c.PurchasePrice,
		SupplierVendor:      c.SupplierVendor,
		PurchaseOrderNumber: c.PurchaseOrderNumber,
		Notes:               c.Notes,
	}
}

// ImageURL derives the catalog image path from category, sub-category and id.
var imageSlugger = strings.NewReplacer(" ", "_", "/", "_")

func ImageURL(category, subCategory, id string) string {
	return "/" + imageSlugger.Replace(strings.ToLower(category)) +
		"/" + imageSlugger.Replace(strings.ToLower(subCategory)) +
		"/" + id + ".jpg"
}

// List returns every asset row.
func (s *Service) List(ctx context.Context) ([]domain.Asset, error) {
	var out []domain.Asset
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one asset row.
func (s *Service) Get(ctx context.Context, id string) (*domain.Asset, error) {
	var a domain.Asset
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &a, nil
}

// StateUpdateInput is the only allowed asset mutation after creation besides
// the archive and event flows.
type StateUpdateInput struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	ActiveDate  string  `json:"active_date"`
	Notes       string  `json:"notes"`
	PrimaryUser *string `json:"primary_user"`
}

// UpdateState updates status, active_date, notes (and optionally
// primary_user) on the asset row.
func (s *Service) UpdateState(ctx context.Context, in StateUpdateInput) error {
	updates := map[string]interface{}{
		"status":      in.Status,
		"active_date": in.ActiveDate,
		"notes":       in.Notes,
	}
	if in.PrimaryUser != nil {
		updates["primary_user"] = *in.PrimaryUser
	}
	res := s.DB.WithContext(ctx).Model(&domain.Asset{}).Where("id = ?", in.ID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// UpdateArchive replaces the stored archive column for one item wholesale
// (PUT semantics). Two concurrent editors produce last-write-wins; there is no
// version check. An empty list is allowed and means "no history yet".
func (s *Service) UpdateArchive(ctx context.Context, id, itemType string, records domain.ArchiveList) error {
	if records == nil {
		records = domain.ArchiveList{}
	}
	var res *gorm.DB
	switch itemType {
	case ItemComponent:
		res = s.DB.WithContext(ctx).Model(&domain.Component{}).Where("id = ?", id).Update("archive", records)
	case ItemComplementary:
		res = s.DB.WithContext(ctx).Model(&domain.Complementary{}).Where("id = ?", id).Update("archive", records)
	default:
		return ErrInvalidItemType
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// AppendArchiveRecord appends one record to an item's history server-side,
// so clients do not have to round-trip the whole array.
func (s *Service) AppendArchiveRecord(ctx context.Context, id, itemType string, rec domain.ArchiveRecord) error {
	return s.mutateArchive(ctx, id, itemType, func(list domain.ArchiveList) (domain.ArchiveList, error) {
		return archive.Append(list, rec)
	})
}

// ReplaceArchiveRecord replaces the record at a position in an item's history.
func (s *Service) ReplaceArchiveRecord(ctx context.Context, id, itemType string, index int, rec domain.ArchiveRecord) error {
	return s.mutateArchive(ctx, id, itemType, func(list domain.ArchiveList) (domain.ArchiveList, error) {
		return archive.ReplaceAt(list, index, rec)
	})
}

func (s *Service) mutateArchive(ctx context.Context, id, itemType string, fn func(domain.ArchiveList) (domain.ArchiveList, error)) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.ArchiveList
		switch itemType {
		case ItemComponent:
			var item domain.Component
			if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrItemNotFound
				}
				return err
			}
			current = item.Archive
		case ItemComplementary:
			var item domain.Complementary
			if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrItemNotFound
				}
				return err
			}
			current = item.Archive
		default:
			return ErrInvalidItemType
		}

		updated, err := fn(current)
		if err != nil {
			return err
		}
		if itemType == ItemComponent {
			return tx.Model(&domain.Component{}).Where("id = ?", id).Update("archive", updated).Error
		}
		return tx.Model(&domain.Complementary{}).Where("id = ?", id).Update("archive", updated).Error
	})
}

// AddComplementary attaches a new complementary item to an existing asset
// (item + relation row, one transaction).
func (s *Service) AddComplementary(ctx context.Context, assetID string, child ChildInput) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAsset(tx, assetID); err != nil {
			return err
		}
		item := domain.Complementary{
			ID:                 child.ID,
			Name:               child.Name,
			Brand:              child.Brand,
			Model:              child.Model,
			Category:           child.Category,
			SubCategory:        child.SubCategory,
			DepartmentOwner:    child.DepartmentOwner,
			Archive:            domain.ArchiveList{FirstArchiveRecord(child)},
			ExpectedLifespan:   child.ExpectedLifespan,
			DepreciationMethod: child.DepreciationMethod,
			DepreciationRate:   child.DepreciationRate,
			Notes:              child.Notes,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Create(&domain.ComplementaryRelation{
			ParentID:        assetID,
			ComplementaryID: child.ID,
			Relation:        child.Relation,
		}).Error
	})
}

// AddComponent attaches a new component item to an existing asset.
func (s *Service) AddComponent(ctx context.Context, assetID string, child ChildInput) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAsset(tx, assetID); err != nil {
			return err
		}
		item := domain.Component{
			ID:               child.ID,
			Name:             child.Name,
			Brand:            child.Brand,
			Model:            child.Model,
			Archive:          domain.ArchiveList{FirstArchiveRecord(child)},
			ExpectedLifespan: child.ExpectedLifespan,
			Notes:            child.Notes,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Create(&domain.ComponentRelation{
			ParentID:    assetID,
			ComponentID: child.ID,
			Relation:    child.Relation,
		}).Error
	})
}

func requireAsset(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&domain.Asset{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrAssetNotFound
	}
	return nil
}
