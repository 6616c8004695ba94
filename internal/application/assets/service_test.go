package assets

import (
	"context"
	"testing"
	"time"

	"galangan-backend/internal/archive"
	"galangan-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssetTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Asset{},
		&domain.Complementary{},
		&domain.ComplementaryRelation{},
		&domain.Component{},
		&domain.ComponentRelation{},
	))
	svc := &Service{DB: db, Now: func() time.Time {
		return time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	}}
	return svc, db
}

func craneAsset() domain.Asset {
	return domain.Asset{
		ID:                 "CR-02/GNT/2023",
		Name:               "Gantry Crane 40T",
		Brand:              "Konecranes",
		Category:           "Heavy Equipment",
		SubCategory:        "Gantry Crane",
		PurchasePrice:      1_200_000_000,
		ExpectedLifespan:   10,
		DepreciationMethod: domain.MethodStraightLine,
		PurchaseDate:       "2023-01-10",
		ActiveDate:         "2023-02-01",
	}
}

func TestCreate_WithChildren(t *testing.T) {
	svc, db := setupAssetTest(t)

	err := svc.Create(context.Background(), CreateInput{
		Asset: craneAsset(),
		Complementary: []ChildInput{{
			ID:                  "CR-02/HOIST/01",
			Name:                "Auxiliary Hoist",
			Status:              domain.StatusActive,
			PurchasePrice:       85_000_000,
			PurchaseOrderNumber: "PO-2023-0012",
			PurchaseDate:        "2023-01-10",
			Relation:            "hoisting",
		}},
		Components: []ChildInput{{
			ID:       "CR-02/MTR/01",
			Name:     "Travel Motor",
			Relation: "travel drive",
		}},
	})
	require.NoError(t, err)

	var asset domain.Asset
	require.NoError(t, db.Where("id = ?", "CR-02/GNT/2023").First(&asset).Error)
	assert.Equal(t, "/heavy_equipment/gantry_crane/CR-02/GNT/2023.jpg", asset.ImageURL)
	assert.Equal(t, domain.StatusActive, asset.Status)

	var comp domain.Complementary
	require.NoError(t, db.Where("id = ?", "CR-02/HOIST/01").First(&comp).Error)
	require.Len(t, comp.Archive, 1)
	assert.Equal(t, "PO-2023-0012", comp.Archive[0].PurchaseOrderNumber)
	assert.Equal(t, 85_000_000.0, comp.Archive[0].PurchasePrice)

	var rel domain.ComplementaryRelation
	require.NoError(t, db.Where("parent_id = ?", "CR-02/GNT/2023").First(&rel).Error)
	assert.Equal(t, "hoisting", rel.Relation)

	// Component archive seeded too, status defaulted
	var cmpnt domain.Component
	require.NoError(t, db.Where("id = ?", "CR-02/MTR/01").First(&cmpnt).Error)
	require.Len(t, cmpnt.Archive, 1)
	assert.Equal(t, domain.StatusActive, cmpnt.Archive[0].Status)
}

func TestCreate_DuplicateIDRollsBack(t *testing.T) {
	svc, db := setupAssetTest(t)
	require.NoError(t, svc.Create(context.Background(), CreateInput{Asset: craneAsset()}))

	err := svc.Create(context.Background(), CreateInput{
		Asset: craneAsset(),
		Complementary: []ChildInput{{
			ID:   "CR-02/HOIST/99",
			Name: "Should Not Persist",
		}},
	})
	assert.ErrorIs(t, err, ErrAssetExists)

	var count int64
	require.NoError(t, db.Model(&domain.Complementary{}).Where("id = ?", "CR-02/HOIST/99").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdateState(t *testing.T) {
	svc, db := setupAssetTest(t)
	require.NoError(t, svc.Create(context.Background(), CreateInput{Asset: craneAsset()}))

	err := svc.UpdateState(context.Background(), StateUpdateInput{
		ID:         "CR-02/GNT/2023",
		Status:     domain.StatusInactive,
		ActiveDate: "2024-03-01",
		Notes:      "Out for overhaul",
	})
	require.NoError(t, err)

	var asset domain.Asset
	require.NoError(t, db.Where("id = ?", "CR-02/GNT/2023").First(&asset).Error)
	assert.Equal(t, domain.StatusInactive, asset.Status)
	assert.Equal(t, "2024-03-01", asset.ActiveDate)
	assert.Equal(t, "Out for overhaul", asset.Notes)

	err = svc.UpdateState(context.Background(), StateUpdateInput{
		ID:         "no-such-asset",
		Status:     domain.StatusActive,
		ActiveDate: "2024-03-01",
	})
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestUpdateArchive_LastWriteWins(t *testing.T) {
	svc, db := setupAssetTest(t)
	require.NoError(t, svc.Create(context.Background(), CreateInput{
		Asset: craneAsset(),
		Complementary: []ChildInput{{
			ID:     "CR-02/HOIST/01",
			Name:   "Auxiliary Hoist",
			Status: domain.StatusActive,
		}},
	}))

	editorA := domain.ArchiveList{
		{Status: domain.StatusActive, PurchaseOrderNumber: "PO-A", Notes: "editor A"},
	}
	editorB := domain.ArchiveList{
		{Status: domain.StatusActive, PurchaseOrderNumber: "PO-B", Notes: "editor B"},
		{Status: domain.StatusInactive, PurchaseOrderNumber: "PO-B", Notes: "editor B second"},
	}
	require.NoError(t, svc.UpdateArchive(context.Background(), "CR-02/HOIST/01", ItemComplementary, editorA))
	require.NoError(t, svc.UpdateArchive(context.Background(), "CR-02/HOIST/01", ItemComplementary, editorB))

	var comp domain.Complementary
	require.NoError(t, db.Where("id = ?", "CR-02/HOIST/01").First(&comp).Error)
	require.Len(t, comp.Archive, 2)
	assert.Equal(t, "editor B", comp.Archive[0].Notes)
	assert.Equal(t, "editor B second", comp.Archive[1].Notes)
}

func TestUpdateArchive_Errors(t *testing.T) {
	svc, _ := setupAssetTest(t)

	err := svc.UpdateArchive(context.Background(), "x", "gadget", domain.ArchiveList{})
	assert.ErrorIs(t, err, ErrInvalidItemType)

	err = svc.UpdateArchive(context.Background(), "no-such-item", ItemComponent, domain.ArchiveList{})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestAppendAndReplaceArchiveRecord(t *testing.T) {
	svc, db := setupAssetTest(t)
	require.NoError(t, svc.Create(context.Background(), CreateInput{
		Asset: craneAsset(),
		Components: []ChildInput{{
			ID:     "CR-02/MTR/01",
			Name:   "Travel Motor",
			Status: domain.StatusActive,
		}},
	}))

	err := svc.AppendArchiveRecord(context.Background(), "CR-02/MTR/01", ItemComponent, domain.ArchiveRecord{
		Status:              domain.StatusActive,
		PurchaseOrderNumber: "PO-2024-0044",
	})
	require.NoError(t, err)

	// Missing status is rejected before anything is written
	err = svc.AppendArchiveRecord(context.Background(), "CR-02/MTR/01", ItemComponent, domain.ArchiveRecord{})
	assert.ErrorIs(t, err, archive.ErrStatusRequired)

	err = svc.ReplaceArchiveRecord(context.Background(), "CR-02/MTR/01", ItemComponent, 1, domain.ArchiveRecord{
		Status:              domain.StatusInactive,
		PurchaseOrderNumber: "PO-2024-0044",
		Notes:               "returned to vendor",
	})
	require.NoError(t, err)

	err = svc.ReplaceArchiveRecord(context.Background(), "CR-02/MTR/01", ItemComponent, 5, domain.ArchiveRecord{Status: domain.StatusActive})
	assert.ErrorIs(t, err, archive.ErrIndexOutOfRange)

	var cmpnt domain.Component
	require.NoError(t, db.Where("id = ?", "CR-02/MTR/01").First(&cmpnt).Error)
	require.Len(t, cmpnt.Archive, 2)
	assert.Equal(t, domain.StatusInactive, cmpnt.Archive[1].Status)
	assert.Equal(t, "returned to vendor", cmpnt.Archive[1].Notes)
}

func TestAggregate_OrderAndBookValue(t *testing.T) {
	svc, _ := setupAssetTest(t)
	require.NoError(t, svc.Create(context.Background(), CreateInput{
		Asset: craneAsset(),
		Complementary: []ChildInput{
			{ID: "CR-02/HOIST/01", Name: "Auxiliary Hoist", Relation: "hoisting"},
			{ID: "CR-02/CAB/01", Name: "Operator Cabin", Relation: "cabin"},
		},
		Components: []ChildInput{
			{ID: "CR-02/MTR/01", Name: "Travel Motor", Relation: "travel drive"},
		},
	}))

	agg, err := svc.Aggregate(context.Background(), "CR-02/GNT/2023")
	require.NoError(t, err)

	// Children keep creation order (relation row insert order)
	require.Len(t, agg.ComplementaryItems, 2)
	assert.Equal(t, "CR-02/HOIST/01", agg.ComplementaryItems[0].ComplementaryID)
	assert.Equal(t, "hoisting", agg.ComplementaryItems[0].Relation)
	assert.Equal(t, "CR-02/CAB/01", agg.ComplementaryItems[1].ComplementaryID)
	require.Len(t, agg.ComponentItems, 1)

	// Straight-line: 1.2B over 10y, 18 full months since 2023-01-10 at 2024-07-15
	monthly := 1_200_000_000.0 / (10 * 12)
	assert.InDelta(t, 1_200_000_000-18*monthly, agg.CurrentBookValue, 1)
}

func TestAggregate_NoChildren(t *testing.T) {
	svc, _ := setupAssetTest(t)
	require.NoError(t, svc.Create(context.Background(), CreateInput{Asset: craneAsset()}))

	agg, err := svc.Aggregate(context.Background(), "CR-02/GNT/2023")
	require.NoError(t, err)
	assert.NotNil(t, agg.ComplementaryItems)
	assert.NotNil(t, agg.ComponentItems)
	assert.Len(t, agg.ComplementaryItems, 0)
	assert.Len(t, agg.ComponentItems, 0)

	_, err = svc.Aggregate(context.Background(), "no-such-asset")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestAggregate_SkipsDanglingRelation(t *testing.T) {
	svc, db := setupAssetTest(t)
	require.NoError(t, svc.Create(context.Background(), CreateInput{Asset: craneAsset()}))
	require.NoError(t, db.Create(&domain.ComplementaryRelation{
		ParentID:        "CR-02/GNT/2023",
		ComplementaryID: "never-created",
	}).Error)

	agg, err := svc.Aggregate(context.Background(), "CR-02/GNT/2023")
	require.NoError(t, err)
	assert.Len(t, agg.ComplementaryItems, 0)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "/heavy_equipment/gantry_crane/CR-02.jpg", ImageURL("Heavy Equipment", "Gantry Crane", "CR-02"))
	assert.Equal(t, "/deck_machinery/mooring_winch/W-01.jpg", ImageURL("Deck Machinery", "Mooring/Winch", "W-01"))
}
