package domain

import "time"

// Complementary is an auxiliary item attached to an asset. It carries the
// same financial shape as an asset, simplified: purchase history lives in the
// archive column rather than flat fields.
type Complementary struct {
	ID                 string      `gorm:"column:id;primaryKey" json:"id"`
	Name               string      `gorm:"column:name;not null" json:"name"`
	Brand              string      `gorm:"column:brand" json:"brand"`
	Model              string      `gorm:"column:model" json:"model"`
	Category           string      `gorm:"column:category" json:"category"`
	SubCategory        string      `gorm:"column:sub_category" json:"sub_category"`
	DepartmentOwner    string      `gorm:"column:department_owner" json:"department_owner"`
	Archive            ArchiveList `gorm:"column:archive;type:json" json:"archive"`
	ExpectedLifespan   float64     `gorm:"column:expected_lifespan;not null;default:0" json:"expected_lifespan"`
	DepreciationMethod string      `gorm:"column:depreciation_method" json:"depreciation_method"`
	DepreciationRate   float64     `gorm:"column:depreciation_rate;not null;default:0" json:"depreciation_rate"`
	Notes              string      `gorm:"column:notes" json:"notes"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

func (Complementary) TableName() string {
	return "complementaries"
}

// ComplementaryRelation links a parent asset to a complementary item with a
// free-text relation label. The autoincrement id gives the aggregate builder a
// stable insert order to mirror.
type ComplementaryRelation struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ParentID        string `gorm:"column:parent_id;index;not null" json:"parent_id"`
	ComplementaryID string `gorm:"column:complementary_id;not null" json:"complementary_id"`
	Relation        string `gorm:"column:relation" json:"relation"`
}

func (ComplementaryRelation) TableName() string {
	return "complementary_relations"
}
