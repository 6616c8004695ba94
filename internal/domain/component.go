package domain

import "time"

// Component is a sub-part of an asset, lighter than a complementary item
// (no category/department fields).
type Component struct {
	ID               string      `gorm:"column:id;primaryKey" json:"id"`
	Name             string      `gorm:"column:name;not null" json:"name"`
	Brand            string      `gorm:"column:brand" json:"brand"`
	Model            string      `gorm:"column:model" json:"model"`
	Archive          ArchiveList `gorm:"column:archive;type:json" json:"archive"`
	ExpectedLifespan float64     `gorm:"column:expected_lifespan;not null;default:0" json:"expected_lifespan"`
	Notes            string      `gorm:"column:notes" json:"notes"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func (Component) TableName() string {
	return "components"
}

// ComponentRelation links a parent asset to a component item.
type ComponentRelation struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ParentID    string `gorm:"column:parent_id;index;not null" json:"parent_id"`
	ComponentID string `gorm:"column:component_id;not null" json:"component_id"`
	Relation    string `gorm:"column:relation" json:"relation"`
}

func (ComponentRelation) TableName() string {
	return "component_relations"
}
